package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"paper-cloud/config"
)

// LocalDriver 本地文件系统存储
type LocalDriver struct {
	baseDir string
}

func NewLocalDriver(cfg config.LocalConfig) (*LocalDriver, error) {
	baseDir := cfg.BaseDir
	if baseDir == "" {
		baseDir = "./data/storage"
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("创建存储目录失败: %w", err)
	}
	return &LocalDriver{baseDir: baseDir}, nil
}

// fullPath 拼接并校验对象路径，防止key穿越到baseDir之外
func (d *LocalDriver) fullPath(key string) (string, error) {
	path := filepath.Join(d.baseDir, filepath.FromSlash(key))
	base, err := filepath.Abs(d.baseDir)
	if err != nil {
		return "", err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	if abs != base && !strings.HasPrefix(abs, base+string(os.PathSeparator)) {
		return "", fmt.Errorf("非法的存储key: %s", key)
	}
	return path, nil
}

func (d *LocalDriver) Put(ctx context.Context, key string, data []byte, contentType string) error {
	path, err := d.fullPath(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func (d *LocalDriver) Get(ctx context.Context, key string) ([]byte, error) {
	path, err := d.fullPath(key)
	if err != nil {
		return nil, err
	}
	return os.ReadFile(path)
}

func (d *LocalDriver) Delete(ctx context.Context, key string) error {
	path, err := d.fullPath(key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (d *LocalDriver) GetURL(ctx context.Context, key string) (string, error) {
	path, err := d.fullPath(key)
	if err != nil {
		return "", err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return "file://" + abs, nil
}
