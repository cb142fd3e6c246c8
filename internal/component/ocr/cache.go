package ocr

import (
	"crypto/md5"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"paper-cloud/config"
	"paper-cloud/internal/model"

	"github.com/bytedance/sonic"
)

// Cache OCR结果的磁盘缓存。
// 缓存键由文件内容的md5加上文件大小和修改时间组成，
// 同一个PDF重复上传不会重复调用OCR接口。
type Cache struct {
	dir     string
	enabled bool
}

func NewCache(cfg *config.CacheConfig) (*Cache, error) {
	dir := cfg.Dir
	if dir == "" {
		dir = "cache"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("创建缓存目录失败: %w", err)
	}
	return &Cache{dir: dir, enabled: cfg.Enabled}, nil
}

// Key 计算文件对应的缓存键
func (c *Cache) Key(filePath string) (string, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return "", fmt.Errorf("读取文件失败: %w", err)
	}
	stat, err := os.Stat(filePath)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%x_%d_%d", md5.Sum(data), stat.Size(), stat.ModTime().Unix()), nil
}

func (c *Cache) path(key string) string {
	return filepath.Join(c.dir, key+".json")
}

// Get 查找缓存，读取或解析失败都按未命中处理
func (c *Cache) Get(filePath string) (*model.OCRResult, bool) {
	if !c.enabled {
		return nil, false
	}

	key, err := c.Key(filePath)
	if err != nil {
		return nil, false
	}

	data, err := os.ReadFile(c.path(key))
	if err != nil {
		return nil, false
	}

	var result model.OCRResult
	if err := sonic.Unmarshal(data, &result); err != nil {
		log.Printf("缓存文件损坏，忽略: %s: %v", c.path(key), err)
		return nil, false
	}
	return &result, true
}

// Put 保存OCR结果到缓存
func (c *Cache) Put(filePath string, result *model.OCRResult) error {
	if !c.enabled {
		return nil
	}

	key, err := c.Key(filePath)
	if err != nil {
		return err
	}

	data, err := sonic.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("序列化OCR结果失败: %w", err)
	}
	if err := os.WriteFile(c.path(key), data, 0o644); err != nil {
		return fmt.Errorf("写入缓存失败: %w", err)
	}
	return nil
}

// Clean 删除超过maxAge的缓存文件，返回删除数量
func (c *Cache) Clean(maxAge time.Duration) (int, error) {
	entries, err := filepath.Glob(filepath.Join(c.dir, "*.json"))
	if err != nil {
		return 0, err
	}

	deadline := time.Now().Add(-maxAge)
	removed := 0
	for _, entry := range entries {
		stat, err := os.Stat(entry)
		if err != nil {
			continue
		}
		if stat.ModTime().Before(deadline) {
			if err := os.Remove(entry); err != nil {
				log.Printf("删除缓存文件失败: %s: %v", entry, err)
				continue
			}
			removed++
		}
	}
	return removed, nil
}
