package storage

import (
	"context"
	"fmt"

	"paper-cloud/config"
)

// Driver 对象存储驱动接口，屏蔽local/oss/minio差异
type Driver interface {
	// Put 保存对象
	Put(ctx context.Context, key string, data []byte, contentType string) error
	// Get 读取对象内容
	Get(ctx context.Context, key string) ([]byte, error)
	// Delete 删除对象
	Delete(ctx context.Context, key string) error
	// GetURL 获取对象的访问地址（对象存储返回带签名的临时地址）
	GetURL(ctx context.Context, key string) (string, error)
}

// NewDriver 根据配置创建存储驱动
func NewDriver(cfg config.StorageConfig) (Driver, error) {
	switch cfg.Type {
	case "local", "":
		return NewLocalDriver(cfg.Local)
	case "minio":
		return NewMinioDriver(cfg.Minio)
	case "oss":
		return NewOSSDriver(cfg.OSS)
	default:
		return nil, fmt.Errorf("不支持的存储类型: %s", cfg.Type)
	}
}
