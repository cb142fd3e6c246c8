package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"paper-cloud/config"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
)

// OSSDriver 阿里云OSS存储
type OSSDriver struct {
	bucket *oss.Bucket
}

func NewOSSDriver(cfg config.OSSConfig) (*OSSDriver, error) {
	client, err := oss.New(cfg.Endpoint, cfg.AccessKeyID, cfg.AccessKeySecret)
	if err != nil {
		return nil, fmt.Errorf("连接OSS失败: %w", err)
	}
	bucket, err := client.Bucket(cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("获取OSS bucket失败: %w", err)
	}
	return &OSSDriver{bucket: bucket}, nil
}

func (d *OSSDriver) Put(ctx context.Context, key string, data []byte, contentType string) error {
	err := d.bucket.PutObject(key, bytes.NewReader(data), oss.ContentType(contentType))
	if err != nil {
		return fmt.Errorf("上传对象失败: %w", err)
	}
	return nil
}

func (d *OSSDriver) Get(ctx context.Context, key string) ([]byte, error) {
	body, err := d.bucket.GetObject(key)
	if err != nil {
		return nil, fmt.Errorf("读取对象失败: %w", err)
	}
	defer body.Close()
	return io.ReadAll(body)
}

func (d *OSSDriver) Delete(ctx context.Context, key string) error {
	return d.bucket.DeleteObject(key)
}

func (d *OSSDriver) GetURL(ctx context.Context, key string) (string, error) {
	// 有效期1小时的签名地址
	u, err := d.bucket.SignURL(key, oss.HTTPGet, 3600)
	if err != nil {
		return "", fmt.Errorf("生成签名地址失败: %w", err)
	}
	return u, nil
}
