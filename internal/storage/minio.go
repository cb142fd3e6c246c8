package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"paper-cloud/config"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinioDriver Minio对象存储
type MinioDriver struct {
	client *minio.Client
	bucket string
}

func NewMinioDriver(cfg config.MinioConfig) (*MinioDriver, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.AccessKeySecret, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("连接Minio失败: %w", err)
	}

	return &MinioDriver{client: client, bucket: cfg.Bucket}, nil
}

func (d *MinioDriver) Put(ctx context.Context, key string, data []byte, contentType string) error {
	_, err := d.client.PutObject(ctx, d.bucket, key, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return fmt.Errorf("上传对象失败: %w", err)
	}
	return nil
}

func (d *MinioDriver) Get(ctx context.Context, key string) ([]byte, error) {
	obj, err := d.client.GetObject(ctx, d.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("读取对象失败: %w", err)
	}
	defer obj.Close()
	return io.ReadAll(obj)
}

func (d *MinioDriver) Delete(ctx context.Context, key string) error {
	return d.client.RemoveObject(ctx, d.bucket, key, minio.RemoveObjectOptions{})
}

func (d *MinioDriver) GetURL(ctx context.Context, key string) (string, error) {
	// 有效期1小时的签名地址
	u, err := d.client.PresignedGetObject(ctx, d.bucket, key, time.Hour, nil)
	if err != nil {
		return "", fmt.Errorf("生成签名地址失败: %w", err)
	}
	return u.String(), nil
}
