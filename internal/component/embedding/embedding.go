package embedding

import (
	"context"
	"fmt"
	"time"

	"paper-cloud/config"

	einoEmbedding "github.com/cloudwego/eino/components/embedding"
)

const (
	ProviderOpenAI = "openai"
	ProviderOllama = "ollama"
)

type EmbeddingOption func(*EmbeddingOptions)

type EmbeddingOptions struct {
	Timeout *time.Duration
}

func WithTimeout(timeout time.Duration) EmbeddingOption {
	return func(o *EmbeddingOptions) {
		o.Timeout = &timeout
	}
}

// EmbeddingService 定义向量嵌入服务的通用接口
type EmbeddingService interface {
	New(ctx context.Context, cfg *config.EmbeddingConfig, opts ...EmbeddingOption) (EmbeddingService, error)
	// EmbedStrings 将文本转换为向量表示
	EmbedStrings(ctx context.Context, texts []string, opts ...einoEmbedding.Option) ([][]float64, error)
	// GetDimension 返回嵌入向量的维度
	GetDimension() int
}

var embeddingMap = make(map[string]EmbeddingService)

func register(name string, embeddingService EmbeddingService) {
	embeddingMap[name] = embeddingService
}

// NewEmbeddingService 根据配置中的server字段创建对应的嵌入服务实例
func NewEmbeddingService(ctx context.Context, cfg *config.EmbeddingConfig, opts ...EmbeddingOption) (EmbeddingService, error) {
	if cfg == nil {
		return nil, fmt.Errorf("embedding config is nil")
	}
	if cfg.Server == "" {
		return nil, fmt.Errorf("embedding config server is empty")
	}

	if embedding, ok := embeddingMap[cfg.Server]; ok {
		return embedding.New(ctx, cfg, opts...)
	}
	return nil, fmt.Errorf("不支持的嵌入服务提供者: %s", cfg.Server)
}
