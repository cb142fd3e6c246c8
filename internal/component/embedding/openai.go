package embedding

import (
	"context"
	"time"

	"paper-cloud/config"

	"github.com/cloudwego/eino-ext/components/embedding/openai"
	einoEmbedding "github.com/cloudwego/eino/components/embedding"
)

func init() {
	register(ProviderOpenAI, &openaiEmbedder{})
}

type OpenAIEmbeddingConfig struct {
	BaseURL   string
	APIKey    string
	Model     string
	Timeout   *time.Duration
	Dimension *int
}

type openaiEmbedder struct {
	conf     *OpenAIEmbeddingConfig
	embedder *openai.Embedder
}

func (o *openaiEmbedder) New(ctx context.Context, cfg *config.EmbeddingConfig, opts ...EmbeddingOption) (EmbeddingService, error) {
	options := &EmbeddingOptions{}
	for _, opt := range opts {
		opt(options)
	}

	timeout := 5 * time.Minute
	if options.Timeout != nil {
		timeout = *options.Timeout
	}

	conf := &OpenAIEmbeddingConfig{
		BaseURL:   cfg.BaseURL,
		APIKey:    cfg.APIKey,
		Model:     cfg.Model,
		Timeout:   &timeout,
		Dimension: &cfg.Dimension,
	}

	embedder, err := openai.NewEmbedder(ctx, &openai.EmbeddingConfig{
		APIKey:     conf.APIKey,
		BaseURL:    conf.BaseURL,
		Model:      conf.Model,
		Timeout:    timeout,
		Dimensions: conf.Dimension,
	})
	if err != nil {
		return nil, err
	}
	return &openaiEmbedder{
		conf:     conf,
		embedder: embedder,
	}, nil
}

func (o *openaiEmbedder) EmbedStrings(ctx context.Context, texts []string, opts ...einoEmbedding.Option) ([][]float64, error) {
	return o.embedder.EmbedStrings(ctx, texts, opts...)
}

func (o *openaiEmbedder) GetDimension() int {
	return *o.conf.Dimension
}
