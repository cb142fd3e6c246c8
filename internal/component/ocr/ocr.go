package ocr

import (
	"context"
	"fmt"

	"paper-cloud/config"
	"paper-cloud/internal/component/ocr/mistral"
	"paper-cloud/internal/model"
)

const (
	ProviderMistral = "mistral"
	ProviderDocconv = "docconv"
)

// Engine OCR引擎的通用接口
type Engine interface {
	// Process 对指定路径的PDF执行OCR，返回按页组织的markdown结果
	Process(ctx context.Context, filePath string) (*model.OCRResult, error)
}

// NewEngine 根据配置创建OCR引擎
func NewEngine(cfg *config.OCRConfig) (Engine, error) {
	if cfg == nil {
		return nil, fmt.Errorf("ocr config is nil")
	}

	switch cfg.Provider {
	case ProviderMistral, "":
		return mistral.NewClient(cfg)
	case ProviderDocconv:
		return NewDocconvEngine(), nil
	default:
		return nil, fmt.Errorf("不支持的OCR提供者: %s", cfg.Provider)
	}
}
