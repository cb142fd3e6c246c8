package ocr

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"

	"paper-cloud/internal/model"

	"code.sajari.com/docconv/v2"
)

// DocconvEngine 基于docconv的本地解析引擎。
// 没有配置OCR接口时的降级方案，只能处理带文本层的PDF，
// 输出合成为单页结果，不包含图片信息。
type DocconvEngine struct{}

func NewDocconvEngine() *DocconvEngine {
	return &DocconvEngine{}
}

func (e *DocconvEngine) Process(ctx context.Context, filePath string) (*model.OCRResult, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("打开文件失败: %w", err)
	}
	defer f.Close()

	res, meta, err := docconv.ConvertPDF(f)
	if err != nil {
		return nil, fmt.Errorf("PDF解析失败: %w", err)
	}

	if len(res) == 0 {
		return nil, fmt.Errorf("PDF解析结果为空，可能是扫描PDF或无文本内容")
	}
	if len(res) < 100 { // 少于100个字符基本不是有效论文
		log.Printf("PDF解析结果太短（%d字符），可能解析不完整", len(res))
	}

	pages := 1
	if v, ok := meta["PageCount"]; ok {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			pages = n
		}
	}

	return &model.OCRResult{
		Pages: []model.OCRPage{{
			Index:    0,
			Markdown: res,
		}},
		Model: "docconv",
		UsageInfo: model.OCRUsage{
			PagesProcessed: pages,
		},
	}, nil
}
