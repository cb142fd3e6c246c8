package model

// OCR接口返回的原始结构，也是磁盘缓存中保存的内容。
// 字段命名与Mistral OCR接口保持一致，缓存文件可以直接对照排查。

// OCRResult OCR处理结果
type OCRResult struct {
	Pages     []OCRPage `json:"pages"`
	Model     string    `json:"model"`
	UsageInfo OCRUsage  `json:"usage_info"`
}

// OCRPage 单页OCR结果
type OCRPage struct {
	Index      int                `json:"index"`
	Markdown   string             `json:"markdown"`
	Images     []OCRImage         `json:"images"`
	Dimensions *OCRPageDimensions `json:"dimensions,omitempty"`
}

// OCRImage 页面中识别出的图片
type OCRImage struct {
	ID           string `json:"id"`
	TopLeftX     int    `json:"top_left_x"`
	TopLeftY     int    `json:"top_left_y"`
	BottomRightX int    `json:"bottom_right_x"`
	BottomRightY int    `json:"bottom_right_y"`
	ImageBase64  string `json:"image_base64,omitempty"`
}

// OCRPageDimensions 页面尺寸信息
type OCRPageDimensions struct {
	DPI    int `json:"dpi"`
	Height int `json:"height"`
	Width  int `json:"width"`
}

// OCRUsage 接口用量信息
type OCRUsage struct {
	PagesProcessed int   `json:"pages_processed"`
	DocSizeBytes   int64 `json:"doc_size_bytes,omitempty"`
}
