package model

import "time"

// 论文处理状态
const (
	PaperStatusPending    = 0 // 待处理
	PaperStatusProcessing = 1 // 处理中
	PaperStatusCompleted  = 2 // 已完成
	PaperStatusFailed     = 3 // 失败
)

// Paper 论文记录
type Paper struct {
	ID         string    `gorm:"primaryKey;type:char(36)"` // UUID
	UserID     uint      `gorm:"index"`                    // 上传者ID
	FileName   string    `gorm:"not null"`                 // 原始文件名
	Title      string    `gorm:"size:512"`                 // 解析出的标题
	Abstract   string    `gorm:"type:text"`                // 摘要
	DOI        string    `gorm:"size:128;index"`
	Authors    string    `gorm:"type:text"` // 作者列表，JSON序列化
	Keywords   string    `gorm:"type:text"` // 关键词列表，JSON序列化
	PageCount  int       // OCR识别的页数
	OCRModel   string    `gorm:"size:64"` // 使用的OCR模型
	Status     int       // 处理状态(0:待处理,1:处理中,2:已完成,3:失败)
	StorageKey string    `gorm:"size:256"` // 原始PDF的存储key
	ParsedKey  string    `gorm:"size:256"` // 解析结果JSON的存储key
	CreatedAt  time.Time `gorm:"autoCreateTime"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime"`
}

// PaperStructure 解析后的论文结构
type PaperStructure struct {
	Title      string         `json:"title"`
	Abstract   string         `json:"abstract"`
	Sections   []PaperSection `json:"sections"`
	References []string       `json:"references"`
	Metadata   PaperMetadata  `json:"metadata"`
}

// PaperSection 论文章节
type PaperSection struct {
	Title    string         `json:"title"`
	Text     []string       `json:"text"` // 按段落切分
	Images   []SectionImage `json:"images"`
	Formulas []string       `json:"formulas"`
}

// SectionImage 章节内的图片
type SectionImage struct {
	Page        int              `json:"page"`
	ID          string           `json:"id"`
	Base64      string           `json:"base64"`
	Coordinates ImageCoordinates `json:"coordinates"`
}

// ImageCoordinates 图片在页面中的坐标
type ImageCoordinates struct {
	TopLeftX     int `json:"top_left_x"`
	TopLeftY     int `json:"top_left_y"`
	BottomRightX int `json:"bottom_right_x"`
	BottomRightY int `json:"bottom_right_y"`
}

// PaperMetadata 论文元数据
type PaperMetadata struct {
	Authors         []string `json:"authors"`
	Affiliations    []string `json:"affiliations"`
	Keywords        []string `json:"keywords"`
	DOI             string   `json:"doi"`
	PublicationDate string   `json:"publication_date"`
	Journal         string   `json:"journal"`
}

// PaperDetail 论文详情（数据库记录 + 解析结构 + 原始PDF访问地址）
type PaperDetail struct {
	Paper       *Paper          `json:"paper"`
	Structure   *PaperStructure `json:"structure,omitempty"`
	DownloadURL string          `json:"download_url,omitempty"`
}

type RetrieveRequest struct {
	Query   string `json:"query" binding:"required"`
	PaperID string `json:"paper_id"` // 可选，限定在单篇论文内检索
	TopK    int    `json:"top_k"`
}
