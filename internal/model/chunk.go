package model

// Chunk 存储到milvus中的文本块
type Chunk struct {
	ID           string    `json:"id"`
	Content      string    `json:"content"`       // chunk内容
	PaperID      string    `json:"paper_id"`      // 所属论文ID
	PaperTitle   string    `json:"paper_title"`   // 论文标题
	SectionTitle string    `json:"section_title"` // 所属章节标题
	Index        int       `json:"index"`         // 第几个chunk
	Embeddings   []float32 `json:"embeddings"`    // chunk向量
	Score        float32   `json:"score"`         // 检索返回的分数
}
