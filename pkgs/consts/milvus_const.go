package consts

// 集合相关常量定义
const (
	// CollectionNamePaperChunks 论文文本块集合名称
	CollectionNamePaperChunks = "paper_chunks"
)

// 字段名称常量定义
const (
	// FieldNameID ID字段名
	FieldNameID = "id"
	// FieldNameContent 内容字段名
	FieldNameContent = "content"
	// FieldNamePaperID 论文ID字段名
	FieldNamePaperID = "paper_id"
	// FieldNamePaperTitle 论文标题字段名
	FieldNamePaperTitle = "paper_title"
	// FieldNameSectionTitle 章节标题字段名
	FieldNameSectionTitle = "section_title"
	// FieldNameChunkIndex 块索引字段名
	FieldNameChunkIndex = "chunk_index"
	// FieldNameVector 向量字段名
	FieldNameVector = "vector"
)

// 查询相关字段
var (
	// SearchFields 搜索结果返回的字段
	SearchFields = []string{
		FieldNameID,
		FieldNameContent,
		FieldNamePaperID,
		FieldNamePaperTitle,
		FieldNameSectionTitle,
		FieldNameChunkIndex,
	}
)
