package dao

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"paper-cloud/config"
	"paper-cloud/internal/model"
	"paper-cloud/pkgs/consts"

	"github.com/milvus-io/milvus-sdk-go/v2/client"
	"github.com/milvus-io/milvus-sdk-go/v2/entity"
)

type MilvusDao interface {
	SaveChunks(chunks []model.Chunk) error
	Search(paperID string, vector []float32, topK int) ([]model.Chunk, error)
	DeleteChunks(paperIDs []string) error
}

type milvusDao struct {
	mv  client.Client
	cfg *config.MilvusConfig
}

func NewMilvusDao(milvus client.Client, cfg *config.MilvusConfig) MilvusDao {
	return &milvusDao{mv: milvus, cfg: cfg}
}

func (m *milvusDao) collectionName() string {
	if m.cfg.CollectionName != "" {
		return m.cfg.CollectionName
	}
	return consts.CollectionNamePaperChunks
}

// SaveChunks 批量插入文本块向量
func (m *milvusDao) SaveChunks(chunks []model.Chunk) error {
	ctx := context.Background()

	if len(chunks) == 0 {
		return fmt.Errorf("没有可插入的文本块")
	}

	// 准备插入数据，过滤空内容和空向量
	var ids []string
	var contents []string
	var paperIDs []string
	var paperTitles []string
	var sectionTitles []string
	var chunkIndices []int32
	var vectors [][]float32

	for _, chunk := range chunks {
		if len(chunk.Content) == 0 || len(chunk.Embeddings) == 0 {
			continue
		}

		// 标题不超过字段长度限制
		title := chunk.PaperTitle
		if len(title) > 250 {
			title = title[:250]
		}
		sectionTitle := chunk.SectionTitle
		if len(sectionTitle) > 250 {
			sectionTitle = sectionTitle[:250]
		}

		ids = append(ids, chunk.ID)
		contents = append(contents, chunk.Content)
		paperIDs = append(paperIDs, chunk.PaperID)
		paperTitles = append(paperTitles, title)
		sectionTitles = append(sectionTitles, sectionTitle)
		chunkIndices = append(chunkIndices, int32(chunk.Index))
		vectors = append(vectors, chunk.Embeddings)
	}

	if len(ids) == 0 {
		return fmt.Errorf("过滤无效数据后，没有有效的文本块可以插入")
	}

	idColumn := entity.NewColumnVarChar(consts.FieldNameID, ids)
	contentColumn := entity.NewColumnVarChar(consts.FieldNameContent, contents)
	paperIDColumn := entity.NewColumnVarChar(consts.FieldNamePaperID, paperIDs)
	paperTitleColumn := entity.NewColumnVarChar(consts.FieldNamePaperTitle, paperTitles)
	sectionTitleColumn := entity.NewColumnVarChar(consts.FieldNameSectionTitle, sectionTitles)
	indexColumn := entity.NewColumnInt32(consts.FieldNameChunkIndex, chunkIndices)
	vectorColumn := entity.NewColumnFloatVector(consts.FieldNameVector, m.cfg.VectorDimension, vectors)

	// 插入数据，最多重试3次
	var lastErr error
	for i := 0; i < 3; i++ {
		_, err := m.mv.Insert(
			ctx,
			m.collectionName(),
			"",
			idColumn,
			contentColumn,
			paperIDColumn,
			paperTitleColumn,
			sectionTitleColumn,
			indexColumn,
			vectorColumn,
		)
		if err == nil {
			return nil
		}
		lastErr = err
		time.Sleep(1 * time.Second) // 等待1秒后重试
	}

	return fmt.Errorf("插入数据失败，已重试3次: %w", lastErr)
}

// DeleteChunks 按论文ID删除向量
func (m *milvusDao) DeleteChunks(paperIDs []string) error {
	ctx := context.Background()

	expr := fmt.Sprintf("%s in [\"%s\"]", consts.FieldNamePaperID, strings.Join(paperIDs, "\",\""))

	if err := m.mv.Delete(ctx, m.collectionName(), "", expr); err != nil {
		return fmt.Errorf("删除向量数据失败：%w", err)
	}
	return nil
}

// Search 向量检索，paperID非空时限定在单篇论文内
func (m *milvusDao) Search(paperID string, vector []float32, topK int) ([]model.Chunk, error) {
	ctx := context.Background()

	nprobe := m.cfg.Nprobe
	if nprobe <= 0 {
		nprobe = 16
	}
	sp, _ := entity.NewIndexIvfFlatSearchParam(nprobe)

	expr := ""
	if paperID != "" {
		expr = fmt.Sprintf("%s == \"%s\"", consts.FieldNamePaperID, paperID)
	}

	searchResult, err := m.mv.Search(
		ctx,
		m.collectionName(),
		[]string{},
		expr,
		consts.SearchFields,
		[]entity.Vector{entity.FloatVector(vector)},
		consts.FieldNameVector,
		m.cfg.GetMetricType(),
		topK,
		sp,
	)
	if err != nil {
		return nil, fmt.Errorf("向量检索失败: %w", err)
	}

	return m.parseSearchResults(searchResult)
}

func (m *milvusDao) parseSearchResults(searchResult []client.SearchResult) ([]model.Chunk, error) {
	var chunks []model.Chunk

	for _, result := range searchResult {
		idCol, ok := result.IDs.(*entity.ColumnVarChar)
		if !ok {
			return nil, fmt.Errorf("unexpected type for ID column: %T", result.IDs)
		}

		contentCol, ok := result.Fields.GetColumn(consts.FieldNameContent).(*entity.ColumnVarChar)
		if !ok {
			return nil, fmt.Errorf("unexpected type for content column")
		}

		paperIDCol, ok := result.Fields.GetColumn(consts.FieldNamePaperID).(*entity.ColumnVarChar)
		if !ok {
			return nil, fmt.Errorf("unexpected type for paper ID column")
		}

		paperTitleCol, ok := result.Fields.GetColumn(consts.FieldNamePaperTitle).(*entity.ColumnVarChar)
		if !ok {
			return nil, fmt.Errorf("unexpected type for paper title column")
		}

		sectionTitleCol, ok := result.Fields.GetColumn(consts.FieldNameSectionTitle).(*entity.ColumnVarChar)
		if !ok {
			return nil, fmt.Errorf("unexpected type for section title column")
		}

		indexCol, ok := result.Fields.GetColumn(consts.FieldNameChunkIndex).(*entity.ColumnInt32)
		if !ok {
			return nil, fmt.Errorf("unexpected type for index column")
		}

		resultCount := idCol.Len()
		for i := 0; i < resultCount; i++ {
			id := idCol.Data()[i]
			content, err := contentCol.GetAsString(i)
			if err != nil {
				return nil, fmt.Errorf("获取内容失败: %w", err)
			}

			paperID, err := paperIDCol.GetAsString(i)
			if err != nil {
				return nil, fmt.Errorf("获取论文ID失败: %w", err)
			}

			paperTitle, err := paperTitleCol.GetAsString(i)
			if err != nil {
				return nil, fmt.Errorf("获取论文标题失败：%w", err)
			}

			sectionTitle, err := sectionTitleCol.GetAsString(i)
			if err != nil {
				return nil, fmt.Errorf("获取章节标题失败: %w", err)
			}

			index := indexCol.Data()[i]
			score := result.Scores[i]

			chunks = append(chunks, model.Chunk{
				ID:           id,
				Content:      content,
				PaperID:      paperID,
				PaperTitle:   paperTitle,
				SectionTitle: sectionTitle,
				Index:        int(index),
				Score:        score,
			})
		}
	}

	// 按Score从高到低排序
	sort.Slice(chunks, func(i, j int) bool {
		return chunks[i].Score > chunks[j].Score
	})

	return chunks, nil
}
