package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"paper-cloud/config"
	"paper-cloud/internal/component/embedding"
	"paper-cloud/internal/component/ocr"
	paperparser "paper-cloud/internal/component/parser/paper"
	"paper-cloud/internal/dao"
	"paper-cloud/internal/model"
	"paper-cloud/internal/storage"
	"paper-cloud/internal/utils"

	"github.com/bytedance/sonic"
	"github.com/cloudwego/eino-ext/components/document/transformer/splitter/recursive"
	"github.com/cloudwego/eino/schema"
)

var (
	ErrPaperNotFound = errors.New("论文不存在")
	ErrNoPermission  = errors.New("无访问权限")
	ErrNotPDF        = errors.New("仅支持PDF文件")
)

type PaperService interface {
	Upload(ctx context.Context, userID uint, fileName string, data []byte) (*model.Paper, error)
	Process(ctx context.Context, paperID string) error
	Detail(ctx context.Context, userID uint, paperID string) (*model.PaperDetail, error)
	Download(ctx context.Context, userID uint, paperID string) (*model.Paper, []byte, error)
	Delete(ctx context.Context, userID uint, paperID string) error
	PageList(userID uint, page int, pageSize int, sort string) (int64, []model.Paper, error)
	Search(userID uint, key string, page int, pageSize int, sort string) (int64, []model.Paper, error)
	Retrieve(ctx context.Context, userID uint, req *model.RetrieveRequest) ([]model.Chunk, error)
}

type paperService struct {
	paperDao      dao.PaperDao
	milvusDao     dao.MilvusDao
	storageDriver storage.Driver
	ocrEngine     ocr.Engine
	ocrCache      *ocr.Cache
	parser        *paperparser.Parser
	embedder      embedding.EmbeddingService
	ragCfg        *config.RAGConfig
}

func NewPaperService(
	paperDao dao.PaperDao,
	milvusDao dao.MilvusDao,
	storageDriver storage.Driver,
	ocrEngine ocr.Engine,
	ocrCache *ocr.Cache,
	embedder embedding.EmbeddingService,
) PaperService {
	return &paperService{
		paperDao:      paperDao,
		milvusDao:     milvusDao,
		storageDriver: storageDriver,
		ocrEngine:     ocrEngine,
		ocrCache:      ocrCache,
		parser:        paperparser.NewParser(),
		embedder:      embedder,
		ragCfg:        &config.AppConfigInstance.RAG,
	}
}

func (ps *paperService) Upload(ctx context.Context, userID uint, fileName string, data []byte) (*model.Paper, error) {
	if !strings.EqualFold(filepath.Ext(fileName), ".pdf") {
		return nil, ErrNotPDF
	}

	paper := &model.Paper{
		ID:       utils.GenerateUUID(),
		UserID:   userID,
		FileName: fileName,
		Status:   model.PaperStatusPending,
	}
	paper.StorageKey = fmt.Sprintf("papers/%d/%s.pdf", userID, paper.ID)

	if err := ps.storageDriver.Put(ctx, paper.StorageKey, data, "application/pdf"); err != nil {
		return nil, fmt.Errorf("保存PDF失败: %w", err)
	}

	if err := ps.paperDao.CreatePaper(paper); err != nil {
		// 回滚已写入的对象
		_ = ps.storageDriver.Delete(ctx, paper.StorageKey)
		return nil, fmt.Errorf("创建论文记录失败: %w", err)
	}
	return paper, nil
}

// Process 解析一篇论文：OCR（带缓存）→ 结构化解析 → 入库 → 分块嵌入到Milvus
func (ps *paperService) Process(ctx context.Context, paperID string) error {
	paper, err := ps.paperDao.GetPaperByID(paperID)
	if err != nil {
		return err
	}
	if paper == nil {
		return ErrPaperNotFound
	}

	if err := ps.paperDao.UpdateStatus(paperID, model.PaperStatusProcessing); err != nil {
		return err
	}

	if err := ps.process(ctx, paper); err != nil {
		_ = ps.paperDao.UpdateStatus(paperID, model.PaperStatusFailed)
		return err
	}
	return nil
}

func (ps *paperService) process(ctx context.Context, paper *model.Paper) error {
	// 1. 取回PDF并落地为本地文件（OCR引擎和缓存都以文件为输入）
	data, err := ps.storageDriver.Get(ctx, paper.StorageKey)
	if err != nil {
		return fmt.Errorf("读取PDF失败: %w", err)
	}

	localPath := filepath.Join(os.TempDir(), paper.ID+".pdf")
	if err := os.WriteFile(localPath, data, 0o644); err != nil {
		return fmt.Errorf("写入临时文件失败: %w", err)
	}
	// mtime固定为上传时间，保证缓存key在多次处理之间稳定
	_ = os.Chtimes(localPath, paper.CreatedAt, paper.CreatedAt)
	defer os.Remove(localPath)

	// 2. OCR，优先走缓存
	ocrResult, hit := ps.ocrCache.Get(localPath)
	if !hit {
		ocrResult, err = ps.ocrEngine.Process(ctx, localPath)
		if err != nil {
			return fmt.Errorf("OCR处理失败: %w", err)
		}
		if err := ps.ocrCache.Put(localPath, ocrResult); err != nil {
			log.Printf("写入OCR缓存失败: %v", err)
		}
	}

	// 3. 结构化解析
	structure := ps.parser.Parse(ocrResult)

	// 4. 解析结果JSON存储
	parsed, err := sonic.MarshalIndent(structure, "", "  ")
	if err != nil {
		return fmt.Errorf("序列化解析结果失败: %w", err)
	}
	parsedKey := fmt.Sprintf("papers/%d/%s.parsed.json", paper.UserID, paper.ID)
	if err := ps.storageDriver.Put(ctx, parsedKey, parsed, "application/json"); err != nil {
		return fmt.Errorf("保存解析结果失败: %w", err)
	}

	// 5. 更新论文记录
	authors, _ := sonic.MarshalString(structure.Metadata.Authors)
	keywords, _ := sonic.MarshalString(structure.Metadata.Keywords)

	paper.Title = structure.Title
	paper.Abstract = structure.Abstract
	paper.DOI = structure.Metadata.DOI
	paper.Authors = authors
	paper.Keywords = keywords
	paper.PageCount = len(ocrResult.Pages)
	paper.OCRModel = ocrResult.Model
	paper.ParsedKey = parsedKey
	paper.Status = model.PaperStatusCompleted
	paper.UpdatedAt = time.Now()
	if err := ps.paperDao.UpdatePaper(paper); err != nil {
		return fmt.Errorf("更新论文记录失败: %w", err)
	}

	// 6. 分块嵌入，失败不影响论文状态
	if err := ps.indexPaper(ctx, paper, structure); err != nil {
		log.Printf("论文[%s]向量索引失败: %v", paper.ID, err)
	}
	return nil
}

// indexPaper 将论文章节切块、嵌入并写入Milvus
func (ps *paperService) indexPaper(ctx context.Context, paper *model.Paper, structure *model.PaperStructure) error {
	var docs []*schema.Document
	for _, sec := range structure.Sections {
		content := strings.Join(sec.Text, "\n\n")
		if strings.TrimSpace(content) == "" {
			continue
		}
		docs = append(docs, &schema.Document{
			ID:      sec.Title,
			Content: content,
		})
	}
	if len(docs) == 0 {
		return nil
	}

	splitter, err := recursive.NewSplitter(ctx, &recursive.Config{
		ChunkSize:   ps.ragCfg.ChunkSize,
		OverlapSize: ps.ragCfg.OverlapSize,
	})
	if err != nil {
		return fmt.Errorf("加载分块器失败: %w", err)
	}

	texts, err := splitter.Transform(ctx, docs)
	if err != nil {
		return fmt.Errorf("分块失败: %w", err)
	}

	var chunks []model.Chunk
	for i, text := range texts {
		vectors64, err := ps.embedder.EmbedStrings(ctx, []string{text.Content})
		if err != nil {
			return fmt.Errorf("嵌入失败: %w", err)
		}
		float32Vectors := utils.ConvertFloat64ToFloat32Embeddings(vectors64)
		chunks = append(chunks, model.Chunk{
			ID:           utils.GenerateUUID(),
			Content:      text.Content,
			PaperID:      paper.ID,
			PaperTitle:   paper.Title,
			SectionTitle: text.ID,
			Index:        i,
			Embeddings:   float32Vectors[0],
		})
	}

	if err := ps.milvusDao.SaveChunks(chunks); err != nil {
		return fmt.Errorf("存储向量到 Milvus 失败: %w", err)
	}
	return nil
}

func (ps *paperService) getOwnedPaper(userID uint, paperID string) (*model.Paper, error) {
	paper, err := ps.paperDao.GetPaperByID(paperID)
	if err != nil {
		return nil, err
	}
	if paper == nil {
		return nil, ErrPaperNotFound
	}
	if paper.UserID != userID {
		return nil, ErrNoPermission
	}
	return paper, nil
}

func (ps *paperService) Detail(ctx context.Context, userID uint, paperID string) (*model.PaperDetail, error) {
	paper, err := ps.getOwnedPaper(userID, paperID)
	if err != nil {
		return nil, err
	}

	detail := &model.PaperDetail{Paper: paper}

	// 原始PDF的访问地址，对象存储返回带签名的临时URL
	if url, err := ps.storageDriver.GetURL(ctx, paper.StorageKey); err == nil {
		detail.DownloadURL = url
	} else {
		log.Printf("获取论文[%s]访问地址失败: %v", paper.ID, err)
	}

	if paper.Status == model.PaperStatusCompleted && paper.ParsedKey != "" {
		data, err := ps.storageDriver.Get(ctx, paper.ParsedKey)
		if err != nil {
			return nil, fmt.Errorf("读取解析结果失败: %w", err)
		}
		structure := &model.PaperStructure{}
		if err := sonic.Unmarshal(data, structure); err != nil {
			return nil, fmt.Errorf("解析结果损坏: %w", err)
		}
		detail.Structure = structure
	}
	return detail, nil
}

func (ps *paperService) Download(ctx context.Context, userID uint, paperID string) (*model.Paper, []byte, error) {
	paper, err := ps.getOwnedPaper(userID, paperID)
	if err != nil {
		return nil, nil, err
	}

	data, err := ps.storageDriver.Get(ctx, paper.StorageKey)
	if err != nil {
		return nil, nil, fmt.Errorf("读取PDF失败: %w", err)
	}
	return paper, data, nil
}

func (ps *paperService) Delete(ctx context.Context, userID uint, paperID string) error {
	paper, err := ps.getOwnedPaper(userID, paperID)
	if err != nil {
		return err
	}

	if err := ps.paperDao.DeletePaper(paperID); err != nil {
		return fmt.Errorf("删除论文记录失败: %w", err)
	}

	// 存储对象与向量清理失败只记录日志
	if err := ps.storageDriver.Delete(ctx, paper.StorageKey); err != nil {
		log.Printf("删除PDF对象失败: %v", err)
	}
	if paper.ParsedKey != "" {
		if err := ps.storageDriver.Delete(ctx, paper.ParsedKey); err != nil {
			log.Printf("删除解析结果失败: %v", err)
		}
	}
	if err := ps.milvusDao.DeleteChunks([]string{paperID}); err != nil {
		log.Printf("删除向量失败: %v", err)
	}
	return nil
}

func (ps *paperService) PageList(userID uint, page int, pageSize int, sort string) (int64, []model.Paper, error) {
	total, err := ps.paperDao.CountPapers(userID)
	if err != nil {
		return 0, nil, err
	}
	papers, err := ps.paperDao.ListPapers(userID, page, pageSize, sort)
	if err != nil {
		return 0, nil, err
	}
	return total, papers, nil
}

// Search 按关键词搜索标题或文件名
func (ps *paperService) Search(userID uint, key string, page int, pageSize int, sort string) (int64, []model.Paper, error) {
	total, err := ps.paperDao.CountPapersByKeyword(key, userID)
	if err != nil {
		return 0, nil, err
	}
	papers, err := ps.paperDao.GetPapersByKeyword(userID, key, page, pageSize, sort)
	if err != nil {
		return 0, nil, err
	}
	return total, papers, nil
}

func (ps *paperService) Retrieve(ctx context.Context, userID uint, req *model.RetrieveRequest) ([]model.Chunk, error) {
	if req.PaperID != "" {
		if _, err := ps.getOwnedPaper(userID, req.PaperID); err != nil {
			return nil, err
		}
	}

	topK := req.TopK
	if topK <= 0 {
		topK = 5
	}

	embeddings, err := ps.embedder.EmbedStrings(ctx, []string{req.Query})
	if err != nil {
		return nil, fmt.Errorf("查询向量化失败: %w", err)
	}
	float32Vector := utils.ConvertFloat64ToFloat32Embeddings(embeddings)[0]

	return ps.milvusDao.Search(req.PaperID, float32Vector, topK)
}
