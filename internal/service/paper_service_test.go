package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"paper-cloud/config"
	"paper-cloud/internal/component/embedding"
	"paper-cloud/internal/component/ocr"
	"paper-cloud/internal/model"

	einoEmbedding "github.com/cloudwego/eino/components/embedding"
)

// fakePaperDao 内存实现，只覆盖测试用到的方法
type fakePaperDao struct {
	papers map[string]*model.Paper
}

func newFakePaperDao() *fakePaperDao {
	return &fakePaperDao{papers: map[string]*model.Paper{}}
}

func (f *fakePaperDao) CreatePaper(paper *model.Paper) error {
	// 数据库里由autoCreateTime填充
	if paper.CreatedAt.IsZero() {
		paper.CreatedAt = time.Now()
	}
	f.papers[paper.ID] = paper
	return nil
}

func (f *fakePaperDao) GetPaperByID(id string) (*model.Paper, error) {
	paper, ok := f.papers[id]
	if !ok {
		return nil, nil
	}
	copied := *paper
	return &copied, nil
}

func (f *fakePaperDao) UpdatePaper(paper *model.Paper) error {
	f.papers[paper.ID] = paper
	return nil
}

func (f *fakePaperDao) UpdateStatus(id string, status int) error {
	if paper, ok := f.papers[id]; ok {
		paper.Status = status
	}
	return nil
}

func (f *fakePaperDao) DeletePaper(id string) error {
	delete(f.papers, id)
	return nil
}

func (f *fakePaperDao) ListPapers(userID uint, page, pageSize int, sort string) ([]model.Paper, error) {
	var papers []model.Paper
	for _, p := range f.papers {
		if p.UserID == userID {
			papers = append(papers, *p)
		}
	}
	return papers, nil
}

func (f *fakePaperDao) CountPapers(userID uint) (int64, error) {
	papers, _ := f.ListPapers(userID, 1, 100, "")
	return int64(len(papers)), nil
}

func (f *fakePaperDao) GetPapersByKeyword(userID uint, key string, page, pageSize int, sort string) ([]model.Paper, error) {
	return nil, nil
}

func (f *fakePaperDao) CountPapersByKeyword(key string, userID uint) (int64, error) {
	return 0, nil
}

// fakeMilvusDao 记录保存的chunk
type fakeMilvusDao struct {
	saved   []model.Chunk
	deleted []string
}

func (f *fakeMilvusDao) SaveChunks(chunks []model.Chunk) error {
	f.saved = append(f.saved, chunks...)
	return nil
}

func (f *fakeMilvusDao) Search(paperID string, vector []float32, topK int) ([]model.Chunk, error) {
	return f.saved, nil
}

func (f *fakeMilvusDao) DeleteChunks(paperIDs []string) error {
	f.deleted = append(f.deleted, paperIDs...)
	return nil
}

// fakeStorage 内存对象存储
type fakeStorage struct {
	objects map[string][]byte
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{objects: map[string][]byte{}}
}

func (f *fakeStorage) Put(ctx context.Context, key string, data []byte, contentType string) error {
	f.objects[key] = data
	return nil
}

func (f *fakeStorage) Get(ctx context.Context, key string) ([]byte, error) {
	data, ok := f.objects[key]
	if !ok {
		return nil, errors.New("对象不存在")
	}
	return data, nil
}

func (f *fakeStorage) Delete(ctx context.Context, key string) error {
	delete(f.objects, key)
	return nil
}

func (f *fakeStorage) GetURL(ctx context.Context, key string) (string, error) {
	return "fake://" + key, nil
}

// fakeEngine 返回固定的OCR结果
type fakeEngine struct {
	result *model.OCRResult
	calls  int
}

func (f *fakeEngine) Process(ctx context.Context, filePath string) (*model.OCRResult, error) {
	f.calls++
	return f.result, nil
}

// fakeEmbedder 返回固定维度的零向量
type fakeEmbedder struct{}

func (f *fakeEmbedder) New(ctx context.Context, cfg *config.EmbeddingConfig, opts ...embedding.EmbeddingOption) (embedding.EmbeddingService, error) {
	return f, nil
}

func (f *fakeEmbedder) EmbedStrings(ctx context.Context, texts []string, opts ...einoEmbedding.Option) ([][]float64, error) {
	embeddings := make([][]float64, len(texts))
	for i := range texts {
		embeddings[i] = make([]float64, 4)
	}
	return embeddings, nil
}

func (f *fakeEmbedder) GetDimension() int { return 4 }

const testMarkdown = `# A Study of Testing

Author One<br>Test University

#### Abstract

This paper studies testing in depth and at length.


## 1 Introduction

Testing is important. This section discusses why testing matters for software quality and reliability.

## References

[1] Author One. Prior work. 2020.`

func newTestService(t *testing.T) (*paperService, *fakePaperDao, *fakeMilvusDao, *fakeStorage, *fakeEngine) {
	t.Helper()

	config.AppConfigInstance.RAG = config.RAGConfig{ChunkSize: 500, OverlapSize: 100}

	cache, err := ocr.NewCache(&config.CacheConfig{Dir: t.TempDir(), Enabled: true})
	if err != nil {
		t.Fatalf("创建缓存失败: %v", err)
	}

	paperDao := newFakePaperDao()
	milvusDao := &fakeMilvusDao{}
	driver := newFakeStorage()
	engine := &fakeEngine{result: &model.OCRResult{
		Model: "mistral-ocr-latest",
		Pages: []model.OCRPage{{Index: 0, Markdown: testMarkdown}},
	}}

	svc := NewPaperService(paperDao, milvusDao, driver, engine, cache, &fakeEmbedder{}).(*paperService)
	return svc, paperDao, milvusDao, driver, engine
}

func TestUploadRejectsNonPDF(t *testing.T) {
	svc, _, _, _, _ := newTestService(t)

	if _, err := svc.Upload(context.Background(), 1, "notes.txt", []byte("x")); !errors.Is(err, ErrNotPDF) {
		t.Fatalf("非PDF文件应被拒绝, 实际 %v", err)
	}
}

func TestUploadAndProcess(t *testing.T) {
	svc, paperDao, milvusDao, driver, engine := newTestService(t)
	ctx := context.Background()

	paper, err := svc.Upload(ctx, 1, "study.pdf", []byte("%PDF-1.4 fake"))
	if err != nil {
		t.Fatalf("上传失败: %v", err)
	}
	if paper.Status != model.PaperStatusPending {
		t.Errorf("上传后状态应为待处理, 实际 %d", paper.Status)
	}
	if _, ok := driver.objects[paper.StorageKey]; !ok {
		t.Fatal("PDF未写入存储")
	}

	if err := svc.Process(ctx, paper.ID); err != nil {
		t.Fatalf("处理失败: %v", err)
	}

	stored, _ := paperDao.GetPaperByID(paper.ID)
	if stored.Status != model.PaperStatusCompleted {
		t.Fatalf("处理后状态应为已完成, 实际 %d", stored.Status)
	}
	if stored.Title != "A Study of Testing" {
		t.Errorf("标题未写入记录: %q", stored.Title)
	}
	if stored.PageCount != 1 {
		t.Errorf("页数错误: %d", stored.PageCount)
	}
	if stored.OCRModel != "mistral-ocr-latest" {
		t.Errorf("OCR模型未记录: %q", stored.OCRModel)
	}
	if stored.ParsedKey == "" {
		t.Fatal("解析结果key未写入")
	}
	if _, ok := driver.objects[stored.ParsedKey]; !ok {
		t.Fatal("解析结果JSON未写入存储")
	}
	if len(milvusDao.saved) == 0 {
		t.Fatal("没有chunk写入向量库")
	}
	for _, chunk := range milvusDao.saved {
		if chunk.PaperID != paper.ID {
			t.Errorf("chunk的论文ID错误: %+v", chunk)
		}
		if len(chunk.Embeddings) != 4 {
			t.Errorf("chunk向量维度错误: %d", len(chunk.Embeddings))
		}
	}

	if engine.calls != 1 {
		t.Fatalf("OCR应被调用1次, 实际 %d", engine.calls)
	}

	// 重复处理时走缓存，OCR不再被调用
	if err := svc.Process(ctx, paper.ID); err != nil {
		t.Fatalf("二次处理失败: %v", err)
	}
	if engine.calls != 1 {
		t.Fatalf("二次处理应命中缓存, OCR调用次数 %d", engine.calls)
	}
}

func TestDetailPermission(t *testing.T) {
	svc, _, _, _, _ := newTestService(t)
	ctx := context.Background()

	paper, err := svc.Upload(ctx, 1, "study.pdf", []byte("%PDF-1.4 fake"))
	if err != nil {
		t.Fatalf("上传失败: %v", err)
	}

	if _, err := svc.Detail(ctx, 2, paper.ID); !errors.Is(err, ErrNoPermission) {
		t.Fatalf("其他用户访问应被拒绝, 实际 %v", err)
	}
	if _, err := svc.Detail(ctx, 1, "missing-id"); !errors.Is(err, ErrPaperNotFound) {
		t.Fatalf("不存在的论文应返回未找到, 实际 %v", err)
	}
}

func TestDeleteCleansUp(t *testing.T) {
	svc, paperDao, milvusDao, driver, _ := newTestService(t)
	ctx := context.Background()

	paper, err := svc.Upload(ctx, 1, "study.pdf", []byte("%PDF-1.4 fake"))
	if err != nil {
		t.Fatalf("上传失败: %v", err)
	}
	if err := svc.Process(ctx, paper.ID); err != nil {
		t.Fatalf("处理失败: %v", err)
	}

	if err := svc.Delete(ctx, 1, paper.ID); err != nil {
		t.Fatalf("删除失败: %v", err)
	}

	if got, _ := paperDao.GetPaperByID(paper.ID); got != nil {
		t.Error("论文记录未删除")
	}
	if len(driver.objects) != 0 {
		t.Errorf("存储对象未清理: %v", driver.objects)
	}
	if len(milvusDao.deleted) != 1 || milvusDao.deleted[0] != paper.ID {
		t.Errorf("向量未清理: %v", milvusDao.deleted)
	}
}

func TestDetailIncludesStructure(t *testing.T) {
	svc, _, _, _, _ := newTestService(t)
	ctx := context.Background()

	paper, err := svc.Upload(ctx, 1, "study.pdf", []byte("%PDF-1.4 fake"))
	if err != nil {
		t.Fatalf("上传失败: %v", err)
	}
	if err := svc.Process(ctx, paper.ID); err != nil {
		t.Fatalf("处理失败: %v", err)
	}

	detail, err := svc.Detail(ctx, 1, paper.ID)
	if err != nil {
		t.Fatalf("获取详情失败: %v", err)
	}
	if detail.Structure == nil {
		t.Fatal("详情中缺少解析结构")
	}
	if detail.Structure.Title != "A Study of Testing" {
		t.Errorf("结构标题错误: %q", detail.Structure.Title)
	}
	if !strings.Contains(detail.Structure.Abstract, "studies testing") {
		t.Errorf("结构摘要错误: %q", detail.Structure.Abstract)
	}
	if detail.DownloadURL != "fake://"+detail.Paper.StorageKey {
		t.Errorf("详情中PDF访问地址错误: %q", detail.DownloadURL)
	}
}
