package ocr

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"paper-cloud/config"
	"paper-cloud/internal/model"
)

func newTestCache(t *testing.T) *Cache {
	t.Helper()
	cache, err := NewCache(&config.CacheConfig{
		Dir:     filepath.Join(t.TempDir(), "ocr-cache"),
		Enabled: true,
	})
	if err != nil {
		t.Fatalf("创建缓存失败: %v", err)
	}
	return cache
}

func writeTestPDF(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sample.pdf")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("写入测试文件失败: %v", err)
	}
	return path
}

func TestCacheKeyStable(t *testing.T) {
	cache := newTestCache(t)
	path := writeTestPDF(t, "pdf bytes")

	// 文件未变时key必须稳定
	key1, err := cache.Key(path)
	if err != nil {
		t.Fatalf("计算key失败: %v", err)
	}
	key2, err := cache.Key(path)
	if err != nil {
		t.Fatalf("计算key失败: %v", err)
	}
	if key1 != key2 {
		t.Fatalf("key不稳定: %s != %s", key1, key2)
	}

	// key格式: md5_size_mtime
	parts := strings.Split(key1, "_")
	if len(parts) != 3 {
		t.Fatalf("key格式错误: %s", key1)
	}
	if len(parts[0]) != 32 {
		t.Errorf("md5部分长度错误: %s", parts[0])
	}
}

func TestCacheKeyChangesWithContent(t *testing.T) {
	cache := newTestCache(t)
	path := writeTestPDF(t, "original content")

	key1, _ := cache.Key(path)

	if err := os.WriteFile(path, []byte("modified content!"), 0o644); err != nil {
		t.Fatalf("修改文件失败: %v", err)
	}
	key2, _ := cache.Key(path)

	if key1 == key2 {
		t.Fatal("文件内容变化后key应当不同")
	}
}

func TestCachePutGet(t *testing.T) {
	cache := newTestCache(t)
	path := writeTestPDF(t, "pdf bytes")

	// 未写入前应未命中
	if _, hit := cache.Get(path); hit {
		t.Fatal("空缓存不应命中")
	}

	result := &model.OCRResult{
		Model: "mistral-ocr-latest",
		Pages: []model.OCRPage{{Index: 0, Markdown: "# Hello"}},
	}
	if err := cache.Put(path, result); err != nil {
		t.Fatalf("写入缓存失败: %v", err)
	}

	got, hit := cache.Get(path)
	if !hit {
		t.Fatal("写入后应命中")
	}
	if got.Model != "mistral-ocr-latest" || len(got.Pages) != 1 || got.Pages[0].Markdown != "# Hello" {
		t.Fatalf("缓存内容错误: %+v", got)
	}
}

func TestCacheDisabled(t *testing.T) {
	cache, err := NewCache(&config.CacheConfig{
		Dir:     filepath.Join(t.TempDir(), "ocr-cache"),
		Enabled: false,
	})
	if err != nil {
		t.Fatalf("创建缓存失败: %v", err)
	}
	path := writeTestPDF(t, "pdf bytes")

	if err := cache.Put(path, &model.OCRResult{Model: "m"}); err != nil {
		t.Fatalf("禁用状态Put不应报错: %v", err)
	}
	if _, hit := cache.Get(path); hit {
		t.Fatal("禁用状态不应命中")
	}
}

func TestCacheCorruptEntry(t *testing.T) {
	cache := newTestCache(t)
	path := writeTestPDF(t, "pdf bytes")

	key, err := cache.Key(path)
	if err != nil {
		t.Fatalf("计算key失败: %v", err)
	}
	// 手工写入损坏的缓存文件
	if err := os.WriteFile(cache.path(key), []byte("{not valid json"), 0o644); err != nil {
		t.Fatalf("写入损坏文件失败: %v", err)
	}

	if _, hit := cache.Get(path); hit {
		t.Fatal("损坏的缓存应按未命中处理")
	}
}

func TestCacheClean(t *testing.T) {
	cache := newTestCache(t)

	oldFile := filepath.Join(cache.dir, "old.json")
	newFile := filepath.Join(cache.dir, "new.json")
	for _, f := range []string{oldFile, newFile} {
		if err := os.WriteFile(f, []byte("{}"), 0o644); err != nil {
			t.Fatalf("写入文件失败: %v", err)
		}
	}
	// old.json改成8天前
	past := time.Now().Add(-8 * 24 * time.Hour)
	if err := os.Chtimes(oldFile, past, past); err != nil {
		t.Fatalf("修改时间失败: %v", err)
	}

	removed, err := cache.Clean(7 * 24 * time.Hour)
	if err != nil {
		t.Fatalf("清理失败: %v", err)
	}
	if removed != 1 {
		t.Fatalf("期望清理1个文件, 实际 %d", removed)
	}
	if _, err := os.Stat(oldFile); !os.IsNotExist(err) {
		t.Error("过期文件应被删除")
	}
	if _, err := os.Stat(newFile); err != nil {
		t.Error("未过期文件不应被删除")
	}
}
