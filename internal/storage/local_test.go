package storage

import (
	"context"
	"os"
	"strings"
	"testing"

	"paper-cloud/config"
)

func newTestDriver(t *testing.T) *LocalDriver {
	t.Helper()
	driver, err := NewLocalDriver(config.LocalConfig{BaseDir: t.TempDir()})
	if err != nil {
		t.Fatalf("创建本地存储失败: %v", err)
	}
	return driver
}

func TestLocalDriverPutGetDelete(t *testing.T) {
	driver := newTestDriver(t)
	ctx := context.Background()

	key := "papers/1/doc.pdf"
	content := []byte("%PDF-1.4 fake")

	if err := driver.Put(ctx, key, content, "application/pdf"); err != nil {
		t.Fatalf("Put失败: %v", err)
	}

	got, err := driver.Get(ctx, key)
	if err != nil {
		t.Fatalf("Get失败: %v", err)
	}
	if string(got) != string(content) {
		t.Fatalf("内容不一致: %q", got)
	}

	if err := driver.Delete(ctx, key); err != nil {
		t.Fatalf("Delete失败: %v", err)
	}
	if _, err := driver.Get(ctx, key); !os.IsNotExist(err) {
		t.Fatalf("删除后Get应返回不存在, 实际 %v", err)
	}

	// 删除不存在的key不报错
	if err := driver.Delete(ctx, "papers/1/missing.pdf"); err != nil {
		t.Fatalf("删除不存在的key不应报错: %v", err)
	}
}

func TestLocalDriverRejectsTraversal(t *testing.T) {
	driver := newTestDriver(t)
	ctx := context.Background()

	// key穿越到baseDir之外必须被拒绝
	if err := driver.Put(ctx, "../escape.txt", []byte("x"), "text/plain"); err == nil {
		t.Fatal("路径穿越的key应被拒绝")
	}
	if _, err := driver.Get(ctx, "../../etc/passwd"); err == nil {
		t.Fatal("路径穿越的key应被拒绝")
	}
}

func TestLocalDriverGetURL(t *testing.T) {
	driver := newTestDriver(t)
	ctx := context.Background()

	url, err := driver.GetURL(ctx, "papers/1/doc.pdf")
	if err != nil {
		t.Fatalf("GetURL失败: %v", err)
	}
	if !strings.HasPrefix(url, "file://") {
		t.Fatalf("本地存储URL应为file://协议: %s", url)
	}
}

func TestNewDriverUnknownType(t *testing.T) {
	if _, err := NewDriver(config.StorageConfig{Type: "ftp"}); err == nil {
		t.Fatal("未知存储类型应报错")
	}
}
