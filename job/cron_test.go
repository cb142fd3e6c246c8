package job

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"paper-cloud/config"
	"paper-cloud/internal/component/ocr"
)

func TestCleanupMaxAgeDefault(t *testing.T) {
	// 未配置时默认7天
	if got := cleanupMaxAge(&config.CacheConfig{}); got != 7*24*time.Hour {
		t.Fatalf("默认保留时长错误: %v", got)
	}
	if got := cleanupMaxAge(&config.CacheConfig{MaxAgeDays: -1}); got != 7*24*time.Hour {
		t.Fatalf("非法配置应退回默认值: %v", got)
	}
	if got := cleanupMaxAge(&config.CacheConfig{MaxAgeDays: 3}); got != 3*24*time.Hour {
		t.Fatalf("配置值未生效: %v", got)
	}
}

func TestCleanupKeepsFreshEntries(t *testing.T) {
	cfg := &config.CacheConfig{Dir: t.TempDir(), Enabled: true}
	cache, err := ocr.NewCache(cfg)
	if err != nil {
		t.Fatalf("创建缓存失败: %v", err)
	}

	fresh := filepath.Join(cfg.Dir, "fresh.json")
	if err := os.WriteFile(fresh, []byte("{}"), 0o644); err != nil {
		t.Fatalf("写入缓存文件失败: %v", err)
	}

	// max_age_days未配置时，清理不能删掉刚写入的缓存
	removed, err := cache.Clean(cleanupMaxAge(cfg))
	if err != nil {
		t.Fatalf("清理失败: %v", err)
	}
	if removed != 0 {
		t.Fatalf("刚写入的缓存被删除了, removed=%d", removed)
	}
	if _, err := os.Stat(fresh); err != nil {
		t.Fatalf("缓存文件不应被删除: %v", err)
	}
}
