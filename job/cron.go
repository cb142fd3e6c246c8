package job

import (
	"log"
	"time"

	"paper-cloud/config"
	"paper-cloud/internal/component/ocr"

	"github.com/robfig/cron/v3"
)

// cleanupMaxAge 计算缓存保留时长，未配置或非法时默认7天
func cleanupMaxAge(cfg *config.CacheConfig) time.Duration {
	days := cfg.MaxAgeDays
	if days <= 0 {
		days = 7
	}
	return time.Duration(days) * 24 * time.Hour
}

// StartCronJob 启动定时任务：每天凌晨2点清理过期的OCR缓存
func StartCronJob(cache *ocr.Cache, cfg *config.CacheConfig) *cron.Cron {
	c := cron.New()

	maxAge := cleanupMaxAge(cfg)
	_, _ = c.AddFunc("0 2 * * *", func() {
		removed, err := cache.Clean(maxAge)
		if err != nil {
			log.Printf("[Cron] OCR缓存清理失败: %v", err)
		} else {
			log.Printf("[Cron] 清理了 %d 个过期OCR缓存", removed)
		}
	})

	c.Start()
	return c
}
