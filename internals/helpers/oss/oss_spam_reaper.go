package helper

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
	"github.com/robfig/cron/v3"
)

// Objek dokumen yang dihapus admin dipindah ke prefix spam/YYYYMMDD/...
// Reaper ini purge entri spam yang lebih tua dari RETENTION_DAYS.

type SpamReaperConfig struct {
	Prefix        string
	RetentionDays int
	CronSchedule  string
	DryRun        bool
}

func getEnvOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}

func getEnvBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	switch v {
	case "1", "true", "TRUE", "True", "yes", "on":
		return true
	default:
		return false
	}
}

// ── ENTRYPOINT: panggil dari main.go
func StartSpamReaperCron() {
	cfg := SpamReaperConfig{
		Prefix:        getEnvOrDefault("REAPER_PREFIX", "spam/"),
		RetentionDays: getEnvInt("RETENTION_DAYS", 30),
		CronSchedule:  getEnvOrDefault("REAPER_CRON_SCHEDULE", "15 2 * * *"),
		DryRun:        getEnvBool("DRY_RUN", false),
	}

	svc, err := NewOSSServiceFromEnv("")
	if err != nil {
		log.Printf("[SPAM-REAPER] OSS tidak terkonfigurasi, reaper nonaktif: %v", err)
		return
	}

	c := cron.New()
	if _, err := c.AddFunc(cfg.CronSchedule, func() { reapSpamOnce(svc, cfg) }); err != nil {
		log.Printf("[SPAM-REAPER] cron schedule invalid %q: %v", cfg.CronSchedule, err)
		return
	}
	c.Start()
	log.Printf("[SPAM-REAPER] aktif, schedule=%q retention=%dd dryrun=%v",
		cfg.CronSchedule, cfg.RetentionDays, cfg.DryRun)
}

func reapSpamOnce(svc *OSSService, cfg SpamReaperConfig) {
	cutoff := time.Now().UTC().AddDate(0, 0, -cfg.RetentionDays)
	marker := oss.Marker("")
	deleted := 0

	for {
		res, err := svc.Bucket.ListObjects(oss.Prefix(cfg.Prefix), oss.MaxKeys(200), marker)
		if err != nil {
			log.Printf("[SPAM-REAPER] list gagal: %v", err)
			return
		}
		for _, obj := range res.Objects {
			// folder tanggal di key: spam/YYYYMMDD/...
			if obj.LastModified.After(cutoff) {
				continue
			}
			if cfg.DryRun {
				log.Printf("[SPAM-REAPER] (dry-run) would delete %s", obj.Key)
				continue
			}
			if err := svc.Bucket.DeleteObject(obj.Key); err != nil {
				log.Printf("[SPAM-REAPER] hapus %s gagal: %v", obj.Key, err)
				continue
			}
			deleted++
		}
		if !res.IsTruncated {
			break
		}
		marker = oss.Marker(res.NextMarker)
	}

	if !cfg.DryRun {
		log.Printf("[SPAM-REAPER] selesai, %d object dihapus (cutoff=%s)",
			deleted, cutoff.Format("2006-01-02"))
	}
}
