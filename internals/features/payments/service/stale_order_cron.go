package service

import (
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"wyffle_backend/internals/configs"
	model "wyffle_backend/internals/features/payments/model"
)

// StartStaleOrderReportCron melaporkan order "created" yang menggantung
// lebih dari STALE_ORDER_HOURS (default 24). Report-only — order tidak
// pernah di-expire otomatis; sumber kebenaran status tetap webhook gateway.
func StartStaleOrderReportCron(db *gorm.DB) {
	schedule := configs.GetEnv("STALE_ORDER_CRON_SCHEDULE", "45 2 * * *")
	maxAge := time.Duration(configs.GetEnvInt64("STALE_ORDER_HOURS", 24)) * time.Hour

	c := cron.New()
	_, err := c.AddFunc(schedule, func() {
		reportStaleOrders(db, maxAge)
	})
	if err != nil {
		log.Printf("[ERROR] cron stale-order gagal daftar: %v", err)
		return
	}
	c.Start()
	log.Printf("⏰ Stale-order report cron aktif (schedule=%q, maxAge=%s)", schedule, maxAge)
}

func reportStaleOrders(db *gorm.DB, maxAge time.Duration) {
	cutoff := time.Now().Add(-maxAge)

	var rows []model.PaymentOrderModel
	if err := db.
		Where("payment_status = ? AND payment_created_at < ?", model.OrderCreated, cutoff).
		Order("payment_created_at ASC").
		Limit(200).
		Find(&rows).Error; err != nil {
		log.Printf("[ERROR] query stale orders gagal: %v", err)
		return
	}
	if len(rows) == 0 {
		return
	}

	log.Printf("[AUDIT] %d order masih 'created' lebih dari %s:", len(rows), maxAge)
	for i := range rows {
		log.Printf("[AUDIT]   %s (student=%s, dibuat %s)",
			rows[i].PaymentOrderID, rows[i].PaymentStudentUID,
			rows[i].PaymentCreatedAt.Format(time.RFC3339))
	}
}
