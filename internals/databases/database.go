package database

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	applicationModel "wyffle_backend/internals/features/applications/model"
	documentModel "wyffle_backend/internals/features/documents/model"
	paymentModel "wyffle_backend/internals/features/payments/model"
	studentModel "wyffle_backend/internals/features/students/model"
)

var DB *gorm.DB

func ConnectDB() {
	log.Println("🔌 Koneksi ke PostgreSQL...")

	// ✅ DSN lengkap + statement_timeout
	// Catatan: kalau pakai PgBouncer, arahkan host/port ke PgBouncer dan biarkan PreferSimpleProtocol=true
	sslmode := getenv("DB_SSLMODE", "require")
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&application_name=wyffle&options=-c statement_timeout=3000",
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_HOST"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_NAME"),
		sslmode,
	)

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true, // 👍 cocok untuk PgBouncer (transaction pooling)
	}), &gorm.Config{})
	if err != nil {
		log.Fatalf("❌ Gagal konek DB: %v", err)
	}
	DB = db
	log.Println("✅ DB connected.")
}

func TunePool() {
	sqlDB, err := DB.DB()
	if err != nil {
		log.Printf("pool tune err: %v", err)
		return
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxIdleTime(60 * time.Second)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)
}

// Migrate menjalankan automigrate seluruh entitas + seed kupon.
func Migrate() {
	if err := DB.AutoMigrate(
		&applicationModel.ApplicationModel{},
		&studentModel.StudentModel{},
		&paymentModel.CouponModel{},
		&paymentModel.PaymentOrderModel{},
		&documentModel.DocumentModel{},
	); err != nil {
		log.Fatalf("❌ AutoMigrate gagal: %v", err)
	}
	seedCoupons()
	log.Println("✅ Migrasi selesai.")
}

// seedCoupons: kupon launch TOP100 (flat ₹100 off). Idempotent — pakai FirstOrCreate.
func seedCoupons() {
	top100 := paymentModel.CouponModel{
		CouponCode:        "TOP100",
		CouponType:        paymentModel.CouponTypeFlat,
		CouponValue:       10000, // paise
		CouponIsActive:    true,
		CouponDescription: strPtr("Launch batch — flat ₹100 off"),
	}
	if err := DB.Where("coupon_code = ?", top100.CouponCode).
		FirstOrCreate(&top100).Error; err != nil {
		log.Printf("[WARNING] seed kupon TOP100 gagal: %v", err)
	}
}

func WarmUpQueries() {
	// jalankan ringan supaya pool keisi & siap
	go func() {
		time.Sleep(500 * time.Millisecond)
		if err := ping(); err != nil {
			log.Printf("warm-up ping err: %v", err)
		}
	}()
}

func ping() error {
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func strPtr(s string) *string { return &s }
