package helper

import (
	"errors"
	"log"
	"time"

	"gorm.io/gorm"
)

// WithReadRetry: retry + backoff HANYA untuk operasi baca yang idempotent.
// Operasi tulis tidak boleh lewat sini — settlement webhook satu-satunya
// jalur tulis yang aman di-replay, dan itu di-drive ulang oleh gateway sendiri.
// ErrRecordNotFound bukan gangguan transient — langsung dikembalikan supaya
// 404 tidak kena pajak backoff.
func WithReadRetry(attempts int, fn func() error) error {
	if attempts < 1 {
		attempts = 1
	}
	backoff := 50 * time.Millisecond
	var err error
	for i := 0; i < attempts; i++ {
		if err = fn(); err == nil {
			return nil
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if i < attempts-1 {
			log.Printf("[WARNING] read retry %d/%d: %v", i+1, attempts, err)
			time.Sleep(backoff)
			backoff *= 2
		}
	}
	return err
}
