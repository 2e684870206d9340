package configs

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

var (
	JWTSecret         string
	GoogleClientID    string
	AdminEmails       []string
	MidtransServerKey string
	MidtransUseProd   bool

	// Biaya program dalam minor unit (paise). Default ₹399.
	ProgramFeePaise int64
)

// =======================
// ENV LOADER
// =======================
func LoadEnv() {
	if os.Getenv("RAILWAY_ENVIRONMENT") == "" {
		if err := godotenv.Load(); err != nil {
			log.Println("⚠️ Tidak menemukan .env file, menggunakan ENV dari sistem")
		} else {
			log.Println("✅ .env file berhasil dimuat!")
		}
	} else {
		log.Println("🚀 Running in Railway, menggunakan ENV dari sistem")
	}

	JWTSecret = GetEnv("JWT_SECRET")
	GoogleClientID = GetEnv("AUTH_GOOGLE_CLIENT_ID")
	AdminEmails = splitCSV(GetEnv("ADMIN_EMAILS"))
	MidtransServerKey = GetEnv("MIDTRANS_SERVER_KEY")
	MidtransUseProd = GetEnvBool("MIDTRANS_USE_PROD", false)
	ProgramFeePaise = GetEnvInt64("PROGRAM_FEE_PAISE", 39900)

	if JWTSecret == "" && GoogleClientID == "" {
		log.Println("❌ JWT_SECRET / AUTH_GOOGLE_CLIENT_ID belum diset — semua request akan ditolak!")
	}
	if MidtransServerKey == "" {
		log.Println("⚠️ MIDTRANS_SERVER_KEY belum diset, create-order akan gagal")
	}
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if !exists && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}

func GetEnvBool(key string, def bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func GetEnvInt64(key string, def int64) int64 {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n < 0 {
		return def
	}
	return n
}

func splitCSV(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(strings.ToLower(p)); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// IsAdminEmail: cek allowlist ADMIN_EMAILS (dipakai jalur Google ID token,
// yang tidak membawa custom claim is_admin).
func IsAdminEmail(email string) bool {
	email = strings.TrimSpace(strings.ToLower(email))
	for _, a := range AdminEmails {
		if a == email {
			return true
		}
	}
	return false
}
