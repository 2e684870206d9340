package helper

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// Keys di Locals — diisi oleh middleware auth sesudah token terverifikasi.
const (
	LocSubjectUID = "subject_uid"
	LocUserEmail  = "user_email"
	LocIsAdmin    = "is_admin"
)

// GetRawAccessToken mengembalikan access token dari:
// 1) cookie "access_token"
// 2) Authorization header "Bearer <token>"
func GetRawAccessToken(c *fiber.Ctx) string {
	if v := strings.TrimSpace(c.Cookies("access_token")); v != "" {
		return v
	}
	const p = "Bearer "
	auth := c.Get("Authorization")
	if len(auth) > len(p) && strings.HasPrefix(auth, p) {
		return strings.TrimSpace(auth[len(p):])
	}
	return ""
}

// GetSubjectUID: ambil subject id (UID dari identity provider) dari Locals.
// Return 401 kalau middleware auth belum mengisi.
func GetSubjectUID(c *fiber.Ctx) (string, error) {
	v, _ := c.Locals(LocSubjectUID).(string)
	v = strings.TrimSpace(v)
	if v == "" {
		return "", fiber.NewError(fiber.StatusUnauthorized, "Authentication required")
	}
	return v, nil
}

func GetUserEmail(c *fiber.Ctx) string {
	v, _ := c.Locals(LocUserEmail).(string)
	return strings.TrimSpace(v)
}

func IsAdmin(c *fiber.Ctx) bool {
	v, _ := c.Locals(LocIsAdmin).(bool)
	return v
}
