// internals/middlewares/auth/auth_middleware.go
package auth

import (
	"errors"
	"fmt"
	"log"
	"time"

	googleAuthIDTokenVerifier "github.com/futurenda/google-auth-id-token-verifier"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"

	"wyffle_backend/internals/configs"
	helper "wyffle_backend/internals/helpers"
)

// Webhook gateway yang di-skip auth (settlement diverifikasi lewat signature sendiri)
var skipPaths = map[string]struct{}{
	"/api/payments/verify": {},
}

// Principal: hasil validasi token — downstream tidak pernah pegang raw token.
type Principal struct {
	SubjectUID string
	Email      string
	IsAdmin    bool
}

func AuthMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		// 1) Skip path webhook
		if _, ok := skipPaths[c.Path()]; ok {
			return c.Next()
		}

		// 2) Ambil Authorization (atau cookie)
		tokenString := helper.GetRawAccessToken(c)
		if tokenString == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Authentication required")
		}

		// 3) Verifikasi token (HS256 first-party, fallback Google ID token)
		p, err := VerifyToken(tokenString)
		if err != nil {
			log.Println("[ERROR] token invalid:", err)
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - "+err.Error())
		}

		// 4) Simpan principal ke Locals — stateless, tiap request re-validate
		c.Locals(helper.LocSubjectUID, p.SubjectUID)
		c.Locals(helper.LocUserEmail, p.Email)
		c.Locals(helper.LocIsAdmin, p.IsAdmin)

		return c.Next()
	}
}

// VerifyToken memvalidasi signed identity token dan mengekstrak principal.
func VerifyToken(tokenString string) (Principal, error) {
	if configs.JWTSecret != "" {
		p, err := verifyHS256(tokenString)
		if err == nil {
			return p, nil
		}
		// token bukan HS256 → coba jalur Google kalau terkonfigurasi
		if configs.GoogleClientID == "" {
			return Principal{}, err
		}
	}
	if configs.GoogleClientID != "" {
		return verifyGoogleIDToken(tokenString)
	}
	return Principal{}, errors.New("no token verifier configured")
}

func verifyHS256(tokenString string) (Principal, error) {
	claims := jwt.MapClaims{}
	parser := jwt.Parser{SkipClaimsValidation: true}
	if _, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return []byte(configs.JWTSecret), nil
	}); err != nil {
		return Principal{}, fmt.Errorf("token parse error: %w", err)
	}

	if err := validateTokenExpiry(claims, 30*time.Second); err != nil {
		return Principal{}, err
	}

	uid := extractSubjectUID(claims)
	if uid == "" {
		return Principal{}, errors.New("missing subject uid claim")
	}

	email, _ := claims["email"].(string)
	isAdmin, _ := claims["is_admin"].(bool)

	return Principal{SubjectUID: uid, Email: email, IsAdmin: isAdmin}, nil
}

func verifyGoogleIDToken(tokenString string) (Principal, error) {
	v := googleAuthIDTokenVerifier.Verifier{}
	if err := v.VerifyIDToken(tokenString, []string{configs.GoogleClientID}); err != nil {
		return Principal{}, errors.New("invalid Google ID token")
	}
	claimSet, err := googleAuthIDTokenVerifier.Decode(tokenString)
	if err != nil {
		return Principal{}, errors.New("failed to decode ID token")
	}
	if claimSet.Exp > 0 && time.Now().After(time.Unix(claimSet.Exp, 0)) {
		return Principal{}, errors.New("token expired")
	}
	if claimSet.Sub == "" {
		return Principal{}, errors.New("missing sub claim")
	}

	// Google ID token tidak bawa custom claim → admin via allowlist email
	return Principal{
		SubjectUID: claimSet.Sub,
		Email:      claimSet.Email,
		IsAdmin:    configs.IsAdminEmail(claimSet.Email),
	}, nil
}

// validateTokenExpiry: wajib ada exp, toleransi clock skew kecil.
func validateTokenExpiry(claims jwt.MapClaims, leeway time.Duration) error {
	expRaw, ok := claims["exp"]
	if !ok {
		return errors.New("missing exp claim")
	}
	var exp time.Time
	switch t := expRaw.(type) {
	case float64:
		exp = time.Unix(int64(t), 0)
	case int64:
		exp = time.Unix(t, 0)
	default:
		return errors.New("invalid exp claim")
	}
	if time.Now().After(exp.Add(leeway)) {
		return errors.New("token expired")
	}
	return nil
}

func extractSubjectUID(claims jwt.MapClaims) string {
	if v, ok := claims["sub"].(string); ok && v != "" {
		return v
	}
	if v, ok := claims["uid"].(string); ok && v != "" {
		return v
	}
	return ""
}
