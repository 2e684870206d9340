package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wyffle_backend/internals/configs"
	helper "wyffle_backend/internals/helpers"
)

const testSecret = "test-secret"

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := tok.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return s
}

func newTestApp() *fiber.App {
	app := fiber.New()
	app.Use(AuthMiddleware())
	app.Get("/api/u/whoami", func(c *fiber.Ctx) error {
		uid, err := helper.GetSubjectUID(c)
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{
			"uid":      uid,
			"email":    helper.GetUserEmail(c),
			"is_admin": helper.IsAdmin(c),
		})
	})
	app.Get("/api/a/only", IsAdmin(), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	app.Get("/api/u/students/:uid", RequireAdminOrSelf("uid"), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	app.Post("/api/payments/verify", func(c *fiber.Ctx) error {
		return c.SendString("webhook")
	})
	return app
}

func doReq(t *testing.T, app *fiber.App, method, path, token string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestAuthMiddleware(t *testing.T) {
	configs.JWTSecret = testSecret
	configs.GoogleClientID = ""

	app := newTestApp()

	t.Run("tanpa token ditolak", func(t *testing.T) {
		resp := doReq(t, app, "GET", "/api/u/whoami", "")
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("token expired ditolak", func(t *testing.T) {
		tok := signToken(t, jwt.MapClaims{
			"sub": "uid-1",
			"exp": time.Now().Add(-time.Hour).Unix(),
		})
		resp := doReq(t, app, "GET", "/api/u/whoami", tok)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("token tanpa sub ditolak", func(t *testing.T) {
		tok := signToken(t, jwt.MapClaims{
			"exp": time.Now().Add(time.Hour).Unix(),
		})
		resp := doReq(t, app, "GET", "/api/u/whoami", tok)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("token valid lolos", func(t *testing.T) {
		tok := signToken(t, jwt.MapClaims{
			"sub":   "uid-1",
			"email": "a@b.c",
			"exp":   time.Now().Add(time.Hour).Unix(),
		})
		resp := doReq(t, app, "GET", "/api/u/whoami", tok)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run("webhook path skip auth", func(t *testing.T) {
		resp := doReq(t, app, "POST", "/api/payments/verify", "")
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})
}

func TestRoleMiddleware(t *testing.T) {
	configs.JWTSecret = testSecret
	configs.GoogleClientID = ""

	app := newTestApp()

	userTok := signToken(t, jwt.MapClaims{
		"sub": "uid-1",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	adminTok := signToken(t, jwt.MapClaims{
		"sub":      "uid-admin",
		"is_admin": true,
		"exp":      time.Now().Add(time.Hour).Unix(),
	})

	t.Run("non-admin ditolak dari area admin", func(t *testing.T) {
		resp := doReq(t, app, "GET", "/api/a/only", userTok)
		assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	})

	t.Run("admin lolos", func(t *testing.T) {
		resp := doReq(t, app, "GET", "/api/a/only", adminTok)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run("self boleh akses recordnya sendiri", func(t *testing.T) {
		resp := doReq(t, app, "GET", "/api/u/students/uid-1", userTok)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run("self ditolak dari record orang lain", func(t *testing.T) {
		resp := doReq(t, app, "GET", "/api/u/students/uid-2", userTok)
		assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	})

	t.Run("admin boleh akses record siapa pun", func(t *testing.T) {
		resp := doReq(t, app, "GET", "/api/u/students/uid-2", adminTok)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})
}
