// internals/middlewares/auth/role_middleware.go
package auth

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"wyffle_backend/internals/constants"
	helper "wyffle_backend/internals/helpers"
)

// IsAdmin menolak caller non-admin. Pelanggaran di-log untuk audit.
func IsAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !helper.IsAdmin(c) {
			log.Printf("[AUDIT] forbidden: subject=%s method=%s path=%s",
				c.Locals(helper.LocSubjectUID), c.Method(), c.Path())
			return fiber.NewError(fiber.StatusForbidden, constants.RoleErrorAdmin("admin panel"))
		}
		return c.Next()
	}
}

// RequireAdminOrSelf: endpoint /students/:uid boleh diakses admin,
// atau subject itu sendiri atas recordnya.
func RequireAdminOrSelf(paramName string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if helper.IsAdmin(c) {
			return c.Next()
		}
		uid, err := helper.GetSubjectUID(c)
		if err != nil {
			return err
		}
		if c.Params(paramName) != uid {
			log.Printf("[AUDIT] ownership mismatch: subject=%s target=%s path=%s",
				uid, c.Params(paramName), c.Path())
			return fiber.NewError(fiber.StatusForbidden, "Forbidden - bukan record milik Anda")
		}
		return c.Next()
	}
}
