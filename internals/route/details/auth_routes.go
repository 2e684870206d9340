package details

import (
	"github.com/gofiber/fiber/v2"

	helper "wyffle_backend/internals/helpers"
)

// AuthRoutes: identitas datang dari provider eksternal; di sini cuma
// echo principal hasil verifikasi token supaya frontend tahu siapa dia.
func AuthRoutes(r fiber.Router) {
	r.Get("/auth/me", func(c *fiber.Ctx) error {
		uid, err := helper.GetSubjectUID(c)
		if err != nil {
			return err
		}
		return helper.JsonOK(c, "OK", fiber.Map{
			"subject_uid": uid,
			"email":       helper.GetUserEmail(c),
			"is_admin":    helper.IsAdmin(c),
		})
	})
}
