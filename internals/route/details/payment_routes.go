package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	paymentController "wyffle_backend/internals/features/payments/controller"
)

// PaymentWebhookRoutes dipasang TANPA auth group — notifikasi gateway
// dibuktikan lewat signature, bukan token user.
func PaymentWebhookRoutes(app *fiber.App, db *gorm.DB) {
	ctrl := paymentController.NewPaymentController(db)
	app.Post("/api/payments/verify", ctrl.Verify)
}

func PaymentUserRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := paymentController.NewPaymentController(db)

	pay := r.Group("/payments")
	pay.Post("/apply-coupon", ctrl.ApplyCoupon)
	pay.Post("/create-order", ctrl.CreateOrder)
	pay.Get("/history", ctrl.History)
}
