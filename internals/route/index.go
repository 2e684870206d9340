package routes

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authMiddleware "wyffle_backend/internals/middlewares/auth"
	routeDetails "wyffle_backend/internals/route/details"
)

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	// ===================== PUBLIC =====================
	// webhook gateway, tanpa token user
	log.Println("[INFO] Setting up PaymentWebhookRoutes...")
	routeDetails.PaymentWebhookRoutes(app, db)

	// ===================== PRIVATE (USER) =====================
	log.Println("[INFO] Setting up USER group /api/u...")
	user := app.Group("/api/u", authMiddleware.AuthMiddleware())
	routeDetails.AuthRoutes(user)
	routeDetails.ApplicationUserRoutes(user, db)
	routeDetails.StudentUserRoutes(user, db)
	routeDetails.PaymentUserRoutes(user, db)
	routeDetails.DocumentUserRoutes(user, db)

	// ===================== ADMIN =====================
	log.Println("[INFO] Setting up ADMIN group /api/a...")
	admin := app.Group("/api/a", authMiddleware.AuthMiddleware(), authMiddleware.IsAdmin())
	routeDetails.ApplicationAdminRoutes(admin, db)
	routeDetails.StudentAdminRoutes(admin, db)
	routeDetails.DocumentAdminRoutes(admin, db)
}
