package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	applicationController "wyffle_backend/internals/features/applications/controller"
	middlewares "wyffle_backend/internals/middlewares"
)

// Routes intake & review application.
func ApplicationUserRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := applicationController.NewApplicationController(db)

	app := r.Group("/applications")
	// submit dibatasi lebih ketat dari limiter global
	app.Post("/", middlewares.ApplyRateLimiter(), ctrl.Submit)
	app.Get("/mine", ctrl.GetMine)
}

func ApplicationAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := applicationController.NewApplicationController(db)

	app := r.Group("/applications")
	app.Get("/", ctrl.List)
	app.Put("/:uid/status", ctrl.UpdateStatus)
}
