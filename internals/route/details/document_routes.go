package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	documentController "wyffle_backend/internals/features/documents/controller"
)

func DocumentUserRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := documentController.NewDocumentController(db)

	r.Get("/documents/my-documents", ctrl.ListMine)
}

func DocumentAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := documentController.NewDocumentController(db)

	doc := r.Group("/documents")
	doc.Post("/upload/:uid", ctrl.Upload)
	doc.Get("/student/:uid", ctrl.ListByStudent)
	doc.Put("/:id/status", ctrl.SetEnabled)
	doc.Delete("/:id", ctrl.Delete)
}
