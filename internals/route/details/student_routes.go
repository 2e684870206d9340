package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	studentController "wyffle_backend/internals/features/students/controller"
	authMiddleware "wyffle_backend/internals/middlewares/auth"
)

// Routes profile + dashboard student.
func StudentUserRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := studentController.NewStudentController(db)

	st := r.Group("/students")
	st.Get("/profile", ctrl.GetMyProfile)
	st.Put("/profile", ctrl.UpdateMyProfile)

	// akses by-uid: admin bebas, student hanya uid miliknya
	st.Get("/:uid", authMiddleware.RequireAdminOrSelf("uid"), ctrl.GetByUID)
	st.Put("/:uid", authMiddleware.RequireAdminOrSelf("uid"), ctrl.UpdateByUID)
}

func StudentAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := studentController.NewStudentController(db)

	st := r.Group("/students")
	st.Get("/", ctrl.List)
	st.Get("/:uid", ctrl.GetByUID)
	st.Put("/:uid", ctrl.UpdateByUID)
	st.Put("/:uid/status", ctrl.UpdateStatus)
	st.Put("/:uid/payment-status", ctrl.UpdatePaymentStatus)
	st.Put("/:uid/progress", ctrl.UpdateProgress)
	st.Put("/:uid/progress-step", ctrl.UpdateProgressStep)
}
