package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	dto "wyffle_backend/internals/features/students/dto"
	model "wyffle_backend/internals/features/students/model"
	service "wyffle_backend/internals/features/students/service"
	helper "wyffle_backend/internals/helpers"
	"wyffle_backend/internals/helpers/lock"
)

type StudentController struct {
	DB *gorm.DB
}

func NewStudentController(db *gorm.DB) *StudentController {
	return &StudentController{DB: db}
}

var validate = validator.New()

/* ======================= HELPERS ======================= */

// load + row lock (dipakai di dalam transaksi mutasi)
func loadStudentForUpdate(tx *gorm.DB, uid string) (*model.StudentModel, error) {
	var st model.StudentModel
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("student_uid = ?", uid).
		Take(&st).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Student tidak ditemukan")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return &st, nil
}

func loadStudent(db *gorm.DB, uid string) (*model.StudentModel, error) {
	var st model.StudentModel
	err := helper.WithReadRetry(3, func() error {
		return db.Where("student_uid = ?", uid).Take(&st).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Student tidak ditemukan")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return &st, nil
}

// mapping error lifecycle service → HTTP
func lifecycleErrToHTTP(c *fiber.Ctx, err error) error {
	var ite *service.InvalidTransitionError
	if errors.As(err, &ite) {
		return helper.JsonErrorCode(c, fiber.StatusUnprocessableEntity,
			"INVALID_TRANSITION", ite.Error(), fiber.Map{
				"current_status":   ite.From,
				"requested_status": ite.To,
			})
	}
	if errors.Is(err, service.ErrForbidden) {
		return helper.JsonError(c, fiber.StatusForbidden, "Forbidden - transisi ini bukan wewenang Anda")
	}
	return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
}

func actorOf(c *fiber.Ctx) service.Actor {
	if helper.IsAdmin(c) {
		return service.ActorAdmin
	}
	return service.ActorSelf
}

/* ======================= SELF ======================= */

// GET /api/u/students/profile
func (h *StudentController) GetMyProfile(c *fiber.Ctx) error {
	uid, err := helper.GetSubjectUID(c)
	if err != nil {
		return err
	}
	st, err := loadStudent(h.DB, uid)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "OK", dto.FromStudentModel(st))
}

// PUT /api/u/students/profile
func (h *StudentController) UpdateMyProfile(c *fiber.Ctx) error {
	uid, err := helper.GetSubjectUID(c)
	if err != nil {
		return err
	}
	return h.updateProfile(c, uid)
}

// GET /api/u/students/:uid  (admin-or-self via middleware)
func (h *StudentController) GetByUID(c *fiber.Ctx) error {
	st, err := loadStudent(h.DB, c.Params("uid"))
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "OK", dto.FromStudentModel(st))
}

// PUT /api/u/students/:uid  (admin-or-self via middleware)
func (h *StudentController) UpdateByUID(c *fiber.Ctx) error {
	return h.updateProfile(c, c.Params("uid"))
}

// updateProfile: non-admin ditolak kalau payload menyelipkan field lifecycle.
// Tulis di bawah lock subject; transisi yang ditolak tidak menyentuh record.
func (h *StudentController) updateProfile(c *fiber.Ctx, uid string) error {
	// 1) sniff key terlarang di payload mentah (bukan cuma DTO yang di-drop diam2)
	if !helper.IsAdmin(c) {
		var raw map[string]any
		if err := c.BodyParser(&raw); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Body tidak valid")
		}
		if found := service.FindLifecycleKeys(raw); len(found) > 0 {
			return helper.JsonErrorCode(c, fiber.StatusForbidden, "FORBIDDEN",
				"Field lifecycle tidak boleh diubah lewat profile", fiber.Map{"fields": found})
		}
	}

	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Body tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	unlock := lock.Default.Lock(uid)
	defer unlock()

	var updated *model.StudentModel
	err := h.DB.Transaction(func(tx *gorm.DB) error {
		st, err := loadStudentForUpdate(tx, uid)
		if err != nil {
			return err
		}
		req.ApplyTo(st)
		if err := tx.Save(st).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		updated = st
		return nil
	})
	if err != nil {
		return err
	}
	return helper.JsonUpdated(c, "Profile diperbarui", dto.FromStudentModel(updated))
}
