package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	dto "wyffle_backend/internals/features/students/dto"
	model "wyffle_backend/internals/features/students/model"
	service "wyffle_backend/internals/features/students/service"
	helper "wyffle_backend/internals/helpers"
	"wyffle_backend/internals/helpers/lock"
)

/* ======================== LIST ======================== */

// GET /api/a/students?status=...&q=...&page=...&per_page=...
func (h *StudentController) List(c *fiber.Ctx) error {
	var q dto.ListStudentQuery
	if err := c.QueryParser(&q); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Query tidak valid")
	}
	if err := validate.Struct(q); err != nil {
		return helper.JsonValidationError(c, err)
	}
	paging := helper.ResolvePaging(c, 20, 100)

	db := h.DB.Model(&model.StudentModel{})
	if q.Status != nil {
		db = db.Where("student_status = ?", *q.Status)
	}
	if q.Q != nil && *q.Q != "" {
		like := "%" + *q.Q + "%"
		db = db.Where("student_full_name ILIKE ? OR student_email ILIKE ?", like, like)
	}

	var total int64
	var rows []model.StudentModel
	err := helper.WithReadRetry(3, func() error {
		if err := db.Count(&total).Error; err != nil {
			return err
		}
		return db.Order("student_created_at DESC").
			Limit(paging.Limit).Offset(paging.Offset).
			Find(&rows).Error
	})
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonList(c, "OK", dto.FromStudentModels(rows),
		helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

/* ======================== STATUS ======================== */

// PUT /api/a/students/:uid/status — jalan graph lifecycle, bukan set bebas.
func (h *StudentController) UpdateStatus(c *fiber.Ctx) error {
	uid := c.Params("uid")

	var req dto.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Body tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	unlock := lock.Default.Lock(uid)
	defer unlock()

	var updated *model.StudentModel
	txErr := h.DB.Transaction(func(tx *gorm.DB) error {
		st, err := loadStudentForUpdate(tx, uid)
		if err != nil {
			return err
		}
		steps, err := st.Steps()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}

		if err := service.ValidateTransition(service.TransitionRequest{
			From:          st.StudentStatus,
			To:            req.Status,
			PaymentStatus: st.StudentPaymentStatus,
			Steps:         steps,
			Actor:         actorOf(c),
		}); err != nil {
			return err
		}

		st.StudentStatus = req.Status
		if err := tx.Save(st).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		updated = st
		return nil
	})
	if txErr != nil {
		if fe, ok := txErr.(*fiber.Error); ok {
			return fe
		}
		return lifecycleErrToHTTP(c, txErr)
	}
	return helper.JsonUpdated(c, "Status diperbarui", dto.FromStudentModel(updated))
}

/* ======================== PAYMENT STATUS (OVERRIDE) ======================== */

// PUT /api/a/students/:uid/payment-status — override admin eksplisit.
func (h *StudentController) UpdatePaymentStatus(c *fiber.Ctx) error {
	uid := c.Params("uid")

	var req dto.UpdatePaymentStatusRequest
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
		st.StudentPaymentStatus = req.PaymentStatus
		if err := tx.Save(st).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		updated = st
		return nil
	})
	if err != nil {
		return err
	}
	return helper.JsonUpdated(c, "Payment status diperbarui", dto.FromStudentModel(updated))
}

/* ======================== PROGRESS ======================== */

// PUT /api/a/students/:uid/progress — percentage saja, sengaja tidak
// diturunkan dari steps (dan sebaliknya).
func (h *StudentController) UpdateProgress(c *fiber.Ctx) error {
	uid := c.Params("uid")

	var req dto.UpdateProgressRequest
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
		st.StudentProgressPercentage = req.ProgressPercentage
		if err := tx.Save(st).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		updated = st
		return nil
	})
	if err != nil {
		return err
	}
	return helper.JsonUpdated(c, "Progress diperbarui", dto.FromStudentModel(updated))
}

// PUT /api/a/students/:uid/progress-step {step, completed}
func (h *StudentController) UpdateProgressStep(c *fiber.Ctx) error {
	uid := c.Params("uid")

	var req dto.UpdateProgressStepRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Body tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	unlock := lock.Default.Lock(uid)
	defer unlock()

	var updated *model.StudentModel
	txErr := h.DB.Transaction(func(tx *gorm.DB) error {
		st, err := loadStudentForUpdate(tx, uid)
		if err != nil {
			return err
		}
		steps, err := st.Steps()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}

		current, ok := steps.Get(req.Step)
		if !ok {
			return fiber.NewError(fiber.StatusBadRequest, "Step tidak dikenal: "+req.Step)
		}
		if err := service.ValidateStepChange(req.Step, current, *req.Completed, actorOf(c)); err != nil {
			return err
		}

		steps.Set(req.Step, *req.Completed)
		if err := st.SetSteps(steps); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		if err := tx.Save(st).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		updated = st
		return nil
	})
	if txErr != nil {
		if fe, ok := txErr.(*fiber.Error); ok {
			return fe
		}
		return lifecycleErrToHTTP(c, txErr)
	}
	return helper.JsonUpdated(c, "Progress step diperbarui", dto.FromStudentModel(updated))
}
