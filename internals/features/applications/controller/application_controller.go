package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	dto "wyffle_backend/internals/features/applications/dto"
	model "wyffle_backend/internals/features/applications/model"
	studentModel "wyffle_backend/internals/features/students/model"
	studentService "wyffle_backend/internals/features/students/service"
	helper "wyffle_backend/internals/helpers"
	"wyffle_backend/internals/helpers/lock"
)

type ApplicationController struct {
	DB *gorm.DB
}

func NewApplicationController(db *gorm.DB) *ApplicationController {
	return &ApplicationController{DB: db}
}

var validate = validator.New()

var errDuplicateApplication = errors.New("application already exists")

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return false
}

/* ======================== SUBMIT (SELF) ======================== */

// POST /api/u/applications — idempotent per subject: submit kedua → 409.
// Sekaligus membuat record student (status pending, step pertama ✓).
func (h *ApplicationController) Submit(c *fiber.Ctx) error {
	uid, err := helper.GetSubjectUID(c)
	if err != nil {
		return err
	}

	var req dto.SubmitApplicationRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Body tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	unlock := lock.Default.Lock(uid)
	defer unlock()

	app := req.ToModel(uid)
	txErr := h.DB.Transaction(func(tx *gorm.DB) error {
		// guard duplikat by state (unique PK tetap jadi jaring terakhir)
		var existing model.ApplicationModel
		err := tx.Where("application_student_uid = ?", uid).Take(&existing).Error
		if err == nil {
			return errDuplicateApplication
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}

		if err := tx.Create(app).Error; err != nil {
			if isUniqueViolation(err) {
				return errDuplicateApplication
			}
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}

		st := studentModel.StudentModel{
			StudentUID:            uid,
			StudentFullName:       req.FullName,
			StudentEmail:          req.Email,
			StudentPhone:          &req.Phone,
			StudentLocation:       req.Location,
			StudentCollege:        &req.College,
			StudentDegree:         req.Degree,
			StudentGraduationYear: req.GraduationYear,
			StudentSkills:         pq.StringArray(req.Skills),
			StudentField:          req.Field,
			StudentStatus:         studentModel.StatusPending,
			StudentPaymentStatus:  studentModel.PaymentNotSelected,
		}
		if err := st.SetSteps(studentModel.ProgressSteps{ApplicationSubmitted: true}); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		if err := tx.Create(&st).Error; err != nil {
			if isUniqueViolation(err) {
				return errDuplicateApplication
			}
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return nil
	})
	if txErr != nil {
		if errors.Is(txErr, errDuplicateApplication) {
			return helper.JsonErrorCode(c, fiber.StatusConflict, "ALREADY_EXISTS",
				"Application sudah pernah disubmit", nil)
		}
		if fe, ok := txErr.(*fiber.Error); ok {
			return fe
		}
		return fiber.NewError(fiber.StatusInternalServerError, txErr.Error())
	}

	return helper.JsonCreated(c, "Application diterima", dto.FromApplicationModel(app))
}

/* ======================== READ ======================== */

// GET /api/u/applications/mine
func (h *ApplicationController) GetMine(c *fiber.Ctx) error {
	uid, err := helper.GetSubjectUID(c)
	if err != nil {
		return err
	}

	var app model.ApplicationModel
	err = helper.WithReadRetry(3, func() error {
		return h.DB.Where("application_student_uid = ?", uid).Take(&app).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Belum ada application")
		}
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "OK", dto.FromApplicationModel(&app))
}

// GET /api/a/applications?status=...&q=...&page=...
func (h *ApplicationController) List(c *fiber.Ctx) error {
	var q dto.ListApplicationQuery
	if err := c.QueryParser(&q); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Query tidak valid")
	}
	if err := validate.Struct(q); err != nil {
		return helper.JsonValidationError(c, err)
	}
	paging := helper.ResolvePaging(c, 20, 100)

	db := h.DB.Model(&model.ApplicationModel{})
	if q.Status != nil {
		db = db.Where("application_status = ?", *q.Status)
	}
	if q.Q != nil && *q.Q != "" {
		like := "%" + *q.Q + "%"
		db = db.Where("application_full_name ILIKE ? OR application_email ILIKE ?", like, like)
	}

	var total int64
	var rows []model.ApplicationModel
	err := helper.WithReadRetry(3, func() error {
		if err := db.Count(&total).Error; err != nil {
			return err
		}
		return db.Order("application_created_at DESC").
			Limit(paging.Limit).Offset(paging.Offset).
			Find(&rows).Error
	})
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonList(c, "OK", dto.FromApplicationModels(rows),
		helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

/* ======================== REVIEW (ADMIN) ======================== */

// PUT /api/a/applications/:uid/status — drive Pending → {Shortlisted|Rejected}
// di application DAN student, atomik di satu transaksi.
func (h *ApplicationController) UpdateStatus(c *fiber.Ctx) error {
	uid := c.Params("uid")

	var req dto.UpdateApplicationStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Body tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	unlock := lock.Default.Lock(uid)
	defer unlock()

	var updated *model.ApplicationModel
	txErr := h.DB.Transaction(func(tx *gorm.DB) error {
		var app model.ApplicationModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("application_student_uid = ?", uid).
			Take(&app).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Application tidak ditemukan")
			}
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}

		var st studentModel.StudentModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("student_uid = ?", uid).
			Take(&st).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Student tidak ditemukan")
			}
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}

		steps, err := st.Steps()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		if err := studentService.ValidateTransition(studentService.TransitionRequest{
			From:          st.StudentStatus,
			To:            req.Status,
			PaymentStatus: st.StudentPaymentStatus,
			Steps:         steps,
			Actor:         studentService.ActorAdmin,
		}); err != nil {
			return err
		}

		app.ApplicationStatus = req.Status
		st.StudentStatus = req.Status
		if req.Status == studentModel.StatusShortlisted {
			steps.ResumeShortlisted = true
			if err := st.SetSteps(steps); err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, err.Error())
			}
		}

		if err := tx.Save(&app).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		if err := tx.Save(&st).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		updated = &app
		return nil
	})
	if txErr != nil {
		if fe, ok := txErr.(*fiber.Error); ok {
			return fe
		}
		var ite *studentService.InvalidTransitionError
		if errors.As(txErr, &ite) {
			return helper.JsonErrorCode(c, fiber.StatusUnprocessableEntity,
				"INVALID_TRANSITION", ite.Error(), fiber.Map{
					"current_status":   ite.From,
					"requested_status": ite.To,
				})
		}
		if errors.Is(txErr, studentService.ErrForbidden) {
			return helper.JsonError(c, fiber.StatusForbidden, "Forbidden")
		}
		return fiber.NewError(fiber.StatusInternalServerError, txErr.Error())
	}

	return helper.JsonUpdated(c, "Status application diperbarui", dto.FromApplicationModel(updated))
}
