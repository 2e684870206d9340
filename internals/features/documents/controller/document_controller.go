package controller

import (
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"wyffle_backend/internals/constants"
	dto "wyffle_backend/internals/features/documents/dto"
	model "wyffle_backend/internals/features/documents/model"
	service "wyffle_backend/internals/features/documents/service"
	studentModel "wyffle_backend/internals/features/students/model"
	helper "wyffle_backend/internals/helpers"
	ossHelper "wyffle_backend/internals/helpers/oss"
)

type DocumentController struct {
	DB  *gorm.DB
	OSS *ossHelper.OSSService
}

func NewDocumentController(db *gorm.DB) *DocumentController {
	svc, err := ossHelper.NewOSSServiceFromEnv("documents/")
	if err != nil {
		log.Println("⚠️ OSS tidak tersedia, upload dokumen akan gagal:", err)
	}
	return &DocumentController{DB: db, OSS: svc}
}

var validate = validator.New()

func (h *DocumentController) loadDocument(c *fiber.Ctx) (*model.DocumentModel, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "ID dokumen tidak valid")
	}
	var doc model.DocumentModel
	if err := h.DB.Where("document_id = ?", id).Take(&doc).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Dokumen tidak ditemukan")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return &doc, nil
}

/* ======================== ADMIN ======================== */

// POST /api/a/documents/upload/:uid — multipart: file + type + title.
// Dokumen baru selalu hidden sampai di-enable eksplisit.
func (h *DocumentController) Upload(c *fiber.Ctx) error {
	uid := c.Params("uid")

	var req dto.UploadDocumentRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Form tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	var st studentModel.StudentModel
	if err := h.DB.Where("student_uid = ?", uid).Take(&st).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Student tidak ditemukan")
		}
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	fh, err := c.FormFile("file")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "File wajib diisi")
	}
	if h.OSS == nil {
		return fiber.NewError(fiber.StatusServiceUnavailable, "Storage tidak tersedia")
	}

	dir := uid + "/" + req.Type
	var objectKey string
	switch constants.DetectFileKindFromExt(fh.Filename) {
	case constants.FileKindImage:
		objectKey, err = h.OSS.UploadAsWebP(c.Context(), dir, fh)
	default:
		objectKey, _, err = h.OSS.UploadRaw(c.Context(), dir, fh)
	}
	if err != nil {
		log.Println("[ERROR] Upload dokumen gagal:", err)
		return fiber.NewError(fiber.StatusBadGateway, "Upload ke storage gagal")
	}

	doc := model.DocumentModel{
		DocumentStudentUID: uid,
		DocumentType:       req.Type,
		DocumentTitle:      req.Title,
		DocumentFileURL:    h.OSS.PublicURL(objectKey),
		DocumentObjectKey:  objectKey,
		DocumentIsEnabled:  false,
	}
	if err := h.DB.Create(&doc).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonCreated(c, "Dokumen diupload", dto.FromDocumentModel(&doc))
}

// PUT /api/a/documents/:id/status
func (h *DocumentController) SetEnabled(c *fiber.Ctx) error {
	var req dto.SetDocumentEnabledRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Body tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	doc, err := h.loadDocument(c)
	if err != nil {
		return err
	}

	if err := h.DB.Model(doc).
		Clauses(clause.Returning{}).
		Update("document_is_enabled", *req.Enabled).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonUpdated(c, "Visibilitas dokumen diperbarui", dto.FromDocumentModel(doc))
}

// DELETE /api/a/documents/:id — objek dipindah ke prefix spam dulu,
// reaper yang purge permanen.
func (h *DocumentController) Delete(c *fiber.Ctx) error {
	doc, err := h.loadDocument(c)
	if err != nil {
		return err
	}

	if h.OSS != nil && doc.DocumentObjectKey != "" {
		if _, err := h.OSS.MoveToSpam(c.Context(), doc.DocumentObjectKey); err != nil {
			log.Println("[WARNING] MoveToSpam gagal, lanjut hapus row:", err)
		}
	}

	if err := h.DB.Delete(doc).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonDeleted(c, "Dokumen dihapus", fiber.Map{"id": doc.DocumentID})
}

// GET /api/a/documents/student/:uid — admin lihat semua, termasuk hidden.
func (h *DocumentController) ListByStudent(c *fiber.Ctx) error {
	uid := c.Params("uid")

	var rows []model.DocumentModel
	err := helper.WithReadRetry(3, func() error {
		return h.DB.Where("document_student_uid = ?", uid).
			Order("document_created_at DESC").
			Find(&rows).Error
	})
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "OK", dto.FromDocumentModels(rows))
}

/* ======================== SELF ======================== */

// GET /api/u/documents/my-documents — hanya yang enabled.
func (h *DocumentController) ListMine(c *fiber.Ctx) error {
	uid, err := helper.GetSubjectUID(c)
	if err != nil {
		return err
	}

	var rows []model.DocumentModel
	err = helper.WithReadRetry(3, func() error {
		return h.DB.
			Where("document_student_uid = ? AND document_is_enabled = TRUE", uid).
			Order("document_created_at DESC").
			Find(&rows).Error
	})
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	// jaring kedua di atas filter query
	rows = service.FilterVisible(service.Viewer{SubjectUID: uid}, rows)
	return helper.JsonOK(c, "OK", dto.FromDocumentModels(rows))
}
