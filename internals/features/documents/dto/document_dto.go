package dto

import (
	"time"

	"github.com/google/uuid"

	m "wyffle_backend/internals/features/documents/model"
)

/* =============== REQUESTS =============== */

// Metadata upload datang sebagai form field di multipart yang sama
// dengan file-nya; pemilik dokumen diambil dari path.
type UploadDocumentRequest struct {
	Type  string `form:"type" validate:"required,oneof=offer_letter certificate invoice project_portfolio"`
	Title string `form:"title" validate:"required,min=2,max=200"`
}

type SetDocumentEnabledRequest struct {
	Enabled *bool `json:"enabled" validate:"required"`
}

/* =============== RESPONSES =============== */

type DocumentResponse struct {
	ID         uuid.UUID `json:"id"`
	StudentUID string    `json:"student_uid"`
	Type       string    `json:"type"`
	Title      string    `json:"title"`
	FileURL    string    `json:"file_url"`
	IsEnabled  bool      `json:"is_enabled"`
	CreatedAt  time.Time `json:"created_at"`
}

func FromDocumentModel(mo *m.DocumentModel) DocumentResponse {
	return DocumentResponse{
		ID:         mo.DocumentID,
		StudentUID: mo.DocumentStudentUID,
		Type:       mo.DocumentType,
		Title:      mo.DocumentTitle,
		FileURL:    mo.DocumentFileURL,
		IsEnabled:  mo.DocumentIsEnabled,
		CreatedAt:  mo.DocumentCreatedAt,
	}
}

func FromDocumentModels(rows []m.DocumentModel) []DocumentResponse {
	out := make([]DocumentResponse, 0, len(rows))
	for i := range rows {
		out = append(out, FromDocumentModel(&rows[i]))
	}
	return out
}
