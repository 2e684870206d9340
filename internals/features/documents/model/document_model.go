package model

import (
	"time"

	"github.com/google/uuid"
)

// Jenis dokumen yang dibagikan admin ke student.
const (
	DocOfferLetter      = "offer_letter"
	DocCertificate      = "certificate"
	DocInvoice          = "invoice"
	DocProjectPortfolio = "project_portfolio"
)

func IsValidDocumentType(s string) bool {
	switch s {
	case DocOfferLetter, DocCertificate, DocInvoice, DocProjectPortfolio:
		return true
	}
	return false
}

// Dokumen disimpan di OSS; student hanya bisa melihat yang is_enabled.
// Upload selalu mulai hidden — admin yang membuka aksesnya.
type DocumentModel struct {
	DocumentID uuid.UUID `gorm:"column:document_id;type:uuid;default:gen_random_uuid();primaryKey" json:"document_id"`

	DocumentStudentUID string `gorm:"column:document_student_uid;type:varchar(128);not null;index" json:"document_student_uid"`
	DocumentType       string `gorm:"column:document_type;type:varchar(30);not null" json:"document_type"`
	DocumentTitle      string `gorm:"column:document_title;type:text;not null" json:"document_title"`

	DocumentFileURL   string `gorm:"column:document_file_url;type:text;not null" json:"document_file_url"`
	DocumentObjectKey string `gorm:"column:document_object_key;type:text;not null" json:"document_object_key"`

	DocumentIsEnabled bool `gorm:"column:document_is_enabled;not null;default:false" json:"document_is_enabled"`

	DocumentCreatedAt time.Time  `gorm:"column:document_created_at;autoCreateTime" json:"document_created_at"`
	DocumentUpdatedAt *time.Time `gorm:"column:document_updated_at;autoUpdateTime" json:"document_updated_at,omitempty"`
}

func (DocumentModel) TableName() string { return "documents" }
