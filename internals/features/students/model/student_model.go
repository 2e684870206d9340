package model

import (
	"encoding/json"
	"time"

	"github.com/lib/pq"
	"gorm.io/datatypes"
)

/* =============== ENUMS =============== */

// Status program — satu-satunya sumber kebenaran state applicant.
const (
	StatusPending     = "pending"
	StatusShortlisted = "shortlisted"
	StatusRejected    = "rejected"
	StatusActive      = "active"
	StatusCompleted   = "completed"
)

// Status pembayaran — disimpan, harus konsisten dengan status program.
const (
	PaymentNotSelected = "not_selected"
	PaymentPending     = "pending"
	PaymentPaid        = "paid"
	PaymentFailed      = "failed"
)

func IsValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusShortlisted, StatusRejected, StatusActive, StatusCompleted:
		return true
	}
	return false
}

func IsValidPaymentStatus(s string) bool {
	switch s {
	case PaymentNotSelected, PaymentPending, PaymentPaid, PaymentFailed:
		return true
	}
	return false
}

/* =============== PROGRESS STEPS =============== */

// Checklist 7 tahap. Monotonic normalnya — clear kembali ke false hanya
// lewat override admin (guard di service).
type ProgressSteps struct {
	ApplicationSubmitted bool `json:"application_submitted"`
	ResumeShortlisted    bool `json:"resume_shortlisted"`
	InterviewCompleted   bool `json:"interview_completed"`
	PaymentProcessed     bool `json:"payment_processed"`
	InternshipActive     bool `json:"internship_active"`
	FinalShowcase        bool `json:"final_showcase"`
	CertificateReady     bool `json:"certificate_ready"`
}

// Key step seperti yang dipakai API (PUT .../progress-step {step, completed}).
const (
	StepApplicationSubmitted = "application_submitted"
	StepResumeShortlisted    = "resume_shortlisted"
	StepInterviewCompleted   = "interview_completed"
	StepPaymentProcessed     = "payment_processed"
	StepInternshipActive     = "internship_active"
	StepFinalShowcase        = "final_showcase"
	StepCertificateReady     = "certificate_ready"
)

func (p ProgressSteps) Get(step string) (bool, bool) {
	switch step {
	case StepApplicationSubmitted:
		return p.ApplicationSubmitted, true
	case StepResumeShortlisted:
		return p.ResumeShortlisted, true
	case StepInterviewCompleted:
		return p.InterviewCompleted, true
	case StepPaymentProcessed:
		return p.PaymentProcessed, true
	case StepInternshipActive:
		return p.InternshipActive, true
	case StepFinalShowcase:
		return p.FinalShowcase, true
	case StepCertificateReady:
		return p.CertificateReady, true
	}
	return false, false
}

func (p *ProgressSteps) Set(step string, v bool) bool {
	switch step {
	case StepApplicationSubmitted:
		p.ApplicationSubmitted = v
	case StepResumeShortlisted:
		p.ResumeShortlisted = v
	case StepInterviewCompleted:
		p.InterviewCompleted = v
	case StepPaymentProcessed:
		p.PaymentProcessed = v
	case StepInternshipActive:
		p.InternshipActive = v
	case StepFinalShowcase:
		p.FinalShowcase = v
	case StepCertificateReady:
		p.CertificateReady = v
	default:
		return false
	}
	return true
}

/* =============== MODEL =============== */

type StudentModel struct {
	// UID dari identity provider — immutable, PK.
	StudentUID string `gorm:"column:student_uid;type:varchar(128);primaryKey" json:"student_uid"`

	// Profile (mutable oleh self/admin)
	StudentFullName       string         `gorm:"column:student_full_name;type:text;not null" json:"student_full_name"`
	StudentEmail          string         `gorm:"column:student_email;type:text;not null;uniqueIndex" json:"student_email"`
	StudentPhone          *string        `gorm:"column:student_phone;type:text" json:"student_phone,omitempty"`
	StudentLocation       *string        `gorm:"column:student_location;type:text" json:"student_location,omitempty"`
	StudentCollege        *string        `gorm:"column:student_college;type:text" json:"student_college,omitempty"`
	StudentDegree         *string        `gorm:"column:student_degree;type:text" json:"student_degree,omitempty"`
	StudentGraduationYear *int16         `gorm:"column:student_graduation_year;type:smallint" json:"student_graduation_year,omitempty"`
	StudentSkills         pq.StringArray `gorm:"column:student_skills;type:text[]" json:"student_skills,omitempty"`
	StudentField          *string        `gorm:"column:student_field;type:text" json:"student_field,omitempty"`

	// Lifecycle (mutasi hanya lewat guard service)
	StudentStatus        string `gorm:"column:student_status;type:varchar(20);not null;default:'pending';index" json:"student_status"`
	StudentPaymentStatus string `gorm:"column:student_payment_status;type:varchar(20);not null;default:'not_selected'" json:"student_payment_status"`

	// Progress — percentage & steps sengaja independen (tidak saling diturunkan)
	StudentProgressPercentage int            `gorm:"column:student_progress_percentage;not null;default:0" json:"student_progress_percentage"`
	StudentProgressSteps      datatypes.JSON `gorm:"column:student_progress_steps;type:jsonb" json:"student_progress_steps"`

	StudentCreatedAt time.Time  `gorm:"column:student_created_at;autoCreateTime" json:"student_created_at"`
	StudentUpdatedAt *time.Time `gorm:"column:student_updated_at;autoUpdateTime" json:"student_updated_at,omitempty"`
}

func (StudentModel) TableName() string { return "students" }

// Steps decode kolom jsonb; kolom kosong dianggap semua false.
func (m *StudentModel) Steps() (ProgressSteps, error) {
	var p ProgressSteps
	if len(m.StudentProgressSteps) == 0 {
		return p, nil
	}
	if err := json.Unmarshal(m.StudentProgressSteps, &p); err != nil {
		return ProgressSteps{}, err
	}
	return p, nil
}

func (m *StudentModel) SetSteps(p ProgressSteps) error {
	b, err := json.Marshal(p)
	if err != nil {
		return err
	}
	m.StudentProgressSteps = datatypes.JSON(b)
	return nil
}
