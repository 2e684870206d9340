// internals/features/students/dto/student_dto.go
package dto

import (
	"time"

	"github.com/lib/pq"

	m "wyffle_backend/internals/features/students/model"
)

/* =============== REQUESTS =============== */

// Update profile (partial) — HANYA field profile. Field lifecycle
// (status/payment/progress) lewat endpoint khusus dengan guard sendiri.
type UpdateProfileRequest struct {
	StudentFullName       *string  `json:"student_full_name" validate:"omitempty,min=2"`
	StudentPhone          *string  `json:"student_phone" validate:"omitempty,min=6,max=20"`
	StudentLocation       *string  `json:"student_location" validate:"omitempty"`
	StudentCollege        *string  `json:"student_college" validate:"omitempty"`
	StudentDegree         *string  `json:"student_degree" validate:"omitempty"`
	StudentGraduationYear *int16   `json:"student_graduation_year" validate:"omitempty,gte=2000,lte=2100"`
	StudentSkills         []string `json:"student_skills" validate:"omitempty,dive,min=1"`
	StudentField          *string  `json:"student_field" validate:"omitempty"`
}

// Terapkan perubahan ke model existing (untuk PUT)
func (r UpdateProfileRequest) ApplyTo(mo *m.StudentModel) {
	if r.StudentFullName != nil {
		mo.StudentFullName = *r.StudentFullName
	}
	if r.StudentPhone != nil {
		mo.StudentPhone = r.StudentPhone
	}
	if r.StudentLocation != nil {
		mo.StudentLocation = r.StudentLocation
	}
	if r.StudentCollege != nil {
		mo.StudentCollege = r.StudentCollege
	}
	if r.StudentDegree != nil {
		mo.StudentDegree = r.StudentDegree
	}
	if r.StudentGraduationYear != nil {
		mo.StudentGraduationYear = r.StudentGraduationYear
	}
	if r.StudentSkills != nil {
		mo.StudentSkills = pq.StringArray(r.StudentSkills)
	}
	if r.StudentField != nil {
		mo.StudentField = r.StudentField
	}
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending shortlisted rejected active completed"`
}

type UpdatePaymentStatusRequest struct {
	PaymentStatus string `json:"payment_status" validate:"required,oneof=not_selected pending paid failed"`
}

type UpdateProgressRequest struct {
	ProgressPercentage int `json:"progress_percentage" validate:"gte=0,lte=100"`
}

type UpdateProgressStepRequest struct {
	Step      string `json:"step" validate:"required"`
	Completed *bool  `json:"completed" validate:"required"`
}

type ListStudentQuery struct {
	Status *string `query:"status" validate:"omitempty,oneof=pending shortlisted rejected active completed"`
	Q      *string `query:"q" validate:"omitempty"`
}

/* =============== RESPONSES =============== */

type StudentResponse struct {
	StudentUID            string          `json:"student_uid"`
	StudentFullName       string          `json:"student_full_name"`
	StudentEmail          string          `json:"student_email"`
	StudentPhone          *string         `json:"student_phone,omitempty"`
	StudentLocation       *string         `json:"student_location,omitempty"`
	StudentCollege        *string         `json:"student_college,omitempty"`
	StudentDegree         *string         `json:"student_degree,omitempty"`
	StudentGraduationYear *int16          `json:"student_graduation_year,omitempty"`
	StudentSkills         []string        `json:"student_skills,omitempty"`
	StudentField          *string         `json:"student_field,omitempty"`
	Status                string          `json:"status"`
	PaymentStatus         string          `json:"payment_status"`
	ProgressPercentage    int             `json:"progress_percentage"`
	ProgressSteps         m.ProgressSteps `json:"progress_steps"`
	CreatedAt             time.Time       `json:"created_at"`
}

func FromStudentModel(mo *m.StudentModel) StudentResponse {
	steps, _ := mo.Steps()
	return StudentResponse{
		StudentUID:            mo.StudentUID,
		StudentFullName:       mo.StudentFullName,
		StudentEmail:          mo.StudentEmail,
		StudentPhone:          mo.StudentPhone,
		StudentLocation:       mo.StudentLocation,
		StudentCollege:        mo.StudentCollege,
		StudentDegree:         mo.StudentDegree,
		StudentGraduationYear: mo.StudentGraduationYear,
		StudentSkills:         mo.StudentSkills,
		StudentField:          mo.StudentField,
		Status:                mo.StudentStatus,
		PaymentStatus:         mo.StudentPaymentStatus,
		ProgressPercentage:    mo.StudentProgressPercentage,
		ProgressSteps:         steps,
		CreatedAt:             mo.StudentCreatedAt,
	}
}

func FromStudentModels(rows []m.StudentModel) []StudentResponse {
	out := make([]StudentResponse, 0, len(rows))
	for i := range rows {
		out = append(out, FromStudentModel(&rows[i]))
	}
	return out
}
