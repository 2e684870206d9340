// internals/features/applications/dto/application_dto.go
package dto

import (
	"time"

	"github.com/lib/pq"

	m "wyffle_backend/internals/features/applications/model"
)

/* =============== REQUESTS =============== */

// Field form sama dengan halaman Apply.
type SubmitApplicationRequest struct {
	FullName       string     `json:"full_name" validate:"required,min=2"`
	Email          string     `json:"email" validate:"required,email"`
	Phone          string     `json:"phone" validate:"required,min=6,max=20"`
	DOB            *time.Time `json:"dob" validate:"omitempty"`
	Location       *string    `json:"location" validate:"omitempty"`
	College        string     `json:"college" validate:"required,min=2"`
	Degree         *string    `json:"degree" validate:"omitempty"`
	GraduationYear *int16     `json:"graduation_year" validate:"omitempty,gte=2000,lte=2100"`
	Skills         []string   `json:"skills" validate:"omitempty,dive,min=1"`
	Field          *string    `json:"field" validate:"omitempty"`
	ResumeLink     *string    `json:"resume_link" validate:"omitempty,url"`
}

func (r SubmitApplicationRequest) ToModel(subjectUID string) *m.ApplicationModel {
	return &m.ApplicationModel{
		ApplicationStudentUID:     subjectUID,
		ApplicationFullName:       r.FullName,
		ApplicationEmail:          r.Email,
		ApplicationPhone:          r.Phone,
		ApplicationDOB:            r.DOB,
		ApplicationLocation:       r.Location,
		ApplicationCollege:        r.College,
		ApplicationDegree:         r.Degree,
		ApplicationGraduationYear: r.GraduationYear,
		ApplicationSkills:         pq.StringArray(r.Skills),
		ApplicationField:          r.Field,
		ApplicationResumeLink:     r.ResumeLink,
		ApplicationStatus:         m.ApplicationPending,
	}
}

type UpdateApplicationStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=shortlisted rejected"`
}

type ListApplicationQuery struct {
	Status *string `query:"status" validate:"omitempty,oneof=pending shortlisted rejected"`
	Q      *string `query:"q" validate:"omitempty"`
}

/* =============== RESPONSES =============== */

type ApplicationResponse struct {
	StudentUID     string     `json:"student_uid"`
	FullName       string     `json:"full_name"`
	Email          string     `json:"email"`
	Phone          string     `json:"phone"`
	DOB            *time.Time `json:"dob,omitempty"`
	Location       *string    `json:"location,omitempty"`
	College        string     `json:"college"`
	Degree         *string    `json:"degree,omitempty"`
	GraduationYear *int16     `json:"graduation_year,omitempty"`
	Skills         []string   `json:"skills,omitempty"`
	Field          *string    `json:"field,omitempty"`
	ResumeLink     *string    `json:"resume_link,omitempty"`
	Status         string     `json:"status"`
	CreatedAt      time.Time  `json:"created_at"`
}

func FromApplicationModel(mo *m.ApplicationModel) ApplicationResponse {
	return ApplicationResponse{
		StudentUID:     mo.ApplicationStudentUID,
		FullName:       mo.ApplicationFullName,
		Email:          mo.ApplicationEmail,
		Phone:          mo.ApplicationPhone,
		DOB:            mo.ApplicationDOB,
		Location:       mo.ApplicationLocation,
		College:        mo.ApplicationCollege,
		Degree:         mo.ApplicationDegree,
		GraduationYear: mo.ApplicationGraduationYear,
		Skills:         mo.ApplicationSkills,
		Field:          mo.ApplicationField,
		ResumeLink:     mo.ApplicationResumeLink,
		Status:         mo.ApplicationStatus,
		CreatedAt:      mo.ApplicationCreatedAt,
	}
}

func FromApplicationModels(rows []m.ApplicationModel) []ApplicationResponse {
	out := make([]ApplicationResponse, 0, len(rows))
	for i := range rows {
		out = append(out, FromApplicationModel(&rows[i]))
	}
	return out
}
