package model

import (
	"time"

	"github.com/lib/pq"
)

// Status review application — feed untuk transisi Applicant.status.
const (
	ApplicationPending     = "pending"
	ApplicationShortlisted = "shortlisted"
	ApplicationRejected    = "rejected"
)

// Form intake asli — read-only sesudah dibuat kecuali kolom status.
type ApplicationModel struct {
	// satu application per subject
	ApplicationStudentUID string `gorm:"column:application_student_uid;type:varchar(128);primaryKey" json:"application_student_uid"`

	ApplicationFullName       string         `gorm:"column:application_full_name;type:text;not null" json:"application_full_name"`
	ApplicationEmail          string         `gorm:"column:application_email;type:text;not null" json:"application_email"`
	ApplicationPhone          string         `gorm:"column:application_phone;type:text;not null" json:"application_phone"`
	ApplicationDOB            *time.Time     `gorm:"column:application_dob;type:date" json:"application_dob,omitempty"`
	ApplicationLocation       *string        `gorm:"column:application_location;type:text" json:"application_location,omitempty"`
	ApplicationCollege        string         `gorm:"column:application_college;type:text;not null" json:"application_college"`
	ApplicationDegree         *string        `gorm:"column:application_degree;type:text" json:"application_degree,omitempty"`
	ApplicationGraduationYear *int16         `gorm:"column:application_graduation_year;type:smallint" json:"application_graduation_year,omitempty"`
	ApplicationSkills         pq.StringArray `gorm:"column:application_skills;type:text[]" json:"application_skills,omitempty"`
	ApplicationField          *string        `gorm:"column:application_field;type:text" json:"application_field,omitempty"`
	ApplicationResumeLink     *string        `gorm:"column:application_resume_link;type:text" json:"application_resume_link,omitempty"`

	ApplicationStatus string `gorm:"column:application_status;type:varchar(20);not null;default:'pending';index" json:"application_status"`

	ApplicationCreatedAt time.Time  `gorm:"column:application_created_at;autoCreateTime" json:"application_created_at"`
	ApplicationUpdatedAt *time.Time `gorm:"column:application_updated_at;autoUpdateTime" json:"application_updated_at,omitempty"`
}

func (ApplicationModel) TableName() string { return "applications" }
