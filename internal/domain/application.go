package domain

import "time"

// 申请状态：四个标签，不限制流转方向（任意状态可到任意状态）
const (
	ApplicationPending  = "pending"
	ApplicationReviewed = "reviewed"
	ApplicationAccepted = "accepted"
	ApplicationRejected = "rejected"
)

type Application struct {
	ID          string `gorm:"primaryKey;size:36" json:"id"`
	JobID       string `gorm:"size:36;index;uniqueIndex:uniq_job_applicant" json:"jobId"`
	ApplicantID string `gorm:"size:36;index;uniqueIndex:uniq_job_applicant" json:"applicantId"`

	ApplicationDate time.Time `json:"applicationDate"`
	ResumeURL       string    `gorm:"size:512" json:"resumeUrl"`
	CoverLetter     string    `gorm:"type:text" json:"coverLetter"`
	Status          string    `gorm:"size:16" json:"status"`

	Applicant *User `gorm:"foreignKey:ApplicantID" json:"applicant,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Application) TableName() string { return "job_applications" }

func ValidApplicationStatus(s string) bool {
	switch s {
	case ApplicationPending, ApplicationReviewed, ApplicationAccepted, ApplicationRejected:
		return true
	}
	return false
}
