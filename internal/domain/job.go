package domain

import (
	"context"
	"time"
)

// 职位类型
const (
	JobTypeFullTime = "Full-time"
	JobTypePartTime = "Part-time"
	JobTypeContract = "Contract"
	JobTypeRemote   = "Remote"
)

const (
	DefaultCategory  = "Uncategorized"
	DefaultJobStatus = "active"
)

type JobPosting struct {
	ID          string `gorm:"primaryKey;size:36" json:"id"`
	Title       string `gorm:"size:191" json:"title"`
	Company     string `gorm:"size:191" json:"company"`
	Description string `gorm:"type:text" json:"description"`
	Location    string `gorm:"size:191" json:"location"`
	Type        string `gorm:"size:32" json:"type"`
	SalaryMin   *int64 `json:"salaryMin"`
	SalaryMax   *int64 `json:"salaryMax"`
	Category    string `gorm:"size:64;index" json:"category"`

	Requirements     []string `gorm:"serializer:json;type:text" json:"requirements"`
	Responsibilities []string `gorm:"serializer:json;type:text" json:"responsibilities"`
	Benefits         []string `gorm:"serializer:json;type:text" json:"benefits"`

	ApplicationDeadline *time.Time `json:"applicationDeadline"`
	Status              string     `gorm:"size:32" json:"status"` // 自由文本，默认 active
	Featured            bool       `gorm:"index" json:"featured"`
	PostedBy            string     `gorm:"size:36;index" json:"postedBy"`

	// 子实体：按 (job id, application id) 寻址，随职位一起删除
	Applications []Application `gorm:"foreignKey:JobID;constraint:OnDelete:CASCADE" json:"applicants,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (JobPosting) TableName() string { return "job_postings" }

func ValidJobType(t string) bool {
	switch t {
	case JobTypeFullTime, JobTypePartTime, JobTypeContract, JobTypeRemote:
		return true
	}
	return false
}

type JobRepository interface {
	Create(ctx context.Context, j *JobPosting) error
	// FindByID 带出全部子申请
	FindByID(ctx context.Context, id string) (*JobPosting, error)
	List(ctx context.Context) ([]JobPosting, error)
	ListByCategory(ctx context.Context, category string) ([]JobPosting, error)
	ListFeatured(ctx context.Context) ([]JobPosting, error)
	// UpdateOwned 单条条件更新：id 与 postedBy 同时匹配才生效，返回命中行数
	UpdateOwned(ctx context.Context, id, postedBy string, fields map[string]any) (int64, error)
	// Delete 仅按 id 删除（不校验归属），返回命中行数
	Delete(ctx context.Context, id string) (int64, error)
	// ListByApplicant 返回 userID 出现在申请人中的全部职位
	ListByApplicant(ctx context.Context, userID string) ([]JobPosting, error)

	// InsertApplication 依赖 (job_id, applicant_id) 唯一索引，
	// 冲突时返回 CodeDuplicate，保证并发下至多一条申请
	InsertApplication(ctx context.Context, a *Application) error
	HasApplication(ctx context.Context, jobID, applicantID string) (bool, error)
	// UpdateApplicationStatus 单条原子条件更新，返回命中行数
	UpdateApplicationStatus(ctx context.Context, jobID, applicationID, status string) (int64, error)
	// ListApplications 带出申请人信息
	ListApplications(ctx context.Context, jobID string) ([]Application, error)
}
