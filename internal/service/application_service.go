package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/vishnuvr16/JobPortal/internal/domain"
	"github.com/vishnuvr16/JobPortal/pkg/utils"
)

type ApplyInput struct {
	ResumeURL   string `json:"resumeUrl"`
	CoverLetter string `json:"coverLetter"`
}

// ApplicantRow 面向管理端的申请人展开行
type ApplicantRow struct {
	ApplicationID   string    `json:"applicationId"`
	ApplicantID     string    `json:"applicantId"`
	FullName        string    `json:"fullName"`
	Email           string    `json:"email"`
	Phone           string    `json:"phone"`
	Location        string    `json:"location"`
	Skills          []string  `json:"skills"`
	ResumeURL       string    `json:"resumeUrl"`
	CoverLetter     string    `json:"coverLetter"`
	Status          string    `json:"status"`
	ApplicationDate time.Time `json:"applicationDate"`
}

type ApplicationService struct {
	jobs domain.JobRepository
	log  *zap.Logger
}

func NewApplicationService(jobs domain.JobRepository, log *zap.Logger) *ApplicationService {
	if log == nil {
		log = zap.NewNop()
	}
	return &ApplicationService{jobs: jobs, log: log}
}

// Apply 提交申请。重复申请（含并发重复）由 (job, applicant)
// 唯一约束兜底，最多落库一条。简历与求职信取自表单。
// 成功只返回确认，不回传子申请 id（沿用既有对外契约）。
func (s *ApplicationService) Apply(ctx context.Context, jobID, applicantID string, in ApplyInput) error {
	if _, err := s.jobs.FindByID(ctx, jobID); err != nil {
		return err
	}
	// 先查一遍给出友好错误；真正的防线在唯一索引
	applied, err := s.jobs.HasApplication(ctx, jobID, applicantID)
	if err != nil {
		return err
	}
	if applied {
		return domain.NewError(domain.CodeDuplicate, "already applied to this job", nil)
	}
	a := &domain.Application{
		ID:              utils.NewID(),
		JobID:           jobID,
		ApplicantID:     applicantID,
		ApplicationDate: time.Now().UTC(),
		ResumeURL:       in.ResumeURL,
		CoverLetter:     in.CoverLetter,
		Status:          domain.ApplicationPending,
	}
	if err := s.jobs.InsertApplication(ctx, a); err != nil {
		return err
	}
	s.log.Info("application submitted",
		zap.String("job_id", jobID),
		zap.String("applicant_id", applicantID))
	return nil
}

// SetStatus 定向条件更新 (applicationID, jobID)。四个标签间任意流转，
// 不施加状态图约束；重复设同一状态是幂等的。
func (s *ApplicationService) SetStatus(ctx context.Context, jobID, applicationID, status string) (*domain.JobPosting, error) {
	if !domain.ValidApplicationStatus(status) {
		return nil, domain.NewValidationError("invalid application status",
			map[string]string{"status": "status must be pending, reviewed, accepted, or rejected"})
	}
	n, err := s.jobs.UpdateApplicationStatus(ctx, jobID, applicationID, status)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, domain.NewError(domain.CodeNotFound, "job or applicant not found", nil)
	}
	s.log.Info("application status set",
		zap.String("job_id", jobID),
		zap.String("application_id", applicationID),
		zap.String("status", status))
	return s.jobs.FindByID(ctx, jobID)
}

// ListApplicants 展开申请人身份（姓名/邮箱/联系方式/技能）
func (s *ApplicationService) ListApplicants(ctx context.Context, jobID string) ([]ApplicantRow, error) {
	if _, err := s.jobs.FindByID(ctx, jobID); err != nil {
		return nil, err
	}
	apps, err := s.jobs.ListApplications(ctx, jobID)
	if err != nil {
		return nil, err
	}
	rows := make([]ApplicantRow, 0, len(apps))
	for _, a := range apps {
		row := ApplicantRow{
			ApplicationID:   a.ID,
			ApplicantID:     a.ApplicantID,
			ResumeURL:       a.ResumeURL,
			CoverLetter:     a.CoverLetter,
			Status:          a.Status,
			ApplicationDate: a.ApplicationDate,
		}
		if a.Applicant != nil {
			row.FullName = a.Applicant.FullName
			row.Email = a.Applicant.Email
			row.Phone = a.Applicant.Phone
			row.Location = a.Applicant.Location
			row.Skills = a.Applicant.Skills
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// ListUserApplications 候选人看到的“我的申请”是职位本身，
// 不是申请子文档（对外契约即如此），不过滤申请状态。
func (s *ApplicationService) ListUserApplications(ctx context.Context, applicantID string) ([]domain.JobPosting, error) {
	return s.jobs.ListByApplicant(ctx, applicantID)
}
