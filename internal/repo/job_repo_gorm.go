package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/vishnuvr16/JobPortal/internal/domain"
)

type JobRepo struct{ db *gorm.DB }

func NewJobRepo(db *gorm.DB) *JobRepo { return &JobRepo{db: db} }

func (r *JobRepo) Create(ctx context.Context, j *domain.JobPosting) error {
	if err := r.db.WithContext(ctx).Create(j).Error; err != nil {
		return domain.NewError(domain.CodeInternal, "create job failed", err)
	}
	return nil
}

func (r *JobRepo) FindByID(ctx context.Context, id string) (*domain.JobPosting, error) {
	var j domain.JobPosting
	err := r.db.WithContext(ctx).Preload("Applications").First(&j, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.NewError(domain.CodeNotFound, "job not found", err)
	}
	if err != nil {
		return nil, domain.NewError(domain.CodeInternal, "load job failed", err)
	}
	return &j, nil
}

func (r *JobRepo) List(ctx context.Context) ([]domain.JobPosting, error) {
	var jobs []domain.JobPosting
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&jobs).Error; err != nil {
		return nil, domain.NewError(domain.CodeInternal, "list jobs failed", err)
	}
	return jobs, nil
}

func (r *JobRepo) ListByCategory(ctx context.Context, category string) ([]domain.JobPosting, error) {
	var jobs []domain.JobPosting
	if err := r.db.WithContext(ctx).Where("category = ?", category).Order("created_at DESC").Find(&jobs).Error; err != nil {
		return nil, domain.NewError(domain.CodeInternal, "list jobs failed", err)
	}
	return jobs, nil
}

func (r *JobRepo) ListFeatured(ctx context.Context) ([]domain.JobPosting, error) {
	var jobs []domain.JobPosting
	if err := r.db.WithContext(ctx).Where("featured = ?", true).Order("created_at DESC").Find(&jobs).Error; err != nil {
		return nil, domain.NewError(domain.CodeInternal, "list jobs failed", err)
	}
	return jobs, nil
}

// UpdateOwned 单条 UPDATE ... WHERE id = ? AND posted_by = ?，
// 命中 0 行时调用方统一报 not found（缺失与非归属对外不可区分）
func (r *JobRepo) UpdateOwned(ctx context.Context, id, postedBy string, fields map[string]any) (int64, error) {
	res := r.db.WithContext(ctx).Model(&domain.JobPosting{}).
		Where("id = ? AND posted_by = ?", id, postedBy).
		Updates(fields)
	if res.Error != nil {
		return 0, domain.NewError(domain.CodeInternal, "update job failed", res.Error)
	}
	return res.RowsAffected, nil
}

func (r *JobRepo) Delete(ctx context.Context, id string) (int64, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 约束可能没建级联，显式清子申请
		if err := tx.Where("job_id = ?", id).Delete(&domain.Application{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&domain.JobPosting{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, domain.NewError(domain.CodeInternal, "delete job failed", err)
	}
	return 1, nil
}

func (r *JobRepo) ListByApplicant(ctx context.Context, userID string) ([]domain.JobPosting, error) {
	var jobs []domain.JobPosting
	err := r.db.WithContext(ctx).
		Joins("JOIN job_applications ON job_applications.job_id = job_postings.id").
		Where("job_applications.applicant_id = ?", userID).
		Distinct("job_postings.*").
		Find(&jobs).Error
	if err != nil {
		return nil, domain.NewError(domain.CodeInternal, "list applied jobs failed", err)
	}
	return jobs, nil
}

// InsertApplication 唯一索引 (job_id, applicant_id) 兜底并发：
// 两个同时提交的同一申请人只会有一条落库
func (r *JobRepo) InsertApplication(ctx context.Context, a *domain.Application) error {
	if err := r.db.WithContext(ctx).Create(a).Error; err != nil {
		if isDupKey(err) {
			return domain.NewError(domain.CodeDuplicate, "already applied to this job", err)
		}
		return domain.NewError(domain.CodeInternal, "create application failed", err)
	}
	return nil
}

func (r *JobRepo) HasApplication(ctx context.Context, jobID, applicantID string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.Application{}).
		Where("job_id = ? AND applicant_id = ?", jobID, applicantID).
		Count(&n).Error
	if err != nil {
		return false, domain.NewError(domain.CodeInternal, "check application failed", err)
	}
	return n > 0, nil
}

func (r *JobRepo) UpdateApplicationStatus(ctx context.Context, jobID, applicationID, status string) (int64, error) {
	res := r.db.WithContext(ctx).Model(&domain.Application{}).
		Where("id = ? AND job_id = ?", applicationID, jobID).
		Update("status", status)
	if res.Error != nil {
		return 0, domain.NewError(domain.CodeInternal, "update application failed", res.Error)
	}
	return res.RowsAffected, nil
}

func (r *JobRepo) ListApplications(ctx context.Context, jobID string) ([]domain.Application, error) {
	var apps []domain.Application
	err := r.db.WithContext(ctx).Preload("Applicant").
		Where("job_id = ?", jobID).
		Order("application_date ASC").
		Find(&apps).Error
	if err != nil {
		return nil, domain.NewError(domain.CodeInternal, "list applications failed", err)
	}
	return apps, nil
}
