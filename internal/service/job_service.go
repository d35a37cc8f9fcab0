package service

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/vishnuvr16/JobPortal/internal/core/cache"
	"github.com/vishnuvr16/JobPortal/internal/domain"
	"github.com/vishnuvr16/JobPortal/pkg/utils"
)

const jobCacheTTL = 30 * time.Second

const (
	cacheKeyFeatured       = "jobs:featured"
	cacheKeyCategoryPrefix = "jobs:category:"
)

type CreateJobInput struct {
	Title               string   `json:"title"`
	Company             string   `json:"company"`
	Description         string   `json:"description"`
	Location            string   `json:"location"`
	Type                string   `json:"type"`
	SalaryMin           *int64   `json:"salaryMin"`
	SalaryMax           *int64   `json:"salaryMax"`
	Category            string   `json:"category"`
	Requirements        []string `json:"requirements"`
	Responsibilities    []string `json:"responsibilities"`
	Benefits            []string `json:"benefits"`
	ApplicationDeadline string   `json:"applicationDeadline"` // RFC3339 或 2006-01-02，可空
	Featured            bool     `json:"featured"`
}

// UpdateJobPatch 所有字段可选，nil 表示不改
type UpdateJobPatch struct {
	Title               *string    `json:"title"`
	Company             *string    `json:"company"`
	Description         *string    `json:"description"`
	Location            *string    `json:"location"`
	Type                *string    `json:"type"`
	SalaryMin           *int64     `json:"salaryMin"`
	SalaryMax           *int64     `json:"salaryMax"`
	Category            *string    `json:"category"`
	Requirements        []string   `json:"requirements"`
	Responsibilities    []string   `json:"responsibilities"`
	Benefits            []string   `json:"benefits"`
	ApplicationDeadline *time.Time `json:"applicationDeadline"`
	Status              *string    `json:"status"`
	Featured            *bool      `json:"featured"`
}

type JobService struct {
	jobs  domain.JobRepository
	cache *cache.Cache // 可空，空则直查库
	log   *zap.Logger
}

func NewJobService(jobs domain.JobRepository, c *cache.Cache, log *zap.Logger) *JobService {
	if log == nil {
		log = zap.NewNop()
	}
	return &JobService{jobs: jobs, cache: c, log: log}
}

// Create 仅 admin 入口调用；actorID 成为职位归属者
func (s *JobService) Create(ctx context.Context, actorID string, in CreateJobInput) (*domain.JobPosting, error) {
	fields := map[string]string{}
	if in.Title == "" {
		fields["title"] = "title is required"
	}
	if in.Company == "" {
		fields["company"] = "company is required"
	}
	if in.Description == "" {
		fields["description"] = "description is required"
	}
	if in.Location == "" {
		fields["location"] = "location is required"
	}
	if in.Type == "" {
		fields["type"] = "type is required"
	} else if !domain.ValidJobType(in.Type) {
		fields["type"] = "type must be Full-time, Part-time, Contract, or Remote"
	}
	if len(fields) > 0 {
		return nil, domain.NewValidationError("missing required fields", fields)
	}
	if in.SalaryMin != nil && in.SalaryMax != nil && *in.SalaryMin > *in.SalaryMax {
		return nil, domain.NewValidationError("minimum salary cannot be greater than maximum salary",
			map[string]string{"salaryMin": "must not exceed salaryMax"})
	}

	var deadline *time.Time
	if in.ApplicationDeadline != "" {
		d, err := parseDeadline(in.ApplicationDeadline)
		if err != nil {
			return nil, domain.NewValidationError("invalid application deadline",
				map[string]string{"applicationDeadline": "must be an RFC3339 timestamp or YYYY-MM-DD date"})
		}
		deadline = &d
	}

	category := in.Category
	if category == "" {
		category = domain.DefaultCategory
	}

	j := &domain.JobPosting{
		ID:                  utils.NewID(),
		Title:               in.Title,
		Company:             in.Company,
		Description:         in.Description,
		Location:            in.Location,
		Type:                in.Type,
		SalaryMin:           in.SalaryMin,
		SalaryMax:           in.SalaryMax,
		Category:            category,
		Requirements:        emptyIfNil(in.Requirements),
		Responsibilities:    emptyIfNil(in.Responsibilities),
		Benefits:            emptyIfNil(in.Benefits),
		ApplicationDeadline: deadline,
		Status:              domain.DefaultJobStatus,
		Featured:            in.Featured,
		PostedBy:            actorID,
	}
	if err := s.jobs.Create(ctx, j); err != nil {
		return nil, err
	}
	s.invalidate(ctx, j.Category)
	s.log.Info("job created", zap.String("job_id", j.ID), zap.String("posted_by", actorID))
	return j, nil
}

// List 返回全部职位，无分页（与现网行为对齐）
func (s *JobService) List(ctx context.Context) ([]domain.JobPosting, error) {
	return s.jobs.List(ctx)
}

func (s *JobService) GetByID(ctx context.Context, id string) (*domain.JobPosting, error) {
	return s.jobs.FindByID(ctx, id)
}

// GetByCategory 精确匹配；空结果按 not found 处理
func (s *JobService) GetByCategory(ctx context.Context, category string) ([]domain.JobPosting, error) {
	jobs, err := s.loadCached(ctx, cacheKeyCategoryPrefix+category, func(ctx context.Context) ([]domain.JobPosting, error) {
		return s.jobs.ListByCategory(ctx, category)
	})
	if err != nil {
		return nil, err
	}
	if len(jobs) == 0 {
		return nil, domain.NewError(domain.CodeNotFound, "no jobs found in this category", nil)
	}
	return jobs, nil
}

// GetFeatured 空结果按 not found 处理
func (s *JobService) GetFeatured(ctx context.Context) ([]domain.JobPosting, error) {
	jobs, err := s.loadCached(ctx, cacheKeyFeatured, s.jobs.ListFeatured)
	if err != nil {
		return nil, err
	}
	if len(jobs) == 0 {
		return nil, domain.NewError(domain.CodeNotFound, "no featured jobs found", nil)
	}
	return jobs, nil
}

// Update 一条条件更新同时匹配 id 与 postedBy；未命中时不区分
// “职位不存在”与“非发布者”，对外都是 not found
func (s *JobService) Update(ctx context.Context, id, actorID string, patch UpdateJobPatch) (*domain.JobPosting, error) {
	if patch.SalaryMin != nil && patch.SalaryMax != nil && *patch.SalaryMin > *patch.SalaryMax {
		return nil, domain.NewValidationError("minimum salary cannot be greater than maximum salary",
			map[string]string{"salaryMin": "must not exceed salaryMax"})
	}
	if patch.Type != nil && !domain.ValidJobType(*patch.Type) {
		return nil, domain.NewValidationError("invalid job type",
			map[string]string{"type": "type must be Full-time, Part-time, Contract, or Remote"})
	}
	fields := patchFields(patch)
	if len(fields) == 0 {
		return nil, domain.NewValidationError("empty patch", nil)
	}
	n, err := s.jobs.UpdateOwned(ctx, id, actorID, fields)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, domain.NewError(domain.CodeNotFound, "job not found or unauthorized", nil)
	}
	j, err := s.jobs.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, j.Category)
	s.log.Info("job updated", zap.String("job_id", id), zap.String("actor", actorID))
	return j, nil
}

// Delete 按 id 无条件删除：任意 admin 可删，不校验归属
// （更新路径校验归属、删除路径不校验，这个不对称是既有契约）
func (s *JobService) Delete(ctx context.Context, id string) error {
	j, err := s.jobs.FindByID(ctx, id)
	if err != nil {
		return err
	}
	n, err := s.jobs.Delete(ctx, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.NewError(domain.CodeNotFound, "job not found", nil)
	}
	s.invalidate(ctx, j.Category)
	s.log.Info("job deleted", zap.String("job_id", id))
	return nil
}

func (s *JobService) loadCached(ctx context.Context, key string, load func(context.Context) ([]domain.JobPosting, error)) ([]domain.JobPosting, error) {
	if s.cache == nil {
		return load(ctx)
	}
	out, err := cache.GetOrLoadJSON[[]domain.JobPosting](s.cache, ctx, key, jobCacheTTL, func(ctx context.Context) (*[]domain.JobPosting, error) {
		jobs, err := load(ctx)
		if err != nil {
			return nil, err
		}
		return &jobs, nil
	})
	if err != nil {
		// 缓存故障降级直查
		s.log.Warn("job cache degraded", zap.String("key", key), zap.Error(err))
		return load(ctx)
	}
	if out == nil {
		return nil, nil
	}
	return *out, nil
}

func (s *JobService) invalidate(ctx context.Context, category string) {
	if s.cache == nil {
		return
	}
	s.cache.Invalidate(ctx, cacheKeyFeatured, cacheKeyCategoryPrefix+category)
}

func parseDeadline(v string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", v)
}

func mustJSON(ss []string) string {
	b, _ := json.Marshal(ss)
	return string(b)
}

func emptyIfNil(ss []string) []string {
	if ss == nil {
		return []string{}
	}
	return ss
}

func patchFields(p UpdateJobPatch) map[string]any {
	fields := map[string]any{}
	if p.Title != nil {
		fields["title"] = *p.Title
	}
	if p.Company != nil {
		fields["company"] = *p.Company
	}
	if p.Description != nil {
		fields["description"] = *p.Description
	}
	if p.Location != nil {
		fields["location"] = *p.Location
	}
	if p.Type != nil {
		fields["type"] = *p.Type
	}
	if p.SalaryMin != nil {
		fields["salary_min"] = *p.SalaryMin
	}
	if p.SalaryMax != nil {
		fields["salary_max"] = *p.SalaryMax
	}
	if p.Category != nil {
		fields["category"] = *p.Category
	}
	// 列表列走 json 序列化存储，map 更新需要手动编码
	if p.Requirements != nil {
		fields["requirements"] = mustJSON(p.Requirements)
	}
	if p.Responsibilities != nil {
		fields["responsibilities"] = mustJSON(p.Responsibilities)
	}
	if p.Benefits != nil {
		fields["benefits"] = mustJSON(p.Benefits)
	}
	if p.ApplicationDeadline != nil {
		fields["application_deadline"] = *p.ApplicationDeadline
	}
	if p.Status != nil {
		fields["status"] = *p.Status
	}
	if p.Featured != nil {
		fields["featured"] = *p.Featured
	}
	return fields
}
