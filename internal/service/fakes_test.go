package service

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/vishnuvr16/JobPortal/internal/domain"
)

// 内存版仓库，行为对齐 gorm 实现：唯一约束、条件更新命中行数等

type fakeJobRepo struct {
	mu   sync.Mutex
	jobs map[string]*domain.JobPosting
	apps map[string]*domain.Application
	// 申请人信息展开用
	users map[string]*domain.User
}

func newFakeJobRepo() *fakeJobRepo {
	return &fakeJobRepo{
		jobs:  make(map[string]*domain.JobPosting),
		apps:  make(map[string]*domain.Application),
		users: make(map[string]*domain.User),
	}
}

func (r *fakeJobRepo) Create(ctx context.Context, j *domain.JobPosting) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now().UTC()
	j.CreatedAt, j.UpdatedAt = now, now
	cp := *j
	r.jobs[j.ID] = &cp
	return nil
}

func (r *fakeJobRepo) FindByID(ctx context.Context, id string) (*domain.JobPosting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	j, ok := r.jobs[id]
	if !ok {
		return nil, domain.NewError(domain.CodeNotFound, "job not found", nil)
	}
	cp := *j
	cp.Applications = r.applicationsOf(id)
	return &cp, nil
}

func (r *fakeJobRepo) List(ctx context.Context) ([]domain.JobPosting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.JobPosting, 0, len(r.jobs))
	for _, j := range r.jobs {
		out = append(out, *j)
	}
	sort.Slice(out, func(i, k int) bool { return out[i].ID < out[k].ID })
	return out, nil
}

func (r *fakeJobRepo) ListByCategory(ctx context.Context, category string) ([]domain.JobPosting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.JobPosting
	for _, j := range r.jobs {
		if j.Category == category {
			out = append(out, *j)
		}
	}
	return out, nil
}

func (r *fakeJobRepo) ListFeatured(ctx context.Context) ([]domain.JobPosting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.JobPosting
	for _, j := range r.jobs {
		if j.Featured {
			out = append(out, *j)
		}
	}
	return out, nil
}

func (r *fakeJobRepo) UpdateOwned(ctx context.Context, id, postedBy string, fields map[string]any) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	j, ok := r.jobs[id]
	if !ok || j.PostedBy != postedBy {
		return 0, nil
	}
	applyJobFields(j, fields)
	j.UpdatedAt = time.Now().UTC()
	return 1, nil
}

func (r *fakeJobRepo) Delete(ctx context.Context, id string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.jobs[id]; !ok {
		return 0, nil
	}
	delete(r.jobs, id)
	for aid, a := range r.apps {
		if a.JobID == id {
			delete(r.apps, aid)
		}
	}
	return 1, nil
}

func (r *fakeJobRepo) ListByApplicant(ctx context.Context, userID string) ([]domain.JobPosting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	seen := map[string]bool{}
	var out []domain.JobPosting
	for _, a := range r.apps {
		if a.ApplicantID == userID && !seen[a.JobID] {
			if j, ok := r.jobs[a.JobID]; ok {
				out = append(out, *j)
				seen[a.JobID] = true
			}
		}
	}
	return out, nil
}

func (r *fakeJobRepo) InsertApplication(ctx context.Context, a *domain.Application) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.apps {
		if existing.JobID == a.JobID && existing.ApplicantID == a.ApplicantID {
			return domain.NewError(domain.CodeDuplicate, "already applied to this job", nil)
		}
	}
	cp := *a
	r.apps[a.ID] = &cp
	return nil
}

func (r *fakeJobRepo) HasApplication(ctx context.Context, jobID, applicantID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.apps {
		if a.JobID == jobID && a.ApplicantID == applicantID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeJobRepo) UpdateApplicationStatus(ctx context.Context, jobID, applicationID, status string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.apps[applicationID]
	if !ok || a.JobID != jobID {
		return 0, nil
	}
	a.Status = status
	a.UpdatedAt = time.Now().UTC()
	return 1, nil
}

func (r *fakeJobRepo) ListApplications(ctx context.Context, jobID string) ([]domain.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.applicationsOf(jobID)
	for i := range out {
		if u, ok := r.users[out[i].ApplicantID]; ok {
			cp := *u
			out[i].Applicant = &cp
		}
	}
	return out, nil
}

func (r *fakeJobRepo) applicationsOf(jobID string) []domain.Application {
	var out []domain.Application
	for _, a := range r.apps {
		if a.JobID == jobID {
			out = append(out, *a)
		}
	}
	sort.Slice(out, func(i, k int) bool { return out[i].ApplicationDate.Before(out[k].ApplicationDate) })
	return out
}

func applyJobFields(j *domain.JobPosting, fields map[string]any) {
	for k, v := range fields {
		switch k {
		case "title":
			j.Title = v.(string)
		case "company":
			j.Company = v.(string)
		case "description":
			j.Description = v.(string)
		case "location":
			j.Location = v.(string)
		case "type":
			j.Type = v.(string)
		case "salary_min":
			n := v.(int64)
			j.SalaryMin = &n
		case "salary_max":
			n := v.(int64)
			j.SalaryMax = &n
		case "category":
			j.Category = v.(string)
		case "status":
			j.Status = v.(string)
		case "featured":
			j.Featured = v.(bool)
		case "requirements":
			j.Requirements = fromJSON(v.(string))
		case "responsibilities":
			j.Responsibilities = fromJSON(v.(string))
		case "benefits":
			j.Benefits = fromJSON(v.(string))
		case "application_deadline":
			d := v.(time.Time)
			j.ApplicationDeadline = &d
		}
	}
}

func fromJSON(s string) []string {
	var out []string
	_ = json.Unmarshal([]byte(s), &out)
	return out
}

type fakeUserRepo struct {
	mu    sync.Mutex
	byID  map[string]*domain.User
	gone  map[string]bool // 软删
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byID: make(map[string]*domain.User), gone: make(map[string]bool)}
}

func (r *fakeUserRepo) Create(ctx context.Context, u *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.byID {
		if strings.EqualFold(existing.Email, u.Email) {
			return domain.NewError(domain.CodeDuplicate, "user already exists", nil)
		}
	}
	now := time.Now().UTC()
	u.CreatedAt, u.UpdatedAt = now, now
	cp := *u
	r.byID[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) FindByID(ctx context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok || r.gone[id] {
		return nil, domain.NewError(domain.CodeNotFound, "user not found", nil)
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, u := range r.byID {
		if strings.EqualFold(u.Email, email) && !r.gone[id] {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.NewError(domain.CodeNotFound, "user not found", nil)
}

func (r *fakeUserRepo) UpdateFields(ctx context.Context, id string, fields map[string]any) (*domain.User, error) {
	r.mu.Lock()
	u, ok := r.byID[id]
	if !ok {
		r.mu.Unlock()
		return nil, domain.NewError(domain.CodeNotFound, "user not found", nil)
	}
	for k, v := range fields {
		switch k {
		case "full_name":
			u.FullName = v.(string)
		case "phone":
			u.Phone = v.(string)
		case "location":
			u.Location = v.(string)
		case "bio":
			u.Bio = v.(string)
		case "skills":
			u.Skills = fromJSON(v.(string))
		case "resume_url":
			u.ResumeURL = v.(string)
		case "role":
			u.Role = v.(string)
		case "email":
			u.Email = v.(string)
		}
	}
	u.UpdatedAt = time.Now().UTC()
	r.mu.Unlock()
	return r.FindByID(ctx, id)
}

func (r *fakeUserRepo) List(ctx context.Context, q domain.ListUsersQuery) ([]domain.User, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.User
	for id, u := range r.byID {
		if r.gone[id] && !q.WithDeleted {
			continue
		}
		if q.Q != "" && !strings.Contains(u.Email, q.Q) && !strings.Contains(u.FullName, q.Q) {
			continue
		}
		out = append(out, *u)
	}
	sort.Slice(out, func(i, k int) bool { return out[i].ID < out[k].ID })
	total := int64(len(out))
	if q.Offset < len(out) {
		out = out[q.Offset:]
	} else {
		out = nil
	}
	if q.Limit > 0 && q.Limit < len(out) {
		out = out[:q.Limit]
	}
	return out, total, nil
}

func (r *fakeUserRepo) SoftDelete(ctx context.Context, id string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok || r.gone[id] {
		return 0, nil
	}
	r.gone[id] = true
	return 1, nil
}
