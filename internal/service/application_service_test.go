package service

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vishnuvr16/JobPortal/internal/domain"
)

func seedJob(t *testing.T, repo *fakeJobRepo, postedBy string) *domain.JobPosting {
	t.Helper()
	jobs := NewJobService(repo, nil, nil)
	j, err := jobs.Create(context.Background(), postedBy, validCreateInput())
	require.NoError(t, err)
	return j
}

func TestApplySuccess(t *testing.T) {
	ctx := context.Background()
	repo := newFakeJobRepo()
	j := seedJob(t, repo, "admin-1")
	svc := NewApplicationService(repo, nil)

	err := svc.Apply(ctx, j.ID, "cand-1", ApplyInput{
		ResumeURL:   "https://cv.example/cand-1.pdf",
		CoverLetter: "hello",
	})
	require.NoError(t, err)

	got, err := repo.FindByID(ctx, j.ID)
	require.NoError(t, err)
	require.Len(t, got.Applications, 1)
	a := got.Applications[0]
	assert.Equal(t, "cand-1", a.ApplicantID)
	assert.Equal(t, domain.ApplicationPending, a.Status)
	// 简历/求职信来自表单，不是职位记录
	assert.Equal(t, "https://cv.example/cand-1.pdf", a.ResumeURL)
	assert.Equal(t, "hello", a.CoverLetter)
	assert.False(t, a.ApplicationDate.IsZero())
}

func TestApplyJobMissing(t *testing.T) {
	svc := NewApplicationService(newFakeJobRepo(), nil)
	err := svc.Apply(context.Background(), "nope", "cand-1", ApplyInput{})
	assert.True(t, domain.Is(err, domain.CodeNotFound))
}

func TestApplyDuplicate(t *testing.T) {
	ctx := context.Background()
	repo := newFakeJobRepo()
	j := seedJob(t, repo, "admin-1")
	svc := NewApplicationService(repo, nil)

	require.NoError(t, svc.Apply(ctx, j.ID, "cand-1", ApplyInput{}))

	err := svc.Apply(ctx, j.ID, "cand-1", ApplyInput{})
	require.Error(t, err)
	assert.True(t, domain.Is(err, domain.CodeDuplicate))

	got, err := repo.FindByID(ctx, j.ID)
	require.NoError(t, err)
	assert.Len(t, got.Applications, 1)
}

func TestApplyConcurrentSamePair(t *testing.T) {
	ctx := context.Background()
	repo := newFakeJobRepo()
	j := seedJob(t, repo, "admin-1")
	svc := NewApplicationService(repo, nil)

	const n = 32
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = svc.Apply(ctx, j.ID, "cand-1", ApplyInput{})
		}(i)
	}
	wg.Wait()

	ok := 0
	for _, err := range errs {
		if err == nil {
			ok++
		} else {
			assert.True(t, domain.Is(err, domain.CodeDuplicate))
		}
	}
	assert.Equal(t, 1, ok)

	got, err := repo.FindByID(ctx, j.ID)
	require.NoError(t, err)
	assert.Len(t, got.Applications, 1)
}

func TestSetStatus(t *testing.T) {
	ctx := context.Background()
	repo := newFakeJobRepo()
	j := seedJob(t, repo, "admin-1")
	svc := NewApplicationService(repo, nil)

	require.NoError(t, svc.Apply(ctx, j.ID, "cand-1", ApplyInput{}))
	got, err := repo.FindByID(ctx, j.ID)
	require.NoError(t, err)
	appID := got.Applications[0].ID

	updated, err := svc.SetStatus(ctx, j.ID, appID, domain.ApplicationAccepted)
	require.NoError(t, err)
	require.Len(t, updated.Applications, 1)
	assert.Equal(t, domain.ApplicationAccepted, updated.Applications[0].Status)

	// 重复设置同一状态是幂等的
	updated, err = svc.SetStatus(ctx, j.ID, appID, domain.ApplicationAccepted)
	require.NoError(t, err)
	require.Len(t, updated.Applications, 1)
	assert.Equal(t, domain.ApplicationAccepted, updated.Applications[0].Status)

	// 不限制流转方向：accepted 可以退回 pending
	updated, err = svc.SetStatus(ctx, j.ID, appID, domain.ApplicationPending)
	require.NoError(t, err)
	assert.Equal(t, domain.ApplicationPending, updated.Applications[0].Status)
}

func TestSetStatusInvalid(t *testing.T) {
	ctx := context.Background()
	repo := newFakeJobRepo()
	j := seedJob(t, repo, "admin-1")
	svc := NewApplicationService(repo, nil)

	_, err := svc.SetStatus(ctx, j.ID, "whatever", "archived")
	assert.True(t, domain.Is(err, domain.CodeValidation))
}

func TestSetStatusPairNotFound(t *testing.T) {
	ctx := context.Background()
	repo := newFakeJobRepo()
	j := seedJob(t, repo, "admin-1")
	other := seedJob(t, repo, "admin-1")
	svc := NewApplicationService(repo, nil)

	require.NoError(t, svc.Apply(ctx, j.ID, "cand-1", ApplyInput{}))
	got, err := repo.FindByID(ctx, j.ID)
	require.NoError(t, err)
	appID := got.Applications[0].ID

	// application id 存在但挂在别的 job 上 → (job, application) 不匹配
	_, err = svc.SetStatus(ctx, other.ID, appID, domain.ApplicationReviewed)
	assert.True(t, domain.Is(err, domain.CodeNotFound))
}

func TestListApplicantsExpanded(t *testing.T) {
	ctx := context.Background()
	repo := newFakeJobRepo()
	j := seedJob(t, repo, "admin-1")
	repo.users["cand-1"] = &domain.User{
		ID: "cand-1", FullName: "Ada Lovelace", Email: "ada@example.com",
		Phone: "123", Location: "London", Skills: []string{"math"},
	}
	svc := NewApplicationService(repo, nil)

	require.NoError(t, svc.Apply(ctx, j.ID, "cand-1", ApplyInput{ResumeURL: "r", CoverLetter: "c"}))

	rows, err := svc.ListApplicants(ctx, j.ID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Ada Lovelace", rows[0].FullName)
	assert.Equal(t, "ada@example.com", rows[0].Email)
	assert.Equal(t, "123", rows[0].Phone)
	assert.Equal(t, domain.ApplicationPending, rows[0].Status)

	_, err = svc.ListApplicants(ctx, "missing")
	assert.True(t, domain.Is(err, domain.CodeNotFound))
}

func TestListUserApplicationsJobShaped(t *testing.T) {
	ctx := context.Background()
	repo := newFakeJobRepo()
	j1 := seedJob(t, repo, "admin-1")
	j2 := seedJob(t, repo, "admin-1")
	j3 := seedJob(t, repo, "admin-2")
	svc := NewApplicationService(repo, nil)

	require.NoError(t, svc.Apply(ctx, j1.ID, "cand-1", ApplyInput{}))
	require.NoError(t, svc.Apply(ctx, j2.ID, "cand-1", ApplyInput{}))
	require.NoError(t, svc.Apply(ctx, j3.ID, "cand-2", ApplyInput{}))

	// 状态不影响结果集
	got, err := repo.FindByID(ctx, j1.ID)
	require.NoError(t, err)
	_, err = svc.SetStatus(ctx, j1.ID, got.Applications[0].ID, domain.ApplicationRejected)
	require.NoError(t, err)

	jobs, err := svc.ListUserApplications(ctx, "cand-1")
	require.NoError(t, err)
	ids := map[string]bool{}
	for _, j := range jobs {
		ids[j.ID] = true
	}
	assert.Equal(t, map[string]bool{j1.ID: true, j2.ID: true}, ids)

	none, err := svc.ListUserApplications(ctx, "cand-9")
	require.NoError(t, err)
	assert.Empty(t, none)
}
