package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vishnuvr16/JobPortal/internal/core/auth"
	"github.com/vishnuvr16/JobPortal/internal/domain"
	"github.com/vishnuvr16/JobPortal/pkg/utils"
)

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	svc := NewUserService(newFakeUserRepo(), nil)

	u, err := svc.Register(ctx, RegisterInput{
		FullName: "Ada Lovelace",
		Email:    "Ada@Example.com",
		Password: "secret1",
	})
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", u.Email) // 邮箱落库统一小写
	assert.Equal(t, string(auth.RoleCandidate), u.Role)
	assert.NotEqual(t, "secret1", u.PasswordHash)

	got, err := svc.Login(ctx, "ADA@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
}

func TestRegisterValidation(t *testing.T) {
	svc := NewUserService(newFakeUserRepo(), nil)
	_, err := svc.Register(context.Background(), RegisterInput{Email: "not-an-email", Password: "123"})
	require.Error(t, err)
	assert.True(t, domain.Is(err, domain.CodeValidation))
	var de *domain.Error
	require.ErrorAs(t, err, &de)
	assert.Contains(t, de.Fields, "fullName")
	assert.Contains(t, de.Fields, "email")
	assert.Contains(t, de.Fields, "password")
}

func TestRegisterDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	svc := NewUserService(newFakeUserRepo(), nil)
	_, err := svc.Register(ctx, RegisterInput{FullName: "A", Email: "a@b.com", Password: "secret1"})
	require.NoError(t, err)
	_, err = svc.Register(ctx, RegisterInput{FullName: "B", Email: "A@B.com", Password: "secret2"})
	assert.True(t, domain.Is(err, domain.CodeDuplicate))
}

func TestLoginBadCredentials(t *testing.T) {
	ctx := context.Background()
	svc := NewUserService(newFakeUserRepo(), nil)
	_, err := svc.Register(ctx, RegisterInput{FullName: "A", Email: "a@b.com", Password: "secret1"})
	require.NoError(t, err)

	// 账号不存在和密码错误对外是同一个错误
	_, err = svc.Login(ctx, "nobody@b.com", "secret1")
	assert.True(t, domain.Is(err, domain.CodeUnauthenticated))
	_, err = svc.Login(ctx, "a@b.com", "wrong")
	assert.True(t, domain.Is(err, domain.CodeUnauthenticated))
}

func TestUpdateProfileAllowList(t *testing.T) {
	ctx := context.Background()
	repo := newFakeUserRepo()
	svc := NewUserService(repo, nil)
	u, err := svc.Register(ctx, RegisterInput{FullName: "A", Email: "a@b.com", Password: "secret1"})
	require.NoError(t, err)

	got, err := svc.UpdateProfile(ctx, u.ID, ProfilePatch{
		FullName:  str("Ada"),
		Phone:     str("123"),
		Location:  str("London"),
		Bio:       str("hi"),
		Skills:    []string{"go", "sql"},
		ResumeURL: str("https://cv.example/a.pdf"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Ada", got.FullName)
	assert.Equal(t, "123", got.Phone)
	assert.Equal(t, "London", got.Location)
	assert.Equal(t, "hi", got.Bio)
	assert.Equal(t, []string{"go", "sql"}, got.Skills)
	assert.Equal(t, "https://cv.example/a.pdf", got.ResumeURL)

	// 白名单之外的字段（role/email）不可能经由档案更新改动
	assert.Equal(t, string(auth.RoleCandidate), got.Role)
	assert.Equal(t, "a@b.com", got.Email)
}

func TestUpdateProfileEmptyPatch(t *testing.T) {
	ctx := context.Background()
	svc := NewUserService(newFakeUserRepo(), nil)
	u, err := svc.Register(ctx, RegisterInput{FullName: "A", Email: "a@b.com", Password: "secret1"})
	require.NoError(t, err)

	got, err := svc.UpdateProfile(ctx, u.ID, ProfilePatch{})
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	assert.Equal(t, "A", got.FullName)
}

func TestUpdateProfileMissingUser(t *testing.T) {
	svc := NewUserService(newFakeUserRepo(), nil)
	_, err := svc.UpdateProfile(context.Background(), "nope", ProfilePatch{FullName: str("X")})
	assert.True(t, domain.Is(err, domain.CodeNotFound))
}

func TestListUsersLimitClamp(t *testing.T) {
	ctx := context.Background()
	repo := newFakeUserRepo()
	svc := NewUserService(repo, nil)
	for i := 0; i < 25; i++ {
		require.NoError(t, repo.Create(ctx, &domain.User{
			ID:    utils.NewID(),
			Email: utils.NewID() + "@b.com",
		}))
	}
	out, total, err := svc.ListUsers(ctx, domain.ListUsersQuery{})
	require.NoError(t, err)
	assert.Equal(t, int64(25), total)
	assert.Len(t, out, 20)
}

func TestBan(t *testing.T) {
	ctx := context.Background()
	repo := newFakeUserRepo()
	svc := NewUserService(repo, nil)
	u, err := svc.Register(ctx, RegisterInput{FullName: "A", Email: "a@b.com", Password: "secret1"})
	require.NoError(t, err)

	require.NoError(t, svc.Ban(ctx, u.ID))
	_, err = svc.GetProfile(ctx, u.ID)
	assert.True(t, domain.Is(err, domain.CodeNotFound))

	err = svc.Ban(ctx, u.ID)
	assert.True(t, domain.Is(err, domain.CodeNotFound))
}
