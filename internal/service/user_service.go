package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/vishnuvr16/JobPortal/internal/core/auth"
	"github.com/vishnuvr16/JobPortal/internal/domain"
	"github.com/vishnuvr16/JobPortal/pkg/utils"
)

type RegisterInput struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ProfilePatch 档案更新白名单。role 与 email 不在其中：
// 通用透传补丁允许改 role 属于提权漏洞，这里显式挡掉。
type ProfilePatch struct {
	FullName  *string  `json:"fullName"`
	Phone     *string  `json:"phone"`
	Location  *string  `json:"location"`
	Bio       *string  `json:"bio"`
	Skills    []string `json:"skills"`
	ResumeURL *string  `json:"resumeUrl"`
}

type UserService struct {
	users domain.UserRepository
	log   *zap.Logger
}

func NewUserService(users domain.UserRepository, log *zap.Logger) *UserService {
	if log == nil {
		log = zap.NewNop()
	}
	return &UserService{users: users, log: log}
}

func (s *UserService) Register(ctx context.Context, in RegisterInput) (*domain.User, error) {
	fields := map[string]string{}
	if strings.TrimSpace(in.FullName) == "" {
		fields["fullName"] = "full name is required"
	}
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || !strings.Contains(email, "@") {
		fields["email"] = "valid email is required"
	}
	if len(in.Password) < 6 {
		fields["password"] = "password must be at least 6 characters"
	}
	if len(fields) > 0 {
		return nil, domain.NewValidationError("invalid registration", fields)
	}
	u := &domain.User{
		ID:           utils.NewID(),
		Email:        email,
		FullName:     strings.TrimSpace(in.FullName),
		PasswordHash: utils.HashPassword(in.Password),
		Role:         string(auth.RoleCandidate),
		Skills:       []string{},
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}
	s.log.Info("user registered", zap.String("user_id", u.ID))
	return u, nil
}

// Login 凭证校验；失败统一报 invalid credentials，不暴露账号是否存在
func (s *UserService) Login(ctx context.Context, email, password string) (*domain.User, error) {
	u, err := s.users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if domain.Is(err, domain.CodeNotFound) {
			return nil, domain.NewError(domain.CodeUnauthenticated, "invalid credentials", nil)
		}
		return nil, err
	}
	if !utils.CheckPassword(password, u.PasswordHash) {
		return nil, domain.NewError(domain.CodeUnauthenticated, "invalid credentials", nil)
	}
	return u, nil
}

func (s *UserService) GetProfile(ctx context.Context, userID string) (*domain.User, error) {
	return s.users.FindByID(ctx, userID)
}

func (s *UserService) UpdateProfile(ctx context.Context, userID string, patch ProfilePatch) (*domain.User, error) {
	fields := map[string]any{}
	if patch.FullName != nil {
		fields["full_name"] = *patch.FullName
	}
	if patch.Phone != nil {
		fields["phone"] = *patch.Phone
	}
	if patch.Location != nil {
		fields["location"] = *patch.Location
	}
	if patch.Bio != nil {
		fields["bio"] = *patch.Bio
	}
	if patch.Skills != nil {
		fields["skills"] = mustJSON(patch.Skills)
	}
	if patch.ResumeURL != nil {
		fields["resume_url"] = *patch.ResumeURL
	}
	if len(fields) == 0 {
		return s.users.FindByID(ctx, userID)
	}
	u, err := s.users.UpdateFields(ctx, userID, fields)
	if err != nil {
		return nil, err
	}
	s.log.Info("profile updated", zap.String("user_id", userID))
	return u, nil
}

func (s *UserService) ListUsers(ctx context.Context, q domain.ListUsersQuery) ([]domain.User, int64, error) {
	if q.Limit <= 0 || q.Limit > 100 {
		q.Limit = 20
	}
	return s.users.List(ctx, q)
}

// Ban 软删（管理端）
func (s *UserService) Ban(ctx context.Context, id string) error {
	n, err := s.users.SoftDelete(ctx, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.NewError(domain.CodeNotFound, "user not found", nil)
	}
	s.log.Info("user banned", zap.String("user_id", id))
	return nil
}
