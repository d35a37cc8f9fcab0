package repo

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/vishnuvr16/JobPortal/internal/domain"
)

type UserRepo struct{ db *gorm.DB }

func NewUserRepo(db *gorm.DB) *UserRepo { return &UserRepo{db: db} }

func (r *UserRepo) Create(ctx context.Context, u *domain.User) error {
	if err := r.db.WithContext(ctx).Create(u).Error; err != nil {
		if isDupKey(err) {
			return domain.NewError(domain.CodeDuplicate, "user already exists", err)
		}
		return domain.NewError(domain.CodeInternal, "create user failed", err)
	}
	return nil
}

func (r *UserRepo) FindByID(ctx context.Context, id string) (*domain.User, error) {
	var u domain.User
	err := r.db.WithContext(ctx).First(&u, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.NewError(domain.CodeNotFound, "user not found", err)
	}
	if err != nil {
		return nil, domain.NewError(domain.CodeInternal, "load user failed", err)
	}
	return &u, nil
}

func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var u domain.User
	err := r.db.WithContext(ctx).First(&u, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.NewError(domain.CodeNotFound, "user not found", err)
	}
	if err != nil {
		return nil, domain.NewError(domain.CodeInternal, "load user failed", err)
	}
	return &u, nil
}

func (r *UserRepo) UpdateFields(ctx context.Context, id string, fields map[string]any) (*domain.User, error) {
	res := r.db.WithContext(ctx).Model(&domain.User{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return nil, domain.NewError(domain.CodeInternal, "update user failed", res.Error)
	}
	return r.FindByID(ctx, id)
}

func (r *UserRepo) List(ctx context.Context, q domain.ListUsersQuery) ([]domain.User, int64, error) {
	tx := r.db.WithContext(ctx).Model(&domain.User{})
	if q.WithDeleted {
		tx = tx.Unscoped()
	}
	if s := strings.TrimSpace(q.Q); s != "" {
		like := "%" + s + "%"
		tx = tx.Where("email LIKE ? OR full_name LIKE ?", like, like)
	}
	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, domain.NewError(domain.CodeInternal, "count users failed", err)
	}
	var users []domain.User
	if err := tx.Order("created_at DESC").Limit(q.Limit).Offset(q.Offset).Find(&users).Error; err != nil {
		return nil, 0, domain.NewError(domain.CodeInternal, "list users failed", err)
	}
	return users, total, nil
}

func (r *UserRepo) SoftDelete(ctx context.Context, id string) (int64, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.User{})
	if res.Error != nil {
		return 0, domain.NewError(domain.CodeInternal, "delete user failed", res.Error)
	}
	return res.RowsAffected, nil
}

// isDupKey 不依赖 gorm.ErrDuplicatedKey，避免驱动版本差异导致漏判
func isDupKey(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "unique violation") ||
		strings.Contains(msg, "duplicate key")
}
