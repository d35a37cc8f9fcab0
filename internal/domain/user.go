package domain

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID           string   `gorm:"primaryKey;size:36" json:"id"`
	Email        string   `gorm:"uniqueIndex;size:191" json:"email"`
	FullName     string   `gorm:"size:64" json:"fullName"`
	PasswordHash string   `gorm:"size:191" json:"-"`
	Role         string   `gorm:"size:16" json:"role"` // "candidate"/"admin"
	Phone        string   `gorm:"size:32" json:"phone"`
	Location     string   `gorm:"size:128" json:"location"`
	Bio          string   `gorm:"type:text" json:"bio"`
	Skills       []string `gorm:"serializer:json;type:text" json:"skills"`
	ResumeURL    string   `gorm:"size:512" json:"resumeUrl"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string { return "users" }

type ListUsersQuery struct {
	Offset      int
	Limit       int
	Q           string // email/fullName 模糊搜
	WithDeleted bool
}

type UserRepository interface {
	Create(ctx context.Context, u *User) error
	FindByID(ctx context.Context, id string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	// UpdateFields 只更新给定列，返回更新后的用户
	UpdateFields(ctx context.Context, id string, fields map[string]any) (*User, error)
	List(ctx context.Context, q ListUsersQuery) ([]User, int64, error)
	SoftDelete(ctx context.Context, id string) (int64, error)
}
