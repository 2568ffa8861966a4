package domain

import (
	"time"

	"gorm.io/gorm"
)

const (
	RoleAdmin  = "admin"
	RoleEditor = "editor"
)

// AdminUser 后台账号
type AdminUser struct {
	ID           string         `gorm:"primaryKey;type:varchar(32)" json:"id"`
	Email        string         `gorm:"uniqueIndex;size:191;not null" json:"email"`
	Name         string         `gorm:"size:64;not null" json:"name"`
	PasswordHash string         `gorm:"size:100;not null" json:"-"`
	Role         string         `gorm:"size:16;not null;default:admin" json:"role"`
	CreatedAt    time.Time      `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime" json:"updatedAt"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (AdminUser) TableName() string { return "admin_users" }

type AdminUserRepository interface {
	Create(u *AdminUser) error
	FindByID(id string) (*AdminUser, error)
	FindByEmail(email string) (*AdminUser, error)
}
