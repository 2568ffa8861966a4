package repo

import (
	"errors"

	"gorm.io/gorm"

	"go-shop-admin/internal/domain"
)

type UserRepo struct{ db *gorm.DB }

var _ domain.AdminUserRepository = (*UserRepo)(nil)

func NewUserRepo(db *gorm.DB) *UserRepo { return &UserRepo{db: db} }

func (r *UserRepo) Create(u *domain.AdminUser) error { return r.db.Create(u).Error }

// FindByID 未找到返回 (nil, nil)
func (r *UserRepo) FindByID(id string) (*domain.AdminUser, error) {
	var u domain.AdminUser
	err := r.db.First(&u, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &u, err
}

func (r *UserRepo) FindByEmail(email string) (*domain.AdminUser, error) {
	var u domain.AdminUser
	err := r.db.First(&u, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &u, err
}

func (r *UserRepo) List(q string, offset, limit int) ([]domain.AdminUser, int64, error) {
	var users []domain.AdminUser
	tx := r.db.Model(&domain.AdminUser{})
	if q != "" {
		like := "%" + q + "%"
		tx = tx.Where("email LIKE ? OR name LIKE ?", like, like)
	}
	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := tx.Offset(offset).Limit(limit).Order("created_at desc").Find(&users).Error; err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

func (r *UserRepo) Update(u *domain.AdminUser) error { return r.db.Save(u).Error }

func (r *UserRepo) SoftDelete(id string) error {
	return r.db.Where("id = ?", id).Delete(&domain.AdminUser{}).Error
}
