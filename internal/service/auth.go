package service

import (
	"context"
	"strings"
	"time"

	"go-shop-admin/internal/core/auth"
	"go-shop-admin/internal/domain"
	"go-shop-admin/internal/repo"
	"go-shop-admin/pkg/utils"
)

type AuthService struct {
	users *repo.UserRepo
	jwt   *auth.JWTer
}

type LoginResult struct {
	Token     string            `json:"token"`
	ExpiresAt time.Time         `json:"expiresAt"`
	User      *domain.AdminUser `json:"user"`
}

// Login 不区分“账号不存在”与“密码错误”
func (s *AuthService) Login(_ context.Context, email, password string) (*LoginResult, error) {
	u, err := s.users.FindByEmail(strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, err
	}
	if u == nil || !utils.CheckPassword(password, u.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	tok, exp, err := s.jwt.Issue(u.ID, u.Role)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: tok, ExpiresAt: exp, User: u}, nil
}

func (s *AuthService) Me(_ context.Context, uid string) (*domain.AdminUser, error) {
	u, err := s.users.FindByID(uid)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrNotFound
	}
	return u, nil
}

// EnsureAdmin 启动时保证初始管理员存在；已存在则不改密码
func (s *AuthService) EnsureAdmin(_ context.Context, email, password, name string) (created bool, err error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return false, nil
	}
	u, err := s.users.FindByEmail(email)
	if err != nil || u != nil {
		return false, err
	}
	hash, err := utils.HashPassword(password)
	if err != nil {
		return false, err
	}
	if name == "" {
		name = "Administrator"
	}
	err = s.users.Create(&domain.AdminUser{
		ID: utils.NewID(), Email: email, Name: name, PasswordHash: hash, Role: domain.RoleAdmin,
	})
	return err == nil, err
}

// Users 管理员列表
func (s *AuthService) Users(q string, offset, limit int) ([]domain.AdminUser, int64, error) {
	return s.users.List(strings.TrimSpace(q), offset, limit)
}
