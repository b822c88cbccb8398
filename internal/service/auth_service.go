package service

import (
	"cannedreply/internal/auth"
	"cannedreply/internal/entity"
	"cannedreply/internal/model"
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// AuthService 处理注册、登录以及会话签发
type AuthService struct {
	repo                model.Repository
	manager             *auth.Manager
	validator           *Validator
	registrationEnabled bool
}

func NewAuthService(repo model.Repository, manager *auth.Manager, validator *Validator, registrationEnabled bool) *AuthService {
	if validator == nil {
		validator = NewValidator()
	}
	return &AuthService{
		repo:                repo,
		manager:             manager,
		validator:           validator,
		registrationEnabled: registrationEnabled,
	}
}

func (s *AuthService) Status(ctx context.Context) (*entity.AuthStatusResponse, error) {
	count, err := s.repo.CountUsers(ctx)
	if err != nil {
		return nil, err
	}
	return &entity.AuthStatusResponse{
		HasUser:             count > 0,
		RegistrationEnabled: count == 0 || s.registrationEnabled,
	}, nil
}

// Register 第一个账户成为管理员，之后的注册受 REGISTRATION_ENABLED 控制
func (s *AuthService) Register(ctx context.Context, req entity.AuthRegisterRequest) (*entity.AuthResponse, error) {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.DisplayName = strings.TrimSpace(req.DisplayName)
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	count, err := s.repo.CountUsers(ctx)
	if err != nil {
		return nil, err
	}
	role := entity.UserRoleUser
	if count == 0 {
		role = entity.UserRoleAdmin
	} else if !s.registrationEnabled {
		return nil, ErrRegistrationClosed
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &entity.DbUser{
		Email:        req.Email,
		PasswordHash: hash,
		DisplayName:  req.DisplayName,
		Role:         role,
		IsActive:     true,
	}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, Conflict("email already registered").WithCause(err)
		}
		return nil, err
	}

	logrus.WithField("user_id", user.ID).WithField("role", role).Info("user registered")
	return s.issue(user)
}

func (s *AuthService) Login(ctx context.Context, req entity.AuthLoginRequest) (*entity.AuthResponse, error) {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	user, err := s.repo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := auth.VerifyPassword(user.PasswordHash, req.Password); err != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrUserDisabled
	}
	return s.issue(user)
}

// Me 返回当前用户资料
func (s *AuthService) Me(ctx context.Context, userID uint) (*entity.UserSummary, error) {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, translateRepoError(err, "user")
	}
	summary := UserSummary(user)
	return &summary, nil
}

func (s *AuthService) issue(user *entity.DbUser) (*entity.AuthResponse, error) {
	token, expiresAt, err := s.manager.GenerateToken(user)
	if err != nil {
		return nil, err
	}
	return &entity.AuthResponse{Token: token, ExpiresAt: expiresAt, User: UserSummary(user)}, nil
}

// UserSummary 转换为对外的用户信息
func UserSummary(user *entity.DbUser) entity.UserSummary {
	if user == nil {
		return entity.UserSummary{}
	}
	return entity.UserSummary{
		ID:          user.ID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		Role:        user.Role,
		IsActive:    user.IsActive,
		CreatedAt:   user.CreatedAt,
		UpdatedAt:   user.UpdatedAt,
	}
}
