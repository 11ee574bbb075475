package service

import (
	"errors"
	"strings"
	"time"

	"github.com/damoang/pcmall-backend/internal/common"
	"github.com/damoang/pcmall-backend/internal/domain"
	"github.com/damoang/pcmall-backend/internal/repository"
	"github.com/damoang/pcmall-backend/pkg/jwt"
	pkglogger "github.com/damoang/pcmall-backend/pkg/logger"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthService admin authentication business logic
type AuthService interface {
	Login(req *domain.LoginRequest) (*domain.LoginResponse, error)
	Me(userID int64) (*domain.AdminUser, error)
	EnsureAdmin(username, password, email string) (bool, error)
}

type authService struct {
	users      repository.AdminUserRepository
	jwtManager *jwt.Manager
}

// NewAuthService creates a new AuthService
func NewAuthService(users repository.AdminUserRepository, jwtManager *jwt.Manager) AuthService {
	return &authService{
		users:      users,
		jwtManager: jwtManager,
	}
}

// Login verifies the password and issues an access token
func (s *authService) Login(req *domain.LoginRequest) (*domain.LoginResponse, error) {
	// 1. Find user
	user, err := s.users.FindByUsername(strings.TrimSpace(req.Username))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrInvalidCredentials
		}
		return nil, err
	}

	// 2. Verify password (bcrypt)
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, common.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, common.ErrUserDisabled
	}

	// 3. Generate JWT
	token, err := s.jwtManager.GenerateToken(user.ID, user.Username, user.Role)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if err := s.users.UpdateLastLogin(user.ID, now); err != nil {
		pkglogger.GetLogger().Warn().Err(err).Int64("user_id", user.ID).Msg("last login update failed")
	} else {
		user.LastLoginAt = &now
	}

	return &domain.LoginResponse{
		AccessToken: token,
		ExpiresIn:   int(s.jwtManager.ExpiresIn().Seconds()),
		User:        user,
	}, nil
}

// Me returns the logged-in admin
func (s *authService) Me(userID int64) (*domain.AdminUser, error) {
	user, err := s.users.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrUserNotFound
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, common.ErrUserDisabled
	}
	return user, nil
}

// EnsureAdmin creates the first admin account when none exists.
// Returns true if an account was created.
func (s *authService) EnsureAdmin(username, password, email string) (bool, error) {
	count, err := s.users.Count()
	if err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}
	if username == "" || password == "" {
		return false, common.ErrInvalidInput
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return false, err
	}

	user := &domain.AdminUser{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Role:         domain.RoleAdmin,
		IsActive:     true,
	}
	if err := s.users.Create(user); err != nil {
		return false, err
	}
	return true, nil
}
