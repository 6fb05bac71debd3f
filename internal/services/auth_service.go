// internal/services/auth_service.go
package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/falconprime/backend/internal/config"
	"github.com/falconprime/backend/internal/models"
	"github.com/falconprime/backend/internal/utils"
)

// AuthService handles admin-panel login. There are no customer accounts;
// checkout is anonymous.
type AuthService struct {
	db  *gorm.DB
	cfg *config.Config
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	Admin        *models.Admin `json:"admin"`
	SessionToken string        `json:"session_token"`
	ExpiresIn    int           `json:"expires_in"` // in seconds
}

func NewAuthService(db *gorm.DB, cfg *config.Config) *AuthService {
	return &AuthService{
		db:  db,
		cfg: cfg,
	}
}

func (s *AuthService) Login(req *LoginRequest) (*AuthResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var admin models.Admin
	if err := s.db.Where("email = ?", email).First(&admin).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("invalid email or password")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if err := admin.CheckPassword(req.Password); err != nil {
		return nil, errors.New("invalid email or password")
	}

	// Update last login time
	now := time.Now()
	admin.LastLoginAt = &now
	s.db.Save(&admin)

	token, err := utils.GenerateSessionToken(admin.ID, admin.Email, s.cfg.Session.TTL)
	if err != nil {
		return nil, fmt.Errorf("failed to generate session token: %w", err)
	}

	return &AuthResponse{
		Admin:        &admin,
		SessionToken: token,
		ExpiresIn:    s.cfg.Session.TTL * 3600, // Convert hours to seconds
	}, nil
}

func (s *AuthService) GetAdmin(id string) (*models.Admin, error) {
	var admin models.Admin
	if err := s.db.First(&admin, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("admin not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &admin, nil
}
