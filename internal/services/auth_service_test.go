// internal/services/auth_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/falconprime/backend/internal/config"
	"github.com/falconprime/backend/internal/models"
	"github.com/falconprime/backend/internal/utils"
)

func testConfig() *config.Config {
	return &config.Config{
		Environment: "test",
		Session: config.SessionConfig{
			SecretKey:  "test-secret",
			CookieName: "falcon_admin_session",
			TTL:        1,
		},
	}
}

func TestLogin(t *testing.T) {
	db := newTestDB(t)
	cfg := testConfig()
	utils.SetJWTSecret(cfg.Session.SecretKey)
	svc := NewAuthService(db, cfg)

	admin := &models.Admin{Email: "admin@falconprime.com", Name: "Admin"}
	require.NoError(t, admin.SetPassword("correcto-horse"))
	require.NoError(t, db.Create(admin).Error)

	t.Run("valid credentials", func(t *testing.T) {
		resp, err := svc.Login(&LoginRequest{
			Email:    "Admin@FalconPrime.com",
			Password: "correcto-horse",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, resp.SessionToken)
		assert.Equal(t, 3600, resp.ExpiresIn)
		assert.NotNil(t, resp.Admin.LastLoginAt)

		claims, err := utils.ValidateSessionToken(resp.SessionToken)
		require.NoError(t, err)
		assert.Equal(t, admin.ID.String(), claims.AdminID)
		assert.Equal(t, "admin@falconprime.com", claims.Email)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(&LoginRequest{
			Email:    "admin@falconprime.com",
			Password: "incorrecto",
		})
		require.EqualError(t, err, "invalid email or password")
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Login(&LoginRequest{
			Email:    "nadie@falconprime.com",
			Password: "correcto-horse",
		})
		require.EqualError(t, err, "invalid email or password")
	})

	t.Run("malformed request", func(t *testing.T) {
		_, err := svc.Login(&LoginRequest{Email: "no-es-email", Password: "x"})
		require.Error(t, err)
	})
}
