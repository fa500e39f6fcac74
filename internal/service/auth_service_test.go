package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mailmate/internal/logger"
	"mailmate/internal/repository/memory"
	"mailmate/internal/service"
)

func TestGetOrCreateUserCreatesOnFirstLogin(t *testing.T) {
	userRepo := memory.NewInMemoryUserRepository()
	authService := service.NewAuthService(userRepo, logger.New())
	ctx := context.Background()

	user, err := authService.GetOrCreateUser(ctx, "google_123", "test@example.com", "Test User", "token-1", "refresh-1", time.Now().Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, "test@example.com", user.Email)
	assert.Equal(t, "token-1", user.AccessToken)

	found, err := authService.GetUserByEmail(ctx, "test@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)
}

func TestGetOrCreateUserRefreshesTokensOnRelogin(t *testing.T) {
	userRepo := memory.NewInMemoryUserRepository()
	authService := service.NewAuthService(userRepo, logger.New())
	ctx := context.Background()

	first, err := authService.GetOrCreateUser(ctx, "google_123", "test@example.com", "Test User", "token-1", "refresh-1", time.Time{})
	require.NoError(t, err)

	second, err := authService.GetOrCreateUser(ctx, "google_123", "test@example.com", "Test User", "token-2", "", time.Time{})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "token-2", second.AccessToken)
	// A missing refresh token on re-login keeps the stored one.
	assert.Equal(t, "refresh-1", second.RefreshToken)
}

func TestGetUserByEmailUnknown(t *testing.T) {
	authService := service.NewAuthService(memory.NewInMemoryUserRepository(), logger.New())

	_, err := authService.GetUserByEmail(context.Background(), "stranger@example.com")
	assert.ErrorIs(t, err, service.ErrUserNotFound)
}
