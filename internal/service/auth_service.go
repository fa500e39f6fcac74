package service

import (
	"context"
	"time"

	"mailmate/internal/logger"
	"mailmate/internal/model"
	"mailmate/internal/repository"
)

type authService struct {
	userRepo repository.UserRepository
	logger   *logger.Logger
}

func NewAuthService(userRepo repository.UserRepository, logger *logger.Logger) AuthService {
	return &authService{
		userRepo: userRepo,
		logger:   logger,
	}
}

func (s *authService) GetOrCreateUser(ctx context.Context, googleID, email, name, accessToken, refreshToken string, tokenExpiry time.Time) (*model.User, error) {
	existingUser, err := s.userRepo.FindByGoogleID(ctx, googleID)
	if err != nil {
		// User doesn't exist, create new one
		newUser := model.NewUser(googleID, email, name, accessToken, refreshToken, tokenExpiry)
		if err := s.userRepo.Create(ctx, newUser); err != nil {
			s.logger.Error("Failed to create user:", err)
			return nil, err
		}
		s.logger.Info("Created new user:", newUser.Email)
		return newUser, nil
	}

	// User exists, refresh the stored tokens
	if accessToken != "" {
		existingUser.AccessToken = accessToken
	}
	if refreshToken != "" {
		existingUser.RefreshToken = refreshToken
	}
	if !tokenExpiry.IsZero() {
		existingUser.TokenExpiry = tokenExpiry
	}
	existingUser.UpdatedAt = time.Now()

	if err := s.userRepo.Update(ctx, existingUser); err != nil {
		s.logger.Error("Failed to update user tokens:", err)
		return nil, err
	}
	s.logger.Info("Updated tokens for user:", existingUser.Email)

	return existingUser, nil
}

func (s *authService) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}
