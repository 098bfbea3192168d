package service

import (
	"context"

	"github.com/orderdesk/orderdesk-api/internal/domain/entity"
	"github.com/orderdesk/orderdesk-api/internal/domain/repository"
	"github.com/orderdesk/orderdesk-api/pkg/apperror"
	"github.com/orderdesk/orderdesk-api/pkg/utils"
)

// AuthService handles operator authentication
type AuthService struct {
	userRepo   repository.UserRepository
	jwtManager *utils.JWTManager
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo repository.UserRepository, jwtManager *utils.JWTManager) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtManager: jwtManager,
	}
}

// LoginInput represents the login input
type LoginInput struct {
	Username string
	Password string
}

// LoginOutput represents the login output
type LoginOutput struct {
	User        *entity.User
	AccessToken string
}

// Login authenticates an operator and returns an access token
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*LoginOutput, error) {
	user, err := s.userRepo.GetByUsername(ctx, input.Username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.ErrInvalidCredentials
	}
	if !utils.CheckPasswordHash(input.Password, user.Password) {
		return nil, apperror.ErrInvalidCredentials
	}

	accessToken, err := s.jwtManager.GenerateAccessToken(user.ID, user.Username, user.StoreID)
	if err != nil {
		return nil, err
	}

	return &LoginOutput{
		User:        user,
		AccessToken: accessToken,
	}, nil
}
