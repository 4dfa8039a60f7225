package services

import (
	"context"
	"errors"
	"log"

	"fuelpass/internal/adapters/persistence/models"
	"fuelpass/internal/adapters/persistence/repositories"
	"fuelpass/internal/core/domain"
	"fuelpass/internal/pkg/jwt"
	"fuelpass/internal/pkg/password"

	"gorm.io/gorm"
)

// AuthService handles login and token refresh
type AuthService struct {
	userRepo repositories.UserRepository
	tokens   *jwt.Service
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo repositories.UserRepository, tokens *jwt.Service) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		tokens:   tokens,
	}
}

// LoginInput represents login input
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse represents authentication response
type AuthResponse struct {
	User         *models.UserResponse `json:"user"`
	AccessToken  string               `json:"access_token"`
	RefreshToken string               `json:"refresh_token"`
}

// Login authenticates a user and issues an access/refresh token pair.
// Unknown email, deactivated account and wrong password all map to the
// same ErrInvalidCredentials so the response does not reveal which
// check failed.
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*AuthResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !user.IsActive {
		return nil, domain.ErrInvalidCredentials
	}

	if !password.Verify(input.Password, user.Password) {
		return nil, domain.ErrInvalidCredentials
	}

	pair, err := s.issuePair(user.Email)
	if err != nil {
		return nil, err
	}

	log.Printf("user logged in: %s", user.Email)

	return &AuthResponse{
		User:         user.ToResponse(),
		AccessToken:  pair.access,
		RefreshToken: pair.refresh,
	}, nil
}

// Refresh validates a refresh token and issues a brand-new token pair.
// The subject's active status is re-resolved on every refresh. Previously
// issued refresh tokens stay usable until their natural expiry: there is
// no server-side revocation list, so issuing a new pair does not
// invalidate an older, still-unexpired refresh token.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*AuthResponse, error) {
	claims, err := s.tokens.Validate(refreshToken)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrInvalidToken
	}

	if claims.Kind != jwt.KindRefresh {
		return nil, domain.ErrInvalidToken
	}

	user, err := s.userRepo.GetByEmail(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrInvalidToken
		}
		return nil, err
	}

	if !user.IsActive {
		return nil, domain.ErrAccountDeactivated
	}

	pair, err := s.issuePair(user.Email)
	if err != nil {
		return nil, err
	}

	log.Printf("token refreshed for user: %s", user.Email)

	return &AuthResponse{
		User:         user.ToResponse(),
		AccessToken:  pair.access,
		RefreshToken: pair.refresh,
	}, nil
}

// GetUserByID gets a user by ID
func (s *AuthService) GetUserByID(ctx context.Context, userID uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

type tokenPair struct {
	access  string
	refresh string
}

func (s *AuthService) issuePair(subject string) (*tokenPair, error) {
	access, err := s.tokens.Issue(subject, jwt.KindAccess)
	if err != nil {
		return nil, err
	}

	refresh, err := s.tokens.Issue(subject, jwt.KindRefresh)
	if err != nil {
		return nil, err
	}

	return &tokenPair{access: access, refresh: refresh}, nil
}
