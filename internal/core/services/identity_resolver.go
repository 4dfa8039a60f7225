package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"fuelpass/internal/adapters/persistence/models"
	"fuelpass/internal/adapters/persistence/repositories"
	"fuelpass/internal/core/domain"
	"fuelpass/internal/pkg/jwt"

	"gorm.io/gorm"
)

// CredentialSource yields a candidate token string. ok is false when the
// source carries no token at all (as opposed to an invalid one).
type CredentialSource func() (token string, ok bool)

// FromBearerHeader extracts a token from an Authorization header value.
// A header without the Bearer prefix counts as absent.
func FromBearerHeader(header string) CredentialSource {
	return func() (string, bool) {
		if !strings.HasPrefix(header, "Bearer ") {
			return "", false
		}
		return strings.TrimPrefix(header, "Bearer "), true
	}
}

// FromCookie extracts a token from a cookie value.
func FromCookie(value string) CredentialSource {
	return func() (string, bool) {
		if value == "" {
			return "", false
		}
		return value, true
	}
}

// IdentityResolver turns request credential material into an authenticated
// user. It holds no per-request state; callers cache the result for the
// request's duration.
type IdentityResolver struct {
	tokens   *jwt.Service
	userRepo repositories.UserRepository
}

// NewIdentityResolver creates a new identity resolver
func NewIdentityResolver(tokens *jwt.Service, userRepo repositories.UserRepository) *IdentityResolver {
	return &IdentityResolver{
		tokens:   tokens,
		userRepo: userRepo,
	}
}

// Resolve tries the credential sources in order and authenticates against
// the first one that is syntactically present. The first present source is
// used exclusively: when an Authorization header carries an invalid or
// expired token, the request stays unauthenticated even if a later cookie
// source holds a valid one.
func (r *IdentityResolver) Resolve(ctx context.Context, sources ...CredentialSource) (*models.User, error) {
	var tokenString string
	found := false
	for _, source := range sources {
		if token, ok := source(); ok {
			tokenString = token
			found = true
			break
		}
	}
	if !found {
		return nil, domain.ErrUnauthenticated
	}

	claims, err := r.tokens.Validate(tokenString)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%w: %s", domain.ErrUnauthenticated, domain.ErrTokenExpired)
		}
		return nil, fmt.Errorf("%w: %s", domain.ErrUnauthenticated, domain.ErrInvalidToken)
	}

	// Refresh tokens only mint new access tokens; they never authorize
	// requests directly.
	if claims.Kind != jwt.KindAccess {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnauthenticated, domain.ErrInvalidToken)
	}

	user, err := r.userRepo.GetByEmail(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUnauthenticated
		}
		return nil, err
	}

	if !user.IsActive {
		return nil, domain.ErrUnauthenticated
	}

	return user, nil
}
