package services_test

import (
	"context"
	"testing"
	"time"

	"fuelpass/internal/adapters/persistence/models"
	"fuelpass/internal/core/domain"
	"fuelpass/internal/core/services"
	"fuelpass/internal/pkg/jwt"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTokenService() *jwt.Service {
	return jwt.NewService("test-secret", "fuelpass-test")
}

func activeOperator() *models.User {
	return &models.User{
		ID:       1,
		Email:    "operator@example.com",
		Role:     models.RoleAircraftOperator,
		IsActive: true,
	}
}

func TestResolveFromHeader(t *testing.T) {
	tokens := newTokenService()
	userRepo := new(mockUserRepository)
	resolver := services.NewIdentityResolver(tokens, userRepo)

	access, err := tokens.Issue("operator@example.com", jwt.KindAccess)
	require.NoError(t, err)

	userRepo.On("GetByEmail", mock.Anything, "operator@example.com").Return(activeOperator(), nil)

	user, err := resolver.Resolve(context.Background(),
		services.FromBearerHeader("Bearer "+access),
		services.FromCookie(""),
	)
	require.NoError(t, err)
	assert.Equal(t, uint(1), user.ID)
}

func TestResolveFromCookieWhenHeaderAbsent(t *testing.T) {
	tokens := newTokenService()
	userRepo := new(mockUserRepository)
	resolver := services.NewIdentityResolver(tokens, userRepo)

	access, err := tokens.Issue("operator@example.com", jwt.KindAccess)
	require.NoError(t, err)

	userRepo.On("GetByEmail", mock.Anything, "operator@example.com").Return(activeOperator(), nil)

	user, err := resolver.Resolve(context.Background(),
		services.FromBearerHeader(""),
		services.FromCookie(access),
	)
	require.NoError(t, err)
	assert.Equal(t, "operator@example.com", user.Email)
}

func TestResolveBadHeaderDoesNotFallBackToCookie(t *testing.T) {
	tokens := newTokenService()
	userRepo := new(mockUserRepository)
	resolver := services.NewIdentityResolver(tokens, userRepo)

	validCookie, err := tokens.Issue("operator@example.com", jwt.KindAccess)
	require.NoError(t, err)

	// The header is present but carries garbage; the valid cookie must not
	// rescue the request.
	_, err = resolver.Resolve(context.Background(),
		services.FromBearerHeader("Bearer garbage"),
		services.FromCookie(validCookie),
	)
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
	userRepo.AssertNotCalled(t, "GetByEmail", mock.Anything, mock.Anything)
}

func TestResolveHeaderWithoutBearerPrefixCountsAsAbsent(t *testing.T) {
	tokens := newTokenService()
	userRepo := new(mockUserRepository)
	resolver := services.NewIdentityResolver(tokens, userRepo)

	access, err := tokens.Issue("operator@example.com", jwt.KindAccess)
	require.NoError(t, err)

	userRepo.On("GetByEmail", mock.Anything, "operator@example.com").Return(activeOperator(), nil)

	user, err := resolver.Resolve(context.Background(),
		services.FromBearerHeader(access), // no Bearer prefix
		services.FromCookie(access),
	)
	require.NoError(t, err)
	assert.Equal(t, uint(1), user.ID)
}

func TestResolveNoCredentials(t *testing.T) {
	resolver := services.NewIdentityResolver(newTokenService(), new(mockUserRepository))

	_, err := resolver.Resolve(context.Background(),
		services.FromBearerHeader(""),
		services.FromCookie(""),
	)
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestResolveRejectsRefreshToken(t *testing.T) {
	tokens := newTokenService()
	resolver := services.NewIdentityResolver(tokens, new(mockUserRepository))

	refresh, err := tokens.Issue("operator@example.com", jwt.KindRefresh)
	require.NoError(t, err)

	_, err = resolver.Resolve(context.Background(),
		services.FromBearerHeader("Bearer "+refresh),
	)
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestResolveExpiredToken(t *testing.T) {
	now := time.Now().Add(-48 * time.Hour)
	issuer := jwt.NewServiceWithClock("test-secret", "fuelpass-test", func() time.Time { return now })
	resolver := services.NewIdentityResolver(newTokenService(), new(mockUserRepository))

	expired, err := issuer.Issue("operator@example.com", jwt.KindAccess)
	require.NoError(t, err)

	_, err = resolver.Resolve(context.Background(),
		services.FromBearerHeader("Bearer "+expired),
	)
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestResolveUnknownUser(t *testing.T) {
	tokens := newTokenService()
	userRepo := new(mockUserRepository)
	resolver := services.NewIdentityResolver(tokens, userRepo)

	access, err := tokens.Issue("ghost@example.com", jwt.KindAccess)
	require.NoError(t, err)

	userRepo.On("GetByEmail", mock.Anything, "ghost@example.com").Return(nil, gorm.ErrRecordNotFound)

	_, err = resolver.Resolve(context.Background(),
		services.FromBearerHeader("Bearer "+access),
	)
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestResolveDeactivatedUser(t *testing.T) {
	tokens := newTokenService()
	userRepo := new(mockUserRepository)
	resolver := services.NewIdentityResolver(tokens, userRepo)

	access, err := tokens.Issue("operator@example.com", jwt.KindAccess)
	require.NoError(t, err)

	inactive := activeOperator()
	inactive.IsActive = false
	userRepo.On("GetByEmail", mock.Anything, "operator@example.com").Return(inactive, nil)

	_, err = resolver.Resolve(context.Background(),
		services.FromBearerHeader("Bearer "+access),
	)
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}
