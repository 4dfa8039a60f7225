package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrTokenExpired = errors.New("token has expired")
	ErrTokenInvalid = errors.New("token is invalid")
)

// Kind distinguishes access tokens from refresh tokens.
type Kind string

const (
	KindAccess  Kind = "access"
	KindRefresh Kind = "refresh"
)

const (
	// AccessTokenTTL is the validity window for access tokens.
	AccessTokenTTL = 24 * time.Hour
	// RefreshTokenTTL is the validity window for refresh tokens.
	RefreshTokenTTL = 7 * 24 * time.Hour
)

// Claims represents the JWT claims. Subject carries the user's email.
type Claims struct {
	Kind Kind `json:"kind"`
	jwt.RegisteredClaims
}

// Service issues and validates signed tokens. The signing secret and clock
// are fixed at construction; the service holds no mutable state.
type Service struct {
	secret []byte
	issuer string
	now    func() time.Time
}

// NewService creates a token service with the given signing secret.
func NewService(secret, issuer string) *Service {
	return NewServiceWithClock(secret, issuer, time.Now)
}

// NewServiceWithClock creates a token service with an explicit clock.
func NewServiceWithClock(secret, issuer string, now func() time.Time) *Service {
	return &Service{
		secret: []byte(secret),
		issuer: issuer,
		now:    now,
	}
}

// Issue generates a signed token for the subject. Expiry is derived from
// the token kind: 24h for access tokens, 168h for refresh tokens.
func (s *Service) Issue(subject string, kind Kind) (string, error) {
	ttl := AccessTokenTTL
	if kind == KindRefresh {
		ttl = RefreshTokenTTL
	}

	now := s.now()
	claims := Claims{
		Kind: kind,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    s.issuer,
			Subject:   subject,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Validate verifies the signature and expiry of a token string and returns
// its claims. Expiry is strict: a token is rejected from the moment
// now >= exp, with no grace period.
func (s *Service) Validate(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, ErrTokenInvalid
}
