package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gadget-shop-be/internal/apperror"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTTL matches the ten day lifetime storefront clients expect.
const DefaultTTL = 10 * 24 * time.Hour

var (
	ErrMissingToken = apperror.Wrap(apperror.ErrUnauthenticated, "No token")
	ErrInvalidToken = apperror.Wrap(apperror.ErrUnauthenticated, "Invalid token")
)

// Claim is the identity carried by an access token.
type Claim struct {
	Email string `json:"email"`
}

type CustomClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

type Option func(*TokenService)

// WithClock overrides the time source used for issuing and verifying.
func WithClock(now func() time.Time) Option {
	return func(s *TokenService) { s.now = now }
}

func NewTokenService(secret string, ttl time.Duration, opts ...Option) *TokenService {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	s := &TokenService{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Issue signs claim with HS256 and an expiry of now+ttl.
func (s *TokenService) Issue(claim Claim) (string, error) {
	if len(s.secret) == 0 {
		return "", errors.New("token secret is not set")
	}

	now := s.now()
	claims := CustomClaims{
		Email: claim.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   claim.Email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify returns the claim of a valid token. Every failure, including an
// empty string, is reported as ErrUnauthenticated.
func (s *TokenService) Verify(tokenStr string) (Claim, error) {
	if strings.TrimSpace(tokenStr) == "" {
		return Claim{}, ErrMissingToken
	}

	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)

	var claims CustomClaims
	token, err := parser.ParseWithClaims(tokenStr, &claims, func(*jwt.Token) (interface{}, error) {
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return Claim{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if claims.Email == "" {
		return Claim{}, ErrInvalidToken
	}

	return Claim{Email: claims.Email}, nil
}
