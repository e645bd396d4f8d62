package user

import (
	"context"
	"errors"
	"strings"

	"gadget-shop-be/internal/auth"
	"gadget-shop-be/internal/logger"
	"gadget-shop-be/internal/utils"

	"go.uber.org/zap"
)

type TokenIssuer interface {
	Issue(claim auth.Claim) (string, error)
}

type Service interface {
	Register(ctx context.Context, u NewUser) (*User, error)
	Authenticate(ctx context.Context, creds Credentials) (string, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	GetRole(ctx context.Context, email string) (Role, error)
}

type service struct {
	repo   Repository
	tokens TokenIssuer
}

func NewService(repo Repository, tokens TokenIssuer) Service {
	return &service{repo: repo, tokens: tokens}
}

func (s *service) Register(ctx context.Context, u NewUser) (*User, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Register"),
	)

	u.Email = strings.TrimSpace(u.Email)
	if err := utils.Validate(u); err != nil {
		return nil, err
	}

	if u.Role == "" {
		u.Role = RoleBuyer
	}
	if !u.Role.Valid() || u.Role == RoleAdmin {
		log.Warn("rejected self-assigned role", zap.String("role", string(u.Role)))
		return nil, ErrRoleNotAllowed
	}

	var hash string
	if u.Password != "" {
		var err error
		hash, err = HashPassword(u.Password)
		if errors.Is(err, ErrPasswordTooLong) {
			return nil, err
		}
		if err != nil {
			log.Error("failed to hash password", zap.Error(err))
			return nil, err
		}
	}

	created, err := s.repo.Create(ctx, u, hash)
	if err != nil {
		return nil, err
	}

	log.Info("register service completed",
		zap.String("user_id", created.ID),
		zap.String("email", created.Email),
		zap.String("role", string(created.Role)),
	)
	return created, nil
}

// Authenticate signs a token for creds.Email. Accounts registered with a
// password must present it; password-less accounts, and emails with no
// account at all, are signed as-is for existing storefront clients.
func (s *service) Authenticate(ctx context.Context, creds Credentials) (string, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Authenticate"),
	)

	creds.Email = strings.TrimSpace(creds.Email)
	if err := utils.Validate(creds); err != nil {
		return "", err
	}

	u, err := s.repo.FindByEmail(ctx, creds.Email)
	switch {
	case errors.Is(err, ErrUserNotFound):
		log.Debug("issuing token for unregistered email")
	case err != nil:
		return "", err
	case u.PasswordHash != "" && !CheckPasswordHash(creds.Password, u.PasswordHash):
		log.Info("password mismatch", zap.String("email", creds.Email))
		return "", ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(auth.Claim{Email: creds.Email})
	if err != nil {
		log.Error("failed to issue token", zap.Error(err))
		return "", err
	}
	return token, nil
}

func (s *service) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	return s.repo.FindByEmail(ctx, email)
}

func (s *service) GetRole(ctx context.Context, email string) (Role, error) {
	return s.repo.FindRole(ctx, email)
}
