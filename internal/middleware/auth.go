package middleware

import (
	"context"
	"errors"
	"net/http"

	"gadget-shop-be/internal/apperror"
	"gadget-shop-be/internal/auth"
	"gadget-shop-be/internal/logger"
	"gadget-shop-be/internal/user"
	"gadget-shop-be/internal/utils"

	"go.uber.org/zap"
)

type TokenVerifier interface {
	Verify(token string) (auth.Claim, error)
}

// RoleLookup resolves the stored role for an email.
type RoleLookup interface {
	GetRole(ctx context.Context, email string) (user.Role, error)
}

// RequireAuth rejects requests without a valid bearer token and stores the
// token email in the request context.
func RequireAuth(tokens TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claim, err := tokens.Verify(auth.ExtractBearerToken(r))
			if err != nil {
				logger.FromCtx(r.Context()).Debug("token rejected",
					zap.String("path", r.URL.Path),
					zap.Error(err),
				)
				writeError(w, err)
				return
			}

			noteEmail(r.Context(), claim.Email)
			next.ServeHTTP(w, r.WithContext(utils.SetUserContext(r.Context(), claim.Email)))
		})
	}
}

// RequireRole admits callers whose stored role is one of allowed. The role
// is read on every request, so a demotion takes effect immediately. Must be
// mounted after RequireAuth.
//
// The gate trusts the token's email, and /authentication signs tokens for
// password-less seller accounts without a credential check.
func RequireRole(roles RoleLookup, allowed ...user.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := logger.FromCtx(ctx)

			email, ok := utils.GetUserEmailFromContext(ctx)
			if !ok {
				writeError(w, auth.ErrMissingToken)
				return
			}

			role, err := roles.GetRole(ctx, email)
			if err != nil {
				if errors.Is(err, apperror.ErrNotFound) {
					writeError(w, apperror.ErrForbidden)
					return
				}
				log.Error("role lookup failed", zap.String("email", email), zap.Error(err))
				writeError(w, err)
				return
			}

			if !hasRole(role, allowed) {
				log.Warn("forbidden access",
					zap.String("email", email),
					zap.String("role", string(role)),
					zap.String("path", r.URL.Path),
				)
				writeError(w, apperror.ErrForbidden)
				return
			}

			next.ServeHTTP(w, r.WithContext(utils.SetUserRole(ctx, string(role))))
		})
	}
}

func hasRole(role user.Role, allowed []user.Role) bool {
	for _, a := range allowed {
		if role == a {
			return true
		}
	}
	return false
}

func writeError(w http.ResponseWriter, err error) {
	utils.WriteJSONError(w, apperror.Message(err), apperror.StatusFromError(err))
}
