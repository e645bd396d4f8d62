package user

import "gadget-shop-be/internal/apperror"

var (
	ErrUserExists         = apperror.Wrap(apperror.ErrConflict, "User already exists")
	ErrUserNotFound       = apperror.Wrap(apperror.ErrNotFound, "User not found")
	ErrRoleNotAllowed     = apperror.Wrap(apperror.ErrInvalidInput, "role must be buyer or seller")
	ErrInvalidCredentials = apperror.Wrap(apperror.ErrUnauthenticated, "Invalid email or password")

	PgUniqueViolation = "23505"
)
