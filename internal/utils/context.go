package utils

type contextKey string

const (
	UserEmailKey contextKey = "email"
	UserRoleKey  contextKey = "role"
)
