package user

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"gadget-shop-be/internal/logger"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

type Repository interface {
	Create(ctx context.Context, u NewUser, passwordHash string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindRole(ctx context.Context, email string) (Role, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

// Create relies on the users_email_key unique index; a duplicate email
// surfaces as ErrUserExists instead of a prior existence check.
func (r *repository) Create(ctx context.Context, u NewUser, passwordHash string) (*User, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Create"),
		zap.String("email", u.Email),
	)

	attrs, err := json.Marshal(attributesOrEmpty(u.Attributes))
	if err != nil {
		return nil, fmt.Errorf("encode user attributes: %w", err)
	}

	query := `
		INSERT INTO users (email, role, password_hash, attributes)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	created := &User{
		Email:        u.Email,
		Role:         u.Role,
		PasswordHash: passwordHash,
		Attributes:   u.Attributes,
	}

	err = r.db.QueryRowContext(ctx, query,
		u.Email, string(u.Role), nullable(passwordHash), string(attrs),
	).Scan(&created.ID, &created.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == PgUniqueViolation {
			log.Info("user already exists")
			return nil, ErrUserExists
		}
		log.Error("db: failed to insert user", zap.Error(err))
		return nil, err
	}

	return created, nil
}

func (r *repository) FindByEmail(ctx context.Context, email string) (*User, error) {
	query := `
		SELECT
			u.id,
			u.email,
			u.role,
			COALESCE(u.password_hash, ''),
			u.attributes,
			u.created_at,
			COALESCE(
				array_agg(w.product_id::text ORDER BY w.created_at) FILTER (WHERE w.product_id IS NOT NULL),
				'{}'
			)
		FROM users u
		LEFT JOIN wishlist_items w ON w.user_id = u.id
		WHERE u.email = $1
		GROUP BY u.id
	`

	var (
		u     User
		role  string
		attrs []byte
	)
	err := r.db.QueryRowContext(ctx, query, email).Scan(
		&u.ID, &u.Email, &role, &u.PasswordHash, &attrs, &u.CreatedAt, pq.Array(&u.Wishlist),
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		logger.FromCtx(ctx).Error("db: failed to find user",
			zap.String("email", email),
			zap.Error(err),
		)
		return nil, err
	}

	u.Role = Role(role)

	if len(attrs) > 0 {
		if err := json.Unmarshal(attrs, &u.Attributes); err != nil {
			return nil, fmt.Errorf("decode user attributes: %w", err)
		}
	}

	return &u, nil
}

// FindRole reads only the role column; the role guard calls it on every
// privileged request.
func (r *repository) FindRole(ctx context.Context, email string) (Role, error) {
	var role string
	err := r.db.QueryRowContext(ctx, `SELECT role FROM users WHERE email = $1`, email).Scan(&role)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrUserNotFound
		}
		return "", err
	}
	return Role(role), nil
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func attributesOrEmpty(m map[string]interface{}) map[string]interface{} {
	if m == nil {
		return map[string]interface{}{}
	}
	return m
}
