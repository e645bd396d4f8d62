package wishlist

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"gadget-shop-be/internal/logger"
	"gadget-shop-be/internal/product"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

type Repository interface {
	Add(ctx context.Context, userEmail, productID string) (UpdateResult, error)
	Remove(ctx context.Context, userEmail, productID string) (UpdateResult, error)
	ListProducts(ctx context.Context, userEmail string) ([]product.Product, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

// Add inserts the pair unless it is already present. The lookup, the write
// and both counts run as one statement.
func (r *repository) Add(ctx context.Context, userEmail, productID string) (UpdateResult, error) {
	query := `
		WITH u AS (
			SELECT id FROM users WHERE email = $1
		), ins AS (
			INSERT INTO wishlist_items (user_id, product_id)
			SELECT id, $2::uuid FROM u
			ON CONFLICT (user_id, product_id) DO NOTHING
			RETURNING 1
		)
		SELECT (SELECT COUNT(*) FROM u), (SELECT COUNT(*) FROM ins)
	`
	return r.update(ctx, "Add", query, userEmail, productID)
}

func (r *repository) Remove(ctx context.Context, userEmail, productID string) (UpdateResult, error) {
	query := `
		WITH u AS (
			SELECT id FROM users WHERE email = $1
		), del AS (
			DELETE FROM wishlist_items w
			USING u
			WHERE w.user_id = u.id AND w.product_id = $2
			RETURNING 1
		)
		SELECT (SELECT COUNT(*) FROM u), (SELECT COUNT(*) FROM del)
	`
	return r.update(ctx, "Remove", query, userEmail, productID)
}

func (r *repository) update(ctx context.Context, method, query, userEmail, productID string) (UpdateResult, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", method),
		zap.String("email", userEmail),
		zap.String("product_id", productID),
	)

	res := UpdateResult{Acknowledged: true}
	err := r.db.QueryRowContext(ctx, query, userEmail, productID).Scan(&res.MatchedCount, &res.ModifiedCount)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == PgForeignKeyViolation {
			log.Info("wishlist references unknown product")
			return UpdateResult{}, product.ErrProductNotFound
		}
		log.Error("db: wishlist update failed", zap.Error(err))
		return UpdateResult{}, fmt.Errorf("wishlist %s: %w", method, err)
	}

	log.Debug("wishlist updated",
		zap.Int64("matched", res.MatchedCount),
		zap.Int64("modified", res.ModifiedCount),
	)
	return res, nil
}

// ListProducts resolves the stored identifiers into full products, oldest
// entry first. An unknown user yields an empty list.
func (r *repository) ListProducts(ctx context.Context, userEmail string) ([]product.Product, error) {
	query := `
		SELECT p.id, p.title, p.category, p.brand, p.price, p.seller_email, p.attributes, p.created_at
		FROM wishlist_items w
		JOIN users u ON u.id = w.user_id
		JOIN products p ON p.id = w.product_id
		WHERE u.email = $1
		ORDER BY w.created_at, p.id
	`

	rows, err := r.db.QueryContext(ctx, query, userEmail)
	if err != nil {
		logger.FromCtx(ctx).Error("db: failed to list wishlist",
			zap.String("email", userEmail),
			zap.Error(err),
		)
		return nil, fmt.Errorf("list wishlist: %w", err)
	}
	defer rows.Close()

	return product.ScanProducts(rows)
}
