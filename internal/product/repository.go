package product

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"gadget-shop-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	Create(ctx context.Context, p NewProduct, sellerEmail string) (*Product, error)
	List(ctx context.Context, spec QuerySpec) ([]Product, int64, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, p NewProduct, sellerEmail string) (*Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Create"),
		zap.String("seller_email", sellerEmail),
	)

	attrs := p.Attributes
	if attrs == nil {
		attrs = map[string]interface{}{}
	}
	encoded, err := json.Marshal(attrs)
	if err != nil {
		return nil, fmt.Errorf("encode product attributes: %w", err)
	}

	var price float64
	if p.Price != nil {
		price = *p.Price
	}

	query := `
		INSERT INTO products (title, category, brand, price, seller_email, attributes)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`

	created := &Product{
		Title:       p.Title,
		Category:    p.Category,
		Brand:       p.Brand,
		Price:       price,
		SellerEmail: sellerEmail,
		Attributes:  p.Attributes,
	}

	err = r.db.QueryRowContext(ctx, query,
		p.Title, p.Category, p.Brand, price, sellerEmail, string(encoded),
	).Scan(&created.ID, &created.CreatedAt)
	if err != nil {
		log.Error("db: failed to insert product", zap.Error(err))
		return nil, fmt.Errorf("insert product: %w", err)
	}

	log.Info("product created", zap.String("product_id", created.ID))
	return created, nil
}

// List returns one page for spec and the count of every matching row.
func (r *repository) List(ctx context.Context, spec QuerySpec) ([]Product, int64, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "List"),
	)

	query, args := spec.ListSQL()
	log.Debug("executing product list query",
		zap.String("query", query),
		zap.Any("args", args),
	)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("DB query failed", zap.Error(err))
		return nil, 0, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	products, err := ScanProducts(rows)
	if err != nil {
		log.Error("Row scan failed", zap.Error(err))
		return nil, 0, err
	}

	countQuery, countArgs := spec.CountSQL()

	var total int64
	if err := r.db.QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		log.Error("DB count failed", zap.Error(err))
		return nil, 0, fmt.Errorf("count products: %w", err)
	}

	return products, total, nil
}

// ScanProducts reads rows selected with the product column list.
func ScanProducts(rows *sql.Rows) ([]Product, error) {
	products := []Product{}

	for rows.Next() {
		var (
			p     Product
			attrs []byte
		)
		if err := rows.Scan(
			&p.ID, &p.Title, &p.Category, &p.Brand, &p.Price, &p.SellerEmail, &attrs, &p.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}

		if len(attrs) > 0 {
			if err := json.Unmarshal(attrs, &p.Attributes); err != nil {
				return nil, fmt.Errorf("decode product attributes: %w", err)
			}
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate products: %w", err)
	}
	return products, nil
}
