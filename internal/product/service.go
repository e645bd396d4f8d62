package product

import (
	"context"
	"strings"
	"time"

	"gadget-shop-be/internal/logger"
	"gadget-shop-be/internal/utils"

	"go.uber.org/zap"
)

type Service interface {
	Create(ctx context.Context, input NewProduct) (*Product, error)
	List(ctx context.Context, opts ListOptions) (*ListResult, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// Create stores input on behalf of the authenticated seller in ctx.
func (s *service) Create(ctx context.Context, input NewProduct) (*Product, error) {
	sellerEmail, ok := utils.GetUserEmailFromContext(ctx)
	if !ok {
		return nil, ErrSellerMissing
	}

	input.Title = strings.TrimSpace(input.Title)
	if err := utils.Validate(input); err != nil {
		return nil, err
	}

	return s.repo.Create(ctx, input, sellerEmail)
}

func (s *service) List(ctx context.Context, opts ListOptions) (*ListResult, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "ListProducts"),
	)

	start := time.Now()
	spec := BuildQuery(opts)

	log.Debug("list products requested",
		zap.Int("skip", spec.Skip),
		zap.Int("limit", spec.Limit),
		zap.String("sort", string(spec.SortDir)),
		zap.Int("predicates", len(spec.Predicates)),
	)

	products, total, err := s.repo.List(ctx, spec)
	if err != nil {
		log.Error("failed to fetch product list",
			zap.Error(err),
			zap.Duration("duration", time.Since(start)),
		)
		return nil, err
	}

	brands, categories := Facets(products)

	log.Info("list products success",
		zap.Int("count", len(products)),
		zap.Int64("total", total),
		zap.Duration("duration", time.Since(start)),
	)

	return &ListResult{
		Products:      products,
		Brands:        brands,
		Categories:    categories,
		TotalProducts: total,
	}, nil
}
