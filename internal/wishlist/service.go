package wishlist

import (
	"context"
	"strings"

	"gadget-shop-be/internal/logger"
	"gadget-shop-be/internal/product"
	"gadget-shop-be/internal/utils"

	"go.uber.org/zap"
)

type Service interface {
	Add(ctx context.Context, req ItemRequest) (UpdateResult, error)
	Remove(ctx context.Context, req ItemRequest) (UpdateResult, error)
	List(ctx context.Context, userEmail string) ([]product.Product, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Add(ctx context.Context, req ItemRequest) (UpdateResult, error) {
	req, err := normalize(req)
	if err != nil {
		return UpdateResult{}, err
	}

	res, err := s.repo.Add(ctx, req.UserEmail, req.ProductID)
	if err != nil {
		return UpdateResult{}, err
	}

	logger.FromCtx(ctx).Info("wishlist add",
		zap.String("email", req.UserEmail),
		zap.String("product_id", req.ProductID),
		zap.Int64("modified", res.ModifiedCount),
	)
	return res, nil
}

// Remove of an absent product is not an error; ModifiedCount is 0.
func (s *service) Remove(ctx context.Context, req ItemRequest) (UpdateResult, error) {
	req, err := normalize(req)
	if err != nil {
		return UpdateResult{}, err
	}

	res, err := s.repo.Remove(ctx, req.UserEmail, req.ProductID)
	if err != nil {
		return UpdateResult{}, err
	}

	logger.FromCtx(ctx).Info("wishlist remove",
		zap.String("email", req.UserEmail),
		zap.String("product_id", req.ProductID),
		zap.Int64("modified", res.ModifiedCount),
	)
	return res, nil
}

func (s *service) List(ctx context.Context, userEmail string) ([]product.Product, error) {
	products, err := s.repo.ListProducts(ctx, strings.TrimSpace(userEmail))
	if err != nil {
		return nil, err
	}
	if products == nil {
		products = []product.Product{}
	}
	return products, nil
}

func normalize(req ItemRequest) (ItemRequest, error) {
	req.UserEmail = strings.TrimSpace(req.UserEmail)
	if err := utils.Validate(req); err != nil {
		return req, err
	}

	id, err := product.ParseID(strings.TrimSpace(req.ProductID))
	if err != nil {
		return req, err
	}
	req.ProductID = id
	return req, nil
}
