package handler

import (
	"context"

	"gadget-shop-be/internal/product"
	"gadget-shop-be/internal/user"
	"gadget-shop-be/internal/wishlist"

	"github.com/stretchr/testify/mock"
)

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Register(ctx context.Context, u user.NewUser) (*user.User, error) {
	args := m.Called(ctx, u)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserService) Authenticate(ctx context.Context, creds user.Credentials) (string, error) {
	args := m.Called(ctx, creds)
	return args.String(0), args.Error(1)
}

func (m *MockUserService) GetUserByEmail(ctx context.Context, email string) (*user.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserService) GetRole(ctx context.Context, email string) (user.Role, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(user.Role), args.Error(1)
}

type MockProductService struct {
	mock.Mock
}

func (m *MockProductService) Create(ctx context.Context, input product.NewProduct) (*product.Product, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Product), args.Error(1)
}

func (m *MockProductService) List(ctx context.Context, opts product.ListOptions) (*product.ListResult, error) {
	args := m.Called(ctx, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.ListResult), args.Error(1)
}

type MockWishlistService struct {
	mock.Mock
}

func (m *MockWishlistService) Add(ctx context.Context, req wishlist.ItemRequest) (wishlist.UpdateResult, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(wishlist.UpdateResult), args.Error(1)
}

func (m *MockWishlistService) Remove(ctx context.Context, req wishlist.ItemRequest) (wishlist.UpdateResult, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(wishlist.UpdateResult), args.Error(1)
}

func (m *MockWishlistService) List(ctx context.Context, userEmail string) ([]product.Product, error) {
	args := m.Called(ctx, userEmail)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]product.Product), args.Error(1)
}
