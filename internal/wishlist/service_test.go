package wishlist

import (
	"context"
	"errors"
	"testing"

	"gadget-shop-be/internal/apperror"
	"gadget-shop-be/internal/product"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Add(ctx context.Context, userEmail, productID string) (UpdateResult, error) {
	args := m.Called(ctx, userEmail, productID)
	return args.Get(0).(UpdateResult), args.Error(1)
}

func (m *MockRepository) Remove(ctx context.Context, userEmail, productID string) (UpdateResult, error) {
	args := m.Called(ctx, userEmail, productID)
	return args.Get(0).(UpdateResult), args.Error(1)
}

func (m *MockRepository) ListProducts(ctx context.Context, userEmail string) ([]product.Product, error) {
	args := m.Called(ctx, userEmail)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]product.Product), args.Error(1)
}

func TestService_Add(t *testing.T) {
	ctx := context.Background()

	t.Run("NormalizesInput", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		want := UpdateResult{Acknowledged: true, MatchedCount: 1, ModifiedCount: 1}
		repo.On("Add", ctx, "a@x.com", productID).Return(want, nil)

		got, err := svc.Add(ctx, ItemRequest{UserEmail: " a@x.com ", ProductID: "6F9619FF-8B86-D011-B42D-00CF4FC964FF"})
		require.NoError(t, err)
		assert.Equal(t, want, got)
		repo.AssertExpectations(t)
	})

	t.Run("InvalidProductID", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		_, err := svc.Add(ctx, ItemRequest{UserEmail: "a@x.com", ProductID: "abc"})
		assert.ErrorIs(t, err, product.ErrInvalidProductID)
		repo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("MissingFields", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		_, err := svc.Add(ctx, ItemRequest{})
		assert.ErrorIs(t, err, apperror.ErrInvalidInput)
	})

	t.Run("RepoError", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("Add", ctx, "a@x.com", productID).Return(UpdateResult{}, product.ErrProductNotFound)

		_, err := svc.Add(ctx, ItemRequest{UserEmail: "a@x.com", ProductID: productID})
		assert.ErrorIs(t, err, product.ErrProductNotFound)
	})
}

func TestService_Remove(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)
	svc := NewService(repo)

	repo.On("Remove", ctx, "a@x.com", productID).
		Return(UpdateResult{Acknowledged: true, MatchedCount: 1}, nil)

	res, err := svc.Remove(ctx, ItemRequest{UserEmail: "a@x.com", ProductID: productID})
	require.NoError(t, err)
	assert.True(t, res.Acknowledged)
	assert.Zero(t, res.ModifiedCount)
}

func TestService_List(t *testing.T) {
	ctx := context.Background()

	t.Run("NilBecomesEmpty", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("ListProducts", ctx, "a@x.com").Return(nil, nil)

		products, err := svc.List(ctx, "a@x.com")
		require.NoError(t, err)
		assert.NotNil(t, products)
		assert.Empty(t, products)
	})

	t.Run("Error", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("ListProducts", ctx, "a@x.com").Return(nil, errors.New("db error"))

		_, err := svc.List(ctx, "a@x.com")
		assert.Error(t, err)
	})
}
