package product

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var productRowColumns = []string{"id", "title", "category", "brand", "price", "seller_email", "attributes", "created_at"}

func TestRepository_Create(t *testing.T) {
	ctx := context.Background()
	price := 499.0
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	t.Run("Success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := NewRepository(db)

		input := NewProduct{
			Title:      "X1",
			Category:   "Phone",
			Brand:      "Acme",
			Price:      &price,
			Attributes: map[string]interface{}{"color": "black"},
		}

		mock.ExpectQuery(`INSERT INTO products`).
			WithArgs("X1", "Phone", "Acme", 499.0, "s@x.com", `{"color":"black"}`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).
				AddRow("6f9619ff-8b86-d011-b42d-00cf4fc964ff", now))

		p, err := repo.Create(ctx, input, "s@x.com")
		require.NoError(t, err)
		assert.Equal(t, "6f9619ff-8b86-d011-b42d-00cf4fc964ff", p.ID)
		assert.Equal(t, "s@x.com", p.SellerEmail)
		assert.Equal(t, now, p.CreatedAt)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("NilAttributesStoredAsEmptyObject", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := NewRepository(db)

		mock.ExpectQuery(`INSERT INTO products`).
			WithArgs("X1", "", "", 499.0, "s@x.com", `{}`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow("id-1", now))

		_, err = repo.Create(ctx, NewProduct{Title: "X1", Price: &price}, "s@x.com")
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("DBError", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := NewRepository(db)

		mock.ExpectQuery(`INSERT INTO products`).WillReturnError(errors.New("db down"))

		p, err := repo.Create(ctx, NewProduct{Title: "X1", Price: &price}, "s@x.com")
		assert.Nil(t, p)
		assert.ErrorContains(t, err, "insert product")
	})
}

func TestRepository_List(t *testing.T) {
	ctx := context.Background()
	now := time.Now().UTC()

	t.Run("BrandFilterSecondPage", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := NewRepository(db)

		brand := "Acme"
		spec := BuildQuery(ListOptions{Brand: &brand, Page: 2, Limit: 5})

		rows := sqlmock.NewRows(productRowColumns).
			AddRow("p-6", "X6", "Phone", "Acme", 300.0, "s@x.com", []byte(`{"color":"red"}`), now).
			AddRow("p-7", "X7", "Tablet", "Acme", 200.0, "s@x.com", []byte(`{}`), now)

		mock.ExpectQuery(regexp.QuoteMeta(`FROM products WHERE brand = $1 ORDER BY price DESC, id ASC LIMIT $2 OFFSET $3`)).
			WithArgs("Acme", 5, 5).
			WillReturnRows(rows)
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM products WHERE brand = $1`)).
			WithArgs("Acme").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

		products, total, err := repo.List(ctx, spec)
		require.NoError(t, err)
		assert.Equal(t, int64(7), total)
		require.Len(t, products, 2)
		assert.Equal(t, "p-6", products[0].ID)
		assert.Equal(t, "red", products[0].Attributes["color"])
		assert.Equal(t, 200.0, products[1].Price)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("EmptyPage", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := NewRepository(db)

		mock.ExpectQuery(`SELECT id, title`).
			WithArgs(9, 90).
			WillReturnRows(sqlmock.NewRows(productRowColumns))
		mock.ExpectQuery(`SELECT COUNT`).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))

		products, total, err := repo.List(ctx, BuildQuery(ListOptions{Page: 11}))
		require.NoError(t, err)
		assert.NotNil(t, products)
		assert.Empty(t, products)
		assert.Equal(t, int64(12), total)
	})

	t.Run("QueryError", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := NewRepository(db)

		mock.ExpectQuery(`SELECT id, title`).WillReturnError(errors.New("db error"))

		_, _, err = repo.List(ctx, BuildQuery(ListOptions{}))
		assert.ErrorContains(t, err, "list products")
	})

	t.Run("ScanError", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := NewRepository(db)

		mock.ExpectQuery(`SELECT id, title`).
			WillReturnRows(sqlmock.NewRows(productRowColumns).
				AddRow("p-1", "X1", "Phone", "Acme", "not-a-price", "s@x.com", []byte(`{}`), now))

		_, _, err = repo.List(ctx, BuildQuery(ListOptions{}))
		assert.ErrorContains(t, err, "scan product")
	})

	t.Run("CountError", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := NewRepository(db)

		mock.ExpectQuery(`SELECT id, title`).WillReturnRows(sqlmock.NewRows(productRowColumns))
		mock.ExpectQuery(`SELECT COUNT`).WillReturnError(errors.New("timeout"))

		_, _, err = repo.List(ctx, BuildQuery(ListOptions{}))
		assert.ErrorContains(t, err, "count products")
	})
}
