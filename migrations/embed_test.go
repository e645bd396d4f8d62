package migrations

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFS(t *testing.T) {
	files, err := fs.Glob(FS, "*.sql")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"00001_create_users.sql",
		"00002_create_products.sql",
		"00003_create_wishlist_items.sql",
	}, files)

	for _, name := range files {
		data, err := fs.ReadFile(FS, name)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(string(data), "-- +goose Up"), name)
		assert.Contains(t, string(data), "-- +goose Down", name)
	}
}

func TestWishlistSchema(t *testing.T) {
	data, err := fs.ReadFile(FS, "00003_create_wishlist_items.sql")
	require.NoError(t, err)
	assert.Contains(t, string(data), "PRIMARY KEY (user_id, product_id)")
	assert.Contains(t, string(data), "REFERENCES products (id)")
}
