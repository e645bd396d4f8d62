package product

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProduct_Unmarshal(t *testing.T) {
	var p NewProduct
	err := json.Unmarshal([]byte(`{"title":"X1","category":"Phone","brand":"Acme","price":499.5,"color":"black","ram":8}`), &p)
	require.NoError(t, err)

	assert.Equal(t, "X1", p.Title)
	assert.Equal(t, "Phone", p.Category)
	assert.Equal(t, "Acme", p.Brand)
	require.NotNil(t, p.Price)
	assert.Equal(t, 499.5, *p.Price)
	assert.Equal(t, "black", p.Attributes["color"])
	assert.Equal(t, json.Number("8"), p.Attributes["ram"])
	assert.NotContains(t, p.Attributes, "title")
}

func TestProduct_MarshalJSON(t *testing.T) {
	p := Product{
		ID:          "11111111-1111-1111-1111-111111111111",
		Title:       "X1",
		Category:    "Phone",
		Brand:       "Acme",
		Price:       10,
		SellerEmail: "s@x.com",
		Attributes:  map[string]interface{}{"color": "black"},
		CreatedAt:   time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	data, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"id": "11111111-1111-1111-1111-111111111111",
		"title": "X1",
		"category": "Phone",
		"brand": "Acme",
		"price": 10,
		"sellerEmail": "s@x.com",
		"createdAt": "2025-01-01T00:00:00Z",
		"color": "black"
	}`, string(data))
}

func TestParseID(t *testing.T) {
	id, err := ParseID("6F9619FF-8B86-D011-B42D-00CF4FC964FF")
	require.NoError(t, err)
	assert.Equal(t, "6f9619ff-8b86-d011-b42d-00cf4fc964ff", id)

	_, err = ParseID("not-an-id")
	assert.ErrorIs(t, err, ErrInvalidProductID)
}
