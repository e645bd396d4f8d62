package product

import (
	"encoding/json"
	"time"

	"gadget-shop-be/internal/utils"

	"github.com/google/uuid"
)

type Product struct {
	ID          string
	Title       string
	Category    string
	Brand       string
	Price       float64
	SellerEmail string
	// Attributes are the seller-supplied fields beyond the typed ones.
	Attributes map[string]interface{}
	CreatedAt  time.Time
}

func (p Product) MarshalJSON() ([]byte, error) {
	return utils.MergeFields(p.Attributes, map[string]interface{}{
		"id":          p.ID,
		"title":       p.Title,
		"category":    p.Category,
		"brand":       p.Brand,
		"price":       p.Price,
		"sellerEmail": p.SellerEmail,
		"createdAt":   p.CreatedAt,
	})
}

type NewProduct struct {
	Title      string                 `json:"title" validate:"required"`
	Category   string                 `json:"category"`
	Brand      string                 `json:"brand"`
	Price      *float64               `json:"price" validate:"required,gte=0"`
	Attributes map[string]interface{} `json:"-"`
}

var reservedProductFields = []string{"id", "_id", "title", "category", "brand", "price", "sellerEmail", "createdAt"}

func (n *NewProduct) UnmarshalJSON(data []byte) error {
	type alias NewProduct
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}

	extra, err := utils.ExtraFields(data, reservedProductFields...)
	if err != nil {
		return err
	}

	*n = NewProduct(a)
	n.Attributes = extra
	return nil
}

// ListResult is one page of products plus facets taken from that page.
type ListResult struct {
	Products      []Product `json:"products"`
	Brands        []string  `json:"brands"`
	Categories    []string  `json:"categories"`
	TotalProducts int64     `json:"totalProducts"`
}

// ParseID normalises a product identifier.
func ParseID(raw string) (string, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return "", ErrInvalidProductID
	}
	return id.String(), nil
}
