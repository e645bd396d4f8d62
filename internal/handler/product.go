package handler

import (
	"net/http"

	"gadget-shop-be/internal/product"
	"gadget-shop-be/internal/utils"
)

type ProductHandler struct {
	products product.Service
}

func NewProductHandler(products product.Service) *ProductHandler {
	return &ProductHandler{products: products}
}

// AddProduct handles POST /add-products. The seller guard runs first.
func (h *ProductHandler) AddProduct(w http.ResponseWriter, r *http.Request) {
	var input product.NewProduct
	if err := decodeBody(r, &input); err != nil {
		writeError(w, r, err)
		return
	}

	created, err := h.products.Create(r.Context(), input)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, InsertResult{Acknowledged: true, InsertedID: created.ID})
}

// ListProducts handles GET /allproducts.
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	opts, err := product.ParseListOptions(r.URL.Query())
	if err != nil {
		writeError(w, r, err)
		return
	}

	res, err := h.products.List(r.Context(), opts)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, res)
}
