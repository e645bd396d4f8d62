package product

import "gadget-shop-be/internal/apperror"

var (
	ErrProductNotFound  = apperror.Wrap(apperror.ErrNotFound, "Product not found")
	ErrInvalidProductID = apperror.Wrap(apperror.ErrInvalidInput, "productId must be a valid id")
	ErrSellerMissing    = apperror.Wrap(apperror.ErrUnauthenticated, "seller identity missing")

	ErrInvalidQuery = apperror.Wrap(apperror.ErrInvalidInput, "invalid product query")
	ErrInvalidPage  = apperror.Wrap(ErrInvalidQuery, "page must be a positive integer")
	ErrInvalidLimit = apperror.Wrap(ErrInvalidQuery, "limit must be a positive integer")
)
