package wishlist

// ItemRequest is the body of PATCH /wishlist/add and /wishlist/remove.
type ItemRequest struct {
	UserEmail string `json:"userEmail" validate:"required,email"`
	ProductID string `json:"productId" validate:"required"`
}

// UpdateResult reports a wishlist write. MatchedCount is 1 when the user
// exists; ModifiedCount is 1 only when the set actually changed.
type UpdateResult struct {
	Acknowledged  bool  `json:"acknowledged"`
	MatchedCount  int64 `json:"matchedCount"`
	ModifiedCount int64 `json:"modifiedCount"`
}
