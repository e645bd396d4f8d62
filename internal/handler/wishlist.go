package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"gadget-shop-be/internal/apperror"
	"gadget-shop-be/internal/auth"
	"gadget-shop-be/internal/logger"
	"gadget-shop-be/internal/user"
	"gadget-shop-be/internal/utils"
	"gadget-shop-be/internal/wishlist"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type RoleLookup interface {
	GetRole(ctx context.Context, email string) (user.Role, error)
}

type WishlistHandler struct {
	wishlists wishlist.Service
	roles     RoleLookup
}

func NewWishlistHandler(wishlists wishlist.Service, roles RoleLookup) *WishlistHandler {
	return &WishlistHandler{wishlists: wishlists, roles: roles}
}

// Add handles PATCH /wishlist/add.
func (h *WishlistHandler) Add(w http.ResponseWriter, r *http.Request) {
	h.update(w, r, h.wishlists.Add)
}

// Remove handles PATCH /wishlist/remove.
func (h *WishlistHandler) Remove(w http.ResponseWriter, r *http.Request) {
	h.update(w, r, h.wishlists.Remove)
}

func (h *WishlistHandler) update(
	w http.ResponseWriter,
	r *http.Request,
	apply func(context.Context, wishlist.ItemRequest) (wishlist.UpdateResult, error),
) {
	var req wishlist.ItemRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.authorize(r.Context(), req.UserEmail); err != nil {
		writeError(w, r, err)
		return
	}

	res, err := apply(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, res)
}

// Get handles GET /wishlist/{userId}, where userId is the owner's email.
func (h *WishlistHandler) Get(w http.ResponseWriter, r *http.Request) {
	owner := strings.TrimSpace(chi.URLParam(r, "userId"))

	if err := h.authorize(r.Context(), owner); err != nil {
		writeError(w, r, err)
		return
	}

	products, err := h.wishlists.List(r.Context(), owner)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, products)
}

// authorize lets the token owner through; anyone else must hold the admin role.
func (h *WishlistHandler) authorize(ctx context.Context, owner string) error {
	caller, ok := utils.GetUserEmailFromContext(ctx)
	if !ok {
		return auth.ErrMissingToken
	}
	if caller == strings.TrimSpace(owner) {
		return nil
	}

	role, err := h.roles.GetRole(ctx, caller)
	if err != nil && !errors.Is(err, apperror.ErrNotFound) {
		return err
	}
	if role != user.RoleAdmin {
		logger.FromCtx(ctx).Warn("wishlist access denied",
			zap.String("caller", caller),
			zap.String("owner", owner),
		)
		return apperror.ErrForbidden
	}
	return nil
}
