package handler

import (
	"net/http"
	"strings"

	"gadget-shop-be/internal/user"
	"gadget-shop-be/internal/utils"

	"github.com/go-chi/chi/v5"
)

type UserHandler struct {
	users user.Service
}

func NewUserHandler(users user.Service) *UserHandler {
	return &UserHandler{users: users}
}

// GetUser handles GET /users/{email}.
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	email := strings.TrimSpace(chi.URLParam(r, "email"))

	u, err := h.users.GetUserByEmail(r.Context(), email)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, u)
}

// CreateUser handles POST /users.
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var input user.NewUser
	if err := decodeBody(r, &input); err != nil {
		writeError(w, r, err)
		return
	}

	created, err := h.users.Register(r.Context(), input)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, InsertResult{Acknowledged: true, InsertedID: created.ID})
}

// Authenticate handles POST /authentication.
func (h *UserHandler) Authenticate(w http.ResponseWriter, r *http.Request) {
	var creds user.Credentials
	if err := decodeBody(r, &creds); err != nil {
		writeError(w, r, err)
		return
	}

	token, err := h.users.Authenticate(r.Context(), creds)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]string{"token": token})
}
