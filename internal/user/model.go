package user

import (
	"encoding/json"
	"time"

	"gadget-shop-be/internal/utils"
)

type Role string

const (
	RoleBuyer  Role = "buyer"
	RoleSeller Role = "seller"
	RoleAdmin  Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleBuyer, RoleSeller, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID           string
	Email        string
	Role         Role
	PasswordHash string
	// Wishlist holds product ids; order is not meaningful.
	Wishlist   []string
	Attributes map[string]interface{}
	CreatedAt  time.Time
}

func (u User) MarshalJSON() ([]byte, error) {
	wishlist := u.Wishlist
	if wishlist == nil {
		wishlist = []string{}
	}

	return utils.MergeFields(u.Attributes, map[string]interface{}{
		"id":        u.ID,
		"email":     u.Email,
		"role":      u.Role,
		"wishlist":  wishlist,
		"createdAt": u.CreatedAt,
	})
}

// NewUser is a registration payload. Fields other than email, role and
// password are kept verbatim in Attributes.
type NewUser struct {
	Email      string                 `json:"email" validate:"required,email"`
	Role       Role                   `json:"role,omitempty"`
	Password   string                 `json:"password,omitempty" validate:"omitempty,max=72"`
	Attributes map[string]interface{} `json:"-"`
}

var reservedUserFields = []string{"id", "_id", "email", "role", "password", "wishlist", "createdAt"}

func (n *NewUser) UnmarshalJSON(data []byte) error {
	type alias NewUser
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}

	extra, err := utils.ExtraFields(data, reservedUserFields...)
	if err != nil {
		return err
	}

	*n = NewUser(a)
	n.Attributes = extra
	return nil
}

// Credentials is the /authentication payload.
type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password,omitempty"`
}
