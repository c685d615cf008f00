package models

import (
	"github.com/golang-jwt/jwt/v5"
)

type Role string

const (
	RoleCustomer Role = "customer"
	RoleFarmer   Role = "farmer"
	RoleAdmin    Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleCustomer, RoleFarmer, RoleAdmin:
		return true
	}

	return false
}

// Session is the authenticated identity held by the client. The JSON shape
// matches both the backend auth payload and the persisted session record.
type Session struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     Role   `json:"role"`
	Token    string `json:"token"`
}

// Complete reports whether every field is populated. A session is either
// fully populated or absent; partial records are discarded on restore.
func (s *Session) Complete() bool {
	if s == nil {
		return false
	}

	return s.ID != "" && s.Username != "" && s.Email != "" && s.Role.Valid() && s.Token != ""
}

// CanManageProducts gates the add-product affordance.
func (s *Session) CanManageProducts() bool {
	return s != nil && (s.Role == RoleFarmer || s.Role == RoleAdmin)
}

// CanManageProduct gates edit/delete on a single listing. Admins manage
// everything, farmers only their own listings.
func (s *Session) CanManageProduct(farmerID string) bool {
	if s == nil {
		return false
	}

	if s.Role == RoleAdmin {
		return true
	}

	return s.Role == RoleFarmer && s.ID == farmerID
}

// for registration
type RegisterRequest struct {
	Username        string `json:"username" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"-" validate:"required,eqfield=Password"`
}

// for login
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Claims mirrors the bearer token payload. The client never verifies the
// signature; it only inspects expiry to log a heads-up on restore.
type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}
