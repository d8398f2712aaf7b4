package entity

import (
	"time"

	"github.com/google/uuid"
)

type UserRole string

const (
	RoleCustomer UserRole = "customer"
	RoleSeller   UserRole = "seller"
)

func (r UserRole) Valid() bool {
	return r == RoleCustomer || r == RoleSeller
}

type User struct {
	Base
	Username      string     `db:"username"`
	Email         string     `db:"email"`
	PasswordHash  string     `db:"password"`
	Role          UserRole   `db:"role"`
	EmailVerified bool       `db:"email_verified"`
	IsActive      bool       `db:"is_active"`
	LastLoginAt   *time.Time `db:"last_login_at"`
}

// SellerProfile is the seller variant of a principal, 1:1 with users.
// The role is chosen once at signup and never changes.
type SellerProfile struct {
	UserID          uuid.UUID `db:"user_id"`
	BusinessName    string    `db:"business_name"`
	BusinessAddress *string   `db:"business_address"`
	Phone           *string   `db:"phone"`
	CreatedAt       time.Time `db:"created_at"`
}

// CustomerProfile is the customer variant of a principal, 1:1 with users.
type CustomerProfile struct {
	UserID          uuid.UUID `db:"user_id"`
	ShippingAddress *string   `db:"shipping_address"`
	Phone           *string   `db:"phone"`
	CreatedAt       time.Time `db:"created_at"`
}
