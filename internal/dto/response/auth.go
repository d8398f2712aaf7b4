package response

import (
	"time"

	"watch-store/internal/data/entity"
)

type UserResponse struct {
	ID            string                   `json:"id"`
	Username      string                   `json:"username"`
	Email         string                   `json:"email"`
	Role          entity.UserRole          `json:"role"`
	EmailVerified bool                     `json:"email_verified"`
	LastLoginAt   *time.Time               `json:"last_login_at,omitempty"`
	CreatedAt     time.Time                `json:"created_at"`
	Seller        *SellerProfileResponse   `json:"seller_profile,omitempty"`
	Customer      *CustomerProfileResponse `json:"customer_profile,omitempty"`
}

type SellerProfileResponse struct {
	BusinessName    string  `json:"business_name"`
	BusinessAddress *string `json:"business_address,omitempty"`
	Phone           *string `json:"phone,omitempty"`
}

type CustomerProfileResponse struct {
	ShippingAddress *string `json:"shipping_address,omitempty"`
	Phone           *string `json:"phone,omitempty"`
}

type AuthResponse struct {
	User             UserResponse `json:"user"`
	AccessToken      string       `json:"access_token"`
	AccessExpiresAt  time.Time    `json:"access_expires_at"`
	RefreshToken     string       `json:"refresh_token"`
	RefreshExpiresAt time.Time    `json:"refresh_expires_at"`
}

// Helper converters
func UserToResponse(user *entity.User) UserResponse {
	return UserResponse{
		ID:            user.ID.String(),
		Username:      user.Username,
		Email:         user.Email,
		Role:          user.Role,
		EmailVerified: user.EmailVerified,
		LastLoginAt:   user.LastLoginAt,
		CreatedAt:     user.CreatedAt,
	}
}

func SellerProfileToResponse(profile *entity.SellerProfile) *SellerProfileResponse {
	if profile == nil {
		return nil
	}
	return &SellerProfileResponse{
		BusinessName:    profile.BusinessName,
		BusinessAddress: profile.BusinessAddress,
		Phone:           profile.Phone,
	}
}

func CustomerProfileToResponse(profile *entity.CustomerProfile) *CustomerProfileResponse {
	if profile == nil {
		return nil
	}
	return &CustomerProfileResponse{
		ShippingAddress: profile.ShippingAddress,
		Phone:           profile.Phone,
	}
}
