package request

type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" validate:"required,oneof=customer seller"`

	// Seller fields, required when role is seller
	BusinessName    *string `json:"business_name,omitempty" validate:"required_if=Role seller,omitempty,min=2,max=100"`
	BusinessAddress *string `json:"business_address,omitempty" validate:"omitempty,max=255"`

	// Customer fields
	ShippingAddress *string `json:"shipping_address,omitempty" validate:"omitempty,max=255"`

	Phone *string `json:"phone,omitempty" validate:"omitempty,min=10,max=15"`
}

// LoginRequest takes an email address or a username in Identifier.
type LoginRequest struct {
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password" validate:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type LogoutRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}
