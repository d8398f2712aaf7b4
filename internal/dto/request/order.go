package request

type CheckoutRequest struct {
	ShippingAddress string  `json:"shipping_address" validate:"required,min=5,max=255"`
	BillingAddress  *string `json:"billing_address,omitempty" validate:"omitempty,min=5,max=255"`
	PaymentMethod   string  `json:"payment_method" validate:"required,min=2,max=50"`
	Notes           *string `json:"notes,omitempty" validate:"omitempty,max=500"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=PENDING PROCESSING SHIPPED DELIVERED CANCELLED"`
}
