package entity

import (
	"github.com/google/uuid"
)

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "PENDING"
	OrderStatusProcessing OrderStatus = "PROCESSING"
	OrderStatusShipped    OrderStatus = "SHIPPED"
	OrderStatusDelivered  OrderStatus = "DELIVERED"
	OrderStatusCancelled  OrderStatus = "CANCELLED"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// Forward-only state machine; CANCELLED is reachable from PENDING and
// PROCESSING only.
var validNext = map[OrderStatus]map[OrderStatus]bool{
	OrderStatusPending:    {OrderStatusProcessing: true, OrderStatusCancelled: true},
	OrderStatusProcessing: {OrderStatusShipped: true, OrderStatusCancelled: true},
	OrderStatusShipped:    {OrderStatusDelivered: true},
	OrderStatusDelivered:  {},
	OrderStatusCancelled:  {},
}

func CanTransition(from, to OrderStatus) bool {
	return validNext[from][to]
}

// PaymentStatus is tracked independently of order status
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "PENDING"
	PaymentStatusPaid     PaymentStatus = "PAID"
	PaymentStatusFailed   PaymentStatus = "FAILED"
	PaymentStatusRefunded PaymentStatus = "REFUNDED"
)

type Order struct {
	BaseNoDelete
	CustomerID      uuid.UUID     `db:"customer_id"`
	OrderNumber     string        `db:"order_number"`
	Status          OrderStatus   `db:"status"`
	PaymentStatus   PaymentStatus `db:"payment_status"`
	PaymentMethod   string        `db:"payment_method"`
	ShippingAddress string        `db:"shipping_address"`
	BillingAddress  string        `db:"billing_address"`
	Subtotal        float64       `db:"subtotal"`
	ShippingFee     float64       `db:"shipping_fee"`
	TaxAmount       float64       `db:"tax_amount"`
	DiscountAmount  float64       `db:"discount_amount"`
	TotalAmount     float64       `db:"total_amount"`
	Notes           *string       `db:"notes"`
}

// OrderItem snapshots the unit price at order time. It must never be
// recomputed from the live product row.
type OrderItem struct {
	BaseSimple
	OrderID     uuid.UUID `db:"order_id"`
	ProductID   uuid.UUID `db:"product_id"`
	ProductName string    `db:"product_name"`
	Quantity    int       `db:"quantity"`
	Price       float64   `db:"price"`
	Subtotal    float64   `db:"subtotal"`
}

// Pricing carries the checkout fee policy
type Pricing struct {
	TaxRate           float64
	ShippingFee       float64
	FreeShipThreshold float64
}

// Totals computes the order amounts from a subtotal:
// total = subtotal + shipping + tax - discount.
func (p Pricing) Totals(subtotal float64) (shipping, tax, discount, total float64) {
	shipping = p.ShippingFee
	if subtotal >= p.FreeShipThreshold {
		shipping = 0
	}
	tax = subtotal * p.TaxRate
	discount = 0
	total = subtotal + shipping + tax - discount
	return shipping, tax, discount, total
}
