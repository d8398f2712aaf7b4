package entity

import (
	"github.com/google/uuid"
)

// CartItem is one (customer, product) pairing. The pair is unique; adding
// the same product again increments quantity instead of inserting a row.
type CartItem struct {
	BaseNoDelete
	CustomerID uuid.UUID `db:"customer_id"`
	ProductID  uuid.UUID `db:"product_id"`
	Quantity   int       `db:"quantity"`
}
