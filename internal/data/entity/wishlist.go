package entity

import (
	"github.com/google/uuid"
)

type WishlistItem struct {
	BaseSimple
	CustomerID uuid.UUID `db:"customer_id"`
	ProductID  uuid.UUID `db:"product_id"`
}
