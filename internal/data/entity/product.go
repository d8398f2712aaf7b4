package entity

import (
	"github.com/google/uuid"
)

type StockStatus string

const (
	StockStatusInStock    StockStatus = "in_stock"
	StockStatusOutOfStock StockStatus = "out_of_stock"
	StockStatusPreOrder   StockStatus = "pre_order"
)

type Product struct {
	BaseNoDelete
	SellerID        uuid.UUID   `db:"seller_id"`
	Name            string      `db:"name"`
	Description     *string     `db:"description"`
	Price           float64     `db:"price"`
	Stock           int         `db:"stock"`
	StockStatus     StockStatus `db:"stock_status"`
	Category        *string     `db:"category"`
	ReferenceNumber *string     `db:"reference_number"`
	Material        *string     `db:"material"`
	CaseSize        *string     `db:"case_size"`
	ImageURL        *string     `db:"image_url"`
	ImageHandle     *string     `db:"image_handle"`
	Featured        bool        `db:"featured"`
}

// DeriveStockStatus keeps the availability flag consistent with the stock
// count. A pre_order override survives stock changes until stock runs out.
func DeriveStockStatus(stock int, current StockStatus) StockStatus {
	if stock <= 0 {
		return StockStatusOutOfStock
	}
	if current == StockStatusPreOrder {
		return StockStatusPreOrder
	}
	return StockStatusInStock
}

// ProductSort enumerates the supported list orderings
type ProductSort string

const (
	SortPriceAsc  ProductSort = "price_asc"
	SortPriceDesc ProductSort = "price_desc"
	SortNameAsc   ProductSort = "name_asc"
	SortNameDesc  ProductSort = "name_desc"
	SortNewest    ProductSort = "newest"
)

func (s ProductSort) Valid() bool {
	switch s {
	case SortPriceAsc, SortPriceDesc, SortNameAsc, SortNameDesc, SortNewest:
		return true
	}
	return false
}

// ProductFilter composes conjunctively; nil fields are ignored
type ProductFilter struct {
	Category *string
	Featured *bool
	Search   *string
	MinPrice *float64
	MaxPrice *float64
	SellerID *uuid.UUID
	Sort     ProductSort
}
