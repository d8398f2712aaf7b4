package entity

import (
	"time"

	"github.com/google/uuid"
)

// CustomerOrderStats aggregates a customer's order history. Spend figures
// count DELIVERED orders only.
type CustomerOrderStats struct {
	TotalOrders       int64
	TotalSpent        float64
	AverageOrderValue float64
	StatusCounts      map[OrderStatus]int64
}

// SellerStats aggregates across every order containing at least one of the
// seller's products. Revenue counts the seller's own line items on
// DELIVERED orders only.
type SellerStats struct {
	TotalProducts int64
	TotalOrders   int64
	TotalRevenue  float64
	PendingOrders int64
}

type RevenuePoint struct {
	Day     time.Time
	Orders  int64
	Revenue float64
}

type TopProduct struct {
	ProductID uuid.UUID
	Name      string
	UnitsSold int64
	Revenue   float64
}
