package response

import (
	"time"

	"watch-store/internal/data/entity"
)

type OrderItemResponse struct {
	ID          string  `json:"id"`
	ProductID   string  `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
	Subtotal    float64 `json:"subtotal"`
}

type OrderResponse struct {
	ID              string               `json:"id"`
	OrderNumber     string               `json:"order_number"`
	Status          entity.OrderStatus   `json:"status"`
	PaymentStatus   entity.PaymentStatus `json:"payment_status"`
	PaymentMethod   string               `json:"payment_method"`
	ShippingAddress string               `json:"shipping_address"`
	BillingAddress  string               `json:"billing_address"`
	Subtotal        float64              `json:"subtotal"`
	ShippingFee     float64              `json:"shipping_fee"`
	TaxAmount       float64              `json:"tax_amount"`
	DiscountAmount  float64              `json:"discount_amount"`
	TotalAmount     float64              `json:"total_amount"`
	Notes           *string              `json:"notes,omitempty"`
	ItemCount       int                  `json:"item_count"`
	Items           []OrderItemResponse  `json:"items,omitempty"`
	CreatedAt       time.Time            `json:"created_at"`
	UpdatedAt       time.Time            `json:"updated_at"`
}

type OrderStatsResponse struct {
	TotalOrders       int64                        `json:"total_orders"`
	TotalSpent        float64                      `json:"total_spent"`
	AverageOrderValue float64                      `json:"average_order_value"`
	StatusCounts      map[entity.OrderStatus]int64 `json:"status_counts"`
}

// Helper converters
func OrderItemToResponse(item *entity.OrderItem) OrderItemResponse {
	return OrderItemResponse{
		ID:          item.ID.String(),
		ProductID:   item.ProductID.String(),
		ProductName: item.ProductName,
		Quantity:    item.Quantity,
		Price:       item.Price,
		Subtotal:    item.Subtotal,
	}
}

func OrderToResponse(ord *entity.Order, items []*entity.OrderItem, itemCount int) OrderResponse {
	resp := OrderResponse{
		ID:              ord.ID.String(),
		OrderNumber:     ord.OrderNumber,
		Status:          ord.Status,
		PaymentStatus:   ord.PaymentStatus,
		PaymentMethod:   ord.PaymentMethod,
		ShippingAddress: ord.ShippingAddress,
		BillingAddress:  ord.BillingAddress,
		Subtotal:        ord.Subtotal,
		ShippingFee:     ord.ShippingFee,
		TaxAmount:       ord.TaxAmount,
		DiscountAmount:  ord.DiscountAmount,
		TotalAmount:     ord.TotalAmount,
		Notes:           ord.Notes,
		ItemCount:       itemCount,
		CreatedAt:       ord.CreatedAt,
		UpdatedAt:       ord.UpdatedAt,
	}

	for _, item := range items {
		resp.Items = append(resp.Items, OrderItemToResponse(item))
	}
	if items != nil {
		count := 0
		for _, item := range items {
			count += item.Quantity
		}
		resp.ItemCount = count
	}

	return resp
}

func OrderStatsToResponse(stats *entity.CustomerOrderStats) OrderStatsResponse {
	return OrderStatsResponse{
		TotalOrders:       stats.TotalOrders,
		TotalSpent:        stats.TotalSpent,
		AverageOrderValue: stats.AverageOrderValue,
		StatusCounts:      stats.StatusCounts,
	}
}
