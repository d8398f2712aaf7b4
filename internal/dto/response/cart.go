package response

import (
	"time"

	"watch-store/internal/data/entity"
)

type CartItemResponse struct {
	ID        string          `json:"id"`
	Product   ProductResponse `json:"product"`
	Quantity  int             `json:"quantity"`
	LineTotal float64         `json:"line_total"`
}

type CartResponse struct {
	Items      []CartItemResponse `json:"items"`
	TotalItems int                `json:"total_items"`
	Subtotal   float64            `json:"subtotal"`
}

type WishlistItemResponse struct {
	ID        string          `json:"id"`
	Product   ProductResponse `json:"product"`
	CreatedAt time.Time       `json:"created_at"`
}

// Helper converters
func CartItemToResponse(item *entity.CartItem, product *entity.Product) CartItemResponse {
	return CartItemResponse{
		ID:        item.ID.String(),
		Product:   ProductToResponse(product),
		Quantity:  item.Quantity,
		LineTotal: product.Price * float64(item.Quantity),
	}
}

func WishlistItemToResponse(item *entity.WishlistItem, product *entity.Product) WishlistItemResponse {
	return WishlistItemResponse{
		ID:        item.ID.String(),
		Product:   ProductToResponse(product),
		CreatedAt: item.CreatedAt,
	}
}
