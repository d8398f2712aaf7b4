package response

import (
	"time"

	"watch-store/internal/data/entity"
)

type ProductResponse struct {
	ID              string             `json:"id"`
	SellerID        string             `json:"seller_id"`
	Name            string             `json:"name"`
	Description     *string            `json:"description,omitempty"`
	Price           float64            `json:"price"`
	Stock           int                `json:"stock"`
	StockStatus     entity.StockStatus `json:"stock_status"`
	Category        *string            `json:"category,omitempty"`
	ReferenceNumber *string            `json:"reference_number,omitempty"`
	Material        *string            `json:"material,omitempty"`
	CaseSize        *string            `json:"case_size,omitempty"`
	ImageURL        *string            `json:"image_url,omitempty"`
	Featured        bool               `json:"featured"`
	CreatedAt       time.Time          `json:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at"`
}

type CategoryResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Slug        string  `json:"slug"`
	Description *string `json:"description,omitempty"`
	ImageURL    *string `json:"image_url,omitempty"`
}

// Helper converters
func ProductToResponse(product *entity.Product) ProductResponse {
	return ProductResponse{
		ID:              product.ID.String(),
		SellerID:        product.SellerID.String(),
		Name:            product.Name,
		Description:     product.Description,
		Price:           product.Price,
		Stock:           product.Stock,
		StockStatus:     product.StockStatus,
		Category:        product.Category,
		ReferenceNumber: product.ReferenceNumber,
		Material:        product.Material,
		CaseSize:        product.CaseSize,
		ImageURL:        product.ImageURL,
		Featured:        product.Featured,
		CreatedAt:       product.CreatedAt,
		UpdatedAt:       product.UpdatedAt,
	}
}

func CategoryToResponse(category *entity.Category) CategoryResponse {
	return CategoryResponse{
		ID:          category.ID.String(),
		Name:        category.Name,
		Slug:        category.Slug,
		Description: category.Description,
		ImageURL:    category.ImageURL,
	}
}
