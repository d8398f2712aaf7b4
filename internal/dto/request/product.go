package request

type CreateProductRequest struct {
	Name            string  `json:"name" validate:"required,min=2,max=200"`
	Description     *string `json:"description,omitempty" validate:"omitempty,max=2000"`
	Price           float64 `json:"price" validate:"required,gt=0"`
	Stock           int     `json:"stock" validate:"gte=0"`
	StockStatus     *string `json:"stock_status,omitempty" validate:"omitempty,oneof=in_stock out_of_stock pre_order"`
	Category        *string `json:"category,omitempty" validate:"omitempty,max=100"`
	ReferenceNumber *string `json:"reference_number,omitempty" validate:"omitempty,max=100"`
	Material        *string `json:"material,omitempty" validate:"omitempty,max=100"`
	CaseSize        *string `json:"case_size,omitempty" validate:"omitempty,max=50"`
	Featured        bool    `json:"featured"`
}

// UpdateProductRequest is a partial update; nil fields are left unchanged
type UpdateProductRequest struct {
	Name            *string  `json:"name,omitempty" validate:"omitempty,min=2,max=200"`
	Description     *string  `json:"description,omitempty" validate:"omitempty,max=2000"`
	Price           *float64 `json:"price,omitempty" validate:"omitempty,gt=0"`
	Stock           *int     `json:"stock,omitempty" validate:"omitempty,gte=0"`
	StockStatus     *string  `json:"stock_status,omitempty" validate:"omitempty,oneof=in_stock out_of_stock pre_order"`
	Category        *string  `json:"category,omitempty" validate:"omitempty,max=100"`
	ReferenceNumber *string  `json:"reference_number,omitempty" validate:"omitempty,max=100"`
	Material        *string  `json:"material,omitempty" validate:"omitempty,max=50"`
	CaseSize        *string  `json:"case_size,omitempty" validate:"omitempty,max=50"`
	Featured        *bool    `json:"featured,omitempty"`
}

type CreateCategoryRequest struct {
	Name        string  `json:"name" validate:"required,min=2,max=100"`
	Slug        string  `json:"slug" validate:"required,min=2,max=100,lowercase"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=500"`
	ImageURL    *string `json:"image_url,omitempty" validate:"omitempty,url"`
}
