package request

// CreateProductRequest represents a product creation request
type CreateProductRequest struct {
	Name     string  `json:"name" binding:"required,min=1,max=255"`
	Price    float64 `json:"price" binding:"required,gt=0"`
	Category string  `json:"category" binding:"omitempty,max=100"`
	Barcode  string  `json:"barcode" binding:"required,max=100"`
}

// UpdateProductRequest represents a product update request
type UpdateProductRequest struct {
	Name     *string  `json:"name" binding:"omitempty,min=1,max=255"`
	Price    *float64 `json:"price" binding:"omitempty,gt=0"`
	Category *string  `json:"category" binding:"omitempty,max=100"`
	Barcode  *string  `json:"barcode" binding:"omitempty,min=1,max=100"`
}

// ListFilterRequest represents list filter parameters
type ListFilterRequest struct {
	Search  string `form:"search"`
	Page    int    `form:"page"`
	PerPage int    `form:"per_page"`
}
