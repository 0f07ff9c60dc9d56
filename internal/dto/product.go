package dto

// CreateProductRequest is the add-product form.
type CreateProductRequest struct {
	Name     string  `json:"name" validate:"required,notblank,max=120"`
	Category string  `json:"category" validate:"required,notblank"`
	Price    float64 `json:"price" validate:"gte=0"`
	Stock    int     `json:"stock" validate:"gte=0"`
	Sales    int     `json:"sales" validate:"gte=0"`
	Image    string  `json:"image" validate:"omitempty,url"`
}

// UpdateProductRequest changes selected fields of a product.
type UpdateProductRequest struct {
	Name     *string  `json:"name" validate:"omitempty,notblank,max=120"`
	Category *string  `json:"category" validate:"omitempty,notblank"`
	Price    *float64 `json:"price" validate:"omitempty,gte=0"`
	Stock    *int     `json:"stock" validate:"omitempty,gte=0"`
	Sales    *int     `json:"sales" validate:"omitempty,gte=0"`
	Image    *string  `json:"image" validate:"omitempty,url"`
}
