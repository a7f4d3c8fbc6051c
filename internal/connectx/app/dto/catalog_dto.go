package dto

import "time"

// Product содержит данные товара.
type Product struct {
	ID          string    `json:"id"`
	TenantID    string    `json:"tenant_id"`
	CategoryID  string    `json:"category_id,omitempty"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Price       float64   `json:"price"`
	Quantity    int       `json:"quantity"`
	ImageURL    string    `json:"image_url,omitempty"`
	IsListed    bool      `json:"is_listed"`
	CreatedAt   time.Time `json:"created_at"`
}

// CreateProductRequest содержит данные для создания товара.
type CreateProductRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
	CategoryID  string  `json:"category_id,omitempty"`
	ImageURL    string  `json:"image_url,omitempty"`
}

// UpdateProductRequest содержит изменяемые поля товара.
// Нулевые указатели означают, что поле не меняется.
type UpdateProductRequest struct {
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Quantity    *int     `json:"quantity,omitempty"`
	CategoryID  *string  `json:"category_id,omitempty"`
	ImageURL    *string  `json:"image_url,omitempty"`
	IsListed    *bool    `json:"is_listed,omitempty"`
}

// Category содержит данные категории товаров.
type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	ParentID    string `json:"parent_id,omitempty"`
}

// CreateCategoryRequest содержит данные для создания категории.
type CreateCategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	ParentID    string `json:"parent_id,omitempty"`
}
