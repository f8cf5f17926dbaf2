package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto desde el panel del manager.
type CreateProductRequest struct {
	CategoryID  string          `json:"category_id" validate:"required,uuid"`
	StoreID     string          `json:"store_id" validate:"required,uuid"`
	Name        string          `json:"name" validate:"required,min=1,max=200"`
	Description string          `json:"description" validate:"max=5000"`
	Price       decimal.Decimal `json:"price" validate:"gt=0,money"`
	Available   *bool           `json:"available"`
	ExternalURL string          `json:"external_url" validate:"omitempty,url,max=500"`
}

// UpdateProductRequest edición parcial; campos nil no se modifican.
type UpdateProductRequest struct {
	CategoryID  *string          `json:"category_id" validate:"omitempty,uuid"`
	StoreID     *string          `json:"store_id" validate:"omitempty,uuid"`
	Name        *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Description *string          `json:"description" validate:"omitempty,max=5000"`
	Price       *decimal.Decimal `json:"price" validate:"omitempty,gt=0,money"`
	Available   *bool            `json:"available"`
	ExternalURL *string          `json:"external_url" validate:"omitempty,url,max=500"`
}

// AvailabilityRequest cambio de disponibilidad de un producto.
type AvailabilityRequest struct {
	Available *bool `json:"available" validate:"required"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Slug         string          `json:"slug"`
	Description  string          `json:"description"`
	Price        decimal.Decimal `json:"price"`
	Available    bool            `json:"available"`
	CategoryID   string          `json:"category_id"`
	CategoryName string          `json:"category_name,omitempty"`
	CategorySlug string          `json:"category_slug,omitempty"`
	StoreID      string          `json:"store_id"`
	StoreCity    string          `json:"store_city,omitempty"`
	StoreAddress string          `json:"store_address,omitempty"`
	CreatedBy    string          `json:"created_by"`
	ImageURL     string          `json:"image_url,omitempty"`
	ExternalURL  string          `json:"external_url,omitempty"`
	URL          string          `json:"url"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
