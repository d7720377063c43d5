package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateCategoryRequest body para POST /api/categories.
type CreateCategoryRequest struct {
	Name string `json:"name"`
	Kind string `json:"kind"` // raw | finished
}

// UpdateCategoryRequest body para PUT /api/categories/:id.
type UpdateCategoryRequest struct {
	Name string `json:"name"`
}

// CategoryResponse categoría para respuestas.
type CategoryResponse struct {
	ID        string    `json:"id"`
	Kind      string    `json:"kind"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ProductResponse bucket de stock para listados.
type ProductResponse struct {
	ID           string          `json:"id"`
	CategoryID   string          `json:"category_id"`
	CategoryName string          `json:"category_name"`
	Kind         string          `json:"kind"`
	Quantity     int64           `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
}

// ProductListResponse listado de buckets con el valor total del conjunto.
type ProductListResponse struct {
	Products   []ProductResponse `json:"products"`
	TotalValue decimal.Decimal   `json:"total_value"`
	Page       PageResponse      `json:"page"`
}
