package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un insumo del catálogo.
type CreateProductRequest struct {
	Name               string          `json:"name" validate:"required,min=1,max=200"`
	ActiveIngredient   string          `json:"active_ingredient" validate:"max=200"`
	UnitMeasure        string          `json:"unit_measure" validate:"required,oneof=L kg un"`
	Category           string          `json:"category" validate:"required"`
	DefaultPurchaseQty decimal.Decimal `json:"default_purchase_qty" validate:"gte=0"`
	ReferencePrice     decimal.Decimal `json:"reference_price" validate:"gte=0"`
}

// UpdateProductRequest entrada para actualizar un insumo. La identidad no cambia.
type UpdateProductRequest struct {
	Name               *string          `json:"name" validate:"omitempty,min=1,max=200"`
	ActiveIngredient   *string          `json:"active_ingredient" validate:"omitempty,max=200"`
	Category           *string          `json:"category"`
	DefaultPurchaseQty *decimal.Decimal `json:"default_purchase_qty"`
	ReferencePrice     *decimal.Decimal `json:"reference_price"`
}

// ProductResponse salida de un insumo.
type ProductResponse struct {
	ID                 string          `json:"id"`
	Name               string          `json:"name"`
	ActiveIngredient   string          `json:"active_ingredient"`
	UnitMeasure        string          `json:"unit_measure"`
	Category           string          `json:"category"`
	DefaultPurchaseQty decimal.Decimal `json:"default_purchase_qty"`
	ReferencePrice     decimal.Decimal `json:"reference_price"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

// ProductListResponse lista paginada de insumos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
