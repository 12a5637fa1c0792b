package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreatePurchaseOrderRequest body para POST /api/purchase-orders.
// Quantity vacío usa la cantidad de compra por defecto del producto.
type CreatePurchaseOrderRequest struct {
	ProductID string           `json:"product_id" validate:"required"`
	FarmID    string           `json:"farm_id" validate:"required"`
	Quantity  *decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal  `json:"unit_price" validate:"gte=0"`
}

// ReceivePurchaseOrderRequest datos de la recepción de mercadería.
type ReceivePurchaseOrderRequest struct {
	Supplier             string `json:"supplier" validate:"required,max=200"`
	InvoiceNumber        string `json:"invoice_number" validate:"required,max=60"`
	UpdateReferencePrice bool   `json:"update_reference_price"`
}

// PurchaseOrderResponse salida de una orden de compra.
type PurchaseOrderResponse struct {
	ID            string          `json:"id"`
	Number        int             `json:"number"`
	ProductID     string          `json:"product_id"`
	FarmID        string          `json:"farm_id"`
	Quantity      decimal.Decimal `json:"quantity"`
	Unit          string          `json:"unit"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	TotalValue    decimal.Decimal `json:"total_value"`
	Status        string          `json:"status"`
	Supplier      string          `json:"supplier,omitempty"`
	InvoiceNumber string          `json:"invoice_number,omitempty"`
	ApprovedAt    *time.Time      `json:"approved_at,omitempty"`
	ReceivedAt    *time.Time      `json:"received_at,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

// PurchaseOrderListResponse lista paginada de órdenes de compra.
type PurchaseOrderListResponse struct {
	Items []PurchaseOrderResponse `json:"items"`
	Page  PageResponse            `json:"page"`
}

// PurchaseSuggestionDTO cantidad a comprar para destrabar órdenes que esperan producto.
type PurchaseSuggestionDTO struct {
	ProductID     string          `json:"product_id"`
	ProductName   string          `json:"product_name"`
	FarmID        string          `json:"farm_id"`
	Required      decimal.Decimal `json:"required"`  // suma de órdenes en AWAITING_PRODUCT
	Available     decimal.Decimal `json:"available"` // disponible actual en la hacienda
	OnOrder       decimal.Decimal `json:"on_order"`  // compras pendientes o aprobadas aún no recibidas
	Shortfall     decimal.Decimal `json:"shortfall"` // Required - Available - OnOrder
	SuggestedQty  decimal.Decimal `json:"suggested_qty"`
	EstimatedCost decimal.Decimal `json:"estimated_cost"`
	WaitingOrders int             `json:"waiting_orders"`
	Priority      int             `json:"priority"` // 1 = más urgente
}
