package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockEntryRequest body para POST /api/inventory/entries (entrada manual).
type StockEntryRequest struct {
	ProductID string          `json:"product_id" validate:"required"`
	FarmID    string          `json:"farm_id" validate:"required"`
	Quantity  decimal.Decimal `json:"quantity" validate:"gt=0"`
	Reason    string          `json:"reason" validate:"max=300"`
}

// StockExitRequest body para POST /api/inventory/records/:id/exits (salida manual).
type StockExitRequest struct {
	Quantity decimal.Decimal `json:"quantity" validate:"gt=0"`
	Reason   string          `json:"reason" validate:"required,max=300"`
}

// TransferRequest body para POST /api/inventory/transfers.
type TransferRequest struct {
	SourceRecordID string          `json:"source_record_id" validate:"required"`
	DestFarmID     string          `json:"dest_farm_id"`
	Quantity       decimal.Decimal `json:"quantity" validate:"gt=0"`
	Reason         string          `json:"reason" validate:"max=300"`
}

// InventoryRecordResponse stock de un producto en una hacienda. AvailableQty es derivado.
type InventoryRecordResponse struct {
	ID            string          `json:"id"`
	ProductID     string          `json:"product_id"`
	FarmID        string          `json:"farm_id"`
	PhysicalStock decimal.Decimal `json:"physical_stock"`
	ReservedQty   decimal.Decimal `json:"reserved_qty"`
	AvailableQty  decimal.Decimal `json:"available_qty"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// InventoryRecordListResponse lista paginada de registros de inventario.
type InventoryRecordListResponse struct {
	Items []InventoryRecordResponse `json:"items"`
	Page  PageResponse              `json:"page"`
}

// TransferResponse resultado de un traslado entre haciendas.
type TransferResponse struct {
	Reference   string                  `json:"reference"`
	Source      InventoryRecordResponse `json:"source"`
	Destination InventoryRecordResponse `json:"destination"`
}

// HistoryEntryResponse entrada del historial de inventario.
type HistoryEntryResponse struct {
	ID          string          `json:"id"`
	RecordID    string          `json:"record_id"`
	Kind        string          `json:"kind"`
	Quantity    decimal.Decimal `json:"quantity"`
	Description string          `json:"description"`
	Reference   string          `json:"reference,omitempty"`
	Actor       string          `json:"actor"`
	CreatedAt   time.Time       `json:"created_at"`
}

// HistoryListResponse lista paginada del historial.
type HistoryListResponse struct {
	Items []HistoryEntryResponse `json:"items"`
	Page  PageResponse           `json:"page"`
}

// ShortageResponse faltante de un producto para una orden.
type ShortageResponse struct {
	ProductID string          `json:"product_id"`
	FarmID    string          `json:"farm_id"`
	Required  decimal.Decimal `json:"required"`
	Available decimal.Decimal `json:"available"`
}
