package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de la orden de compra.
const (
	PurchaseStatusPending   = "PENDING"
	PurchaseStatusApproved  = "APPROVED"
	PurchaseStatusReceived  = "RECEIVED"
	PurchaseStatusCancelled = "CANCELLED"
)

// PurchaseOrder compra de un insumo con destino a una hacienda.
type PurchaseOrder struct {
	ID            string
	CompanyID     string
	Number        int
	ProductID     string
	FarmID        string
	Quantity      decimal.Decimal
	Unit          string
	UnitPrice     decimal.Decimal
	TotalValue    decimal.Decimal // Quantity × UnitPrice
	Status        string
	Supplier      string
	InvoiceNumber string
	CreatedBy     string
	ApprovedBy    string
	ApprovedAt    *time.Time
	ReceivedBy    string
	ReceivedAt    *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
