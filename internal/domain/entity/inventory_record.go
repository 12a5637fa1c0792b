package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryRecord stock de un producto en una hacienda.
// El disponible nunca se persiste: siempre se deriva como PhysicalStock - ReservedQty.
type InventoryRecord struct {
	ID            string
	CompanyID     string
	ProductID     string
	FarmID        string
	PhysicalStock decimal.Decimal // lo que está físicamente en el depósito
	ReservedQty   decimal.Decimal // comprometido con órdenes abiertas
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Available devuelve la cantidad libre para nuevas reservas.
func (r *InventoryRecord) Available() decimal.Decimal {
	return r.PhysicalStock.Sub(r.ReservedQty)
}
