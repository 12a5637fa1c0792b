package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/sebastiaoggj/Agro-sh-sub000/internal/domain"
	"github.com/sebastiaoggj/Agro-sh-sub000/internal/domain/entity"
)

// Mutation describe el efecto que una operación aplicó sobre un InventoryRecord.
// Kind y Delta son exactamente lo que se registra en el historial.
type Mutation struct {
	Kind  string
	Delta decimal.Decimal
}

// Changed indica si la operación modificó el registro.
func (m Mutation) Changed() bool {
	return m.Kind != ""
}

// AdjustPhysical aplica un delta con signo al stock físico.
// Las entradas son incondicionales; las salidas no pueden dejar el disponible en negativo
// (lo que implica también stock físico >= 0).
func AdjustPhysical(r *entity.InventoryRecord, delta decimal.Decimal) (Mutation, error) {
	if delta.IsZero() {
		return Mutation{}, nil
	}
	if delta.IsNegative() && delta.Neg().GreaterThan(r.Available()) {
		return Mutation{}, domain.ErrInsufficientStock
	}
	r.PhysicalStock = r.PhysicalStock.Add(delta)
	kind := entity.HistoryKindEntry
	if delta.IsNegative() {
		kind = entity.HistoryKindExit
	}
	return Mutation{Kind: kind, Delta: delta}, nil
}

// Reserve compromete qty del disponible. Falla sin modificar el registro si no alcanza.
func Reserve(r *entity.InventoryRecord, qty decimal.Decimal) (Mutation, error) {
	if qty.IsNegative() {
		return Mutation{}, domain.ErrInvalidInput
	}
	if qty.IsZero() {
		return Mutation{}, nil
	}
	if qty.GreaterThan(r.Available()) {
		return Mutation{}, domain.ErrInsufficientStock
	}
	r.ReservedQty = r.ReservedQty.Add(qty)
	return Mutation{Kind: entity.HistoryKindReserve, Delta: qty}, nil
}

// Release devuelve qty reservada al disponible, con piso en cero.
func Release(r *entity.InventoryRecord, qty decimal.Decimal) Mutation {
	released := decimal.Min(qty, r.ReservedQty)
	if !released.IsPositive() {
		return Mutation{}
	}
	r.ReservedQty = r.ReservedQty.Sub(released)
	return Mutation{Kind: entity.HistoryKindReserve, Delta: released.Neg()}
}

// Consume baja stock físico y reserva en qty (la reserva se convierte en salida).
// Ambos valores tienen piso en cero para tolerar desvíos. El delta registrado es la
// salida física efectiva.
func Consume(r *entity.InventoryRecord, qty decimal.Decimal) Mutation {
	if !qty.IsPositive() {
		return Mutation{}
	}
	physical := decimal.Min(qty, r.PhysicalStock)
	reserved := decimal.Min(qty, r.ReservedQty)
	if !physical.IsPositive() && !reserved.IsPositive() {
		return Mutation{}
	}
	r.PhysicalStock = r.PhysicalStock.Sub(physical)
	r.ReservedQty = r.ReservedQty.Sub(reserved)
	return Mutation{Kind: entity.HistoryKindExit, Delta: physical.Neg()}
}

// CanTransfer valida un traslado desde source hacia otra hacienda.
func CanTransfer(source *entity.InventoryRecord, destFarmID string, qty decimal.Decimal) error {
	if destFarmID == "" || destFarmID == source.FarmID {
		return domain.ErrInvalidTransfer
	}
	if !qty.IsPositive() {
		return domain.ErrInvalidInput
	}
	if qty.GreaterThan(source.Available()) {
		return domain.ErrInsufficientStock
	}
	return nil
}
