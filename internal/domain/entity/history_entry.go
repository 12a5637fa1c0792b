package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de entrada del historial de inventario.
const (
	HistoryKindEntry    = "ENTRY"    // suma stock físico
	HistoryKindExit     = "EXIT"     // resta stock físico
	HistoryKindTransfer = "TRANSFER" // valor admitido en la columna kind; Transfer escribe EXIT + ENTRY con la misma referencia
	HistoryKindReserve  = "RESERVE"  // cambia la cantidad reservada (negativo = liberación)
)

// HistoryEntry hecho inmutable: una entrada por cada mutación de un InventoryRecord.
type HistoryEntry struct {
	ID          string
	RecordID    string
	CompanyID   string
	ProductID   string
	FarmID      string
	Kind        string
	Quantity    decimal.Decimal // con signo: positivo suma, negativo resta
	Description string
	Reference   string // id de la orden de servicio, orden de compra o traslado
	Actor       string // UserID
	CreatedAt   time.Time
}
