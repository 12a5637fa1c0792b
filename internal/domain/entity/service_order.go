package entity

import (
	"slices"
	"time"

	"github.com/shopspring/decimal"
)

// Estados de la orden de servicio.
const (
	OrderStatusEmitted         = "EMITTED"
	OrderStatusAwaitingProduct = "AWAITING_PRODUCT"
	OrderStatusInProgress      = "IN_PROGRESS"
	OrderStatusCompleted       = "COMPLETED"
	OrderStatusCancelled       = "CANCELLED"
)

// Calificadores ortogonales al estado principal.
const (
	QualifierLate   = "LATE"
	QualifierRework = "REWORK"
)

// ServiceOrder orden de aplicación de agroquímicos sobre uno o más talhões.
type ServiceOrder struct {
	ID              string
	CompanyID       string
	Number          int
	FarmID          string
	FieldIDs        []string
	CropID          string
	MachineID       string
	OperatorID      string
	PlannedDate     time.Time
	TotalArea       decimal.Decimal // ha
	ExecutedArea    decimal.Decimal // ha
	FlowRate        decimal.Decimal // caudal L/ha
	TankCapacity    decimal.Decimal // L, copiado de la máquina al emitir
	Status          string
	Qualifiers      []string
	ReservationHeld bool // true mientras las líneas están reservadas en el inventario
	Lines           []OrderLine
	Notes           string
	CreatedBy       string
	CreatedAt       time.Time
	UpdatedAt       time.Time
	StartedAt       *time.Time
	CompletedAt     *time.Time
}

// OrderLine producto y dosis de una orden. Las cantidades se recalculan, no se editan.
type OrderLine struct {
	ProductID   string
	DosePerArea decimal.Decimal // unidad del producto por ha
	QtyPerLoad  decimal.Decimal
	QtyTotal    decimal.Decimal
}

// TotalVolume volumen de calda = caudal × área total.
func (o *ServiceOrder) TotalVolume() decimal.Decimal {
	return o.FlowRate.Mul(o.TotalArea)
}

// Loads cantidad de tanques necesarios para cubrir el área.
func (o *ServiceOrder) Loads() int64 {
	if !o.TankCapacity.IsPositive() {
		return 0
	}
	return o.TotalVolume().Div(o.TankCapacity).Ceil().IntPart()
}

// RemainingArea área aún no ejecutada.
func (o *ServiceOrder) RemainingArea() decimal.Decimal {
	rest := o.TotalArea.Sub(o.ExecutedArea)
	if rest.IsNegative() {
		return decimal.Zero
	}
	return rest
}

// HasQualifier indica si el calificador está marcado explícitamente.
func (o *ServiceOrder) HasQualifier(q string) bool {
	return slices.Contains(o.Qualifiers, q)
}

// Finished indica si la orden ya no admite cambios operativos.
func (o *ServiceOrder) Finished() bool {
	return o.Status == OrderStatusCompleted || o.Status == OrderStatusCancelled
}

// Tipos de evento de auditoría de la orden.
const (
	OrderEventStatus    = "STATUS"
	OrderEventPartial   = "PARCIAL"
	OrderEventAdditive  = "ADITIVO"
	OrderEventQualifier = "QUALIFIER"
	OrderEventPlan      = "PLAN"
)

// ServiceOrderEvent registro de auditoría de una orden (append-only).
type ServiceOrderEvent struct {
	ID         string
	OrderID    string
	Kind       string
	FromStatus string
	ToStatus   string
	Area       decimal.Decimal
	ProductID  string
	Quantity   decimal.Decimal
	Note       string
	Actor      string
	CreatedAt  time.Time
}
