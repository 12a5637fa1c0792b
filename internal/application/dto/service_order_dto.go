package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderLineRequest producto y dosis por hectárea.
type OrderLineRequest struct {
	ProductID   string          `json:"product_id" validate:"required"`
	DosePerArea decimal.Decimal `json:"dose_per_area" validate:"gt=0"`
}

// CreateServiceOrderRequest body para POST /api/service-orders.
// TotalArea vacío usa la suma de las áreas de los talhões.
type CreateServiceOrderRequest struct {
	FarmID      string             `json:"farm_id" validate:"required"`
	FieldIDs    []string           `json:"field_ids" validate:"required,min=1,dive,required"`
	CropID      string             `json:"crop_id" validate:"required"`
	MachineID   string             `json:"machine_id" validate:"required"`
	OperatorID  string             `json:"operator_id" validate:"required"`
	PlannedDate string             `json:"planned_date" validate:"required,datetime=2006-01-02"`
	TotalArea   *decimal.Decimal   `json:"total_area"`
	FlowRate    decimal.Decimal    `json:"flow_rate" validate:"gt=0"`
	Lines       []OrderLineRequest `json:"lines" validate:"required,min=1,dive"`
	Notes       string             `json:"notes" validate:"max=1000"`
}

// UpdatePlanRequest cambia área, caudal o dosis de una orden aún no iniciada.
type UpdatePlanRequest struct {
	FieldIDs  []string           `json:"field_ids" validate:"omitempty,min=1,dive,required"`
	TotalArea *decimal.Decimal   `json:"total_area"`
	FlowRate  *decimal.Decimal   `json:"flow_rate"`
	Lines     []OrderLineRequest `json:"lines" validate:"omitempty,min=1,dive"`
}

// PartialProgressRequest avance parcial (PARCIAL): hectáreas ejecutadas.
type PartialProgressRequest struct {
	Area decimal.Decimal `json:"area" validate:"gt=0"`
	Note string          `json:"note" validate:"max=500"`
}

// AdditiveRequest consumo extra no planificado (ADITIVO).
type AdditiveRequest struct {
	ProductID string          `json:"product_id" validate:"required"`
	Quantity  decimal.Decimal `json:"quantity" validate:"gt=0"`
	Note      string          `json:"note" validate:"max=500"`
}

// CompleteServiceOrderRequest sobras informadas por el operador, por producto.
type CompleteServiceOrderRequest struct {
	Leftovers map[string]decimal.Decimal `json:"leftovers"`
	Note      string                     `json:"note" validate:"max=500"`
}

// QualifierRequest marca o desmarca LATE/REWORK.
type QualifierRequest struct {
	Qualifier string `json:"qualifier" validate:"required,oneof=LATE REWORK"`
}

// OrderLineResponse línea calculada.
type OrderLineResponse struct {
	ProductID   string          `json:"product_id"`
	DosePerArea decimal.Decimal `json:"dose_per_area"`
	QtyPerLoad  decimal.Decimal `json:"qty_per_load"`
	QtyTotal    decimal.Decimal `json:"qty_total"`
}

// ServiceOrderResponse salida de una orden de servicio.
type ServiceOrderResponse struct {
	ID              string              `json:"id"`
	Number          int                 `json:"number"`
	FarmID          string              `json:"farm_id"`
	FieldIDs        []string            `json:"field_ids"`
	CropID          string              `json:"crop_id"`
	MachineID       string              `json:"machine_id"`
	OperatorID      string              `json:"operator_id"`
	PlannedDate     string              `json:"planned_date"`
	Status          string              `json:"status"`
	Qualifiers      []string            `json:"qualifiers"`
	ReservationHeld bool                `json:"reservation_held"`
	TotalArea       decimal.Decimal     `json:"total_area"`
	ExecutedArea    decimal.Decimal     `json:"executed_area"`
	FlowRate        decimal.Decimal     `json:"flow_rate"`
	TankCapacity    decimal.Decimal     `json:"tank_capacity"`
	TotalVolume     decimal.Decimal     `json:"total_volume"`
	Loads           int64               `json:"loads"`
	Lines           []OrderLineResponse `json:"lines"`
	Shortages       []ShortageResponse  `json:"shortages,omitempty"`
	Notes           string              `json:"notes"`
	CreatedAt       time.Time           `json:"created_at"`
	StartedAt       *time.Time          `json:"started_at,omitempty"`
	CompletedAt     *time.Time          `json:"completed_at,omitempty"`
}

// ServiceOrderListResponse lista paginada de órdenes de servicio.
type ServiceOrderListResponse struct {
	Items []ServiceOrderResponse `json:"items"`
	Page  PageResponse           `json:"page"`
}

// ServiceOrderEventResponse evento de auditoría de una orden.
type ServiceOrderEventResponse struct {
	Kind       string          `json:"kind"`
	FromStatus string          `json:"from_status,omitempty"`
	ToStatus   string          `json:"to_status,omitempty"`
	Area       decimal.Decimal `json:"area"`
	ProductID  string          `json:"product_id,omitempty"`
	Quantity   decimal.Decimal `json:"quantity"`
	Note       string          `json:"note,omitempty"`
	Actor      string          `json:"actor"`
	CreatedAt  time.Time       `json:"created_at"`
}

// NoteRequest observación opcional para suspender o cancelar.
type NoteRequest struct {
	Note string `json:"note" validate:"max=500"`
}
