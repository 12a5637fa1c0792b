package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateFarmRequest entrada para crear una hacienda.
type CreateFarmRequest struct {
	Name  string `json:"name" validate:"required,min=1,max=200"`
	City  string `json:"city" validate:"max=120"`
	State string `json:"state" validate:"omitempty,len=2"`
}

// FarmResponse salida de una hacienda.
type FarmResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	City      string          `json:"city"`
	State     string          `json:"state"`
	Fields    []FieldResponse `json:"fields,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

// FarmListResponse lista paginada de haciendas.
type FarmListResponse struct {
	Items []FarmResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}

// CreateFieldRequest entrada para crear un talhão.
type CreateFieldRequest struct {
	Name string          `json:"name" validate:"required,min=1,max=120"`
	Area decimal.Decimal `json:"area" validate:"gt=0"`
}

// FieldResponse salida de un talhão.
type FieldResponse struct {
	ID     string          `json:"id"`
	FarmID string          `json:"farm_id"`
	Name   string          `json:"name"`
	Area   decimal.Decimal `json:"area"`
}

// CreateCropRequest entrada para crear una cultura.
type CreateCropRequest struct {
	Name   string `json:"name" validate:"required,min=1,max=120"`
	Season string `json:"season" validate:"max=20"`
}

// CropResponse salida de una cultura.
type CropResponse struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Season string `json:"season"`
}

// CreateMachineRequest entrada para crear una máquina.
type CreateMachineRequest struct {
	Name         string          `json:"name" validate:"required,min=1,max=120"`
	Kind         string          `json:"kind" validate:"max=60"`
	TankCapacity decimal.Decimal `json:"tank_capacity" validate:"gt=0"`
}

// MachineResponse salida de una máquina.
type MachineResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Kind         string          `json:"kind"`
	TankCapacity decimal.Decimal `json:"tank_capacity"`
}

// CreateOperatorRequest entrada para crear un operador.
type CreateOperatorRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=120"`
	Document string `json:"document" validate:"max=20"`
}

// OperatorResponse salida de un operador.
type OperatorResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Document string `json:"document"`
	Active   bool   `json:"active"`
}
