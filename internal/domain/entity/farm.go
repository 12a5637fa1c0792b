package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Farm representa una hacienda; cada hacienda mantiene su propio stock de insumos.
type Farm struct {
	ID        string
	CompanyID string
	Name      string
	City      string
	State     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Field es un talhão (lote) de una hacienda.
type Field struct {
	ID        string
	CompanyID string
	FarmID    string
	Name      string
	Area      decimal.Decimal // hectáreas
	CreatedAt time.Time
}

// Crop cultura/zafra a la que se asocia una aplicación.
type Crop struct {
	ID        string
	CompanyID string
	Name      string
	Season    string // ej. 2025/26
	CreatedAt time.Time
}
