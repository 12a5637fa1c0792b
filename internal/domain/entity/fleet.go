package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Machine pulverizador u otro equipo de aplicación.
type Machine struct {
	ID           string
	CompanyID    string
	Name         string
	Kind         string          // autopropelido, arrastre, avión, drone
	TankCapacity decimal.Decimal // litros
	CreatedAt    time.Time
}

// Operator persona que ejecuta la aplicación.
type Operator struct {
	ID        string
	CompanyID string
	Name      string
	Document  string
	Active    bool
	CreatedAt time.Time
}
