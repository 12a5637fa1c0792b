package entity

import "time"

// Company representa la empresa agrícola (tenant). Todas las entidades cuelgan de un CompanyID.
type Company struct {
	ID        string
	Name      string
	Document  string // CNPJ/CPF del productor
	Email     string
	Status    string // active, suspended
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Módulos contratables por empresa.
const (
	ModuleInventory     = "inventory"
	ModuleServiceOrders = "service_orders"
	ModulePurchasing    = "purchasing"
)

// CompanyModule activación de un módulo en una empresa.
type CompanyModule struct {
	CompanyID   string
	ModuleName  string
	IsActive    bool
	ActivatedAt time.Time
	ExpiresAt   *time.Time // nil = sin vencimiento
}

// ActiveAt indica si el módulo está habilitado en el instante dado.
func (m CompanyModule) ActiveAt(t time.Time) bool {
	if !m.IsActive {
		return false
	}
	return m.ExpiresAt == nil || m.ExpiresAt.After(t)
}
