package dto

import "time"

// CreateCompanyRequest entrada para dar de alta una empresa agrícola.
type CreateCompanyRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=200"`
	Document string `json:"document" validate:"required,min=11,max=18"`
	Email    string `json:"email" validate:"omitempty,email"`
}

// CompanyResponse salida de una empresa.
type CompanyResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Document  string    `json:"document"`
	Email     string    `json:"email"`
	Status    string    `json:"status"`
	Modules   []string  `json:"modules"`
	CreatedAt time.Time `json:"created_at"`
}

// ActivateModuleRequest vencimiento opcional de la activación.
type ActivateModuleRequest struct {
	ExpiresAt *time.Time `json:"expires_at"`
}
