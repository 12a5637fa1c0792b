package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin    = "admin"
	RoleAgronomo = "agronomo" // emite y gestiona órdenes de servicio
	RoleOperador = "operador" // ejecuta aplicaciones en campo
)

// User representa un usuario del sistema (pertenece a una Company).
type User struct {
	ID           string
	CompanyID    string
	Email        string
	PasswordHash string
	Name         string
	Role         string
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Session identifica a quién ejecuta una operación. Se construye desde el JWT
// en cada request y se pasa explícitamente a los casos de uso.
type Session struct {
	UserID    string
	CompanyID string
	Role      string
}

// Valid indica si la sesión tiene usuario y empresa.
func (s Session) Valid() bool {
	return s.UserID != "" && s.CompanyID != ""
}
