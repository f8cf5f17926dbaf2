package entity

import "time"

// Manager perfil de empleado de una sucursal. Su nombre se sincroniza desde el User enlazado.
type Manager struct {
	ID         string
	StoreID    *string
	FirstName  string
	LastName   string
	MiddleName string
	Phone      string
	Position   string
	IsActive   bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
