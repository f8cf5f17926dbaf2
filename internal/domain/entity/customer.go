package entity

import "time"

// Customer perfil de comprador; el email es su identificador de login.
type Customer struct {
	ID         string
	Email      string
	FirstName  string
	LastName   string
	MiddleName string
	Phone      string
	Address    string
	IsVerified bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
