package identity

import (
	"context"

	"github.com/jhoicas/Tienda-api/internal/domain/repository"
)

// Repos repositorios de identidad atados a una misma transacción.
type Repos struct {
	Users     repository.UserRepository
	Managers  repository.ManagerRepository
	Customers repository.CustomerRepository
}

// TxRunner ejecuta fn dentro de una transacción; Commit si fn devuelve nil, Rollback si no.
type TxRunner interface {
	RunIdentity(ctx context.Context, fn func(r Repos) error) error
}
