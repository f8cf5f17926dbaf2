package repository

import (
	"context"

	"github.com/jhoicas/Tienda-api/internal/domain/entity"
)

// ManagerRepository define el puerto de persistencia para Manager.
type ManagerRepository interface {
	Create(ctx context.Context, m *entity.Manager) error
	Update(ctx context.Context, m *entity.Manager) error
	GetByID(ctx context.Context, id string) (*entity.Manager, error)
}
