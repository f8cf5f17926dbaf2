package repository

import (
	"context"

	"github.com/jhoicas/Tienda-api/internal/domain/entity"
)

// StoreFilter filtros para listar sucursales.
type StoreFilter struct {
	City       string
	OnlyActive bool
	WithHours  bool
}

// StoreRepository define el puerto de persistencia para Store y su horario.
type StoreRepository interface {
	Create(ctx context.Context, s *entity.Store) error
	GetByID(ctx context.Context, id string) (*entity.Store, error)
	List(ctx context.Context, f StoreFilter) ([]*entity.Store, error)
	ListCities(ctx context.Context) ([]string, error)
	// SetWorkingHours reemplaza los 7 días del horario en una sola sentencia.
	SetWorkingHours(ctx context.Context, storeID string, hours []entity.WorkingHours) error
}
