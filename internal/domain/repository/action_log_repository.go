package repository

import (
	"context"

	"github.com/jhoicas/Tienda-api/internal/domain/entity"
)

// ActionLogRepository define el puerto de persistencia para la auditoría de productos.
type ActionLogRepository interface {
	Create(ctx context.Context, l *entity.ActionLog) error
	// List devuelve la página (más reciente primero) y el total.
	List(ctx context.Context, limit, offset int) ([]*entity.ActionLog, int, error)
}
