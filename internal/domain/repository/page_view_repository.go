package repository

import (
	"context"

	"github.com/jhoicas/Tienda-api/internal/domain/entity"
)

// PageViewRepository define el puerto de persistencia para PageView.
type PageViewRepository interface {
	Create(ctx context.Context, pv *entity.PageView) error
}
