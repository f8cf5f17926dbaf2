package ports

import (
	"context"
	"time"

	"github.com/jhoicas/Tienda-api/internal/domain/entity"
)

// ActionLogPDFGenerator genera el informe PDF de la auditoría de productos.
type ActionLogPDFGenerator interface {
	GenerateActionLogPDF(ctx context.Context, logs []*entity.ActionLog, generatedAt time.Time) ([]byte, error)
}
