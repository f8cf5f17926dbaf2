package usecase

import (
	"context"
	"time"

	"github.com/jhoicas/Tienda-api/internal/application/dto"
	"github.com/jhoicas/Tienda-api/internal/application/ports"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/internal/domain/repository"
)

// maxPDFRows tope de entradas exportadas al PDF.
const maxPDFRows = 1000

// ActionLogUseCase consulta y exportación de la auditoría de productos.
type ActionLogUseCase struct {
	logs repository.ActionLogRepository
	pdf  ports.ActionLogPDFGenerator
	loc  *time.Location
	now  func() time.Time
}

// NewActionLogUseCase construye el caso de uso.
func NewActionLogUseCase(logs repository.ActionLogRepository, pdf ports.ActionLogPDFGenerator, loc *time.Location) *ActionLogUseCase {
	if loc == nil {
		loc = time.UTC
	}
	return &ActionLogUseCase{logs: logs, pdf: pdf, loc: loc, now: time.Now}
}

// List página de auditoría, la más reciente primero.
func (uc *ActionLogUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.ActionLogListResponse, error) {
	page.DefaultPage()
	list, total, err := uc.logs.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ActionLogResponse, 0, len(list))
	for _, l := range list {
		items = append(items, NewActionLogResponse(l))
	}
	return &dto.ActionLogListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

// ExportPDF genera el PDF con las últimas entradas de auditoría.
func (uc *ActionLogUseCase) ExportPDF(ctx context.Context) ([]byte, error) {
	list, _, err := uc.logs.List(ctx, maxPDFRows, 0)
	if err != nil {
		return nil, err
	}
	for _, l := range list {
		l.Timestamp = l.Timestamp.In(uc.loc)
	}
	return uc.pdf.GenerateActionLogPDF(ctx, list, uc.now().In(uc.loc))
}

// NewActionLogResponse mapea una entrada de auditoría.
func NewActionLogResponse(l *entity.ActionLog) dto.ActionLogResponse {
	out := dto.ActionLogResponse{
		ID:          l.ID,
		UserID:      l.UserID,
		Username:    l.Username,
		ActionType:  string(l.ActionType),
		ActionLabel: l.ActionType.Label(),
		ProductName: l.ProductName,
		ProductID:   l.ProductID,
		Details:     l.Details,
		Timestamp:   l.Timestamp,
	}
	if len(l.ChangedFields) > 0 {
		out.ChangedFields = make(map[string]dto.FieldChangeDTO, len(l.ChangedFields))
		for k, v := range l.ChangedFields {
			out.ChangedFields[k] = dto.FieldChangeDTO{Old: v.Old, New: v.New}
		}
	}
	return out
}
