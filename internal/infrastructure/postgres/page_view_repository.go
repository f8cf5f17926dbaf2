package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/internal/domain/repository"
)

var _ repository.PageViewRepository = (*PageViewRepo)(nil)

// PageViewRepo implementación de PageViewRepository.
type PageViewRepo struct {
	q Querier
}

// NewPageViewRepository construye el adaptador.
func NewPageViewRepository(q Querier) *PageViewRepo {
	return &PageViewRepo{q: q}
}

// Create persiste una visita.
func (r *PageViewRepo) Create(ctx context.Context, pv *entity.PageView) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO page_views (id, user_id, session_key, url, referer, ip_address, user_agent, duration_ms, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		pv.ID, pv.UserID, pv.SessionKey, pv.URL, pv.Referer, pv.IPAddress, pv.UserAgent, pv.DurationMs, pv.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert page view: %w", err)
	}
	return nil
}
