package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/internal/domain/repository"
)

var _ repository.ActionLogRepository = (*ActionLogRepo)(nil)

// ActionLogRepo implementación de ActionLogRepository. changed_fields se guarda como JSONB.
type ActionLogRepo struct {
	q Querier
}

// NewActionLogRepository construye el adaptador. Pasar pool o tx (Querier).
func NewActionLogRepository(q Querier) *ActionLogRepo {
	return &ActionLogRepo{q: q}
}

// Create persiste una entrada de auditoría.
func (r *ActionLogRepo) Create(ctx context.Context, l *entity.ActionLog) error {
	var changed []byte
	if len(l.ChangedFields) > 0 {
		var err error
		if changed, err = json.Marshal(l.ChangedFields); err != nil {
			return fmt.Errorf("marshal changed fields: %w", err)
		}
	}
	_, err := r.q.Exec(ctx, `
		INSERT INTO action_logs (id, user_id, action_type, product_name, product_id, changed_fields, details, timestamp)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		l.ID, l.UserID, string(l.ActionType), l.ProductName, l.ProductID, changed, l.Details, l.Timestamp)
	if err != nil {
		return wrapWrite("insert action log", err)
	}
	return nil
}

// List página de auditoría, la más reciente primero, con el username del autor.
func (r *ActionLogRepo) List(ctx context.Context, limit, offset int) ([]*entity.ActionLog, int, error) {
	var total int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM action_logs`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count action logs: %w", err)
	}
	rows, err := r.q.Query(ctx, `
		SELECT l.id, l.user_id, COALESCE(u.username, ''), l.action_type, l.product_name, l.product_id,
			l.changed_fields, l.details, l.timestamp
		FROM action_logs l
		LEFT JOIN users u ON u.id = l.user_id
		ORDER BY l.timestamp DESC
		LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list action logs: %w", err)
	}
	defer rows.Close()
	var out []*entity.ActionLog
	for rows.Next() {
		var l entity.ActionLog
		var action string
		var changed []byte
		if err := rows.Scan(&l.ID, &l.UserID, &l.Username, &action, &l.ProductName, &l.ProductID,
			&changed, &l.Details, &l.Timestamp); err != nil {
			return nil, 0, fmt.Errorf("scan action log: %w", err)
		}
		l.ActionType = entity.ActionType(action)
		if len(changed) > 0 {
			if err := json.Unmarshal(changed, &l.ChangedFields); err != nil {
				return nil, 0, fmt.Errorf("unmarshal changed fields: %w", err)
			}
		}
		out = append(out, &l)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list action logs: %w", err)
	}
	return out, total, nil
}
