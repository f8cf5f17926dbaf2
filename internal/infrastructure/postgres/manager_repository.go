package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/internal/domain/repository"
)

var _ repository.ManagerRepository = (*ManagerRepo)(nil)

// ManagerRepo implementación de ManagerRepository (usable con pool o tx).
type ManagerRepo struct {
	q Querier
}

// NewManagerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewManagerRepository(q Querier) *ManagerRepo {
	return &ManagerRepo{q: q}
}

// Create persiste un nuevo perfil de manager.
func (r *ManagerRepo) Create(ctx context.Context, m *entity.Manager) error {
	query := `
		INSERT INTO managers (id, store_id, first_name, last_name, middle_name, phone, position, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.StoreID, m.FirstName, m.LastName, m.MiddleName, m.Phone, m.Position, m.IsActive, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		return wrapWrite("insert manager", err)
	}
	return nil
}

// Update actualiza el perfil.
func (r *ManagerRepo) Update(ctx context.Context, m *entity.Manager) error {
	query := `
		UPDATE managers SET store_id = $2, first_name = $3, last_name = $4, middle_name = $5,
			phone = $6, position = $7, is_active = $8, updated_at = $9
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.StoreID, m.FirstName, m.LastName, m.MiddleName, m.Phone, m.Position, m.IsActive, m.UpdatedAt,
	)
	if err != nil {
		return wrapWrite("update manager", err)
	}
	return nil
}

// GetByID obtiene un perfil por ID.
func (r *ManagerRepo) GetByID(ctx context.Context, id string) (*entity.Manager, error) {
	query := `
		SELECT id, store_id, first_name, last_name, middle_name, phone, position, is_active, created_at, updated_at
		FROM managers WHERE id = $1`
	var m entity.Manager
	err := r.q.QueryRow(ctx, query, id).Scan(
		&m.ID, &m.StoreID, &m.FirstName, &m.LastName, &m.MiddleName, &m.Phone, &m.Position, &m.IsActive, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get manager: %w", err)
	}
	return &m, nil
}
