package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/internal/domain/repository"
)

var _ repository.StoreRepository = (*StoreRepo)(nil)

const storeColumns = `id, city, address, phone, description, latitude, longitude, is_active, created_at, updated_at`

// StoreRepo implementación de StoreRepository (sucursales y su horario semanal).
type StoreRepo struct {
	q Querier
}

// NewStoreRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStoreRepository(q Querier) *StoreRepo {
	return &StoreRepo{q: q}
}

// Create persiste una sucursal.
func (r *StoreRepo) Create(ctx context.Context, s *entity.Store) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO stores (`+storeColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		s.ID, s.City, s.Address, s.Phone, s.Description, s.Latitude, s.Longitude, s.IsActive, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		return wrapWrite("insert store", err)
	}
	return nil
}

// GetByID obtiene una sucursal con su horario.
func (r *StoreRepo) GetByID(ctx context.Context, id string) (*entity.Store, error) {
	s, err := scanStore(r.q.QueryRow(ctx, `SELECT `+storeColumns+` FROM stores WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get store: %w", err)
	}
	if err := r.loadHours(ctx, []*entity.Store{s}); err != nil {
		return nil, err
	}
	return s, nil
}

// List sucursales ordenadas por ciudad y dirección.
func (r *StoreRepo) List(ctx context.Context, f repository.StoreFilter) ([]*entity.Store, error) {
	var where []string
	var args []any
	if f.City != "" {
		args = append(args, f.City)
		where = append(where, fmt.Sprintf("city = $%d", len(args)))
	}
	if f.OnlyActive {
		where = append(where, "is_active")
	}
	query := `SELECT ` + storeColumns + ` FROM stores`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY city, address`

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stores: %w", err)
	}
	defer rows.Close()
	var out []*entity.Store
	for rows.Next() {
		s, err := scanStore(rows)
		if err != nil {
			return nil, fmt.Errorf("scan store: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list stores: %w", err)
	}
	if f.WithHours {
		if err := r.loadHours(ctx, out); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// ListCities ciudades distintas con al menos una sucursal, en orden alfabético.
func (r *StoreRepo) ListCities(ctx context.Context) ([]string, error) {
	rows, err := r.q.Query(ctx, `SELECT DISTINCT city FROM stores ORDER BY city`)
	if err != nil {
		return nil, fmt.Errorf("list cities: %w", err)
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("scan city: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// SetWorkingHours inserta o reemplaza los días indicados en una sola sentencia.
func (r *StoreRepo) SetWorkingHours(ctx context.Context, storeID string, hours []entity.WorkingHours) error {
	days := make([]int32, 0, len(hours))
	opens := make([]*string, 0, len(hours))
	closes := make([]*string, 0, len(hours))
	closed := make([]bool, 0, len(hours))
	for _, h := range hours {
		days = append(days, int32(h.DayOfWeek))
		opens = append(opens, nullableString(h.OpeningTime))
		closes = append(closes, nullableString(h.ClosingTime))
		closed = append(closed, h.IsClosed)
	}
	query := `
		INSERT INTO working_hours (store_id, day_of_week, opening_time, closing_time, is_closed)
		SELECT $1, d, o::time, c::time, x
		FROM unnest($2::smallint[], $3::text[], $4::text[], $5::boolean[]) AS t(d, o, c, x)
		ON CONFLICT (store_id, day_of_week) DO UPDATE
		SET opening_time = EXCLUDED.opening_time, closing_time = EXCLUDED.closing_time, is_closed = EXCLUDED.is_closed`
	if _, err := r.q.Exec(ctx, query, storeID, days, opens, closes, closed); err != nil {
		return wrapWrite("set working hours", err)
	}
	return nil
}

func (r *StoreRepo) loadHours(ctx context.Context, stores []*entity.Store) error {
	if len(stores) == 0 {
		return nil
	}
	byID := make(map[string]*entity.Store, len(stores))
	ids := make([]string, 0, len(stores))
	for _, s := range stores {
		byID[s.ID] = s
		ids = append(ids, s.ID)
	}
	rows, err := r.q.Query(ctx, `
		SELECT store_id, day_of_week, COALESCE(to_char(opening_time, 'HH24:MI'), ''),
			COALESCE(to_char(closing_time, 'HH24:MI'), ''), is_closed
		FROM working_hours WHERE store_id = ANY($1::uuid[])
		ORDER BY store_id, day_of_week`, ids)
	if err != nil {
		return fmt.Errorf("list working hours: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var h entity.WorkingHours
		if err := rows.Scan(&h.StoreID, &h.DayOfWeek, &h.OpeningTime, &h.ClosingTime, &h.IsClosed); err != nil {
			return fmt.Errorf("scan working hours: %w", err)
		}
		if s, ok := byID[h.StoreID]; ok {
			s.Hours = append(s.Hours, h)
		}
	}
	return rows.Err()
}

func scanStore(row pgx.Row) (*entity.Store, error) {
	var s entity.Store
	err := row.Scan(&s.ID, &s.City, &s.Address, &s.Phone, &s.Description, &s.Latitude, &s.Longitude,
		&s.IsActive, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
