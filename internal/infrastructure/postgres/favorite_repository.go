package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/internal/domain/repository"
)

var _ repository.FavoriteRepository = (*FavoriteRepo)(nil)

// FavoriteRepo implementación de FavoriteRepository.
type FavoriteRepo struct {
	q Querier
}

// NewFavoriteRepository construye el adaptador. Pasar pool o tx (Querier).
func NewFavoriteRepository(q Querier) *FavoriteRepo {
	return &FavoriteRepo{q: q}
}

// Add inserta el par (cliente, producto); false si ya existía.
func (r *FavoriteRepo) Add(ctx context.Context, f *entity.FavoriteProduct) (bool, error) {
	cmd, err := r.q.Exec(ctx, `
		INSERT INTO favorite_products (id, customer_id, product_id, added_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (customer_id, product_id) DO NOTHING`,
		f.ID, f.CustomerID, f.ProductID, f.AddedAt)
	if err != nil {
		return false, wrapWrite("insert favorite", err)
	}
	return cmd.RowsAffected() == 1, nil
}

// Remove borra el par; false si no existía.
func (r *FavoriteRepo) Remove(ctx context.Context, customerID, productID string) (bool, error) {
	cmd, err := r.q.Exec(ctx,
		`DELETE FROM favorite_products WHERE customer_id = $1 AND product_id = $2`, customerID, productID)
	if err != nil {
		return false, fmt.Errorf("delete favorite: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

// CountByCustomer cantidad de favoritos del cliente.
func (r *FavoriteRepo) CountByCustomer(ctx context.Context, customerID string) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM favorite_products WHERE customer_id = $1`, customerID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count favorites: %w", err)
	}
	return n, nil
}

// ListProductIDs ids de productos favoritos del cliente.
func (r *FavoriteRepo) ListProductIDs(ctx context.Context, customerID string) ([]string, error) {
	rows, err := r.q.Query(ctx,
		`SELECT product_id FROM favorite_products WHERE customer_id = $1 ORDER BY added_at DESC`, customerID)
	if err != nil {
		return nil, fmt.Errorf("list favorite ids: %w", err)
	}
	defer rows.Close()
	out := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan favorite id: %w", err)
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

// ListProducts productos favoritos, el agregado más recientemente primero.
func (r *FavoriteRepo) ListProducts(ctx context.Context, customerID string) ([]*entity.Product, error) {
	rows, err := r.q.Query(ctx, productSelect+`
		JOIN favorite_products f ON f.product_id = p.id
		WHERE f.customer_id = $1
		ORDER BY f.added_at DESC`, customerID)
	if err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}
	defer rows.Close()
	var out []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan favorite: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
