package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productSelect = `
	SELECT p.id, p.name, p.description, p.price, p.available, p.category_id, p.store_id, p.created_by,
		p.image_key, p.external_url, p.slug, p.created_at, p.updated_at,
		c.name, c.slug, s.city, s.address
	FROM products p
	JOIN categories c ON c.id = p.category_id
	JOIN stores s ON s.id = p.store_id`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	query := `
		INSERT INTO products (id, name, description, price, available, category_id, store_id, created_by,
			image_key, external_url, slug, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.Name, p.Description, p.Price, p.Available, p.CategoryID, p.StoreID, p.CreatedBy,
		p.ImageKey, p.ExternalURL, p.Slug, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return wrapWrite("insert product", err)
	}
	return nil
}

// Update actualiza los campos editables. created_by y slug no cambian.
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	query := `
		UPDATE products SET name = $2, description = $3, price = $4, available = $5, category_id = $6,
			store_id = $7, image_key = $8, external_url = $9, updated_at = $10
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.Name, p.Description, p.Price, p.Available, p.CategoryID,
		p.StoreID, p.ImageKey, p.ExternalURL, p.UpdatedAt,
	)
	if err != nil {
		return wrapWrite("update product", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, productSelect+` WHERE p.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// ListByIDs productos existentes entre ids; los inexistentes se omiten.
func (r *ProductRepo) ListByIDs(ctx context.Context, ids []string) ([]*entity.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	return r.list(ctx, productSelect+` WHERE p.id = ANY($1::uuid[]) ORDER BY p.name`, ids)
}

// SlugExists indica si otro producto (distinto de excludeID) usa el slug.
func (r *ProductRepo) SlugExists(ctx context.Context, slug, excludeID string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM products WHERE slug = $1 AND ($2 = '' OR id::text <> $2))`,
		slug, excludeID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("product slug exists: %w", err)
	}
	return exists, nil
}

// ExistsByNameAndStore indica si la sucursal ya tiene un producto con ese nombre.
func (r *ProductRepo) ExistsByNameAndStore(ctx context.Context, name, storeID, excludeID string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM products WHERE name = $1 AND store_id = $2 AND ($3 = '' OR id::text <> $3))`,
		name, storeID, excludeID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("product name exists: %w", err)
	}
	return exists, nil
}

// Search aplica los filtros y devuelve la página pedida junto al total sin paginar.
func (r *ProductRepo) Search(ctx context.Context, f repository.ProductFilter) ([]*entity.Product, int, error) {
	where, args := productWhere(f)

	var total int
	countQuery := `SELECT count(*) FROM products p JOIN stores s ON s.id = p.store_id JOIN categories c ON c.id = p.category_id` + where
	if err := r.q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}

	query := productSelect + where + ` ORDER BY ` + productOrder(f.Sort)
	if f.Limit > 0 {
		args = append(args, f.Limit)
		query += fmt.Sprintf(` LIMIT $%d`, len(args))
	}
	if f.Offset > 0 {
		args = append(args, f.Offset)
		query += fmt.Sprintf(` OFFSET $%d`, len(args))
	}
	list, err := r.list(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// DeleteByIDs borra los productos; sus favoritos caen por FK ON DELETE CASCADE.
func (r *ProductRepo) DeleteByIDs(ctx context.Context, ids []string) (int64, error) {
	cmd, err := r.q.Exec(ctx, `DELETE FROM products WHERE id = ANY($1::uuid[])`, ids)
	if err != nil {
		return 0, wrapWrite("delete products", err)
	}
	return cmd.RowsAffected(), nil
}

// SetAvailability cambia la disponibilidad de varios productos.
func (r *ProductRepo) SetAvailability(ctx context.Context, ids []string, available bool, at time.Time) (int64, error) {
	cmd, err := r.q.Exec(ctx,
		`UPDATE products SET available = $2, updated_at = $3 WHERE id = ANY($1::uuid[])`,
		ids, available, at)
	if err != nil {
		return 0, fmt.Errorf("set availability: %w", err)
	}
	return cmd.RowsAffected(), nil
}

// Stats totales y conteos por categoría y por sucursal.
func (r *ProductRepo) Stats(ctx context.Context) (*repository.ProductStats, error) {
	st := &repository.ProductStats{}
	err := r.q.QueryRow(ctx,
		`SELECT count(*), count(*) FILTER (WHERE available), count(*) FILTER (WHERE NOT available) FROM products`,
	).Scan(&st.Total, &st.Available, &st.Unavailable)
	if err != nil {
		return nil, fmt.Errorf("product stats: %w", err)
	}
	st.ByCategory, err = r.namedCounts(ctx, `
		SELECT c.name, count(p.id) FROM categories c
		LEFT JOIN products p ON p.category_id = c.id
		GROUP BY c.id, c.name ORDER BY count(p.id) DESC, c.name`)
	if err != nil {
		return nil, err
	}
	st.ByStore, err = r.namedCounts(ctx, `
		SELECT s.city || ', ' || s.address, count(p.id) FROM stores s
		LEFT JOIN products p ON p.store_id = s.id
		GROUP BY s.id, s.city, s.address ORDER BY count(p.id) DESC, s.city, s.address`)
	if err != nil {
		return nil, err
	}
	return st, nil
}

func (r *ProductRepo) namedCounts(ctx context.Context, query string) ([]repository.NamedCount, error) {
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("product stats: %w", err)
	}
	defer rows.Close()
	var out []repository.NamedCount
	for rows.Next() {
		var c repository.NamedCount
		if err := rows.Scan(&c.Name, &c.Count); err != nil {
			return nil, fmt.Errorf("scan stats: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *ProductRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Product, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var out []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return out, nil
}

func productWhere(f repository.ProductFilter) (string, []any) {
	var where []string
	var args []any
	add := func(cond string, v any) {
		args = append(args, v)
		where = append(where, fmt.Sprintf(cond, len(args)))
	}
	if f.OnlyAvailable {
		where = append(where, "p.available")
	}
	if f.City != "" {
		add("s.city = $%d", f.City)
	}
	if f.StoreID != "" {
		add("p.store_id = $%d", f.StoreID)
	}
	if f.CategoryID != "" {
		add("p.category_id = $%d", f.CategoryID)
	}
	if f.CategorySlug != "" {
		add("c.slug = $%d", f.CategorySlug)
	}
	if f.PriceMin != nil {
		add("p.price >= $%d", *f.PriceMin)
	}
	if f.PriceMax != nil {
		add("p.price <= $%d", *f.PriceMax)
	}
	if f.Search != "" {
		add("p.name ILIKE '%%' || $%d || '%%'", escapeLike(f.Search))
	}
	if len(where) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(where, " AND "), args
}

func productOrder(s repository.ProductSort) string {
	switch s {
	case repository.SortAvailableOldest:
		return "p.available DESC, p.updated_at ASC"
	case repository.SortAvailableNewest:
		return "p.available DESC, p.updated_at DESC"
	default:
		return "p.created_at DESC, p.name"
	}
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(
		&p.ID, &p.Name, &p.Description, &p.Price, &p.Available, &p.CategoryID, &p.StoreID, &p.CreatedBy,
		&p.ImageKey, &p.ExternalURL, &p.Slug, &p.CreatedAt, &p.UpdatedAt,
		&p.CategoryName, &p.CategorySlug, &p.StoreCity, &p.StoreAddress,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
