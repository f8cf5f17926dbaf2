package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Tienda-api/internal/domain/entity"
)

// ProductSort orden de los listados de productos.
type ProductSort int

const (
	// SortNewest más recientes primero (catálogo público).
	SortNewest ProductSort = iota
	// SortAvailableOldest disponibles primero y luego updated_at ascendente (panel del manager).
	SortAvailableOldest
	// SortAvailableNewest disponibles primero y luego updated_at descendente.
	SortAvailableNewest
)

// ProductFilter filtros de búsqueda de productos. Campos vacíos no filtran.
type ProductFilter struct {
	City          string
	StoreID       string
	CategoryID    string
	CategorySlug  string
	PriceMin      *decimal.Decimal
	PriceMax      *decimal.Decimal
	Search        string // contiene, sin distinguir mayúsculas
	OnlyAvailable bool
	Sort          ProductSort
	Limit         int // 0 = sin límite
	Offset        int
}

// NamedCount conteo agregado por nombre.
type NamedCount struct {
	Name  string
	Count int
}

// ProductStats totales para el panel del manager.
type ProductStats struct {
	Total       int
	Available   int
	Unavailable int
	ByCategory  []NamedCount
	ByStore     []NamedCount
}

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(ctx context.Context, p *entity.Product) error
	Update(ctx context.Context, p *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	ListByIDs(ctx context.Context, ids []string) ([]*entity.Product, error)
	SlugExists(ctx context.Context, slug, excludeID string) (bool, error)
	ExistsByNameAndStore(ctx context.Context, name, storeID, excludeID string) (bool, error)
	// Search devuelve la página pedida y el total sin paginar.
	Search(ctx context.Context, f ProductFilter) ([]*entity.Product, int, error)
	DeleteByIDs(ctx context.Context, ids []string) (int64, error)
	SetAvailability(ctx context.Context, ids []string, available bool, at time.Time) (int64, error)
	Stats(ctx context.Context) (*ProductStats, error)
}
