package repository

import (
	"context"

	"github.com/jhoicas/Tienda-api/internal/domain/entity"
)

// FavoriteRepository define el puerto de persistencia para FavoriteProduct.
type FavoriteRepository interface {
	// Add inserta el favorito si no existe; devuelve false si ya estaba.
	Add(ctx context.Context, f *entity.FavoriteProduct) (bool, error)
	// Remove borra el favorito; devuelve false si no existía.
	Remove(ctx context.Context, customerID, productID string) (bool, error)
	CountByCustomer(ctx context.Context, customerID string) (int, error)
	ListProductIDs(ctx context.Context, customerID string) ([]string, error)
	// ListProducts productos favoritos, el más reciente primero.
	ListProducts(ctx context.Context, customerID string) ([]*entity.Product, error)
}
