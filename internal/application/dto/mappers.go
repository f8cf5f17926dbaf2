package dto

import (
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
)

// ProductURL ruta pública del detalle de producto.
func ProductURL(p *entity.Product) string {
	return "/product/" + p.ID + "/" + p.Slug + "/"
}

// NewProductResponse mapea la entidad; imageURL ya resuelto por el almacenamiento.
func NewProductResponse(p *entity.Product, imageURL string) ProductResponse {
	return ProductResponse{
		ID:           p.ID,
		Name:         p.Name,
		Slug:         p.Slug,
		Description:  p.Description,
		Price:        p.Price,
		Available:    p.Available,
		CategoryID:   p.CategoryID,
		CategoryName: p.CategoryName,
		CategorySlug: p.CategorySlug,
		StoreID:      p.StoreID,
		StoreCity:    p.StoreCity,
		StoreAddress: p.StoreAddress,
		CreatedBy:    p.CreatedBy,
		ImageURL:     imageURL,
		ExternalURL:  p.ExternalURL,
		URL:          ProductURL(p),
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

// NewCategoryResponse mapea una categoría.
func NewCategoryResponse(c *entity.Category) CategoryResponse {
	return CategoryResponse{ID: c.ID, Name: c.Name, Slug: c.Slug}
}

// NewCategoryList mapea una lista de categorías.
func NewCategoryList(list []*entity.Category) []CategoryResponse {
	out := make([]CategoryResponse, 0, len(list))
	for _, c := range list {
		out = append(out, NewCategoryResponse(c))
	}
	return out
}

// NewStoreOptions mapea sucursales a opciones de selector.
func NewStoreOptions(list []*entity.Store) []StoreOption {
	out := make([]StoreOption, 0, len(list))
	for _, s := range list {
		out = append(out, StoreOption{ID: s.ID, City: s.City, Address: s.Address})
	}
	return out
}
