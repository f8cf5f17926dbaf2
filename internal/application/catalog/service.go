// Package catalog casos de uso de lectura del escaparate público: inicio, listados,
// detalle de producto, sugerencias de búsqueda y sucursales.
package catalog

import (
	"context"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Tienda-api/internal/application/access"
	"github.com/jhoicas/Tienda-api/internal/application/dto"
	"github.com/jhoicas/Tienda-api/internal/application/ports"
	"github.com/jhoicas/Tienda-api/internal/application/usecase"
	"github.com/jhoicas/Tienda-api/internal/domain"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/internal/domain/repository"
)

const (
	ProductsPerPage       = 12
	MinSuggestionQuery    = 2
	MaxProductSuggestions = 10
	MaxCategorySuggestion = 5
	FeaturedCount         = 6
)

// FavoriteLister ids de favoritos del principal (vacío si no es cliente).
type FavoriteLister interface {
	FavoriteIDs(ctx context.Context, actor *access.Principal) ([]string, error)
}

// Service lecturas del catálogo.
type Service struct {
	products   repository.ProductRepository
	categories repository.CategoryRepository
	stores     repository.StoreRepository
	favorites  FavoriteLister
	images     ports.ImageStorage
	loc        *time.Location
	now        func() time.Time
}

// NewService construye el servicio; loc es la zona horaria de las sucursales.
func NewService(
	products repository.ProductRepository,
	categories repository.CategoryRepository,
	stores repository.StoreRepository,
	favorites FavoriteLister,
	images ports.ImageStorage,
	loc *time.Location,
) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{
		products:   products,
		categories: categories,
		stores:     stores,
		favorites:  favorites,
		images:     images,
		loc:        loc,
		now:        time.Now,
	}
}

// Home página de inicio: productos disponibles filtrados, 12 por página.
// Los filtros con formato inválido se ignoran y no aparecen en filters_applied.
func (s *Service) Home(ctx context.Context, actor *access.Principal, q dto.HomeQuery) (*dto.HomeResponse, error) {
	page := q.Page
	if page < 1 {
		page = 1
	}
	filter := repository.ProductFilter{
		OnlyAvailable: true,
		Sort:          repository.SortNewest,
		Limit:         ProductsPerPage,
		Offset:        (page - 1) * ProductsPerPage,
	}
	applied := dto.FiltersApplied{}

	if city := strings.TrimSpace(q.City); city != "" {
		filter.City, applied.City = city, city
	}
	if isUUID(q.Store) {
		filter.StoreID, applied.Store = q.Store, q.Store
	}
	if isUUID(q.Category) {
		filter.CategoryID, applied.Category = q.Category, q.Category
	}
	if d, ok := parsePrice(q.PriceMin); ok {
		filter.PriceMin, applied.PriceMin = &d, &d
	}
	if d, ok := parsePrice(q.PriceMax); ok {
		filter.PriceMax, applied.PriceMax = &d, &d
	}
	if search := strings.TrimSpace(q.Search); search != "" {
		filter.Search, applied.Search = search, search
	}

	list, total, err := s.products.Search(ctx, filter)
	if err != nil {
		return nil, err
	}
	cities, err := s.stores.ListCities(ctx)
	if err != nil {
		return nil, err
	}
	stores, err := s.stores.List(ctx, repository.StoreFilter{City: filter.City})
	if err != nil {
		return nil, err
	}
	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, err
	}
	favorites, err := s.favorites.FavoriteIDs(ctx, actor)
	if err != nil {
		return nil, err
	}
	if cities == nil {
		cities = []string{}
	}

	return &dto.HomeResponse{
		Products:       s.toResponses(list),
		Page:           page,
		TotalPages:     (total + ProductsPerPage - 1) / ProductsPerPage,
		Total:          total,
		Cities:         cities,
		Stores:         dto.NewStoreOptions(stores),
		Categories:     dto.NewCategoryList(categories),
		FiltersApplied: applied,
		UserFavorites:  favorites,
	}, nil
}

// ProductsByCategory productos disponibles, de una categoría si categorySlug no está vacío.
func (s *Service) ProductsByCategory(ctx context.Context, categorySlug string) (*dto.CategoryProductsResponse, error) {
	out := &dto.CategoryProductsResponse{}
	filter := repository.ProductFilter{OnlyAvailable: true, Sort: repository.SortNewest}
	if categorySlug != "" {
		c, err := s.categories.GetBySlug(ctx, categorySlug)
		if err != nil {
			return nil, err
		}
		if c == nil {
			return nil, domain.ErrNotFound
		}
		cr := dto.NewCategoryResponse(c)
		out.Category = &cr
		filter.CategoryID = c.ID
	}
	list, _, err := s.products.Search(ctx, filter)
	if err != nil {
		return nil, err
	}
	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, err
	}
	out.Products = s.toResponses(list)
	out.Categories = dto.NewCategoryList(categories)
	return out, nil
}

// ProductDetail producto disponible cuyo id y slug coinciden; ErrNotFound en otro caso.
func (s *Service) ProductDetail(ctx context.Context, id, productSlug string) (*dto.ProductResponse, error) {
	if !isUUID(id) {
		return nil, domain.ErrNotFound
	}
	p, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil || p.Slug != productSlug || !p.Available {
		return nil, domain.ErrNotFound
	}
	out := dto.NewProductResponse(p, s.images.URL(p.ImageKey))
	return &out, nil
}

// Featured hasta 6 productos disponibles elegidos al azar.
func (s *Service) Featured(ctx context.Context, actor *access.Principal) (*dto.HomeResponse, error) {
	list, _, err := s.products.Search(ctx, repository.ProductFilter{OnlyAvailable: true})
	if err != nil {
		return nil, err
	}
	rand.Shuffle(len(list), func(i, j int) { list[i], list[j] = list[j], list[i] })
	if len(list) > FeaturedCount {
		list = list[:FeaturedCount]
	}
	favorites, err := s.favorites.FavoriteIDs(ctx, actor)
	if err != nil {
		return nil, err
	}
	return &dto.HomeResponse{
		Products:      s.toResponses(list),
		Page:          1,
		TotalPages:    1,
		Total:         len(list),
		UserFavorites: favorites,
	}, nil
}

// StoresByCity sucursales de la ciudad (id y dirección).
func (s *Service) StoresByCity(ctx context.Context, city string) (*dto.StoresByCityResponse, error) {
	out := &dto.StoresByCityResponse{Stores: []dto.StoreAddress{}}
	city = strings.TrimSpace(city)
	if city == "" {
		return out, nil
	}
	list, err := s.stores.List(ctx, repository.StoreFilter{City: city})
	if err != nil {
		return nil, err
	}
	for _, st := range list {
		out.Stores = append(out.Stores, dto.StoreAddress{ID: st.ID, Address: st.Address})
	}
	return out, nil
}

// Suggestions productos disponibles y categorías cuyo nombre contiene q.
func (s *Service) Suggestions(ctx context.Context, q string) (*dto.SuggestionsResponse, error) {
	out := &dto.SuggestionsResponse{Products: []dto.ProductSuggestion{}, Categories: []dto.CategoryResponse{}}
	q = strings.TrimSpace(q)
	if len([]rune(q)) < MinSuggestionQuery {
		return out, nil
	}
	list, _, err := s.products.Search(ctx, repository.ProductFilter{
		OnlyAvailable: true,
		Search:        q,
		Sort:          repository.SortNewest,
		Limit:         MaxProductSuggestions,
	})
	if err != nil {
		return nil, err
	}
	for _, p := range list {
		out.Products = append(out.Products, dto.ProductSuggestion{
			ID: p.ID, Name: p.Name, Slug: p.Slug, Price: p.Price, URL: dto.ProductURL(p),
		})
	}
	categories, err := s.categories.SearchByName(ctx, q, MaxCategorySuggestion)
	if err != nil {
		return nil, err
	}
	out.Categories = dto.NewCategoryList(categories)
	return out, nil
}

// Branches sucursales activas agrupadas por ciudad (orden alfabético) con su horario.
// ActiveBranches cuenta las que atienden en este momento.
func (s *Service) Branches(ctx context.Context) (*dto.BranchesResponse, error) {
	list, err := s.stores.List(ctx, repository.StoreFilter{OnlyActive: true, WithHours: true})
	if err != nil {
		return nil, err
	}
	now := s.now().In(s.loc)
	out := &dto.BranchesResponse{Cities: []dto.CityBranches{}}
	index := map[string]int{}
	for _, st := range list {
		resp := usecase.NewStoreResponse(st, now)
		if resp.Phone == "" {
			resp.Phone = NoPhoneLabel
		}
		i, ok := index[st.City]
		if !ok {
			i = len(out.Cities)
			index[st.City] = i
			out.Cities = append(out.Cities, dto.CityBranches{City: st.City})
		}
		out.Cities[i].Branches = append(out.Cities[i].Branches, resp)
		out.Cities[i].BranchCount++
		out.TotalBranches++
		if resp.IsOpenNow {
			out.ActiveBranches++
		}
	}
	sortCities(out.Cities)
	return out, nil
}

// Privacy texto estático de la política de privacidad.
func (s *Service) Privacy() dto.PrivacyResponse {
	return dto.PrivacyResponse{Title: privacyTitle, Body: privacyBody}
}

func (s *Service) toResponses(list []*entity.Product) []dto.ProductResponse {
	out := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, dto.NewProductResponse(p, s.images.URL(p.ImageKey)))
	}
	return out
}

func isUUID(v string) bool {
	if v == "" {
		return false
	}
	_, err := uuid.Parse(v)
	return err == nil
}

func parsePrice(v string) (decimal.Decimal, bool) {
	v = strings.TrimSpace(v)
	if v == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(strings.ReplaceAll(v, ",", "."))
	if err != nil || d.IsNegative() {
		return decimal.Zero, false
	}
	return d, true
}
