package dto

import "github.com/shopspring/decimal"

// HomeQuery filtros de la página de inicio (query string).
type HomeQuery struct {
	City     string `query:"city"`
	Store    string `query:"store"`
	Category string `query:"category"`
	PriceMin string `query:"price_min"`
	PriceMax string `query:"price_max"`
	Search   string `query:"search"`
	Page     int    `query:"page"`
}

// FiltersApplied eco de los filtros válidos que se aplicaron.
type FiltersApplied struct {
	City     string           `json:"city,omitempty"`
	Store    string           `json:"store,omitempty"`
	Category string           `json:"category,omitempty"`
	PriceMin *decimal.Decimal `json:"price_min,omitempty"`
	PriceMax *decimal.Decimal `json:"price_max,omitempty"`
	Search   string           `json:"search,omitempty"`
}

// StoreOption sucursal para selectores.
type StoreOption struct {
	ID      string `json:"id"`
	City    string `json:"city"`
	Address string `json:"address"`
}

// CategoryResponse salida de una categoría.
type CategoryResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// HomeResponse página de inicio del catálogo.
type HomeResponse struct {
	Products       []ProductResponse  `json:"products"`
	Page           int                `json:"page"`
	TotalPages     int                `json:"total_pages"`
	Total          int                `json:"total"`
	Cities         []string           `json:"cities"`
	Stores         []StoreOption      `json:"stores"`
	Categories     []CategoryResponse `json:"categories"`
	FiltersApplied FiltersApplied     `json:"filters_applied"`
	UserFavorites  []string           `json:"user_favorites"`
}

// CategoryProductsResponse productos disponibles, opcionalmente de una categoría.
type CategoryProductsResponse struct {
	Category   *CategoryResponse  `json:"category,omitempty"`
	Categories []CategoryResponse `json:"categories"`
	Products   []ProductResponse  `json:"products"`
}

// StoresByCityResponse respuesta de GET /get-stores/.
type StoresByCityResponse struct {
	Stores []StoreAddress `json:"stores"`
}

// StoreAddress id y dirección de una sucursal.
type StoreAddress struct {
	ID      string `json:"id"`
	Address string `json:"address"`
}

// SuggestionsResponse sugerencias de búsqueda.
type SuggestionsResponse struct {
	Products   []ProductSuggestion `json:"products"`
	Categories []CategoryResponse  `json:"categories"`
}

// ProductSuggestion producto sugerido.
type ProductSuggestion struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Slug  string          `json:"slug"`
	Price decimal.Decimal `json:"price"`
	URL   string          `json:"url"`
}

// PrivacyResponse texto de la política de privacidad.
type PrivacyResponse struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}
