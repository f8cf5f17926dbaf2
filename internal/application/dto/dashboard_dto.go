package dto

// ManagerDashboardQuery filtros del panel del manager.
type ManagerDashboardQuery struct {
	Store    string `query:"store"`
	Category string `query:"category"`
	Sort     string `query:"sort"` // "newest" = updated_at descendente
}

// ManagerDashboardResponse panel del manager.
type ManagerDashboardResponse struct {
	Products   []ProductResponse  `json:"products"`
	Stores     []StoreOption      `json:"stores"`
	Categories []CategoryResponse `json:"categories"`
	Sort       string             `json:"sort"`
}

// NamedCountDTO conteo por nombre.
type NamedCountDTO struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// ProductStatsResponse estadísticas de productos.
type ProductStatsResponse struct {
	Total       int             `json:"total"`
	Available   int             `json:"available"`
	Unavailable int             `json:"unavailable"`
	ByCategory  []NamedCountDTO `json:"by_category"`
	ByStore     []NamedCountDTO `json:"by_store"`
}
