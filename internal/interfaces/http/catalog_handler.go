package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Tienda-api/internal/application/catalog"
	"github.com/jhoicas/Tienda-api/internal/application/dto"
)

// CatalogHandler páginas públicas del catálogo.
type CatalogHandler struct {
	svc *catalog.Service
}

// NewCatalogHandler construye el handler.
func NewCatalogHandler(svc *catalog.Service) *CatalogHandler {
	return &CatalogHandler{svc: svc}
}

// Home godoc
// @Summary      Página de inicio
// @Description  Productos disponibles (12 por página) con filtros; los filtros inválidos se ignoran.
// @Tags         catalog
// @Produce      json
// @Param        city       query  string  false  "Ciudad"
// @Param        store      query  string  false  "ID de sucursal"
// @Param        category   query  string  false  "ID de categoría"
// @Param        price_min  query  string  false  "Precio mínimo"
// @Param        price_max  query  string  false  "Precio máximo"
// @Param        search     query  string  false  "Texto en el nombre"
// @Param        page       query  int     false  "Página (desde 1)"
// @Success      200  {object}  dto.HomeResponse
// @Router       / [get]
func (h *CatalogHandler) Home(c *fiber.Ctx) error {
	q := dto.HomeQuery{
		City:     c.Query("city"),
		Store:    c.Query("store"),
		Category: c.Query("category"),
		PriceMin: c.Query("price_min"),
		PriceMax: c.Query("price_max"),
		Search:   c.Query("search"),
		Page:     c.QueryInt("page", 1),
	}
	out, err := h.svc.Home(c.UserContext(), GetPrincipal(c), q)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Featured godoc
// @Summary      Productos destacados
// @Tags         catalog
// @Produce      json
// @Success      200  {object}  dto.HomeResponse
// @Router       /featured/ [get]
func (h *CatalogHandler) Featured(c *fiber.Ctx) error {
	out, err := h.svc.Featured(c.UserContext(), GetPrincipal(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Products godoc
// @Summary      Productos por categoría
// @Tags         catalog
// @Produce      json
// @Param        category_slug  path  string  false  "Slug de categoría"
// @Success      200  {object}  dto.CategoryProductsResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /products/{category_slug}/ [get]
func (h *CatalogHandler) Products(c *fiber.Ctx) error {
	out, err := h.svc.ProductsByCategory(c.UserContext(), c.Params("category_slug"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ProductDetail godoc
// @Summary      Detalle de producto
// @Tags         catalog
// @Produce      json
// @Param        id    path  string  true  "ID"
// @Param        slug  path  string  true  "Slug"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /product/{id}/{slug}/ [get]
func (h *CatalogHandler) ProductDetail(c *fiber.Ctx) error {
	out, err := h.svc.ProductDetail(c.UserContext(), c.Params("id"), c.Params("slug"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// StoresByCity godoc
// @Summary      Sucursales de una ciudad
// @Tags         catalog
// @Produce      json
// @Param        city  query  string  false  "Ciudad"
// @Success      200  {object}  dto.StoresByCityResponse
// @Router       /get-stores/ [get]
func (h *CatalogHandler) StoresByCity(c *fiber.Ctx) error {
	out, err := h.svc.StoresByCity(c.UserContext(), c.Query("city"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Suggestions godoc
// @Summary      Sugerencias de búsqueda
// @Tags         catalog
// @Produce      json
// @Param        q  query  string  true  "Texto (mínimo 2 caracteres)"
// @Success      200  {object}  dto.SuggestionsResponse
// @Router       /search/suggestions/ [get]
func (h *CatalogHandler) Suggestions(c *fiber.Ctx) error {
	out, err := h.svc.Suggestions(c.UserContext(), c.Query("q"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Contacts godoc
// @Summary      Sucursales y horarios
// @Tags         catalog
// @Produce      json
// @Success      200  {object}  dto.BranchesResponse
// @Router       /contacts/ [get]
func (h *CatalogHandler) Contacts(c *fiber.Ctx) error {
	out, err := h.svc.Branches(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Privacy godoc
// @Summary      Política de privacidad
// @Tags         catalog
// @Produce      json
// @Success      200  {object}  dto.PrivacyResponse
// @Router       /privacy/ [get]
func (h *CatalogHandler) Privacy(c *fiber.Ctx) error {
	return c.JSON(h.svc.Privacy())
}
