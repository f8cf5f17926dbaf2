package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Tienda-api/internal/application/dto"
	"github.com/jhoicas/Tienda-api/internal/application/usecase"
)

// DashboardHandler panel del manager: listado, estadísticas y auditoría.
type DashboardHandler struct {
	products *usecase.ProductUseCase
	logs     *usecase.ActionLogUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(products *usecase.ProductUseCase, logs *usecase.ActionLogUseCase) *DashboardHandler {
	return &DashboardHandler{products: products, logs: logs}
}

// Dashboard godoc
// @Summary      Panel del manager
// @Description  Todos los productos, disponibles primero y luego por updated_at (sort=newest invierte el orden).
// @Tags         manager
// @Produce      json
// @Param        store     query  string  false  "ID de sucursal"
// @Param        category  query  string  false  "ID de categoría"
// @Param        sort      query  string  false  "oldest | newest"
// @Success      200  {object}  dto.ManagerDashboardResponse
// @Router       /manager/dashboard/ [get]
func (h *DashboardHandler) Dashboard(c *fiber.Ctx) error {
	var q dto.ManagerDashboardQuery
	if err := c.QueryParser(&q); err != nil {
		return badBody(c)
	}
	out, err := h.products.Dashboard(c.UserContext(), q)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Stats godoc
// @Summary      Estadísticas de productos
// @Tags         manager
// @Produce      json
// @Success      200  {object}  dto.ProductStatsResponse
// @Router       /manager/stats/ [get]
func (h *DashboardHandler) Stats(c *fiber.Ctx) error {
	out, err := h.products.Stats(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Logs godoc
// @Summary      Auditoría de productos
// @Tags         manager
// @Produce      json
// @Param        limit   query  int  false  "Máx. 100"
// @Param        offset  query  int  false  "Desplazamiento"
// @Success      200  {object}  dto.ActionLogListResponse
// @Router       /manager/logs/ [get]
func (h *DashboardHandler) Logs(c *fiber.Ctx) error {
	page := dto.PageRequest{
		Limit:  c.QueryInt("limit", 20),
		Offset: c.QueryInt("offset", 0),
	}
	out, err := h.logs.List(c.UserContext(), page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// LogsPDF godoc
// @Summary      Auditoría en PDF
// @Tags         manager
// @Produce      application/pdf
// @Success      200
// @Router       /manager/logs/pdf/ [get]
func (h *DashboardHandler) LogsPDF(c *fiber.Ctx) error {
	b, err := h.logs.ExportPDF(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="action_log.pdf"`)
	return c.Send(b)
}
