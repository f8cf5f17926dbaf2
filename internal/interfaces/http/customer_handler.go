package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Tienda-api/internal/application/dto"
	"github.com/jhoicas/Tienda-api/internal/application/usecase"
)

// CustomerHandler panel del cliente y favoritos.
type CustomerHandler struct {
	uc *usecase.FavoriteUseCase
}

// NewCustomerHandler construye el handler.
func NewCustomerHandler(uc *usecase.FavoriteUseCase) *CustomerHandler {
	return &CustomerHandler{uc: uc}
}

// Dashboard godoc
// @Summary      Panel del cliente
// @Tags         customer
// @Produce      json
// @Success      200  {object}  dto.CustomerDashboardResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /customer/dashboard/ [get]
func (h *CustomerHandler) Dashboard(c *fiber.Ctx) error {
	out, err := h.uc.Dashboard(c.UserContext(), GetPrincipal(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Favorites godoc
// @Summary      Productos favoritos
// @Tags         customer
// @Produce      json
// @Success      200  {object}  dto.FavoriteListResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /customer/favorites/ [get]
func (h *CustomerHandler) Favorites(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), GetPrincipal(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ToggleFavorite godoc
// @Summary      Alternar favorito
// @Tags         customer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ToggleFavoriteRequest  true  "product_id"
// @Success      200   {object}  dto.ToggleFavoriteResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /customer/favorites/toggle/ [post]
func (h *CustomerHandler) ToggleFavorite(c *fiber.Ctx) error {
	var in dto.ToggleFavoriteRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Toggle(c.UserContext(), GetPrincipal(c), in.ProductID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
