package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Tienda-api/internal/application/dto"
	"github.com/jhoicas/Tienda-api/internal/application/identity"
	"github.com/jhoicas/Tienda-api/internal/application/usecase"
)

// AdminHandler API de administración: usuarios y sucursales.
type AdminHandler struct {
	identity *identity.Service
	stores   *usecase.StoreUseCase
}

// NewAdminHandler construye el handler.
func NewAdminHandler(identitySvc *identity.Service, stores *usecase.StoreUseCase) *AdminHandler {
	return &AdminHandler{identity: identitySvc, stores: stores}
}

// CreateUser godoc
// @Summary      Crear usuario
// @Description  Un MANAGER sin perfil recibe uno nuevo; is_superuser fuerza el rol ADMIN.
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SaveUserRequest  true  "Datos del usuario"
// @Success      201   {object}  dto.UserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /admin/api/users/ [post]
func (h *AdminHandler) CreateUser(c *fiber.Ctx) error {
	var in dto.SaveUserRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	u, err := h.identity.SaveUser(c.UserContext(), "", in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewUserResponse(u))
}

// UpdateUser godoc
// @Summary      Editar usuario
// @Description  Password vacío conserva el actual. El perfil de manager se sincroniza en cada guardado.
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id    path  string               true  "ID del usuario"
// @Param        body  body  dto.SaveUserRequest  true  "Datos del usuario"
// @Success      200   {object}  dto.UserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /admin/api/users/{id}/ [put]
func (h *AdminHandler) UpdateUser(c *fiber.Ctx) error {
	var in dto.SaveUserRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	u, err := h.identity.SaveUser(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewUserResponse(u))
}

// CreateStore godoc
// @Summary      Crear sucursal
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateStoreRequest  true  "Datos de la sucursal"
// @Success      201   {object}  dto.StoreResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /admin/api/stores/ [post]
func (h *AdminHandler) CreateStore(c *fiber.Ctx) error {
	var in dto.CreateStoreRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.stores.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListStores godoc
// @Summary      Listar sucursales
// @Tags         admin
// @Produce      json
// @Success      200  {array}  dto.StoreResponse
// @Router       /admin/api/stores/ [get]
func (h *AdminHandler) ListStores(c *fiber.Ctx) error {
	out, err := h.stores.List(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// SetHours godoc
// @Summary      Horario semanal de una sucursal
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id    path  string                      true  "ID de la sucursal"
// @Param        body  body  dto.SetWorkingHoursRequest  true  "7 días (0 = lunes)"
// @Success      200   {object}  dto.StoreResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /admin/api/stores/{id}/hours/ [put]
func (h *AdminHandler) SetHours(c *fiber.Ctx) error {
	var in dto.SetWorkingHoursRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.stores.SetHours(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
