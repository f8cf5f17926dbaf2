package http

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Tienda-api/internal/application/access"
	"github.com/jhoicas/Tienda-api/internal/application/auth"
	"github.com/jhoicas/Tienda-api/internal/application/dto"
)

// AuthHandler maneja login, registro y logout.
type AuthHandler struct {
	uc           *auth.AuthUseCase
	secureCookie bool
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase, secureCookie bool) *AuthHandler {
	return &AuthHandler{uc: uc, secureCookie: secureCookie}
}

// LoginPage godoc
// @Summary      Estado de login
// @Description  Con sesión activa redirige al inicio del rol; sin sesión devuelve el parámetro next.
// @Tags         auth
// @Produce      json
// @Param        next  query  string  false  "Ruta a la que volver tras el login"
// @Success      200
// @Success      302
// @Router       /login/ [get]
func (h *AuthHandler) LoginPage(c *fiber.Ctx) error {
	if p := GetPrincipal(c); p != nil {
		return c.Redirect(access.HomeFor(p), fiber.StatusFound)
	}
	return c.JSON(fiber.Map{"authenticated": false, "next": safeNext(c.Query("next"))})
}

// Login godoc
// @Summary      Iniciar sesión
// @Description  username para managers/admin; email para clientes.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "username, password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /login/ [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Login(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	if next := safeNext(c.Query("next")); next != "" {
		out.Redirect = next
	}
	h.setSessionCookie(c, out.Token, out.ExpiresAt)
	return c.JSON(out)
}

// SignupCustomer godoc
// @Summary      Registro de cliente
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CustomerSignupRequest  true  "Datos del cliente"
// @Success      201   {object}  dto.LoginResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /signup/customer/ [post]
func (h *AuthHandler) SignupCustomer(c *fiber.Ctx) error {
	var in dto.CustomerSignupRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.SignupCustomer(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	h.setSessionCookie(c, out.Token, out.ExpiresAt)
	return c.Status(fiber.StatusCreated).JSON(out)
}

// SignupManager godoc
// @Summary      Registro de manager
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ManagerSignupRequest  true  "Datos del manager"
// @Success      201   {object}  dto.LoginResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /signup/manager/ [post]
func (h *AuthHandler) SignupManager(c *fiber.Ctx) error {
	var in dto.ManagerSignupRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.SignupManager(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	h.setSessionCookie(c, out.Token, out.ExpiresAt)
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Logout godoc
// @Summary      Cerrar sesión
// @Tags         auth
// @Produce      json
// @Success      200
// @Router       /logout/ [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if err := h.uc.Logout(c.UserContext(), GetToken(c)); err != nil {
		return writeError(c, err)
	}
	c.Cookie(&fiber.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		HTTPOnly: true,
		Secure:   h.secureCookie,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return c.JSON(fiber.Map{"redirect": "/"})
}

// Me godoc
// @Summary      Usuario de la sesión
// @Tags         auth
// @Produce      json
// @Success      200  {object}  dto.UserResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /me/ [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	out, err := h.uc.Me(c.UserContext(), GetPrincipal(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

func (h *AuthHandler) setSessionCookie(c *fiber.Ctx, token string, expires time.Time) {
	c.Cookie(&fiber.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		HTTPOnly: true,
		Secure:   h.secureCookie,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// safeNext acepta solo rutas locales ("/x"), nunca "//host" ni URLs absolutas.
func safeNext(next string) string {
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.Contains(next, `\`) {
		return ""
	}
	return next
}
