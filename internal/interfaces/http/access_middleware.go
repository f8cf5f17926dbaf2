package http

import (
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Tienda-api/internal/application/access"
	"github.com/jhoicas/Tienda-api/internal/application/dto"
)

// AccessControl aplica la política de acceso por prefijo antes de cada handler.
// Debe ir después de SessionMiddleware.
func AccessControl(policy access.Policy) fiber.Handler {
	return func(c *fiber.Ctx) error {
		path := c.Path()
		switch policy.Decide(GetPrincipal(c), path) {
		case access.RedirectToLogin:
			location := policy.LoginRedirect((&url.URL{Path: path}).EscapedPath())
			if wantsJSON(c) {
				c.Set(fiber.HeaderLocation, location)
				return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "LOGIN_REQUIRED", Message: "inicie sesión para continuar"})
			}
			return c.Redirect(location, fiber.StatusFound)
		case access.Forbidden:
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "acceso denegado"})
		}
		return c.Next()
	}
}

func wantsJSON(c *fiber.Ctx) bool {
	return strings.Contains(c.Get(fiber.HeaderAccept), fiber.MIMEApplicationJSON) ||
		c.Get(fiber.HeaderXRequestedWith) == "XMLHttpRequest"
}
