package http

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Tienda-api/internal/application/access"
	"github.com/jhoicas/Tienda-api/internal/application/dto"
	"github.com/jhoicas/Tienda-api/internal/domain"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/pkg/logger"
)

// SessionCookie nombre de la cookie HttpOnly que lleva el token de sesión.
const SessionCookie = "session"

// Locals keys para el principal y el token en Fiber.
const (
	LocalPrincipal = "principal"
	LocalToken     = "session_token"
)

// SessionResolver resuelve un token de sesión a su principal (auth.SessionManager).
type SessionResolver interface {
	Resolve(ctx context.Context, token string) (*access.Principal, error)
}

// SessionMiddleware lee el token (cookie "session" o Bearer) y deja el principal en c.Locals.
// Sin token, o con uno inválido, expirado o revocado, la petición sigue como anónima.
func SessionMiddleware(resolver SessionResolver, log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := extractToken(c)
		if token == "" {
			return c.Next()
		}
		principal, err := resolver.Resolve(c.UserContext(), token)
		if err != nil {
			if !errors.Is(err, domain.ErrUnauthorized) {
				log.Warn().Err(err).Str("path", c.Path()).Msg("no se pudo resolver la sesión")
			}
			return c.Next()
		}
		c.Locals(LocalPrincipal, principal)
		c.Locals(LocalToken, token)
		return c.Next()
	}
}

// RequireRole exige sesión y uno de los roles indicados. El superusuario siempre pasa.
func RequireRole(roles ...entity.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p := GetPrincipal(c)
		if p == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "sesión requerida"})
		}
		if p.IsSuperuser {
			return c.Next()
		}
		for _, r := range roles {
			if p.Role == r {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "rol no autorizado para esta ruta"})
	}
}

// GetPrincipal devuelve el principal de la petición; nil si es anónima.
func GetPrincipal(c *fiber.Ctx) *access.Principal {
	p, _ := c.Locals(LocalPrincipal).(*access.Principal)
	return p
}

// GetToken devuelve el token de sesión de la petición (después de SessionMiddleware).
func GetToken(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalToken).(string)
	return s
}

func extractToken(c *fiber.Ctx) string {
	if h := c.Get(fiber.HeaderAuthorization); h != "" {
		parts := strings.SplitN(h, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
	}
	return c.Cookies(SessionCookie)
}
