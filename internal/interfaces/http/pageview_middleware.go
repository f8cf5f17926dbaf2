package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Tienda-api/internal/application/analytics"
	"github.com/jhoicas/Tienda-api/pkg/logger"
)

// PageViewRecorder registra visitas (analytics.PageViewUseCase).
type PageViewRecorder interface {
	Record(ctx context.Context, v analytics.Visit) error
}

// PageViewTracker registra una PageView después de atender cada petición.
// Un fallo al registrar se loguea y nunca altera la respuesta.
func PageViewTracker(rec PageViewRecorder, log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		path := c.Path()
		if !analytics.ShouldTrack(path) {
			return err
		}
		v := analytics.Visit{
			SessionKey: analytics.AnonymousSession,
			Path:       path,
			Referer:    c.Get(fiber.HeaderReferer),
			ClientIP:   analytics.ClientIP(c.Get(fiber.HeaderXForwardedFor), c.IP()),
			UserAgent:  c.Get(fiber.HeaderUserAgent),
			Duration:   time.Since(start),
		}
		if p := GetPrincipal(c); p != nil {
			v.UserID = p.UserID
			if p.SessionID != "" {
				v.SessionKey = p.SessionID
			}
		}
		if recErr := rec.Record(c.UserContext(), v); recErr != nil {
			log.Warn().Err(recErr).Str("path", path).Msg("no se pudo registrar la visita")
		}
		return err
	}
}
