// Package analytics registra las visitas a páginas del sitio.
package analytics

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/internal/domain/repository"
)

// AnonymousSession clave de sesión registrada para visitantes sin sesión.
const AnonymousSession = "anonymous"

// SkippedPrefixes rutas que no se registran.
var SkippedPrefixes = []string{"/static/", "/media/", "/admin/"}

// Visit datos de una petición ya atendida.
type Visit struct {
	UserID     string
	SessionKey string
	Path       string
	Referer    string
	ClientIP   string
	UserAgent  string
	Duration   time.Duration
}

// PageViewUseCase guarda una PageView por petición atendida.
type PageViewUseCase struct {
	repo repository.PageViewRepository
	now  func() time.Time
}

// NewPageViewUseCase construye el caso de uso.
func NewPageViewUseCase(repo repository.PageViewRepository) *PageViewUseCase {
	return &PageViewUseCase{repo: repo, now: time.Now}
}

// ShouldTrack false para estáticos, media y administración.
func ShouldTrack(path string) bool {
	for _, p := range SkippedPrefixes {
		if strings.HasPrefix(path, p) {
			return false
		}
	}
	return true
}

// Record persiste la visita. El User-Agent se trunca a 500 caracteres.
func (uc *PageViewUseCase) Record(ctx context.Context, v Visit) error {
	pv := &entity.PageView{
		ID:         uuid.New().String(),
		SessionKey: v.SessionKey,
		URL:        v.Path,
		Referer:    v.Referer,
		IPAddress:  v.ClientIP,
		UserAgent:  truncateRunes(v.UserAgent, entity.MaxUserAgentLength),
		DurationMs: v.Duration.Milliseconds(),
		CreatedAt:  uc.now(),
	}
	if pv.SessionKey == "" {
		pv.SessionKey = AnonymousSession
	}
	if v.UserID != "" {
		userID := v.UserID
		pv.UserID = &userID
	}
	if err := uc.repo.Create(ctx, pv); err != nil {
		return fmt.Errorf("registrar visita %s: %w", v.Path, err)
	}
	return nil
}

// ClientIP primera dirección de X-Forwarded-For o, si no viene, la dirección remota.
func ClientIP(forwardedFor, remote string) string {
	if forwardedFor != "" {
		first, _, _ := strings.Cut(forwardedFor, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}
	return remote
}

func truncateRunes(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	r := []rune(s)
	return string(r[:max])
}
