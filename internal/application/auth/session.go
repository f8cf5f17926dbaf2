package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Tienda-api/internal/application/access"
	"github.com/jhoicas/Tienda-api/internal/domain"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/pkg/jwt"
)

// Session sesión emitida tras login o registro.
type Session struct {
	ID        string      `json:"id"`
	UserID    string      `json:"user_id"`
	Role      entity.Role `json:"role"`
	Superuser bool        `json:"superuser"`
	ExpiresAt time.Time   `json:"expires_at"`
}

// SessionStore registro opcional de sesiones vivas (Redis). Permite revocar tokens.
type SessionStore interface {
	Save(ctx context.Context, s Session, ttl time.Duration) error
	Exists(ctx context.Context, id string) (bool, error)
	Delete(ctx context.Context, id string) error
}

// UserLookup lectura del usuario dueño de la sesión.
type UserLookup interface {
	GetByID(ctx context.Context, id string) (*entity.User, error)
}

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// SessionManager emite, resuelve y revoca sesiones firmadas como JWT.
type SessionManager struct {
	cfg   JWTConfig
	store SessionStore // nil = sin revocación
	users UserLookup
	now   func() time.Time
}

// NewSessionManager construye el gestor de sesiones. store puede ser nil.
// Rol, superusuario y estado activo se leen de users en cada Resolve, no del token.
func NewSessionManager(cfg JWTConfig, store SessionStore, users UserLookup) *SessionManager {
	return &SessionManager{cfg: cfg, store: store, users: users, now: time.Now}
}

// Issue crea una sesión para el usuario y devuelve el token firmado.
func (m *SessionManager) Issue(ctx context.Context, u *entity.User) (string, time.Time, error) {
	ttl := time.Duration(m.cfg.ExpMinutes) * time.Minute
	s := Session{
		ID:        uuid.New().String(),
		UserID:    u.ID,
		Role:      u.Role,
		Superuser: u.IsSuperuser,
		ExpiresAt: m.now().Add(ttl),
	}
	token, err := jwt.Generate(m.cfg.Secret, m.cfg.Issuer, m.cfg.ExpMinutes, jwt.Session{
		ID:        s.ID,
		UserID:    s.UserID,
		Role:      string(s.Role),
		Superuser: s.Superuser,
	})
	if err != nil {
		return "", time.Time{}, fmt.Errorf("firmar sesión: %w", err)
	}
	if m.store != nil {
		if err := m.store.Save(ctx, s, ttl); err != nil {
			return "", time.Time{}, fmt.Errorf("guardar sesión: %w", err)
		}
	}
	return token, s.ExpiresAt, nil
}

// Resolve valida el token y devuelve el principal con el estado actual del usuario.
// Token inválido, expirado o revocado, usuario inexistente o inactivo devuelve domain.ErrUnauthorized.
func (m *SessionManager) Resolve(ctx context.Context, token string) (*access.Principal, error) {
	claims, err := jwt.Parse(m.cfg.Secret, token)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}
	if claims.UserID == "" {
		return nil, domain.ErrUnauthorized
	}
	if m.store != nil {
		alive, err := m.store.Exists(ctx, claims.ID)
		if err != nil {
			return nil, fmt.Errorf("consultar sesión: %w", err)
		}
		if !alive {
			return nil, domain.ErrUnauthorized
		}
	}
	u, err := m.users.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, fmt.Errorf("cargar usuario de la sesión: %w", err)
	}
	if u == nil || !u.IsActive {
		return nil, domain.ErrUnauthorized
	}
	if !u.Role.Valid() {
		return nil, domain.ErrUnauthorized
	}
	return &access.Principal{
		UserID:      u.ID,
		Role:        u.Role,
		IsSuperuser: u.IsSuperuser,
		SessionID:   claims.ID,
	}, nil
}

// Revoke elimina la sesión del almacén. Sin almacén, o con un token ya inválido, no hace nada.
func (m *SessionManager) Revoke(ctx context.Context, token string) error {
	if m.store == nil || token == "" {
		return nil
	}
	claims, err := jwt.Parse(m.cfg.Secret, token)
	if err != nil {
		return nil
	}
	if err := m.store.Delete(ctx, claims.ID); err != nil && !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("revocar sesión: %w", err)
	}
	return nil
}
