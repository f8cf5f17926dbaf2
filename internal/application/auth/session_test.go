package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Tienda-api/internal/application/auth"
	"github.com/jhoicas/Tienda-api/internal/domain"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
)

type memSessions struct {
	items map[string]auth.Session
}

func (m *memSessions) Save(_ context.Context, s auth.Session, _ time.Duration) error {
	m.items[s.ID] = s
	return nil
}

func (m *memSessions) Exists(_ context.Context, id string) (bool, error) {
	_, ok := m.items[id]
	return ok, nil
}

func (m *memSessions) Delete(_ context.Context, id string) error {
	delete(m.items, id)
	return nil
}

type memUsers map[string]*entity.User

func (m memUsers) GetByID(_ context.Context, id string) (*entity.User, error) {
	return m[id], nil
}

var testJWT = auth.JWTConfig{Secret: "test-secret-key-for-unit-tests", ExpMinutes: 60, Issuer: "tienda-test"}

func TestSessionManager_IssueResolve(t *testing.T) {
	user := &entity.User{ID: "u-1", Role: entity.RoleManager, IsActive: true}
	mgr := auth.NewSessionManager(testJWT, nil, memUsers{"u-1": user})

	token, exp, err := mgr.Issue(context.Background(), user)
	require.NoError(t, err)
	assert.True(t, exp.After(time.Now()))

	p, err := mgr.Resolve(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "u-1", p.UserID)
	assert.Equal(t, entity.RoleManager, p.Role)
	assert.NotEmpty(t, p.SessionID)
}

func TestSessionManager_TokenInvalido(t *testing.T) {
	mgr := auth.NewSessionManager(testJWT, nil, memUsers{})
	_, err := mgr.Resolve(context.Background(), "token.invalido.aqui")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestSessionManager_RevocadoConAlmacen(t *testing.T) {
	store := &memSessions{items: map[string]auth.Session{}}
	user := &entity.User{ID: "u-1", Role: entity.RoleCustomer, IsActive: true}
	mgr := auth.NewSessionManager(testJWT, store, memUsers{"u-1": user})

	token, _, err := mgr.Issue(context.Background(), user)
	require.NoError(t, err)
	require.Len(t, store.items, 1)

	_, err = mgr.Resolve(context.Background(), token)
	require.NoError(t, err)

	require.NoError(t, mgr.Revoke(context.Background(), token))
	assert.Empty(t, store.items)

	_, err = mgr.Resolve(context.Background(), token)
	assert.ErrorIs(t, err, domain.ErrUnauthorized, "una sesión revocada es anónima")
}

func TestSessionManager_RevokeSinAlmacenNoFalla(t *testing.T) {
	mgr := auth.NewSessionManager(testJWT, nil, memUsers{})
	assert.NoError(t, mgr.Revoke(context.Background(), "lo-que-sea"))
}

// ─── Estado del usuario en cada petición ─────────────────────────────────────

func TestSessionManager_DegradarUsuarioAfectaSesionViva(t *testing.T) {
	user := &entity.User{ID: "u-9", Role: entity.RoleAdmin, IsSuperuser: true, IsActive: true}
	users := memUsers{"u-9": user}
	mgr := auth.NewSessionManager(testJWT, nil, users)

	token, _, err := mgr.Issue(context.Background(), user)
	require.NoError(t, err)

	users["u-9"] = &entity.User{ID: "u-9", Role: entity.RoleCustomer, IsActive: true}
	p, err := mgr.Resolve(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleCustomer, p.Role, "el rol sale del usuario guardado, no del token")
	assert.False(t, p.IsSuperuser)

	users["u-9"] = &entity.User{ID: "u-9", Role: entity.RoleCustomer, IsActive: false}
	_, err = mgr.Resolve(context.Background(), token)
	assert.ErrorIs(t, err, domain.ErrUnauthorized, "usuario inactivo es anónimo")

	delete(users, "u-9")
	_, err = mgr.Resolve(context.Background(), token)
	assert.ErrorIs(t, err, domain.ErrUnauthorized, "usuario borrado es anónimo")
}
