package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Tienda-api/internal/application/access"
	"github.com/jhoicas/Tienda-api/internal/application/auth"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	apphttp "github.com/jhoicas/Tienda-api/internal/interfaces/http"
	"github.com/jhoicas/Tienda-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testIssuer    = "tienda-test"
	testExpMin    = 60
)

// testUsers usuarios conocidos por el gestor de sesiones; tokenFor los registra.
var testUsers sync.Map

type testUserLookup struct{}

func (testUserLookup) GetByID(_ context.Context, id string) (*entity.User, error) {
	if u, ok := testUsers.Load(id); ok {
		return u.(*entity.User), nil
	}
	return nil, nil
}

func newSessions() *auth.SessionManager {
	return auth.NewSessionManager(auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer}, nil, testUserLookup{})
}

// userIDFor ID estable por combinación de rol y superusuario.
func userIDFor(role entity.Role, superuser bool) string {
	id := "u-" + strings.ToLower(string(role))
	if superuser {
		id += "-su"
	}
	return id
}

// buildTestApp aplicación mínima con SessionMiddleware + RequireRole y un handler
// que devuelve el rol del principal.
func buildTestApp(allowed ...entity.Role) *fiber.App {
	app := fiber.New()
	app.Get("/protected",
		apphttp.SessionMiddleware(newSessions(), logger.Nop()),
		apphttp.RequireRole(allowed...),
		func(c *fiber.Ctx) error {
			p := apphttp.GetPrincipal(c)
			return c.JSON(fiber.Map{"ok": true, "role": string(p.Role)})
		},
	)
	return app
}

// tokenFor emite un token real para un usuario con el rol indicado.
func tokenFor(t *testing.T, role entity.Role, superuser bool) string {
	t.Helper()
	u := &entity.User{ID: userIDFor(role, superuser), Role: role, IsSuperuser: superuser, IsActive: true}
	testUsers.Store(u.ID, u)
	tok, _, err := newSessions().Issue(context.Background(), u)
	require.NoError(t, err)
	return tok
}

func doRequest(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// RequireRole
// ──────────────────────────────────────────────────────────────────────────────

func TestRequireRole_AdminAccedeRutaAdmin(t *testing.T) {
	app := buildTestApp(entity.RoleAdmin)
	resp := doRequest(t, app, "Bearer "+tokenFor(t, entity.RoleAdmin, false))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, "ADMIN", body["role"])
}

func TestRequireRole_ManagerBloqueadoEnRutaAdmin(t *testing.T) {
	app := buildTestApp(entity.RoleAdmin)
	resp := doRequest(t, app, "Bearer "+tokenFor(t, entity.RoleManager, false))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "FORBIDDEN")
}

func TestRequireRole_VariosRolesPermitidos(t *testing.T) {
	app := buildTestApp(entity.RoleAdmin, entity.RoleCustomer)
	resp := doRequest(t, app, "Bearer "+tokenFor(t, entity.RoleCustomer, false))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequireRole_SuperusuarioSiemprePasa(t *testing.T) {
	app := buildTestApp(entity.RoleManager)
	resp := doRequest(t, app, "Bearer "+tokenFor(t, entity.RoleAdmin, true))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequireRole_SinSesion_Retorna401(t *testing.T) {
	app := buildTestApp(entity.RoleAdmin)
	resp := doRequest(t, app, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "UNAUTHORIZED")
}

// Un token inválido no corta la petición: sigue como anónima y RequireRole responde 401.
func TestRequireRole_TokenInvalido_Retorna401(t *testing.T) {
	app := buildTestApp(entity.RoleAdmin)
	resp := doRequest(t, app, "Bearer token.invalido.aqui")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRequireRole_TokenDeOtroSecreto_Retorna401(t *testing.T) {
	other := auth.NewSessionManager(auth.JWTConfig{Secret: "otro-secreto", ExpMinutes: 5, Issuer: testIssuer}, nil, testUserLookup{})
	tok, _, err := other.Issue(context.Background(), &entity.User{ID: userIDFor(entity.RoleAdmin, false), Role: entity.RoleAdmin, IsActive: true})
	require.NoError(t, err)

	resp := doRequest(t, buildTestApp(entity.RoleAdmin), "Bearer "+tok)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// SessionMiddleware
// ──────────────────────────────────────────────────────────────────────────────

func TestSessionMiddleware_LeeCookie(t *testing.T) {
	tok := tokenFor(t, entity.RoleCustomer, false)
	app := fiber.New()
	app.Get("/whoami", apphttp.SessionMiddleware(newSessions(), logger.Nop()), func(c *fiber.Ctx) error {
		p := apphttp.GetPrincipal(c)
		require.NotNil(t, p)
		return c.JSON(fiber.Map{"user_id": p.UserID, "session": p.SessionID, "token": apphttp.GetToken(c)})
	})

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.AddCookie(&http.Cookie{Name: apphttp.SessionCookie, Value: tok})
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, userIDFor(entity.RoleCustomer, false), body["user_id"])
	assert.NotEmpty(t, body["session"])
	assert.Equal(t, tok, body["token"])
}

type failingResolver struct{}

func (failingResolver) Resolve(context.Context, string) (*access.Principal, error) {
	return nil, errors.New("redis caído")
}

func TestSessionMiddleware_ErrorDelAlmacenSigueAnonimo(t *testing.T) {
	app := fiber.New()
	app.Get("/whoami", apphttp.SessionMiddleware(failingResolver{}, logger.Nop()), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"anonymous": apphttp.GetPrincipal(c) == nil})
	})

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer cualquiera")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var body map[string]bool
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.True(t, body["anonymous"])
}

func TestSessionMiddleware_UsuarioInactivoEsAnonimo(t *testing.T) {
	tok := tokenFor(t, entity.RoleManager, false)
	id := userIDFor(entity.RoleManager, false)
	testUsers.Store(id, &entity.User{ID: id, Role: entity.RoleManager, IsActive: false})
	defer testUsers.Store(id, &entity.User{ID: id, Role: entity.RoleManager, IsActive: true})

	resp := doRequest(t, buildTestApp(entity.RoleManager), "Bearer "+tok)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
