package http_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Tienda-api/internal/application/access"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	apphttp "github.com/jhoicas/Tienda-api/internal/interfaces/http"
	"github.com/jhoicas/Tienda-api/pkg/logger"
)

func buildAccessApp() *fiber.App {
	app := fiber.New()
	app.Use(apphttp.SessionMiddleware(newSessions(), logger.Nop()))
	app.Use(apphttp.AccessControl(access.DefaultPolicy()))
	ok := func(c *fiber.Ctx) error { return c.SendString("ok") }
	app.Get("/", ok)
	app.Get("/product/:id/:slug/", ok)
	app.Get("/manager/dashboard/", ok)
	app.Get("/customer/dashboard/", ok)
	app.Get("/products/", ok)
	return app
}

func get(t *testing.T, app *fiber.App, path, token string, headers map[string]string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Anónimo
// ──────────────────────────────────────────────────────────────────────────────

func TestAccessControl_AnonimoEnRutaPublica(t *testing.T) {
	app := buildAccessApp()
	for _, path := range []string{"/", "/product/abc/sofa/"} {
		resp := get(t, app, path, "", nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode, path)
		resp.Body.Close()
	}
}

func TestAccessControl_AnonimoRedirigeALogin(t *testing.T) {
	app := buildAccessApp()
	resp := get(t, app, "/manager/dashboard/", "", nil)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login/?next=/manager/dashboard/", resp.Header.Get("Location"))
}

func TestAccessControl_AnonimoJSONRecibe401(t *testing.T) {
	app := buildAccessApp()
	resp := get(t, app, "/products/", "", map[string]string{"Accept": "application/json"})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "/login/?next=/products/", resp.Header.Get("Location"))
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "LOGIN_REQUIRED")
}

// Mayúsculas o barras de más no esquivan la política.
func TestAccessControl_RutaNoNormalizadaTambienRedirige(t *testing.T) {
	app := buildAccessApp()
	resp := get(t, app, "/Manager//Dashboard", "", nil)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusFound, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Autenticado
// ──────────────────────────────────────────────────────────────────────────────

func TestAccessControl_ClienteEnPanelManager_403(t *testing.T) {
	app := buildAccessApp()
	resp := get(t, app, "/manager/dashboard/", tokenFor(t, entity.RoleCustomer, false), nil)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestAccessControl_ManagerEnPanelCliente_403(t *testing.T) {
	app := buildAccessApp()
	resp := get(t, app, "/customer/dashboard/", tokenFor(t, entity.RoleManager, false), nil)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestAccessControl_ManagerEnSuPanel(t *testing.T) {
	app := buildAccessApp()
	resp := get(t, app, "/manager/dashboard/", tokenFor(t, entity.RoleManager, false), nil)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAccessControl_SuperusuarioEnAmbosPaneles(t *testing.T) {
	app := buildAccessApp()
	tok := tokenFor(t, entity.RoleAdmin, true)
	for _, path := range []string{"/manager/dashboard/", "/customer/dashboard/"} {
		resp := get(t, app, path, tok, nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode, path)
		resp.Body.Close()
	}
}
