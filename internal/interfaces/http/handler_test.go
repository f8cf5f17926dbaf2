package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Tienda-api/internal/application/dto"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/internal/infrastructure/storage"
	apphttp "github.com/jhoicas/Tienda-api/internal/interfaces/http"
	"github.com/jhoicas/Tienda-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// /media/*
// ──────────────────────────────────────────────────────────────────────────────

func buildMediaApp(t *testing.T) *fiber.App {
	t.Helper()
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "products/sofa.png", []byte("PNGDATA"), 0o644))
	app := fiber.New()
	app.Get("/media/*", apphttp.NewMediaHandler(storage.NewLocalStorageFs(fs)).Serve)
	return app
}

func TestMedia_SirveArchivo(t *testing.T) {
	app := buildMediaApp(t)
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/media/products/sofa.png", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "PNGDATA", string(body))
}

func TestMedia_Inexistente404(t *testing.T) {
	app := buildMediaApp(t)
	for _, path := range []string{"/media/products/nada.png", "/media/products/"} {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil), -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode, path)
		resp.Body.Close()
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// GET /login/
// ──────────────────────────────────────────────────────────────────────────────

func buildLoginApp() *fiber.App {
	app := fiber.New()
	app.Use(apphttp.SessionMiddleware(newSessions(), logger.Nop()))
	app.Get("/login/", apphttp.NewAuthHandler(nil, false).LoginPage)
	return app
}

func TestLoginPage_ConSesionRedirigeAlPanel(t *testing.T) {
	cases := map[entity.Role]string{
		entity.RoleManager:  "/manager/dashboard/",
		entity.RoleCustomer: "/customer/dashboard/",
	}
	app := buildLoginApp()
	for role, want := range cases {
		req := httptest.NewRequest(http.MethodGet, "/login/", nil)
		req.Header.Set("Authorization", "Bearer "+tokenFor(t, role, false))
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusFound, resp.StatusCode)
		assert.Equal(t, want, resp.Header.Get("Location"))
		resp.Body.Close()
	}
}

func TestLoginPage_NextExternoSeDescarta(t *testing.T) {
	app := buildLoginApp()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/login/?next=//evil.example/x", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, false, body["authenticated"])
	assert.Equal(t, "", body["next"])
}

// ──────────────────────────────────────────────────────────────────────────────
// POST /manager/products/:id/image/
// ──────────────────────────────────────────────────────────────────────────────

func TestUploadImage_SinArchivoEsValidacion(t *testing.T) {
	app := fiber.New()
	app.Post("/manager/products/:id/image/", apphttp.NewProductHandler(nil).UploadImage)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	require.NoError(t, w.WriteField("other", "x"))
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/manager/products/abc/image/", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var body dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "VALIDATION", body.Code)
	assert.Contains(t, body.Fields, "image")
}
