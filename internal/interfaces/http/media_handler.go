package http

import (
	"errors"
	"io/fs"
	"path/filepath"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/afero"

	"github.com/jhoicas/Tienda-api/internal/application/dto"
)

// MediaOpener abre archivos del almacenamiento local de imágenes.
type MediaOpener interface {
	Open(key string) (afero.File, error)
}

// MediaHandler sirve /media/* desde el almacenamiento local (sin S3).
type MediaHandler struct {
	files MediaOpener
}

// NewMediaHandler construye el handler.
func NewMediaHandler(files MediaOpener) *MediaHandler {
	return &MediaHandler{files: files}
}

// Serve devuelve el archivo pedido o 404.
func (h *MediaHandler) Serve(c *fiber.Ctx) error {
	key := c.Params("*")
	f, err := h.files.Open(key)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "archivo no encontrado"})
		}
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_PATH", Message: "ruta inválida"})
	}
	if fi, err := f.Stat(); err != nil || fi.IsDir() {
		f.Close()
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "archivo no encontrado"})
	}
	c.Type(filepath.Ext(key))
	return c.SendStream(f)
}
