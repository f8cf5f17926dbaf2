package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/jhoicas/Tienda-api/internal/application/ports"
)

var _ ports.ImageStorage = (*LocalStorage)(nil)

// MediaPrefix ruta HTTP bajo la que se sirven los archivos locales.
const MediaPrefix = "/media/"

// LocalStorage imágenes en disco (o en memoria en tests) bajo un directorio raíz.
type LocalStorage struct {
	fs afero.Fs
}

// NewLocalStorage guarda bajo root en el sistema de archivos real.
func NewLocalStorage(root string) *LocalStorage {
	return NewLocalStorageFs(afero.NewBasePathFs(afero.NewOsFs(), root))
}

// NewLocalStorageFs usa un afero.Fs arbitrario (p. ej. afero.NewMemMapFs()).
func NewLocalStorageFs(fsys afero.Fs) *LocalStorage {
	return &LocalStorage{fs: fsys}
}

// Save escribe el archivo completo; los directorios intermedios se crean.
func (s *LocalStorage) Save(_ context.Context, key string, body io.Reader, _ int64, _ string) error {
	name, err := cleanKey(key)
	if err != nil {
		return err
	}
	if err := s.fs.MkdirAll(filepath.Dir(name), 0o755); err != nil {
		return fmt.Errorf("crear directorio de %s: %w", key, err)
	}
	f, err := s.fs.Create(name)
	if err != nil {
		return fmt.Errorf("crear %s: %w", key, err)
	}
	if _, err := io.Copy(f, body); err != nil {
		_ = f.Close()
		_ = s.fs.Remove(name)
		return fmt.Errorf("escribir %s: %w", key, err)
	}
	return f.Close()
}

// Delete borra el archivo; no existir no es error.
func (s *LocalStorage) Delete(_ context.Context, key string) error {
	if key == "" {
		return nil
	}
	name, err := cleanKey(key)
	if err != nil {
		return err
	}
	if err := s.fs.Remove(name); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("borrar %s: %w", key, err)
	}
	return nil
}

// URL ruta servida por /media/.
func (s *LocalStorage) URL(key string) string {
	if key == "" {
		return ""
	}
	return MediaPrefix + key
}

// Open abre un archivo guardado (para servir /media/ desde el mismo Fs).
func (s *LocalStorage) Open(key string) (afero.File, error) {
	name, err := cleanKey(key)
	if err != nil {
		return nil, err
	}
	return s.fs.Open(name)
}

// cleanKey rechaza claves que salgan del directorio raíz.
func cleanKey(key string) (string, error) {
	clean := path.Clean("/" + key)
	if clean == "/" || strings.Contains(key, "..") {
		return "", fmt.Errorf("clave de archivo inválida: %q", key)
	}
	return filepath.FromSlash(strings.TrimPrefix(clean, "/")), nil
}
