package ports

import (
	"context"
	"io"
)

// ImageStorage define el puerto de salida para guardar imágenes de productos.
// Los adaptadores (S3/MinIO, disco local) solo conocen claves y bytes.
type ImageStorage interface {
	Save(ctx context.Context, key string, body io.Reader, size int64, contentType string) error
	Delete(ctx context.Context, key string) error
	// URL pública para servir la imagen; "" si key está vacío.
	URL(key string) string
}
