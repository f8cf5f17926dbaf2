package pdf

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Tienda-api/internal/domain/entity"
)

func TestGenerateActionLogPDF_SinFuenteTranslitera(t *testing.T) {
	g := NewMarotoPDFGenerator("")
	at := time.Date(2024, 3, 4, 12, 0, 0, 0, time.UTC)
	logs := []*entity.ActionLog{
		{
			ID: "l1", Username: "ivan", ActionType: entity.ActionEdit, ProductName: "Диван",
			ChangedFields: map[string]entity.FieldChange{"price": {Old: "1.00", New: "2.00"}},
			Timestamp:     at,
		},
		{ID: "l2", ActionType: entity.ActionDelete, ProductName: "Стол", Details: "ID: p2", Timestamp: at},
	}

	b, err := g.GenerateActionLogPDF(context.Background(), logs, at)
	require.NoError(t, err)
	require.NotEmpty(t, b)
	assert.Equal(t, "%PDF", string(b[:4]))
}

func TestGenerateActionLogPDF_FuenteInexistente(t *testing.T) {
	g := NewMarotoPDFGenerator("/no/existe/font.ttf")
	_, err := g.GenerateActionLogPDF(context.Background(), nil, time.Now())
	assert.Error(t, err)
}

func TestChangesText_OrdenadoConDetalles(t *testing.T) {
	l := &entity.ActionLog{
		ChangedFields: map[string]entity.FieldChange{
			"price":     {Old: "1.00", New: "2.00"},
			"available": {Old: "true", New: "false"},
		},
		Details: "nota",
	}
	assert.Equal(t, "available: true -> false; price: 1.00 -> 2.00; nota", changesText(l))
	assert.Equal(t, "", changesText(&entity.ActionLog{}))
}
