// Package pdf genera el informe de auditoría de productos en PDF.
//
// Layout de la página A4 horizontal:
//
//	┌──────────────────────────────────────────────────────────────────┐
//	│  HEADER: título + fecha de generación + cantidad de entradas     │
//	│  ──────────────────────────────────────────────────────────────  │
//	│  TABLA: Fecha | Usuario | Acción | Producto | Cambios            │
//	└──────────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/gosimple/unidecode"
	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/johnfercher/maroto/v2/pkg/repository"

	"github.com/jhoicas/Tienda-api/internal/application/ports"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
)

var _ ports.ActionLogPDFGenerator = (*MarotoPDFGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

const customFontFamily = "report-unicode"

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa ports.ActionLogPDFGenerator usando Maroto v2.
//
// Las fuentes estándar de PDF no tienen cirílico: sin fuente TTF configurada
// el texto se translitera a ASCII.
type MarotoPDFGenerator struct {
	fontPath string
}

// NewMarotoPDFGenerator construye el generador. fontPath (TTF con cirílico) es opcional.
func NewMarotoPDFGenerator(fontPath string) *MarotoPDFGenerator {
	return &MarotoPDFGenerator{fontPath: fontPath}
}

// GenerateActionLogPDF genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateActionLogPDF(
	_ context.Context,
	logs []*entity.ActionLog,
	generatedAt time.Time,
) ([]byte, error) {
	builder := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithOrientation(orientation.Horizontal).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithTitle("Action log", true)

	tr := unidecode.Unidecode
	if g.fontPath != "" {
		fonts, err := repository.New().
			AddUTF8Font(customFontFamily, fontstyle.Normal, g.fontPath).
			AddUTF8Font(customFontFamily, fontstyle.Bold, g.fontPath).
			Load()
		if err != nil {
			return nil, fmt.Errorf("pdf: cargar fuente %s: %w", g.fontPath, err)
		}
		builder = builder.
			WithCustomFonts(fonts).
			WithDefaultFont(&props.Font{Family: customFontFamily, Size: 8})
		tr = func(s string) string { return s }
	} else {
		builder = builder.WithDefaultFont(&props.Font{Family: "helvetica", Size: 8})
	}

	m := maroto.New(builder.Build())

	m.AddRows(headerRow(tr, generatedAt, len(logs)))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow(tr))
	m.AddRows(tableRows(tr, logs)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(tr func(string) string, generatedAt time.Time, count int) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New(tr("Журнал действий с товарами"), props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(4).Add(
			text.New(generatedAt.Format("02.01.2006 15:04"), props.Text{
				Size: 9, Align: align.Right, Top: 1, Color: colorGray,
			}),
			text.New(fmt.Sprintf(tr("Записей: %d"), count), props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
		),
	)
}

// tableHeaderRow: cabecera con fondo de color.
func tableHeaderRow(tr func(string) string) core.Row {
	h := func(label string, size int) core.Col {
		return col.New(size).Add(text.New(tr(label), props.Text{
			Style: fontstyle.Bold, Size: 8, Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).WithStyle(&props.Cell{BackgroundColor: colorPrimary}).Add(
		h("Дата", 2),
		h("Пользователь", 2),
		h("Действие", 2),
		h("Товар", 2),
		h("Изменения", 4),
	)
}

// tableRows: una fila por entrada de auditoría.
func tableRows(tr func(string) string, logs []*entity.ActionLog) []core.Row {
	cell := func(s string, size int) core.Col {
		return col.New(size).Add(text.New(tr(s), props.Text{Size: 7, Top: 1, Left: 1, Right: 1}))
	}
	result := make([]core.Row, 0, len(logs))
	for _, l := range logs {
		result = append(result, row.New(9).Add(
			cell(l.Timestamp.Format("02.01.2006 15:04"), 2),
			cell(nonEmpty(l.Username, "-"), 2),
			cell(l.ActionType.Label(), 2),
			cell(l.ProductName, 2),
			cell(nonEmpty(changesText(l), "-"), 4),
		))
	}
	return result
}

// ── helpers ───────────────────────────────────────────────────────────────────

// changesText "campo: viejo -> nuevo" ordenado por campo, más los detalles.
func changesText(l *entity.ActionLog) string {
	keys := make([]string, 0, len(l.ChangedFields))
	for k := range l.ChangedFields {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	parts := make([]string, 0, len(keys)+1)
	for _, k := range keys {
		c := l.ChangedFields[k]
		parts = append(parts, fmt.Sprintf("%s: %s -> %s", k, c.Old, c.New))
	}
	if l.Details != "" {
		parts = append(parts, l.Details)
	}
	return strings.Join(parts, "; ")
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
