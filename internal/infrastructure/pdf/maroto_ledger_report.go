// Package pdf implementa la exportación PDF del libro de movimientos.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título del reporte + fecha de generación            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Fecha | Categoría | Dirección | Cant | Precio | Sub  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAL: valor agregado del conjunto filtrado                 │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/sklad-ledger/internal/application/reports"
	"github.com/jhoicas/sklad-ledger/internal/domain/entity"
	"github.com/jhoicas/sklad-ledger/internal/domain/repository"
)

var _ reports.LedgerPDFGenerator = (*MarotoLedgerGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorGreen   = &props.Color{Red: 0, Green: 120, Blue: 60}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoLedgerGenerator implementa reports.LedgerPDFGenerator usando Maroto v2.
type MarotoLedgerGenerator struct{}

// NewMarotoLedgerGenerator construye el generador.
func NewMarotoLedgerGenerator() *MarotoLedgerGenerator { return &MarotoLedgerGenerator{} }

// GenerateLedgerPDF genera el PDF del listado y devuelve sus bytes.
func (g *MarotoLedgerGenerator) GenerateLedgerPDF(
	_ context.Context,
	title string,
	rows []repository.LedgerRow,
	total string,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(title, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(title))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	for _, r := range rows {
		m.AddRows(detailRow(r))
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalRow(total))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(title string) core.Row {
	return row.New(14).Add(
		col.New(8).Add(
			text.New(title, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(4).Add(
			text.New("Generado: "+time.Now().Format("02/01/2006"), props.Text{
				Size: 9, Top: 3, Align: align.Right, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	header := func(label string, size int) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 9, Color: colorPrimary,
		}))
	}
	return row.New(8).Add(
		header("Fecha", 2),
		header("Categoría", 4),
		header("Dirección", 2),
		header("Cant.", 1),
		header("Precio", 1),
		header("Subtotal", 2),
	)
}

func detailRow(r repository.LedgerRow) core.Row {
	name := r.CategoryName
	if name == "" {
		name = "(categoría eliminada)"
	}
	dirLabel := "Salida"
	dirColor := colorGray
	if r.Direction == entity.DirectionReceived {
		dirLabel = "Entrada"
		dirColor = colorGreen
	}
	subtotal := r.UnitPrice.Mul(decimal.NewFromInt(r.Quantity))

	cell := func(value string, size int, p props.Text) core.Col {
		p.Size = 8
		return col.New(size).Add(text.New(value, p))
	}
	return row.New(6).Add(
		cell(r.CreatedAt.Format("02/01/2006"), 2, props.Text{}),
		cell(name, 4, props.Text{}),
		cell(dirLabel, 2, props.Text{Color: dirColor}),
		cell(fmt.Sprintf("%d", r.Quantity), 1, props.Text{Align: align.Right}),
		cell(r.UnitPrice.StringFixed(2), 1, props.Text{Align: align.Right}),
		cell(subtotal.StringFixed(2), 2, props.Text{Align: align.Right}),
	)
}

func totalRow(total string) core.Row {
	return row.New(10).Add(
		col.New(8).Add(
			text.New("Valor total del conjunto filtrado", props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 2,
			}),
		),
		col.New(4).Add(
			text.New(total, props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Color: colorPrimary, Top: 2,
			}),
		),
	)
}
