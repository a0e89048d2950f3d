// Package pdf genera el informe de movimientos en PDF con Maroto v2.
//
// Layout de la página A4:
//
//	HEADER: título + fecha de generación (+ SKU/EAN13 y código de barras si es de un item)
//	TABLA:  Fecha | SKU | Tipo | Cantidad | Antes | Después | Usuario
//	FOOTER: total de movimientos
package pdf

import (
	"context"
	"fmt"
	"strconv"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
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

	"github.com/jhoicas/inventario-ledger/internal/application/report"
	"github.com/jhoicas/inventario-ledger/pkg/barcode"
)

var _ report.Renderer = (*MovementReportGenerator)(nil)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorNeg     = &props.Color{Red: 170, Green: 30, Blue: 30}
)

// MovementReportGenerator implementa report.Renderer usando Maroto v2.
type MovementReportGenerator struct{}

// NewMovementReportGenerator construye el generador.
func NewMovementReportGenerator() *MovementReportGenerator { return &MovementReportGenerator{} }

// Render genera el PDF y devuelve sus bytes.
func (g *MovementReportGenerator) Render(_ context.Context, data report.MovementReportData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Historial de movimientos", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(data))
	if data.Item != nil {
		m.AddRows(itemRows(data)...)
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	for _, r := range data.Rows {
		m.AddRows(movementRow(r))
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(row.New(8).Add(col.New(12).Add(
		text.New(fmt.Sprintf("Total de movimientos: %d", len(data.Rows)), props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 2,
		}),
	)))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

func headerRow(data report.MovementReportData) core.Row {
	return row.New(14).Add(
		col.New(8).Add(
			text.New("HISTORIAL DE MOVIMIENTOS", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(4).Add(
			text.New("Generado: "+data.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 3, Color: colorGray,
			}),
		),
	)
}

// itemRows datos del item y su EAN13 como código de barras.
func itemRows(data report.MovementReportData) []core.Row {
	it := data.Item
	ean := "EAN13: " + it.EAN13
	if !barcode.IsValidEAN13(it.EAN13) {
		ean += " (dígito de control inválido)"
	}
	return []core.Row{
		row.New(18).Add(
			col.New(6).Add(
				text.New("SKU: "+it.SKU, props.Text{Style: fontstyle.Bold, Size: 10, Top: 2}),
				text.New(ean, props.Text{Size: 9, Top: 8, Color: colorGray}),
				text.New("Cantidad actual: "+strconv.Itoa(it.Quantity), props.Text{Size: 9, Top: 13, Color: colorGray}),
			),
			col.New(6).Add(code.NewBar(it.EAN13, props.Barcode{Percent: 70, Center: true})),
		),
	}
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2,
		}))
	}
	return row.New(8).Add(
		h("Fecha", 3, align.Left),
		h("SKU", 2, align.Left),
		h("Tipo", 2, align.Left),
		h("Cant.", 1, align.Right),
		h("Antes", 1, align.Right),
		h("Después", 1, align.Right),
		h("Usuario", 2, align.Left),
	)
}

func movementRow(r report.MovementRow) core.Row {
	cell := func(s string, size int, a align.Type, color *props.Color) core.Col {
		return col.New(size).Add(text.New(s, props.Text{Size: 8, Align: a, Top: 1, Color: color}))
	}
	var amountColor *props.Color
	if r.Amount < 0 {
		amountColor = colorNeg
	}
	return row.New(6).Add(
		cell(r.Timestamp.Format("02/01/2006 15:04:05"), 3, align.Left, nil),
		cell(r.SKU, 2, align.Left, nil),
		cell(r.Type, 2, align.Left, nil),
		cell(strconv.Itoa(r.Amount), 1, align.Right, amountColor),
		cell(strconv.Itoa(r.QuantityBefore), 1, align.Right, nil),
		cell(strconv.Itoa(r.QuantityAfter), 1, align.Right, nil),
		cell(nonEmpty(r.Username, "-"), 2, align.Left, colorGray),
	)
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
