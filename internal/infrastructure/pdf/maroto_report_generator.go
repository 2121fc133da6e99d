// Package pdf implementa la generación del reporte de inventario en PDF.
//
// Layout de la página A4 (branding Lite Thinking: fondo oscuro, acento amarillo):
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: INVENTARIO / NICKLCSDEV - LITE THINKING             │
//	│  INFO: Empresa | Fecha de emisión | Total items              │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Código | Producto | Características | Precio ref.    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: documento confidencial + generado automáticamente   │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"sort"
	"strings"
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

	"github.com/nicklcsdev/inventario-lite/internal/application/ports"
	"github.com/nicklcsdev/inventario-lite/internal/domain/entity"
)

var _ ports.ReportePDFGenerator = (*MarotoReportGenerator)(nil)

// ── Paleta de colores (branding Lite Thinking) ───────────────────────────────

var (
	colorDark   = &props.Color{Red: 13, Green: 13, Blue: 13}    // #0D0D0D
	colorAccent = &props.Color{Red: 26, Green: 26, Blue: 26}    // #1A1A1A
	colorYellow = &props.Color{Red: 230, Green: 194, Blue: 0}   // #E6C200
	colorMuted  = &props.Color{Red: 136, Green: 136, Blue: 136} // #888888
	colorGray   = &props.Color{Red: 102, Green: 102, Blue: 102} // #666666
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoReportGenerator implementa ports.ReportePDFGenerator usando Maroto v2.
type MarotoReportGenerator struct{}

// NewMarotoReportGenerator construye el generador.
func NewMarotoReportGenerator() *MarotoReportGenerator { return &MarotoReportGenerator{} }

// GenerarReporteInventario genera el PDF y devuelve sus bytes.
// empresa es nil cuando el reporte cubre todas las empresas; totales es el
// valor del inventario por moneda y se pinta al pie de la tabla.
func (g *MarotoReportGenerator) GenerarReporteInventario(
	_ context.Context,
	empresa *entity.Empresa,
	productos []*entity.Producto,
	totales entity.Precios,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(15).WithRightMargin(15).
		WithTopMargin(10).WithBottomMargin(15).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de Inventario", true).
		WithAuthor("NICKLCSDEV - LITE THINKING", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRows()...)
	m.AddRows(infoRow(empresa, len(productos)))
	m.AddRows(line.NewRow(2, props.Line{Color: colorYellow, Thickness: 0.8}))
	m.AddRows(tableHeaderRow())
	for _, p := range productos {
		m.AddRows(productoRow(p))
	}
	if len(totales) > 0 {
		m.AddRows(totalesRow(totales))
	}
	m.AddRows(footerRows()...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("generar PDF: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRows() []core.Row {
	return []core.Row{
		row.New(14).WithStyle(&props.Cell{BackgroundColor: colorDark}).Add(
			text.NewCol(8, "INVENTARIO", props.Text{
				Size: 22, Style: fontstyle.Bold, Color: &props.Color{Red: 255, Green: 255, Blue: 255},
				Align: align.Left, Top: 3,
			}),
			text.NewCol(4, "REPORT", props.Text{
				Size: 22, Style: fontstyle.Bold, Color: colorAccent,
				Align: align.Right, Top: 3,
			}),
		),
		row.New(7).WithStyle(&props.Cell{BackgroundColor: colorDark}).Add(
			text.NewCol(12, "NICKLCSDEV - LITE THINKING", props.Text{
				Size: 9, Color: colorYellow, Align: align.Left,
			}),
		),
		row.New(6),
	}
}

func infoRow(empresa *entity.Empresa, total int) core.Row {
	nombre := "N/A"
	if empresa != nil {
		nombre = empresa.Nombre
	}
	fecha := time.Now().Format("2006-01-02")
	return row.New(14).Add(
		col.New(6).Add(
			text.New("EMPRESA", props.Text{Size: 7, Color: colorMuted}),
			text.New(nombre, props.Text{Size: 12, Style: fontstyle.Bold, Top: 4}),
		),
		col.New(3).Add(
			text.New("FECHA DE EMISIÓN", props.Text{Size: 7, Color: colorMuted}),
			text.New(fecha, props.Text{Size: 12, Style: fontstyle.Bold, Top: 4}),
		),
		col.New(3).Add(
			text.New("TOTAL ITEMS", props.Text{Size: 7, Color: colorMuted}),
			text.New(fmt.Sprintf("%d", total), props.Text{Size: 12, Style: fontstyle.Bold, Top: 4}),
		),
	)
}

func tableHeaderRow() core.Row {
	estilo := props.Text{Size: 9, Style: fontstyle.Bold, Color: colorYellow, Top: 2}
	return row.New(10).WithStyle(&props.Cell{BackgroundColor: colorAccent}).Add(
		text.NewCol(2, "CÓDIGO", estilo),
		text.NewCol(4, "PRODUCTO", estilo),
		text.NewCol(4, "CARACTERÍSTICAS", estilo),
		text.NewCol(2, "PRECIO REF.", props.Text{
			Size: 9, Style: fontstyle.Bold, Color: colorYellow, Align: align.Right, Top: 2,
		}),
	)
}

func productoRow(p *entity.Producto) core.Row {
	chars := p.Caracteristicas
	if len(chars) > 40 {
		chars = chars[:40] + "..."
	}
	return row.New(8).Add(
		text.NewCol(2, p.Codigo, props.Text{Size: 8, Color: colorGray, Top: 1}),
		text.NewCol(4, p.Nombre, props.Text{Size: 9, Style: fontstyle.Bold, Top: 1}),
		text.NewCol(4, chars, props.Text{Size: 8, Color: colorGray, Top: 1}),
		text.NewCol(2, precioRef(p.Precios), props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right, Top: 1}),
	)
}

func totalesRow(totales entity.Precios) core.Row {
	return row.New(10).WithStyle(&props.Cell{BackgroundColor: colorDark}).Add(
		text.NewCol(6, "VALOR TOTAL DEL INVENTARIO", props.Text{
			Size: 9, Style: fontstyle.Bold, Color: colorYellow, Top: 2,
		}),
		text.NewCol(6, formatoTotales(totales), props.Text{
			Size: 9, Style: fontstyle.Bold, Color: colorYellow, Align: align.Right, Top: 2,
		}),
	)
}

func footerRows() []core.Row {
	return []core.Row{
		row.New(8),
		line.NewRow(1, props.Line{Color: colorMuted, Thickness: 0.3}),
		row.New(6).Add(
			text.NewCol(6, "CONFIDENTIAL DOCUMENT", props.Text{Size: 7, Color: colorMuted}),
			text.NewCol(6, "Generado Automaticamente", props.Text{Size: 7, Color: colorMuted, Align: align.Right}),
		),
	}
}

// formatoTotales arma "COP 1234 | USD 56" en orden estable de moneda.
func formatoTotales(totales entity.Precios) string {
	monedas := make([]string, 0, len(totales))
	for k := range totales {
		monedas = append(monedas, k)
	}
	sort.Strings(monedas)
	partes := make([]string, 0, len(monedas))
	for _, m := range monedas {
		partes = append(partes, fmt.Sprintf("%s %s", m, totales[m].StringFixed(0)))
	}
	return strings.Join(partes, " | ")
}

// precioRef devuelve el precio de referencia del producto: la primera entrada
// del mapa de precios en orden estable (COP primero si existe).
func precioRef(precios entity.Precios) string {
	if len(precios) == 0 {
		return "N/A"
	}
	if v, ok := precios[entity.MonedaCOP]; ok {
		return fmt.Sprintf("%s %s", entity.MonedaCOP, v.StringFixed(0))
	}
	monedas := make([]string, 0, len(precios))
	for k := range precios {
		monedas = append(monedas, k)
	}
	sort.Strings(monedas)
	return fmt.Sprintf("%s %s", monedas[0], precios[monedas[0]].StringFixed(0))
}
