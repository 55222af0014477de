// Package pdf exporta el reporte de un evento promocional a PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre del evento  │  Fecha de reporte + ventana   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  KPIs: Ingreso del día | Ingreso acumulado | Cant. | Clientes│
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOP por ingreso  │  TOP por cantidad                       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  DETALLE: Barcode | Producto | Cant. | Ingreso              │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"strings"

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

	"github.com/jhoicas/promo-tracker/internal/application/dto"
	"github.com/jhoicas/promo-tracker/internal/application/usecase"
)

var _ usecase.ReportRenderer = (*ReportPDF)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// ReportPDF implementa usecase.ReportRenderer usando Maroto v2.
type ReportPDF struct {
	appName string
}

// NewReportPDF construye el generador. appName va como autor del documento.
func NewReportPDF(appName string) *ReportPDF { return &ReportPDF{appName: appName} }

// RenderReport genera el PDF y devuelve sus bytes.
func (g *ReportPDF) RenderReport(rep *dto.ReportResponse) ([]byte, error) {
	if rep == nil || !rep.HasData {
		return nil, fmt.Errorf("pdf: reporte sin datos")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de evento: "+rep.EventName, true).
		WithAuthor(g.appName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(rep))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(kpiRow(rep))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(sectionTitle("TOP por ingreso"))
	m.AddRows(tableHeaderRow())
	m.AddRows(statRows(rep.TopByRevenue)...)

	m.AddRows(sectionTitle("TOP por cantidad"))
	m.AddRows(tableHeaderRow())
	m.AddRows(statRows(rep.TopByQty)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(sectionTitle(fmt.Sprintf("Detalle por producto (%d)", len(rep.Products))))
	m.AddRows(tableHeaderRow())
	m.AddRows(statRows(rep.Products)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: nombre del evento (izq) y fecha de reporte + ventana acumulada (der).
func headerRow(rep *dto.ReportResponse) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(rep.EventName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Evento "+rep.EventID, props.Text{
				Size: 7, Top: 10, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("REPORTE AL "+rep.ReportDate, props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 1,
			}),
			text.New(fmt.Sprintf("Acumulado del %s al %s", rep.WindowStart, rep.WindowEnd), props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

// kpiRow: cuatro indicadores del reporte.
func kpiRow(rep *dto.ReportResponse) core.Row {
	kpi := func(label, value string) core.Col {
		return col.New(3).Add(
			text.New(label, props.Text{Size: 7, Align: align.Center, Color: colorGray, Top: 1}),
			text.New(value, props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Center, Color: colorPrimary, Top: 6,
			}),
		)
	}
	return row.New(16).Add(
		kpi("Ingreso del día", formatMoney(rep.DayRevenue)),
		kpi("Ingreso acumulado", formatMoney(rep.TotalRevenue)),
		kpi("Cantidad acumulada", formatQty(rep.TotalQty)),
		kpi("Clientes", fmt.Sprintf("%d", rep.TotalCustomers)),
	)
}

func sectionTitle(s string) core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 3}),
	))
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Top: 1, Left: 1, Right: 1,
		}))
	}
	return row.New(6).Add(
		h("Barcode", 3, align.Left),
		h("Producto", 5, align.Left),
		h("Cant.", 2, align.Right),
		h("Ingreso", 2, align.Right),
	)
}

// statRows: una fila por producto; sin productos, una fila "sin ventas".
func statRows(stats []dto.ProductStatDTO) []core.Row {
	if len(stats) == 0 {
		return []core.Row{row.New(6).Add(col.New(12).Add(
			text.New("Sin ventas en la ventana", props.Text{Size: 8, Color: colorGray, Top: 1, Left: 1}),
		))}
	}
	result := make([]core.Row, 0, len(stats))
	for _, s := range stats {
		result = append(result, row.New(6).Add(
			col.New(3).Add(text.New(s.Barcode, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(5).Add(text.New(s.ItemName, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(formatQty(s.Qty), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(formatMoney(s.Revenue), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return result
}

// ── helpers ───────────────────────────────────────────────────────────────────

// formatMoney redondea a unidades e inserta puntos de miles.
// Ej: 25000 → "25.000", -1234567.6 → "-1.234.568"
func formatMoney(d decimal.Decimal) string {
	return groupThousands(d.StringFixed(0))
}

// formatQty conserva hasta dos decimales sin ceros sobrantes.
func formatQty(d decimal.Decimal) string {
	return d.Round(2).String()
}

func groupThousands(s string) string {
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	n := len(s)
	if n <= 3 {
		return sign + s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return sign + string(buf)
}
