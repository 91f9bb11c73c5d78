// Package pdf genera el reporte imprimible de alertas de stock bajo.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Empresa              │  Fecha de generación         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: total de alertas                                   │
//	│  TABLA: SKU | Producto | Bodega | Stock | Umbral | Días | Prov│
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: criterio de la ventana de ventas                    │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"
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

	"github.com/jhoicas/stock-alerts-api/internal/application/alerts"
	"github.com/jhoicas/stock-alerts-api/internal/domain/entity"
)

var _ alerts.ReportPDFGenerator = (*MarotoReportGenerator)(nil)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorDanger  = &props.Color{Red: 180, Green: 30, Blue: 30}
)

// urgentDays horizonte a partir del cual la fila se resalta.
const urgentDays = 7

// MarotoReportGenerator implementa alerts.ReportPDFGenerator usando Maroto v2.
type MarotoReportGenerator struct {
	windowDays int
}

// NewMarotoReportGenerator construye el generador; windowDays solo se usa en la leyenda.
func NewMarotoReportGenerator(windowDays int) *MarotoReportGenerator {
	return &MarotoReportGenerator{windowDays: windowDays}
}

// GenerateLowStockPDF genera el PDF y devuelve sus bytes.
func (g *MarotoReportGenerator) GenerateLowStockPDF(
	_ context.Context,
	company *entity.Company,
	list []entity.LowStockAlert,
	generatedAt time.Time,
) ([]byte, error) {
	companyName := company.ID
	if company.Name != "" {
		companyName = company.Name
	}

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Alertas de stock bajo", true).
		WithAuthor(companyName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(companyName, generatedAt))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(summaryRow(len(list)))
	m.AddRows(tableHeaderRow())
	for _, r := range tableRows(list) {
		m.AddRows(r)
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(g.windowDays))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

func headerRow(companyName string, generatedAt time.Time) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New(companyName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Reporte de alertas de stock bajo", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("Generado: "+generatedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
		),
	)
}

func summaryRow(total int) core.Row {
	return row.New(10).Add(col.New(12).Add(
		text.New(fmt.Sprintf("Total de alertas: %s", formatNumber(int64(total))), props.Text{
			Style: fontstyle.Bold, Size: 10, Top: 3,
		}),
	))
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("SKU", 2, align.Left),
		h("Producto", 3, align.Left),
		h("Bodega", 2, align.Left),
		h("Stock", 1, align.Right),
		h("Umbral", 1, align.Right),
		h("Días", 1, align.Right),
		h("Proveedor", 2, align.Left),
	)
}

// tableRows una fila por alerta; los quiebres inminentes se resaltan en rojo.
func tableRows(list []entity.LowStockAlert) []core.Row {
	if len(list) == 0 {
		return []core.Row{row.New(8).Add(col.New(12).Add(
			text.New("Sin alertas de stock bajo.", props.Text{
				Size: 8, Align: align.Center, Top: 2, Color: colorGray,
			}),
		))}
	}
	out := make([]core.Row, 0, len(list))
	for _, a := range list {
		cell := props.Text{Size: 8, Top: 1, Left: 1, Right: 1}
		if a.DaysUntilStockout <= urgentDays {
			cell.Color = colorDanger
		}
		right := cell
		right.Align = align.Right

		supplier := "—"
		if a.Supplier != nil {
			supplier = a.Supplier.Name
			if a.Supplier.ContactEmail != "" {
				supplier += "\n" + a.Supplier.ContactEmail
			}
		}
		out = append(out, row.New(9).Add(
			col.New(2).Add(text.New(a.SKU, cell)),
			col.New(3).Add(text.New(a.ProductName, cell)),
			col.New(2).Add(text.New(a.WarehouseName, cell)),
			col.New(1).Add(text.New(formatNumber(a.CurrentStock), right)),
			col.New(1).Add(text.New(formatNumber(a.Threshold), right)),
			col.New(1).Add(text.New(formatNumber(a.DaysUntilStockout), right)),
			col.New(2).Add(text.New(supplier, props.Text{Size: 7, Top: 1, Left: 1, Color: colorGray})),
		))
	}
	return out
}

func footerRow(windowDays int) core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(fmt.Sprintf(
			"Solo se incluyen productos con ventas en los últimos %d días. "+
				"Días hasta quiebre = stock actual / promedio diario de ventas (redondeado hacia arriba).",
			windowDays,
		), props.Text{Size: 6.5, Color: colorGray, Top: 2}),
	))
}

// formatNumber inserta puntos de miles. Ej: 25000 → "25.000".
func formatNumber(n int64) string {
	s := strconv.FormatInt(n, 10)
	sign := ""
	if n < 0 {
		sign, s = "-", s[1:]
	}
	if len(s) <= 3 {
		return sign + s
	}
	buf := make([]byte, 0, len(s)+len(s)/3)
	for i, c := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return sign + string(buf)
}
