// Package pdf implementa el Reporte de Valorizaciones de una obra.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre de la obra  │  N° Contrato + Tipo            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  DATOS: Expediente / Período / Inicio / Plazo                │
//	│  EMPRESAS: Ejecutora + Supervisora                           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: N° | Período | Fecha | Avance % | Monto Bruto        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Avance acumulado / MONTO TOTAL                     │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

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

	"github.com/ENEASJO/control-valo-api/internal/application/usecase"
	"github.com/ENEASJO/control-valo-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// Asegura que MarotoReporteGenerator implementa el puerto de la aplicación.
var _ usecase.ReporteObraGenerator = (*MarotoReporteGenerator)(nil)

// MarotoReporteGenerator implementa usecase.ReporteObraGenerator usando Maroto v2.
type MarotoReporteGenerator struct{}

// NewMarotoReporteGenerator construye el generador.
func NewMarotoReporteGenerator() *MarotoReporteGenerator { return &MarotoReporteGenerator{} }

// GenerarReporteObra genera el PDF y devuelve sus bytes.
func (g *MarotoReporteGenerator) GenerarReporteObra(
	_ context.Context,
	obra *entity.Obra,
	ejecutora, supervisora *entity.Empresa,
	valorizaciones []entity.Valorizacion,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de Valorizaciones", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(obra))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(datosObraRow(obra))
	m.AddRows(empresaRow("EMPRESA EJECUTORA", ejecutora))
	m.AddRows(empresaRow("EMPRESA SUPERVISORA", supervisora))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableValorizacionRows(valorizaciones) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalesRow(valorizaciones))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: nombre de la obra (izq) y contrato + variante (der).
func headerRow(obra *entity.Obra) core.Row {
	variante := "OBRA EN EJECUCIÓN"
	if obra.Tipo == entity.TipoSupervision {
		variante = "OBRA EN SUPERVISIÓN"
	}
	return row.New(18).Add(
		col.New(7).Add(
			text.New(obra.Nombre, props.Text{
				Style: fontstyle.Bold, Size: 12, Color: colorPrimary, Top: 1,
			}),
			text.New("Expediente: "+obra.NumeroExpediente, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New(variante, props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(obra.NumeroContrato, props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 7,
			}),
			text.New("Inicio: "+obra.FechaInicio.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// datosObraRow: período de valorización y plazo.
func datosObraRow(obra *entity.Obra) core.Row {
	return row.New(10).Add(
		col.New(12).Add(
			text.New("DATOS DEL CONTRATO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Período de valorización: %s   |   Plazo de ejecución: %d días",
				obra.PeriodoValorizacion, obra.PlazoEjecucionDias,
			), props.Text{Size: 8, Top: 6, Color: colorGray}),
		),
	)
}

// empresaRow: una empresa con su rol. Las empresas pueden faltar si la obra
// quedó con referencias rotas; se imprime un guion en ese caso.
func empresaRow(rol string, e *entity.Empresa) core.Row {
	nombre, ruc := "—", "—"
	if e != nil {
		nombre, ruc = e.Nombre, e.RUC
		if e.EsConsorcio {
			nombre += " (Consorcio)"
		}
	}
	return row.New(10).Add(
		col.New(12).Add(
			text.New(rol, props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("%s   |   RUC: %s", nombre, ruc),
				props.Text{Size: 8, Top: 6, Color: colorGray}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de valorizaciones.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("N°", 1, align.Center),
		h("Período", 4, align.Left),
		h("Fecha", 2, align.Center),
		h("Avance físico", 2, align.Right),
		h("Monto bruto", 3, align.Right),
	)
}

// tableValorizacionRows: una fila por valorización.
func tableValorizacionRows(valorizaciones []entity.Valorizacion) []core.Row {
	result := make([]core.Row, 0, len(valorizaciones))
	for _, v := range valorizaciones {
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(
				fmt.Sprintf("%d", v.Numero),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(4).Add(text.New(
				v.Periodo,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				v.Fecha.Format("02/01/2006"),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(2).Add(text.New(
				v.AvanceFisico.StringFixed(2)+"%",
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(3).Add(text.New(
				"S/ "+v.MontoBruto.StringFixed(2),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// totalesRow: avance acumulado y monto total valorizado.
func totalesRow(valorizaciones []entity.Valorizacion) core.Row {
	total := decimal.Zero
	avance := decimal.Zero
	for _, v := range valorizaciones {
		total = total.Add(v.MontoBruto)
		if v.AvanceFisico.GreaterThan(avance) {
			avance = v.AvanceFisico
		}
	}

	label := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
		})
	}
	grandLabel := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 2,
		})
	}

	return row.New(18).Add(
		col.New(4),
		col.New(4).Add(
			label("Avance físico acumulado:"),
			grandLabel("MONTO TOTAL VALORIZADO:"),
		),
		col.New(4).Add(
			text.New(avance.StringFixed(2)+"%", props.Text{Size: 9, Align: align.Right, Right: 1}),
			text.New("S/ "+total.StringFixed(2), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right,
				Color: colorPrimary, Right: 1,
			}),
		),
	)
}
