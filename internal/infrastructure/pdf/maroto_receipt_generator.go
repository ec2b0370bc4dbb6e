// Package pdf implementa la generación del comprobante gráfico de un traslado
// confirmado.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Comprobante de Traslado  │  N° Traslado + Fecha    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  ACTIVO: nombre + cantidad + tipo de traslado               │
//	│  RUTA: bodega de origen → destino (bodega/proyecto/usuario) │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESPONSABLES: solicitado por / aprobado por                │
//	│  FOOTER: QR con el ID del traslado + leyenda                │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"

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

	"github.com/tu-usuario/activos-pro/internal/application/transfer"
	"github.com/tu-usuario/activos-pro/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ transfer.ReceiptGenerator = (*MarotoReceiptGenerator)(nil)

// MarotoReceiptGenerator implementa transfer.ReceiptGenerator usando Maroto v2.
type MarotoReceiptGenerator struct{}

// NewMarotoReceiptGenerator construye el generador.
func NewMarotoReceiptGenerator() *MarotoReceiptGenerator { return &MarotoReceiptGenerator{} }

// GenerateReceipt genera el comprobante PDF y devuelve sus bytes.
func (g *MarotoReceiptGenerator) GenerateReceipt(t *entity.Transfer) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Comprobante de Traslado", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(t))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(assetRow(t))
	m.AddRows(routeRow(t))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(responsiblesRow(t))
	if t.Notes != "" {
		m.AddRows(notesRow(t))
	}
	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRows(t)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título (izq) y N° de traslado + fecha de entrega (der).
func headerRow(t *entity.Transfer) core.Row {
	fecha := t.DeliveredAt.Format("02/01/2006 15:04")
	return row.New(18).Add(
		col.New(7).Add(
			text.New("COMPROBANTE DE TRASLADO", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Tipo: "+transferTypeLabel(t.Type), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("N° "+t.ID, props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Top: 1,
			}),
			text.New("Entregado: "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
			text.New("Estado: "+t.Status, props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// assetRow: activo trasladado y cantidad.
func assetRow(t *entity.Transfer) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("ACTIVO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(t.AssetName, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("Cantidad: %s   |   ID activo: %s",
				t.Quantity.String(), t.AssetID,
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

// routeRow: origen y destino del movimiento.
func routeRow(t *entity.Transfer) core.Row {
	return row.New(12).Add(
		col.New(6).Add(
			text.New("ORIGEN", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New("Bodega: "+nonEmpty(t.SourceWarehouseID, "—"), props.Text{
				Size: 8, Top: 7, Color: colorGray,
			}),
		),
		col.New(6).Add(
			text.New("DESTINO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(destinationLabel(t), props.Text{
				Size: 8, Top: 7, Color: colorGray,
			}),
		),
	)
}

// responsiblesRow: solicitante y aprobador del traslado.
func responsiblesRow(t *entity.Transfer) core.Row {
	return row.New(12).Add(
		col.New(6).Add(
			text.New("SOLICITADO POR", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(t.RequestedBy, props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
		col.New(6).Add(
			text.New("APROBADO POR", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(t.ApprovedBy, props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
	)
}

// notesRow: observaciones del commit, si las hay.
func notesRow(t *entity.Transfer) core.Row {
	return row.New(12).Add(
		col.New(12).Add(
			text.New("OBSERVACIONES", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(t.Notes, props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
	)
}

// footerRows: QR con el ID del traslado + leyenda.
func footerRows(t *entity.Transfer) []core.Row {
	return []core.Row{
		row.New(50).Add(
			col.New(4).Add(code.NewQr(t.ID, props.Rect{
				Percent: 95,
				Center:  true,
			})),
			col.New(8).Add(
				text.New("Escanea el código QR para consultar\neste traslado en el sistema.", props.Text{
					Size: 8, Top: 4, Left: 3, Color: colorGray,
				}),
				text.New("COMPROBANTE DE TRASLADO\nDE ACTIVOS", props.Text{
					Style: fontstyle.Bold, Size: 10, Top: 22,
					Left: 3, Color: colorPrimary,
				}),
			),
		),
		row.New(8).Add(col.New(12).Add(
			text.New(
				"Este comprobante registra un movimiento confirmado de activos. "+
					"Conserve este documento como soporte interno.",
				props.Text{Size: 6.5, Color: colorGray, Top: 2},
			),
		)),
	}
}

// ── helpers ───────────────────────────────────────────────────────────────────

func transferTypeLabel(t string) string {
	switch t {
	case entity.TransferTypeProject:
		return "a proyecto"
	case entity.TransferTypeUser:
		return "a usuario"
	default:
		return "entre bodegas"
	}
}

func destinationLabel(t *entity.Transfer) string {
	switch {
	case t.DestProjectID != "":
		return "Proyecto: " + t.DestProjectID
	case t.DestUserID != "":
		return "Usuario: " + t.DestUserID
	default:
		return "Bodega: " + nonEmpty(t.DestWarehouseID, "—")
	}
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
