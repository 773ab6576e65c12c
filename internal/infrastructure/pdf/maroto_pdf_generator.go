// Package pdf arma los PDF de la factura.
//
// Hay dos caminos:
//   - ImageDocumentAssembler (gofpdf): incrusta la captura de la vista previa en una página.
//   - MarotoPDFGenerator (Maroto v2): dibuja la misma factura como PDF vectorial,
//     sin navegador.
//
// Layout de la página A4 (versión vectorial):
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Logo + Emisor + dirección/tel │ INVOICE + N° + Fecha │
//	│  ─────────────────────────────────────────────────────────  │
//	│  BILL TO: Nombre + teléfono del cliente                      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Description | Rate | Quantity | Amount               │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Total / Paid / Balance Due                         │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"net/http"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/image"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/extension"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/invoice-studio/internal/domain/entity"
	domaininvoice "github.com/jhoicas/invoice-studio/internal/domain/invoice"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorText   = &props.Color{Red: 17, Green: 24, Blue: 39}
	colorGray   = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorBorder = &props.Color{Red: 209, Green: 213, Blue: 219}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa invoice.VectorPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateInvoicePDF genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateInvoicePDF(_ context.Context, doc *entity.InvoiceDocument) ([]byte, error) {
	if doc == nil || doc.Draft == nil {
		return nil, fmt.Errorf("pdf: documento vacío")
	}

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(15).WithRightMargin(15).
		WithTopMargin(15).WithBottomMargin(15).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 10}).
		WithTitle("Invoice "+doc.Seller.InvoiceNumber, true).
		WithAuthor(doc.Seller.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(doc))
	m.AddRows(line.NewRow(1, props.Line{Color: colorBorder, Thickness: 0.3}))
	m.AddRows(billToRow(doc.Draft))
	m.AddRows(line.NewRow(4))

	m.AddRows(tableHeaderRow())
	for _, r := range tableItemRows(doc.Draft.Items) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorBorder, Thickness: 0.3}))
	m.AddRows(totalsRow(doc.Draft))

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return out.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: logo y emisor (izq), número/fecha/vencimiento (der).
func headerRow(doc *entity.InvoiceDocument) core.Row {
	seller := doc.Seller
	sellerText := []core.Component{
		text.New(seller.Name, props.Text{
			Style: fontstyle.Bold, Size: 16, Color: colorText, Top: 1,
		}),
		text.New(seller.Address, props.Text{Size: 9, Top: 11, Color: colorGray}),
		text.New(seller.Phone, props.Text{Size: 9, Top: 16, Color: colorGray}),
	}

	cols := make([]core.Col, 0, 3)
	if ext, ok := logoExtension(seller); ok {
		cols = append(cols,
			col.New(2).Add(image.NewFromBytes(seller.Logo, ext, props.Rect{Percent: 90, Top: 1})),
			col.New(5).Add(sellerText...),
		)
	} else {
		cols = append(cols, col.New(7).Add(sellerText...))
	}
	cols = append(cols, col.New(5).Add(
		text.New("INVOICE", props.Text{
			Style: fontstyle.Bold, Size: 13, Align: align.Right, Top: 1,
		}),
		text.New(seller.InvoiceNumber, props.Text{Size: 9, Align: align.Right, Top: 8}),
		text.New("Date: "+domaininvoice.FormatInvoiceDate(doc.IssuedAt), props.Text{
			Size: 9, Align: align.Right, Top: 13,
		}),
		text.New("Due: "+seller.DueText, props.Text{Size: 9, Align: align.Right, Top: 18}),
	))
	return row.New(26).Add(cols...)
}

// logoExtension formato del logo para Maroto; solo PNG y JPEG.
func logoExtension(seller entity.BusinessProfile) (extension.Type, bool) {
	if len(seller.Logo) == 0 {
		return "", false
	}
	mime := seller.LogoMIME
	if mime == "" {
		mime = http.DetectContentType(seller.Logo)
	}
	switch mime {
	case "image/png":
		return extension.Png, true
	case "image/jpeg", "image/jpg":
		return extension.Jpg, true
	}
	return "", false
}

// billToRow: datos del cliente tal como se escribieron en el formulario.
func billToRow(draft *entity.InvoiceDraft) core.Row {
	return row.New(20).Add(
		col.New(12).Add(
			text.New("Bill To:", props.Text{Style: fontstyle.Bold, Size: 11, Top: 3}),
			text.New(draft.CustomerName, props.Text{Size: 10, Top: 9}),
			text.New(draft.CustomerPhone, props.Text{Size: 10, Top: 14}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de líneas.
func tableHeaderRow() core.Row {
	h := func(label string, size int) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Center, Top: 2,
		}))
	}
	return row.New(8).Add(
		h("Description", 6),
		h("Rate", 2),
		h("Quantity", 2),
		h("Amount", 2),
	)
}

// tableItemRows: una fila por línea, en orden de inserción.
func tableItemRows(items []entity.LineItem) []core.Row {
	result := make([]core.Row, 0, len(items))
	for _, it := range items {
		result = append(result, row.New(8).Add(
			col.New(6).Add(text.New(it.Description, props.Text{Size: 10, Top: 2, Left: 2})),
			col.New(2).Add(text.New(money(it.Rate), props.Text{Size: 10, Align: align.Center, Top: 2})),
			col.New(2).Add(text.New(it.Quantity.String(), props.Text{Size: 10, Align: align.Center, Top: 2})),
			col.New(2).Add(text.New(money(it.Amount()), props.Text{Size: 10, Align: align.Center, Top: 2})),
		))
	}
	return result
}

// totalsRow: bloque de totales alineado a la derecha.
func totalsRow(draft *entity.InvoiceDraft) core.Row {
	total := func(label string, value decimal.Decimal, top float64) core.Component {
		return text.New(label+": "+money(value), props.Text{
			Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: top,
		})
	}
	return row.New(26).Add(
		col.New(12).Add(
			total("Total", draft.Total(), 3),
			total("Paid", draft.Paid(), 10),
			total("Balance Due", draft.BalanceDue(), 17),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func money(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}
