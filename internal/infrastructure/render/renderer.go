// Package render genera el HTML del formulario y de la vista previa de la factura.
//
// La vista previa (#invoice) se dibuja con la misma plantilla en tres contextos:
// la página completa del formulario, el fragmento que la página recarga tras cada
// edición y el documento autocontenido que abre el navegador headless al exportar.
package render

import (
	"bytes"
	"embed"
	"encoding/base64"
	"fmt"
	"html/template"
	"net/http"
	"os"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/invoice-studio/internal/domain/entity"
	domaininvoice "github.com/jhoicas/invoice-studio/internal/domain/invoice"
)

//go:embed templates/*.html
var templateFS embed.FS

// Renderer implementa invoice.PreviewRenderer con html/template.
type Renderer struct {
	tmpl           *template.Template
	exportFilename string
}

// NewRenderer parsea las plantillas embebidas. exportFilename es el nombre sugerido
// al descargar el PDF desde la página.
func NewRenderer(exportFilename string) (*Renderer, error) {
	tmpl, err := template.New("invoice-studio").Funcs(template.FuncMap{
		"money": Money,
		"qty":   func(d decimal.Decimal) string { return d.String() },
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("render: parsear plantillas: %w", err)
	}
	if exportFilename == "" {
		exportFilename = "invoice.pdf"
	}
	return &Renderer{tmpl: tmpl, exportFilename: exportFilename}, nil
}

// viewData modelo que reciben las plantillas.
type viewData struct {
	Draft          *entity.InvoiceDraft
	Seller         entity.BusinessProfile
	Date           string
	Logo           template.URL
	ExportFilename string
}

// RenderPage página completa: formulario + vista previa + acciones.
func (r *Renderer) RenderPage(doc *entity.InvoiceDocument) ([]byte, error) {
	return r.execute("page", doc)
}

// RenderPreview solo el fragmento #invoice.
func (r *Renderer) RenderPreview(doc *entity.InvoiceDocument) ([]byte, error) {
	return r.execute("invoice", doc)
}

// RenderDocument documento HTML autocontenido con la vista previa, para capturar.
func (r *Renderer) RenderDocument(doc *entity.InvoiceDocument) ([]byte, error) {
	return r.execute("document", doc)
}

func (r *Renderer) execute(name string, doc *entity.InvoiceDocument) ([]byte, error) {
	if doc == nil || doc.Draft == nil {
		return nil, fmt.Errorf("render: documento vacío")
	}
	data := viewData{
		Draft:          doc.Draft,
		Seller:         doc.Seller,
		Date:           domaininvoice.FormatInvoiceDate(doc.IssuedAt),
		ExportFilename: r.exportFilename,
	}
	if len(doc.Seller.Logo) > 0 {
		mime := doc.Seller.LogoMIME
		if mime == "" {
			mime = http.DetectContentType(doc.Seller.Logo)
		}
		data.Logo = template.URL("data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(doc.Seller.Logo))
	}

	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return nil, fmt.Errorf("render: %s: %w", name, err)
	}
	return buf.Bytes(), nil
}

// Money formatea un monto como "$30.00".
func Money(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}

// LoadLogo lee el logo del emisor. Una ruta vacía no es error: la factura sale sin logo.
func LoadLogo(path string) ([]byte, string, error) {
	if path == "" {
		return nil, "", nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("render: leer logo: %w", err)
	}
	return data, http.DetectContentType(data), nil
}
