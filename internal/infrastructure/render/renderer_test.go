package render_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/invoice-studio/internal/domain/entity"
	"github.com/jhoicas/invoice-studio/internal/infrastructure/render"
)

func sampleDocument() *entity.InvoiceDocument {
	draft := entity.NewInvoiceDraft("d-1", time.Now())
	draft.CustomerName = "Jane <Doe>"
	draft.CustomerPhone = "555-0100"
	draft.Items[0] = entity.LineItem{Description: "Soup", Rate: decimal.NewFromInt(10), Quantity: decimal.NewFromInt(3)}
	return &entity.InvoiceDocument{
		Draft: draft,
		Seller: entity.BusinessProfile{
			Name:          "Stomach Care Food",
			Address:       "89 Cooke Ave, Brantford, ON, Canada",
			Phone:         "+1 (647) 705-5758",
			InvoiceNumber: "INVO001",
			DueText:       "On Receipt",
		},
		IssuedAt: time.Date(2024, time.March, 7, 12, 0, 0, 0, time.Local),
	}
}

func newRenderer(t *testing.T) *render.Renderer {
	t.Helper()
	r, err := render.NewRenderer("")
	require.NoError(t, err)
	return r
}

func TestRenderPreview_ContenidoDeLaFactura(t *testing.T) {
	out, err := newRenderer(t).RenderPreview(sampleDocument())
	require.NoError(t, err)
	html := string(out)

	assert.Contains(t, html, `id="invoice"`)
	assert.Contains(t, html, "Stomach Care Food")
	assert.Contains(t, html, "INVO001")
	assert.Contains(t, html, "Date: 03/07/2024")
	assert.Contains(t, html, "Due: On Receipt")
	assert.Contains(t, html, "Bill To:")
	assert.Contains(t, html, "Jane &lt;Doe&gt;", "la entrada del usuario se escapa")
	assert.Contains(t, html, "$10.00")
	assert.Contains(t, html, "$30.00")
	assert.Contains(t, html, "Total: $30.00")
	assert.Contains(t, html, "Paid: $30.00")
	assert.Contains(t, html, "Balance Due: $0.00")
	assert.NotContains(t, html, "<html")
}

func TestRenderDocument_Autocontenido(t *testing.T) {
	doc := sampleDocument()
	doc.Seller.Logo = []byte("\x89PNG\r\n\x1a\nfake")
	doc.Seller.LogoMIME = "image/png"

	out, err := newRenderer(t).RenderDocument(doc)
	require.NoError(t, err)
	html := string(out)

	assert.Contains(t, html, "<html")
	assert.Contains(t, html, "<style")
	assert.Contains(t, html, `id="invoice"`)
	assert.Contains(t, html, "data:image/png;base64,")
	assert.NotContains(t, html, "<script")
}

func TestRenderPage_FormularioYAcciones(t *testing.T) {
	r, err := render.NewRenderer("factura.pdf")
	require.NoError(t, err)

	doc := sampleDocument()
	doc.Draft.Items = append(doc.Draft.Items, entity.NewLineItem())
	out, err := r.RenderPage(doc)
	require.NoError(t, err)
	html := string(out)

	assert.Contains(t, html, `data-header="customer_name"`)
	assert.Contains(t, html, `data-header="customer_phone"`)
	assert.Equal(t, 2, strings.Count(html, `data-item="rate"`), "un input por línea")
	assert.Contains(t, html, `id="add-item"`)
	assert.Contains(t, html, `id="download"`)
	assert.Contains(t, html, `id="notice"`)
	assert.Contains(t, html, `id="preview"`)
	assert.Contains(t, html, "factura.pdf")
	assert.Contains(t, html, "d-1")
}

func TestRenderPage_EdicionesEnCola(t *testing.T) {
	out, err := newRenderer(t).RenderPage(sampleDocument())
	require.NoError(t, err)
	html := string(out)

	assert.Contains(t, html, "queue = queue.then(task)")
	assert.Contains(t, html, "if (seq !== previewSeq) { return; }")
	assert.Equal(t, 3, strings.Count(html, "enqueue(function ()"), "PATCH, agregar línea y descarga pasan por la cola")
	assert.NotContains(t, html, "return refreshPreview();")
}

func TestRender_DocumentoVacio(t *testing.T) {
	r := newRenderer(t)

	_, err := r.RenderPreview(nil)
	assert.Error(t, err)
	_, err = r.RenderDocument(&entity.InvoiceDocument{})
	assert.Error(t, err)
}

func TestMoney(t *testing.T) {
	assert.Equal(t, "$30.00", render.Money(decimal.NewFromInt(30)))
	assert.Equal(t, "$0.10", render.Money(decimal.RequireFromString("0.1")))
	assert.Equal(t, "$-3.50", render.Money(decimal.RequireFromString("-3.5")))
}

func TestLoadLogo(t *testing.T) {
	data, mime, err := render.LoadLogo("")
	require.NoError(t, err)
	assert.Nil(t, data)
	assert.Empty(t, mime)

	path := filepath.Join(t.TempDir(), "logo.png")
	require.NoError(t, os.WriteFile(path, []byte("\x89PNG\r\n\x1a\n0000"), 0o600))
	data, mime, err = render.LoadLogo(path)
	require.NoError(t, err)
	assert.NotEmpty(t, data)
	assert.Equal(t, "image/png", mime)

	_, _, err = render.LoadLogo(filepath.Join(t.TempDir(), "missing.png"))
	assert.Error(t, err)
}
