package pdf_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/invoice-studio/internal/domain/entity"
	"github.com/jhoicas/invoice-studio/internal/infrastructure/pdf"
)

func TestMarotoPDFGenerator_GenerateInvoicePDF(t *testing.T) {
	draft := entity.NewInvoiceDraft("d-1", time.Now())
	draft.CustomerName = "Jane Doe"
	draft.CustomerPhone = "555-0100"
	draft.Items[0] = entity.LineItem{Description: "Soup", Rate: decimal.NewFromInt(10), Quantity: decimal.NewFromInt(3)}
	draft.Items = append(draft.Items, entity.NewLineItem())

	doc := &entity.InvoiceDocument{
		Draft:    draft,
		Seller:   entity.BusinessProfile{Name: "Stomach Care Food", InvoiceNumber: "INVO001", DueText: "On Receipt"},
		IssuedAt: time.Date(2024, 3, 7, 0, 0, 0, 0, time.Local),
	}

	out, err := pdf.NewMarotoPDFGenerator().GenerateInvoicePDF(context.Background(), doc)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
	assert.Greater(t, len(out), 500)
}

func TestMarotoPDFGenerator_Logo(t *testing.T) {
	draft := entity.NewInvoiceDraft("d-1", time.Now())
	seller := entity.BusinessProfile{Name: "Stomach Care Food", InvoiceNumber: "INVO001"}
	g := pdf.NewMarotoPDFGenerator()

	withoutLogo, err := g.GenerateInvoicePDF(context.Background(), &entity.InvoiceDocument{Draft: draft, Seller: seller})
	require.NoError(t, err)
	assert.NotContains(t, string(withoutLogo), "/Subtype /Image")

	seller.Logo = samplePNG(t, 40, 40)
	seller.LogoMIME = "image/png"
	withLogo, err := g.GenerateInvoicePDF(context.Background(), &entity.InvoiceDocument{Draft: draft, Seller: seller})
	require.NoError(t, err)
	assert.Contains(t, string(withLogo), "/Subtype /Image")

	// Sin MIME se detecta por contenido; los formatos no soportados se omiten.
	seller.LogoMIME = ""
	detected, err := g.GenerateInvoicePDF(context.Background(), &entity.InvoiceDocument{Draft: draft, Seller: seller})
	require.NoError(t, err)
	assert.Contains(t, string(detected), "/Subtype /Image")

	seller.Logo = []byte("GIF89a....")
	seller.LogoMIME = "image/gif"
	gif, err := g.GenerateInvoicePDF(context.Background(), &entity.InvoiceDocument{Draft: draft, Seller: seller})
	require.NoError(t, err)
	assert.NotContains(t, string(gif), "/Subtype /Image")
}

func TestMarotoPDFGenerator_DocumentoVacio(t *testing.T) {
	g := pdf.NewMarotoPDFGenerator()

	_, err := g.GenerateInvoicePDF(context.Background(), nil)
	assert.Error(t, err)

	_, err = g.GenerateInvoicePDF(context.Background(), &entity.InvoiceDocument{})
	assert.Error(t, err)
}
