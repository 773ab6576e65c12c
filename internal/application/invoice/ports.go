package invoice

import (
	"context"

	"github.com/jhoicas/invoice-studio/internal/domain/entity"
)

// PreviewRenderer produce el HTML de la factura.
type PreviewRenderer interface {
	// RenderDocument devuelve un documento HTML autocontenido (estilos y logo embebidos)
	// apto para ser abierto por el rasterizador.
	RenderDocument(doc *entity.InvoiceDocument) ([]byte, error)
}

// Rasterizer captura como imagen PNG la región selector de un documento HTML ya renderizado.
// Debe respetar la cancelación y el deadline de ctx.
type Rasterizer interface {
	Capture(ctx context.Context, html []byte, selector string) ([]byte, error)
}

// DocumentAssembler arma un PDF de una página con la imagen ocupando la página completa.
type DocumentAssembler interface {
	AssembleImagePage(ctx context.Context, png []byte) ([]byte, error)
}

// VectorPDFGenerator genera la factura como PDF vectorial (sin pasar por el navegador).
type VectorPDFGenerator interface {
	GenerateInvoicePDF(ctx context.Context, doc *entity.InvoiceDocument) ([]byte, error)
}

// DocumentSource entrega una instantánea del documento de un borrador.
type DocumentSource interface {
	Document(id string) (*entity.InvoiceDocument, error)
}
