package invoice

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/invoice-studio/internal/domain"
	"github.com/jhoicas/invoice-studio/internal/domain/entity"
)

// ExportMode estrategia de exportación.
type ExportMode string

const (
	// ExportRaster captura la vista previa como imagen y la incrusta en una página PDF.
	ExportRaster ExportMode = "raster"
	// ExportVector dibuja la factura directamente como PDF vectorial.
	ExportVector ExportMode = "vector"
)

// ParseExportMode valida el modo; vacío equivale a ExportRaster.
func ParseExportMode(s string) (ExportMode, error) {
	switch ExportMode(s) {
	case "", ExportRaster:
		return ExportRaster, nil
	case ExportVector:
		return ExportVector, nil
	}
	return "", fmt.Errorf("%w: modo de exportación %q", domain.ErrInvalidInput, s)
}

// ExportConfig parámetros de exportación.
type ExportConfig struct {
	Timeout  time.Duration // límite de la captura; <= 0 sin límite
	Filename string
	Selector string // región capturada dentro del documento
}

// ExportResult PDF listo para descargar.
type ExportResult struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ExportUseCase exporta la vista previa de un borrador a PDF en dos fases:
// captura (suspensiva, con límite de tiempo) y armado del documento.
// Nunca modifica el borrador: trabaja sobre una instantánea.
type ExportUseCase struct {
	source     DocumentSource
	renderer   PreviewRenderer
	rasterizer Rasterizer
	assembler  DocumentAssembler
	vector     VectorPDFGenerator
	cfg        ExportConfig
	log        zerolog.Logger
}

// NewExportUseCase construye el caso de uso inyectando todas sus dependencias.
func NewExportUseCase(
	source DocumentSource,
	renderer PreviewRenderer,
	rasterizer Rasterizer,
	assembler DocumentAssembler,
	vector VectorPDFGenerator,
	cfg ExportConfig,
	log zerolog.Logger,
) *ExportUseCase {
	if cfg.Filename == "" {
		cfg.Filename = "invoice.pdf"
	}
	if cfg.Selector == "" {
		cfg.Selector = "#invoice"
	}
	return &ExportUseCase{
		source:     source,
		renderer:   renderer,
		rasterizer: rasterizer,
		assembler:  assembler,
		vector:     vector,
		cfg:        cfg,
		log:        log,
	}
}

// Export genera el PDF del borrador id.
//
// Retorna:
//   - domain.ErrNotFound        si el borrador no existe.
//   - domain.ErrCaptureTimeout  si la captura excede ExportConfig.Timeout.
//   - domain.ErrCaptureFailed   si el rasterizador falla (o no hay rasterizador).
//   - domain.ErrDocumentFailed  si falla el armado del PDF.
func (uc *ExportUseCase) Export(ctx context.Context, id string, mode ExportMode) (*ExportResult, error) {
	// ── 1. Instantánea del borrador ──────────────────────────────────────────
	doc, err := uc.source.Document(id)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	var data []byte
	switch mode {
	case ExportVector:
		data, err = uc.exportVector(ctx, doc)
	default:
		data, err = uc.exportRaster(ctx, doc)
	}
	if err != nil {
		uc.log.Warn().Err(err).Str("draft_id", id).Str("mode", string(mode)).
			Dur("elapsed", time.Since(start)).Msg("exportación fallida")
		return nil, err
	}

	uc.log.Info().Str("draft_id", id).Str("mode", string(mode)).Int("bytes", len(data)).
		Int("items", len(doc.Draft.Items)).Dur("elapsed", time.Since(start)).Msg("factura exportada")
	return &ExportResult{Filename: uc.cfg.Filename, ContentType: "application/pdf", Data: data}, nil
}

func (uc *ExportUseCase) exportRaster(ctx context.Context, doc *entity.InvoiceDocument) ([]byte, error) {
	if uc.rasterizer == nil || uc.assembler == nil {
		return nil, fmt.Errorf("%w: exportación por captura no disponible", domain.ErrCaptureFailed)
	}

	// ── 2. Renderizar el documento HTML de la vista previa ───────────────────
	html, err := uc.renderer.RenderDocument(doc)
	if err != nil {
		return nil, fmt.Errorf("%w: render: %w", domain.ErrCaptureFailed, err)
	}

	// ── 3. Captura (punto de suspensión) ─────────────────────────────────────
	captureCtx := ctx
	if uc.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		captureCtx, cancel = context.WithTimeout(ctx, uc.cfg.Timeout)
		defer cancel()
	}
	img, err := uc.rasterizer.Capture(captureCtx, html, uc.cfg.Selector)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(captureCtx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w (%s)", domain.ErrCaptureTimeout, uc.cfg.Timeout)
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrCaptureFailed, err)
	}
	if len(img) == 0 {
		return nil, fmt.Errorf("%w: imagen vacía", domain.ErrCaptureFailed)
	}

	// ── 4. Armar el PDF ──────────────────────────────────────────────────────
	pdf, err := uc.assembler.AssembleImagePage(ctx, img)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrDocumentFailed, err)
	}
	return pdf, nil
}

func (uc *ExportUseCase) exportVector(ctx context.Context, doc *entity.InvoiceDocument) ([]byte, error) {
	if uc.vector == nil {
		return nil, fmt.Errorf("%w: exportación vectorial no disponible", domain.ErrDocumentFailed)
	}
	pdf, err := uc.vector.GenerateInvoicePDF(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrDocumentFailed, err)
	}
	return pdf, nil
}
