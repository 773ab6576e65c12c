package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/invoice-studio/internal/application/invoice"
)

// ExportHandler descarga la factura en PDF.
type ExportHandler struct {
	uc *invoice.ExportUseCase
}

// NewExportHandler construye el handler.
func NewExportHandler(uc *invoice.ExportUseCase) *ExportHandler {
	return &ExportHandler{uc: uc}
}

// Download GET /api/drafts/:id/pdf?mode=raster|vector
func (h *ExportHandler) Download(c *fiber.Ctx) error {
	mode, err := invoice.ParseExportMode(c.Query("mode"))
	if err != nil {
		return writeError(c, err)
	}
	res, err := h.uc.Export(c.UserContext(), c.Params("id"), mode)
	if err != nil {
		return writeError(c, err)
	}
	c.Attachment(res.Filename)
	c.Set(fiber.HeaderContentType, res.ContentType)
	return c.Send(res.Data)
}
