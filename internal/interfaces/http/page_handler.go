package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/invoice-studio/internal/application/invoice"
	"github.com/jhoicas/invoice-studio/internal/domain"
)

// PageHandler sirve la página del formulario.
type PageHandler struct {
	uc       *invoice.DraftUseCase
	renderer previewRenderer
}

// NewPageHandler construye el handler.
func NewPageHandler(uc *invoice.DraftUseCase, renderer previewRenderer) *PageHandler {
	return &PageHandler{uc: uc, renderer: renderer}
}

// Index GET /. Cada carga de página arranca un borrador nuevo.
func (h *PageHandler) Index(c *fiber.Ctx) error {
	draft, err := h.uc.Create()
	if err != nil {
		return writeError(c, err)
	}
	return c.Redirect("/drafts/"+draft.ID, fiber.StatusSeeOther)
}

// Show GET /drafts/:id
func (h *PageHandler) Show(c *fiber.Ctx) error {
	doc, err := h.uc.Document(c.Params("id"))
	if errors.Is(err, domain.ErrNotFound) {
		// Borrador expirado: empezar de nuevo.
		return c.Redirect("/", fiber.StatusSeeOther)
	}
	if err != nil {
		return writeError(c, err)
	}
	html, err := h.renderer.RenderPage(doc)
	if err != nil {
		return writeError(c, err)
	}
	c.Type("html", "utf-8")
	return c.Send(html)
}
