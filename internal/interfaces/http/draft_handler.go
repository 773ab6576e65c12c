package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/invoice-studio/internal/application/dto"
	"github.com/jhoicas/invoice-studio/internal/application/invoice"
	"github.com/jhoicas/invoice-studio/internal/domain/entity"
)

// previewRenderer es lo mínimo que necesitan los handlers para dibujar HTML.
// Lo implementa *render.Renderer.
type previewRenderer interface {
	RenderPage(doc *entity.InvoiceDocument) ([]byte, error)
	RenderPreview(doc *entity.InvoiceDocument) ([]byte, error)
}

// DraftHandler maneja la API JSON del formulario.
type DraftHandler struct {
	uc       *invoice.DraftUseCase
	renderer previewRenderer
}

// NewDraftHandler construye el handler.
func NewDraftHandler(uc *invoice.DraftUseCase, renderer previewRenderer) *DraftHandler {
	return &DraftHandler{uc: uc, renderer: renderer}
}

// Create POST /api/drafts
func (h *DraftHandler) Create(c *fiber.Ctx) error {
	draft, err := h.uc.Create()
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewDraftResponse(draft))
}

// GetByID GET /api/drafts/:id
func (h *DraftHandler) GetByID(c *fiber.Ctx) error {
	draft, err := h.uc.Get(c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewDraftResponse(draft))
}

// UpdateHeader PATCH /api/drafts/:id/header  {"field": "customer_name", "value": "..."}
func (h *DraftHandler) UpdateHeader(c *fiber.Ctx) error {
	var in dto.UpdateFieldRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	field, err := entity.ParseHeaderField(in.Field)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	draft, err := h.uc.Apply(c.Params("id"), entity.HeaderUpdate{Field: field, Value: string(in.Value)})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewDraftResponse(draft))
}

// UpdateItem PATCH /api/drafts/:id/items/:index  {"field": "rate", "value": "10"}
func (h *DraftHandler) UpdateItem(c *fiber.Ctx) error {
	index, err := c.ParamsInt("index")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "índice inválido"})
	}
	var in dto.UpdateFieldRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	field, err := entity.ParseItemField(in.Field)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	draft, err := h.uc.Apply(c.Params("id"), entity.ItemUpdate{Index: index, Field: field, Value: string(in.Value)})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewDraftResponse(draft))
}

// AppendItem POST /api/drafts/:id/items
func (h *DraftHandler) AppendItem(c *fiber.Ctx) error {
	draft, err := h.uc.Apply(c.Params("id"), entity.AppendItem{})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewDraftResponse(draft))
}

// Preview GET /api/drafts/:id/preview. Fragmento HTML de la vista previa.
func (h *DraftHandler) Preview(c *fiber.Ctx) error {
	doc, err := h.uc.Document(c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	html, err := h.renderer.RenderPreview(doc)
	if err != nil {
		return writeError(c, err)
	}
	c.Type("html", "utf-8")
	return c.Send(html)
}
