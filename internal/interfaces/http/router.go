package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/invoice-studio/internal/application/invoice"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Drafts   *invoice.DraftUseCase
	Export   *invoice.ExportUseCase
	Renderer previewRenderer
}

// Router registra la página y las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	pageHandler := NewPageHandler(deps.Drafts, deps.Renderer)
	app.Get("/", pageHandler.Index)
	app.Get("/drafts/:id", pageHandler.Show)

	api := app.Group("/api")

	drafts := api.Group("/drafts")
	draftHandler := NewDraftHandler(deps.Drafts, deps.Renderer)
	drafts.Post("/", draftHandler.Create)
	drafts.Get("/:id", draftHandler.GetByID)
	drafts.Patch("/:id/header", draftHandler.UpdateHeader)
	drafts.Post("/:id/items", draftHandler.AppendItem)
	drafts.Patch("/:id/items/:index", draftHandler.UpdateItem)
	drafts.Get("/:id/preview", draftHandler.Preview)

	exportHandler := NewExportHandler(deps.Export)
	drafts.Get("/:id/pdf", exportHandler.Download)
}
