package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/invoice-studio/internal/application/dto"
	"github.com/jhoicas/invoice-studio/internal/domain"
)

// writeError traduce los errores de dominio a respuestas HTTP. Los mensajes de
// exportación están pensados para mostrarse tal cual al usuario en la página.
func writeError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "borrador no encontrado o expirado; recargue la página"})
	case errors.Is(err, domain.ErrItemOutOfRange):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "ITEM_OUT_OF_RANGE", Message: err.Error()})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrCaptureTimeout):
		return c.Status(fiber.StatusGatewayTimeout).JSON(dto.ErrorResponse{Code: "EXPORT_TIMEOUT", Message: "la generación del PDF tardó demasiado; intente de nuevo"})
	case errors.Is(err, domain.ErrCaptureFailed), errors.Is(err, domain.ErrDocumentFailed), errors.Is(err, domain.ErrExporterClosed):
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: "EXPORT_FAILED", Message: "no se pudo generar el PDF; sus datos siguen intactos, intente de nuevo"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
