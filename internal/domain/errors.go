package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound       = errors.New("recurso no encontrado")
	ErrInvalidInput   = errors.New("entrada inválida")
	ErrItemOutOfRange = errors.New("índice de ítem fuera de rango")
	ErrCaptureFailed  = errors.New("no se pudo capturar la vista previa")
	ErrCaptureTimeout = errors.New("la captura de la vista previa excedió el tiempo límite")
	ErrDocumentFailed = errors.New("no se pudo generar el documento PDF")
	ErrExporterClosed = errors.New("el exportador está cerrado")
)
