package repository

import (
	"time"

	"github.com/jhoicas/invoice-studio/internal/domain/entity"
)

// DraftRepository almacena los borradores de factura activos (en memoria, sin persistencia).
// Las lecturas devuelven copias; las modificaciones pasan por Update, que serializa
// los cambios sobre un mismo borrador.
type DraftRepository interface {
	Create(draft *entity.InvoiceDraft) error
	// GetByID devuelve (nil, nil) si el borrador no existe.
	GetByID(id string) (*entity.InvoiceDraft, error)
	// Update ejecuta fn con acceso exclusivo al borrador y devuelve una copia del resultado.
	// Si fn falla, el borrador queda como estaba. Devuelve (nil, nil) si no existe.
	Update(id string, fn func(draft *entity.InvoiceDraft) error) (*entity.InvoiceDraft, error)
	// DeleteIdleSince elimina los borradores sin cambios desde cutoff y devuelve cuántos eliminó.
	DeleteIdleSince(cutoff time.Time) int
	Count() int
}
