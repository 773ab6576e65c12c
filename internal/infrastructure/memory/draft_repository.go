// Package memory implementa los repositorios en memoria del proceso.
package memory

import (
	"fmt"
	"sync"
	"time"

	"github.com/jhoicas/invoice-studio/internal/domain"
	"github.com/jhoicas/invoice-studio/internal/domain/entity"
	"github.com/jhoicas/invoice-studio/internal/domain/repository"
)

var _ repository.DraftRepository = (*DraftRepo)(nil)

type draftEntry struct {
	mu    sync.Mutex
	draft *entity.InvoiceDraft
}

// DraftRepo implementación de DraftRepository sobre un mapa protegido por RWMutex.
// Cada borrador tiene su propio mutex para que las ediciones de distintos usuarios no se bloqueen.
type DraftRepo struct {
	mu      sync.RWMutex
	entries map[string]*draftEntry
}

// NewDraftRepository construye el repositorio vacío.
func NewDraftRepository() *DraftRepo {
	return &DraftRepo{entries: make(map[string]*draftEntry)}
}

// Create registra un borrador nuevo.
func (r *DraftRepo) Create(draft *entity.InvoiceDraft) error {
	if draft == nil || draft.ID == "" {
		return domain.ErrInvalidInput
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.entries[draft.ID]; ok {
		return fmt.Errorf("create draft %s: ya existe", draft.ID)
	}
	r.entries[draft.ID] = &draftEntry{draft: draft.Clone()}
	return nil
}

// GetByID obtiene una copia del borrador.
func (r *DraftRepo) GetByID(id string) (*entity.InvoiceDraft, error) {
	e := r.entry(id)
	if e == nil {
		return nil, nil
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.draft == nil {
		return nil, nil
	}
	return e.draft.Clone(), nil
}

// Update aplica fn sobre una copia y la confirma solo si fn no falla.
func (r *DraftRepo) Update(id string, fn func(draft *entity.InvoiceDraft) error) (*entity.InvoiceDraft, error) {
	e := r.entry(id)
	if e == nil {
		return nil, nil
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	// Pudo haber sido desalojado mientras esperábamos el lock.
	if e.draft == nil {
		return nil, nil
	}
	work := e.draft.Clone()
	if err := fn(work); err != nil {
		return nil, err
	}
	e.draft = work
	return work.Clone(), nil
}

// DeleteIdleSince elimina los borradores cuya última modificación es anterior a cutoff.
func (r *DraftRepo) DeleteIdleSince(cutoff time.Time) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	removed := 0
	for id, e := range r.entries {
		e.mu.Lock()
		if e.draft.UpdatedAt.Before(cutoff) {
			e.draft = nil
			delete(r.entries, id)
			removed++
		}
		e.mu.Unlock()
	}
	return removed
}

// Count cantidad de borradores activos.
func (r *DraftRepo) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

func (r *DraftRepo) entry(id string) *draftEntry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.entries[id]
}
