package invoice

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/invoice-studio/internal/domain"
	"github.com/jhoicas/invoice-studio/internal/domain/entity"
	"github.com/jhoicas/invoice-studio/internal/domain/repository"
)

// DraftConfig parámetros de ciclo de vida de los borradores.
type DraftConfig struct {
	TTL          time.Duration // inactividad tras la cual se descarta un borrador
	JanitorEvery time.Duration
	Seller       entity.BusinessProfile
}

// DraftUseCase casos de uso del formulario: crear, leer y editar borradores.
type DraftUseCase struct {
	repo repository.DraftRepository
	cfg  DraftConfig
	log  zerolog.Logger
	now  func() time.Time
}

// NewDraftUseCase construye el caso de uso.
func NewDraftUseCase(repo repository.DraftRepository, cfg DraftConfig, log zerolog.Logger) *DraftUseCase {
	return &DraftUseCase{repo: repo, cfg: cfg, log: log, now: time.Now}
}

// WithClock reemplaza el reloj (tests).
func (uc *DraftUseCase) WithClock(now func() time.Time) *DraftUseCase {
	uc.now = now
	return uc
}

// Create inicia un borrador nuevo con una línea en blanco.
func (uc *DraftUseCase) Create() (*entity.InvoiceDraft, error) {
	draft := entity.NewInvoiceDraft(uuid.New().String(), uc.now())
	if err := uc.repo.Create(draft); err != nil {
		return nil, fmt.Errorf("draft: crear: %w", err)
	}
	return draft.Clone(), nil
}

// Get devuelve una copia del borrador o domain.ErrNotFound.
func (uc *DraftUseCase) Get(id string) (*entity.InvoiceDraft, error) {
	draft, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("draft: obtener: %w", err)
	}
	if draft == nil {
		return nil, domain.ErrNotFound
	}
	return draft, nil
}

// Apply aplica una edición a través del Controller con acceso exclusivo al borrador.
// Si la edición falla, el borrador no cambia.
func (uc *DraftUseCase) Apply(id string, u entity.Update) (*entity.InvoiceDraft, error) {
	draft, err := uc.repo.Update(id, func(d *entity.InvoiceDraft) error {
		return NewController(d, uc.now).Apply(u)
	})
	if err != nil {
		return nil, err
	}
	if draft == nil {
		return nil, domain.ErrNotFound
	}
	return draft, nil
}

// Document instantánea del borrador junto con el emisor y la fecha de emisión actual.
func (uc *DraftUseCase) Document(id string) (*entity.InvoiceDocument, error) {
	draft, err := uc.Get(id)
	if err != nil {
		return nil, err
	}
	return &entity.InvoiceDocument{Draft: draft, Seller: uc.cfg.Seller, IssuedAt: uc.now()}, nil
}

// Evict descarta los borradores inactivos por más de TTL.
func (uc *DraftUseCase) Evict() int {
	if uc.cfg.TTL <= 0 {
		return 0
	}
	return uc.repo.DeleteIdleSince(uc.now().Add(-uc.cfg.TTL))
}

// RunJanitor ejecuta Evict periódicamente hasta que ctx se cancele.
func (uc *DraftUseCase) RunJanitor(ctx context.Context) {
	every := uc.cfg.JanitorEvery
	if every <= 0 || uc.cfg.TTL <= 0 {
		return
	}
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := uc.Evict(); n > 0 {
				uc.log.Info().Int("evicted", n).Int("active", uc.repo.Count()).Msg("borradores inactivos descartados")
			}
		}
	}
}
