package invoice

import (
	"fmt"
	"time"

	"github.com/jhoicas/invoice-studio/internal/domain"
	"github.com/jhoicas/invoice-studio/internal/domain/entity"
	domaininvoice "github.com/jhoicas/invoice-studio/internal/domain/invoice"
)

// Controller es el único punto de mutación de un InvoiceDraft.
// Importe, total, pagado y saldo son accesores del borrador, así que ninguna
// operación puede dejarlos desalineados con las líneas.
type Controller struct {
	draft *entity.InvoiceDraft
	now   func() time.Time
}

// NewController envuelve el borrador. now puede ser nil (usa time.Now).
func NewController(draft *entity.InvoiceDraft, now func() time.Time) *Controller {
	if now == nil {
		now = time.Now
	}
	return &Controller{draft: draft, now: now}
}

// Draft devuelve el borrador controlado.
func (c *Controller) Draft() *entity.InvoiceDraft { return c.draft }

// UpdateField asigna literalmente un campo de cabecera (sin validación).
func (c *Controller) UpdateField(field entity.HeaderField, value string) error {
	switch field {
	case entity.HeaderCustomerName:
		c.draft.CustomerName = value
	case entity.HeaderCustomerPhone:
		c.draft.CustomerPhone = value
	default:
		return fmt.Errorf("%w: campo de cabecera %q", domain.ErrInvalidInput, field)
	}
	c.touch()
	return nil
}

// UpdateItemField asigna un campo de la línea index. La descripción se guarda literal;
// tarifa y cantidad se interpretan con ParseNumber (entrada inválida → 0).
func (c *Controller) UpdateItemField(index int, field entity.ItemField, raw string) error {
	if index < 0 || index >= len(c.draft.Items) {
		return fmt.Errorf("%w: %d (hay %d)", domain.ErrItemOutOfRange, index, len(c.draft.Items))
	}
	item := &c.draft.Items[index]
	switch field {
	case entity.ItemDescription:
		item.Description = raw
	case entity.ItemRate:
		item.Rate = domaininvoice.ParseNumber(raw)
	case entity.ItemQuantity:
		item.Quantity = domaininvoice.ParseNumber(raw)
	default:
		return fmt.Errorf("%w: campo de ítem %q", domain.ErrInvalidInput, field)
	}
	c.touch()
	return nil
}

// AppendItem agrega una línea {"" , 0, 1} al final. Su importe es 0, el total no cambia.
func (c *Controller) AppendItem() {
	c.draft.Items = append(c.draft.Items, entity.NewLineItem())
	c.touch()
}

// Apply despacha una edición según su variante.
func (c *Controller) Apply(u entity.Update) error {
	switch u := u.(type) {
	case entity.HeaderUpdate:
		return c.UpdateField(u.Field, u.Value)
	case entity.ItemUpdate:
		return c.UpdateItemField(u.Index, u.Field, u.Value)
	case entity.AppendItem:
		c.AppendItem()
		return nil
	case nil:
		return fmt.Errorf("%w: edición vacía", domain.ErrInvalidInput)
	default:
		return fmt.Errorf("%w: edición %T no soportada", domain.ErrInvalidInput, u)
	}
}

func (c *Controller) touch() {
	c.draft.UpdatedAt = c.now()
}
