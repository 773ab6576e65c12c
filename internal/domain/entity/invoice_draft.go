package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// LineItem representa una línea de la factura en edición.
// El importe no se almacena: siempre se deriva de Rate y Quantity.
type LineItem struct {
	Description string
	Rate        decimal.Decimal
	Quantity    decimal.Decimal
}

// NewLineItem línea que se agrega con "Add Item": descripción vacía, tarifa 0, cantidad 1.
func NewLineItem() LineItem {
	return LineItem{Rate: decimal.Zero, Quantity: decimal.NewFromInt(1)}
}

// Amount importe de la línea (Rate * Quantity).
func (i LineItem) Amount() decimal.Decimal {
	return i.Rate.Mul(i.Quantity)
}

// InvoiceDraft es el borrador de factura que respalda el formulario.
// Vive solo en memoria; nunca queda vacío de líneas tras su creación.
type InvoiceDraft struct {
	ID            string
	CustomerName  string
	CustomerPhone string
	Items         []LineItem
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewInvoiceDraft crea el borrador inicial con una única línea en blanco (tarifa 0, cantidad 0).
func NewInvoiceDraft(id string, now time.Time) *InvoiceDraft {
	return &InvoiceDraft{
		ID:        id,
		Items:     []LineItem{{Rate: decimal.Zero, Quantity: decimal.Zero}},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Total suma de los importes de todas las líneas.
func (d *InvoiceDraft) Total() decimal.Decimal {
	total := decimal.Zero
	for _, it := range d.Items {
		total = total.Add(it.Amount())
	}
	return total
}

// Paid siempre igual al total: toda factura se emite como pagada por completo.
func (d *InvoiceDraft) Paid() decimal.Decimal {
	return d.Total()
}

// BalanceDue siempre cero (no hay pagos parciales).
func (d *InvoiceDraft) BalanceDue() decimal.Decimal {
	return decimal.Zero
}

// Clone copia profunda del borrador; la exportación y las lecturas trabajan sobre copias.
func (d *InvoiceDraft) Clone() *InvoiceDraft {
	if d == nil {
		return nil
	}
	c := *d
	c.Items = make([]LineItem, len(d.Items))
	copy(c.Items, d.Items)
	return &c
}
