package entity

import "time"

// BusinessProfile datos fijos del emisor que aparecen en la cabecera de la factura.
// Provienen de la configuración, no del formulario.
type BusinessProfile struct {
	Name          string
	Address       string
	Phone         string
	InvoiceNumber string
	DueText       string
	Logo          []byte // PNG/JPEG opcional
	LogoMIME      string
}

// InvoiceDocument todo lo necesario para dibujar la factura: una copia del borrador,
// el emisor y el instante de emisión (para la fecha del encabezado).
type InvoiceDocument struct {
	Draft    *InvoiceDraft
	Seller   BusinessProfile
	IssuedAt time.Time
}
