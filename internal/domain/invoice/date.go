package invoice

import "time"

// DateLayout formato de fecha del encabezado de la factura (MM/DD/YYYY).
const DateLayout = "01/02/2006"

// FormatInvoiceDate formatea t en hora local con DateLayout.
func FormatInvoiceDate(t time.Time) string {
	return t.Local().Format(DateLayout)
}
