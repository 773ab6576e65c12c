package entity

import "fmt"

// HeaderField campo de texto de cabecera editable por el usuario.
type HeaderField string

const (
	HeaderCustomerName  HeaderField = "customer_name"
	HeaderCustomerPhone HeaderField = "customer_phone"
)

// ItemField campo editable de una línea. El importe no es editable.
type ItemField string

const (
	ItemDescription ItemField = "description"
	ItemRate        ItemField = "rate"
	ItemQuantity    ItemField = "quantity"
)

// ParseHeaderField valida el nombre de un campo de cabecera.
func ParseHeaderField(s string) (HeaderField, error) {
	switch f := HeaderField(s); f {
	case HeaderCustomerName, HeaderCustomerPhone:
		return f, nil
	}
	return "", fmt.Errorf("campo de cabecera desconocido %q", s)
}

// ParseItemField valida el nombre de un campo de línea.
func ParseItemField(s string) (ItemField, error) {
	switch f := ItemField(s); f {
	case ItemDescription, ItemRate, ItemQuantity:
		return f, nil
	}
	return "", fmt.Errorf("campo de ítem desconocido %q", s)
}

// Update es una edición del borrador. Las variantes son HeaderUpdate, ItemUpdate y AppendItem.
type Update interface {
	isUpdate()
}

// HeaderUpdate asigna literalmente un campo de cabecera.
type HeaderUpdate struct {
	Field HeaderField
	Value string
}

// ItemUpdate asigna un campo de la línea Index; Value es la entrada cruda del formulario.
type ItemUpdate struct {
	Index int
	Field ItemField
	Value string
}

// AppendItem agrega una línea nueva al final.
type AppendItem struct{}

func (HeaderUpdate) isUpdate() {}
func (ItemUpdate) isUpdate()   {}
func (AppendItem) isUpdate()   {}
