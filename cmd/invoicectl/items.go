package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// itemRow valores crudos de una línea; se interpretan igual que en el formulario.
type itemRow struct {
	Description string
	Rate        string
	Quantity    string
}

// parseItemFlag interpreta "descripción;tarifa;cantidad". Los campos faltantes quedan vacíos.
func parseItemFlag(s string) itemRow {
	parts := strings.SplitN(s, ";", 3)
	for len(parts) < 3 {
		parts = append(parts, "")
	}
	return itemRow{Description: parts[0], Rate: parts[1], Quantity: parts[2]}
}

// readItemsCSV lee líneas description,rate,quantity. Una primera fila cuyo primer campo
// es "description" se toma como encabezado. encoding: "utf-8" (por defecto) o "latin1".
func readItemsCSV(r io.Reader, encoding string) ([]itemRow, error) {
	switch strings.ToLower(encoding) {
	case "", "utf-8", "utf8":
	case "latin1", "iso-8859-1", "iso8859-1":
		r = transform.NewReader(r, charmap.ISO8859_1.NewDecoder())
	case "windows-1252", "cp1252":
		r = transform.NewReader(r, charmap.Windows1252.NewDecoder())
	default:
		return nil, fmt.Errorf("codificación no soportada %q", encoding)
	}

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var rows []itemRow
	for line := 1; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("csv línea %d: %w", line, err)
		}
		if line == 1 && len(rec) > 0 && strings.EqualFold(strings.TrimSpace(rec[0]), "description") {
			continue
		}
		for len(rec) < 3 {
			rec = append(rec, "")
		}
		rows = append(rows, itemRow{Description: rec[0], Rate: rec[1], Quantity: rec[2]})
	}
	return rows, nil
}
