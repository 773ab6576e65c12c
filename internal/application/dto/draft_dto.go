package dto

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/jhoicas/invoice-studio/internal/domain/entity"
)

// RawValue valor crudo de un input del formulario. Acepta string o número JSON;
// los números conservan su texto literal y null equivale a "".
type RawValue string

// UnmarshalJSON implementa json.Unmarshaler.
func (v *RawValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*v = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = RawValue(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*v = RawValue(n.String())
	return nil
}

// UpdateFieldRequest body para PATCH /api/drafts/:id/header y /items/:index.
type UpdateFieldRequest struct {
	Field string   `json:"field"`
	Value RawValue `json:"value"`
}

// LineItemResponse línea en respuestas. Los montos van como texto con dos decimales.
type LineItemResponse struct {
	Index       int    `json:"index"`
	Description string `json:"description"`
	Rate        string `json:"rate"`
	Quantity    string `json:"quantity"`
	Amount      string `json:"amount"`
}

// DraftResponse borrador en respuestas.
type DraftResponse struct {
	ID            string             `json:"id"`
	CustomerName  string             `json:"customer_name"`
	CustomerPhone string             `json:"customer_phone"`
	Items         []LineItemResponse `json:"items"`
	Total         string             `json:"total"`
	Paid          string             `json:"paid"`
	BalanceDue    string             `json:"balance_due"`
	UpdatedAt     time.Time          `json:"updated_at"`
}

// NewDraftResponse mapea el borrador a su representación JSON.
func NewDraftResponse(d *entity.InvoiceDraft) *DraftResponse {
	items := make([]LineItemResponse, 0, len(d.Items))
	for i, it := range d.Items {
		items = append(items, LineItemResponse{
			Index:       i,
			Description: it.Description,
			Rate:        it.Rate.StringFixed(2),
			Quantity:    it.Quantity.String(),
			Amount:      it.Amount().StringFixed(2),
		})
	}
	return &DraftResponse{
		ID:            d.ID,
		CustomerName:  d.CustomerName,
		CustomerPhone: d.CustomerPhone,
		Items:         items,
		Total:         d.Total().StringFixed(2),
		Paid:          d.Paid().StringFixed(2),
		BalanceDue:    d.BalanceDue().StringFixed(2),
		UpdatedAt:     d.UpdatedAt,
	}
}
