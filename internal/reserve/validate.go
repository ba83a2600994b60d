package reserve

import (
	"strings"
	"time"

	"depo-backend/internal/ledger"
)

type ItemInput struct {
	Article          string  `json:"article"`
	ReservedQuantity float64 `json:"reserved_quantity"`
	Comments         string  `json:"comments"`
}

// validateInput: Rezerv girişinin stoktan bağımsız kuralları.
// Tarih bugünden eski olamaz, en az bir kalem olmalı, her kalemde
// article ve pozitif miktar zorunlu.
func validateInput(projectName string, reservationDate, today time.Time, items []ItemInput) error {
	if strings.TrimSpace(projectName) == "" {
		return &ledger.ValidationError{Field: "project_name", Reason: "zorunlu"}
	}

	day := func(t time.Time) time.Time {
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	}
	if day(reservationDate).Before(day(today)) {
		return &ledger.ValidationError{Field: "reservation_date", Reason: "geçmiş tarih olamaz"}
	}

	if len(items) == 0 {
		return &ledger.ValidationError{Field: "items", Reason: "en az bir kalem gerekli"}
	}

	for _, item := range items {
		if strings.TrimSpace(item.Article) == "" {
			return &ledger.ValidationError{Field: "items.article", Reason: "zorunlu"}
		}
		if item.ReservedQuantity <= 0 {
			return &ledger.ValidationError{Field: "items.reserved_quantity", Reason: "pozitif olmalı"}
		}
	}

	return nil
}
