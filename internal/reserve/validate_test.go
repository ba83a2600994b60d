package reserve

import (
	"errors"
	"testing"
	"time"

	"depo-backend/internal/ledger"
)

var today = time.Date(2024, 1, 20, 14, 30, 0, 0, time.UTC)

func validItems() []ItemInput {
	return []ItemInput{{Article: "PNL-001", ReservedQuantity: 10}}
}

func expectValidationError(t *testing.T, err error, field string) {
	t.Helper()
	var ve *ledger.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("ValidationError bekleniyordu, geldi: %v", err)
	}
	if ve.Field != field {
		t.Fatalf("alan %q olmalıydı, geldi: %q", field, ve.Field)
	}
}

func TestValidateInputAcceptsTodayAndFuture(t *testing.T) {
	// Aynı gün, saati geçmiş olsa da kabul edilir
	morning := time.Date(2024, 1, 20, 8, 0, 0, 0, time.UTC)
	if err := validateInput("Warehouse Expansion", morning, today, validItems()); err != nil {
		t.Fatalf("bugünün tarihi reddedildi: %v", err)
	}

	if err := validateInput("Warehouse Expansion", today.AddDate(0, 0, 7), today, validItems()); err != nil {
		t.Fatalf("ileri tarih reddedildi: %v", err)
	}
}

func TestValidateInputRejectsPastDate(t *testing.T) {
	err := validateInput("Warehouse Expansion", today.AddDate(0, 0, -1), today, validItems())
	expectValidationError(t, err, "reservation_date")
}

func TestValidateInputRequiresProjectName(t *testing.T) {
	err := validateInput("   ", today, today, validItems())
	expectValidationError(t, err, "project_name")
}

func TestValidateInputRequiresItems(t *testing.T) {
	err := validateInput("Warehouse Expansion", today, today, nil)
	expectValidationError(t, err, "items")
}

func TestValidateInputItemRules(t *testing.T) {
	err := validateInput("Warehouse Expansion", today, today, []ItemInput{{Article: "", ReservedQuantity: 5}})
	expectValidationError(t, err, "items.article")

	err = validateInput("Warehouse Expansion", today, today, []ItemInput{{Article: "PNL-001", ReservedQuantity: 0}})
	expectValidationError(t, err, "items.reserved_quantity")
}
