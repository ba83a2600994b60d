package ledger

import (
	"errors"
	"testing"

	"depo-backend/internal/models"
)

func record(received, outgoing, reserved float64) *models.StockRecord {
	return &models.StockRecord{
		ProductID:        1,
		ReceivedQuantity: received,
		OutgoingQuantity: outgoing,
		ReservedQuantity: reserved,
		RemainingStock:   received - outgoing,
	}
}

func checkInvariant(t *testing.T, rec *models.StockRecord) {
	t.Helper()
	if rec.RemainingStock != rec.ReceivedQuantity-rec.OutgoingQuantity {
		t.Fatalf("kalan stok invaryantı bozuldu: remaining=%.2f received=%.2f outgoing=%.2f",
			rec.RemainingStock, rec.ReceivedQuantity, rec.OutgoingQuantity)
	}
	if rec.RemainingStock < 0 {
		t.Fatalf("kalan stok negatif: %.2f", rec.RemainingStock)
	}
}

func TestReceiveIncrementsStock(t *testing.T) {
	rec := record(0, 0, 0)
	if err := applyReceive(rec, 75); err != nil {
		t.Fatalf("receive: %v", err)
	}
	if rec.ReceivedQuantity != 75 || rec.RemainingStock != 75 {
		t.Fatalf("beklenmeyen kayıt: %+v", rec)
	}
	checkInvariant(t, rec)
}

func TestReceiveRejectsNonPositive(t *testing.T) {
	rec := record(10, 0, 0)
	for _, qty := range []float64{0, -5} {
		err := applyReceive(rec, qty)
		var ve *ValidationError
		if !errors.As(err, &ve) {
			t.Fatalf("qty=%.0f: ValidationError bekleniyordu, geldi: %v", qty, err)
		}
	}
	if rec.ReceivedQuantity != 10 || rec.RemainingStock != 10 {
		t.Fatalf("reddedilen işlem kaydı değiştirdi: %+v", rec)
	}
}

func TestAllocateDecrementsRemaining(t *testing.T) {
	// Senaryo A: 45 kalan stoktan 15 tahsis
	rec := record(45, 0, 0)
	if err := applyAllocate(rec, 15); err != nil {
		t.Fatalf("allocate: %v", err)
	}
	if rec.RemainingStock != 30 || rec.OutgoingQuantity != 15 {
		t.Fatalf("beklenmeyen kayıt: %+v", rec)
	}
	checkInvariant(t, rec)
}

func TestAllocateInsufficientStock(t *testing.T) {
	// Senaryo B: 45 mevcutken 50 istenirse InsufficientStock, kayıt değişmez
	rec := record(45, 0, 0)
	err := applyAllocate(rec, 50)
	var ise *InsufficientStockError
	if !errors.As(err, &ise) {
		t.Fatalf("InsufficientStockError bekleniyordu, geldi: %v", err)
	}
	if ise.Available != 45 || ise.Requested != 50 {
		t.Fatalf("hata alanları yanlış: %+v", ise)
	}
	if rec.RemainingStock != 45 || rec.OutgoingQuantity != 0 {
		t.Fatalf("reddedilen tahsis kaydı değiştirdi: %+v", rec)
	}
}

func TestReverseAllocateIsExactInverse(t *testing.T) {
	rec := record(100, 20, 0)
	before := *rec

	if err := applyAllocate(rec, 37); err != nil {
		t.Fatalf("allocate: %v", err)
	}
	if err := applyReverseAllocate(rec, 37); err != nil {
		t.Fatalf("reverse allocate: %v", err)
	}

	if *rec != before {
		t.Fatalf("allocate+reverse kaydı eski haline döndürmedi: önce=%+v sonra=%+v", before, *rec)
	}
}

func TestReverseAllocateCapsAtOutgoing(t *testing.T) {
	rec := record(50, 10, 0)
	err := applyReverseAllocate(rec, 11)
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("ValidationError bekleniyordu, geldi: %v", err)
	}
}

func TestAdjustKeepsInvariant(t *testing.T) {
	// Eksik sayım: -3 düzeltme
	rec := record(23, 0, 0)
	if err := applyAdjust(rec, -3); err != nil {
		t.Fatalf("adjust: %v", err)
	}
	if rec.RemainingStock != 20 {
		t.Fatalf("kalan stok 20 olmalıydı: %.2f", rec.RemainingStock)
	}
	checkInvariant(t, rec)

	// Fazla sayım: +5 düzeltme
	if err := applyAdjust(rec, 5); err != nil {
		t.Fatalf("adjust: %v", err)
	}
	if rec.RemainingStock != 25 {
		t.Fatalf("kalan stok 25 olmalıydı: %.2f", rec.RemainingStock)
	}
	checkInvariant(t, rec)
}

func TestAdjustRejectsNegativeRemaining(t *testing.T) {
	rec := record(10, 4, 0) // kalan 6
	err := applyAdjust(rec, -7)
	var iae *InvalidAdjustmentError
	if !errors.As(err, &iae) {
		t.Fatalf("InvalidAdjustmentError bekleniyordu, geldi: %v", err)
	}
	if rec.RemainingStock != 6 {
		t.Fatalf("reddedilen düzeltme kaydı değiştirdi: %+v", rec)
	}
}

func TestAdjustZeroIsNoop(t *testing.T) {
	rec := record(10, 4, 2)
	before := *rec
	if err := applyAdjust(rec, 0); err != nil {
		t.Fatalf("adjust(0): %v", err)
	}
	if *rec != before {
		t.Fatalf("adjust(0) kaydı değiştirdi: %+v", rec)
	}
}

func TestHoldValidatesAgainstAvailable(t *testing.T) {
	// kalan 20, rezerve 15 -> kullanılabilir 5
	rec := record(30, 10, 15)
	err := applyHold(rec, 6)
	var ise *InsufficientStockError
	if !errors.As(err, &ise) {
		t.Fatalf("InsufficientStockError bekleniyordu, geldi: %v", err)
	}
	if ise.Available != 5 {
		t.Fatalf("kullanılabilir 5 olmalıydı: %.2f", ise.Available)
	}

	if err := applyHold(rec, 5); err != nil {
		t.Fatalf("hold: %v", err)
	}
	if rec.ReservedQuantity != 20 || rec.RemainingStock != 20 {
		t.Fatalf("hold kalan stoğa dokunmamalı: %+v", rec)
	}
}

func TestReleaseNeverGoesNegative(t *testing.T) {
	rec := record(30, 10, 3)
	if err := applyRelease(rec, 10); err != nil {
		t.Fatalf("release: %v", err)
	}
	if rec.ReservedQuantity != 0 {
		t.Fatalf("rezerv sayacı 0 olmalıydı: %.2f", rec.ReservedQuantity)
	}
}

func TestMutationSequencePreservesInvariants(t *testing.T) {
	rec := record(0, 0, 0)

	steps := []struct {
		name string
		fn   func() error
	}{
		{"receive 100", func() error { return applyReceive(rec, 100) }},
		{"allocate 40", func() error { return applyAllocate(rec, 40) }},
		{"reverse 10", func() error { return applyReverseAllocate(rec, 10) }},
		{"adjust -5", func() error { return applyAdjust(rec, -5) }},
		{"receive 25", func() error { return applyReceive(rec, 25) }},
		{"allocate 90", func() error { return applyAllocate(rec, 90) }},
		{"adjust +3", func() error { return applyAdjust(rec, 3) }},
	}

	for _, s := range steps {
		if err := s.fn(); err != nil {
			t.Fatalf("%s: %v", s.name, err)
		}
		checkInvariant(t, rec)
	}
}
