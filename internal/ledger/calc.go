package ledger

import "depo-backend/internal/models"

// Saf stok aritmetiği. Her fonksiyon kaydı yerinde günceller ve
// "RemainingStock == ReceivedQuantity - OutgoingQuantity" ile
// "RemainingStock >= 0" invaryantlarını korur; bozacak çağrılar
// kaydı değiştirmeden hata döner.

func applyReceive(rec *models.StockRecord, qty float64) error {
	if qty <= 0 {
		return &ValidationError{Field: "quantity", Reason: "pozitif olmalı"}
	}
	rec.ReceivedQuantity += qty
	rec.RemainingStock += qty
	return nil
}

func applyAllocate(rec *models.StockRecord, qty float64) error {
	if qty <= 0 {
		return &ValidationError{Field: "quantity", Reason: "pozitif olmalı"}
	}
	if qty > rec.RemainingStock {
		return &InsufficientStockError{ProductID: rec.ProductID, Available: rec.RemainingStock, Requested: qty}
	}
	rec.OutgoingQuantity += qty
	rec.RemainingStock -= qty
	return nil
}

// applyReverseAllocate: applyAllocate'in tam tersi; gider silme/azaltmada kullanılır.
func applyReverseAllocate(rec *models.StockRecord, qty float64) error {
	if qty <= 0 {
		return &ValidationError{Field: "quantity", Reason: "pozitif olmalı"}
	}
	if qty > rec.OutgoingQuantity {
		return &ValidationError{Field: "quantity", Reason: "çıkış toplamından büyük geri alma yapılamaz"}
	}
	rec.OutgoingQuantity -= qty
	rec.RemainingStock += qty
	return nil
}

// applyAdjust: Sayım düzeltmesi. Delta hem ReceivedQuantity'ye hem
// RemainingStock'a uygulanır; fazla sayım giriş düzeltmesi, eksik sayım
// giriş iptali gibi işlenir ve invaryant bozulmaz.
func applyAdjust(rec *models.StockRecord, delta float64) error {
	if delta == 0 {
		return nil
	}
	if rec.RemainingStock+delta < 0 {
		return &InvalidAdjustmentError{ProductID: rec.ProductID, Remaining: rec.RemainingStock, Delta: delta}
	}
	rec.ReceivedQuantity += delta
	rec.RemainingStock += delta
	return nil
}

// applyHold: Soft rezervasyon. RemainingStock'a dokunmaz; kullanılabilir
// stok (kalan - rezerve) üzerinden doğrular.
func applyHold(rec *models.StockRecord, qty float64) error {
	if qty <= 0 {
		return &ValidationError{Field: "reserved_quantity", Reason: "pozitif olmalı"}
	}
	available := rec.RemainingStock - rec.ReservedQuantity
	if qty > available {
		return &InsufficientStockError{ProductID: rec.ProductID, Available: available, Requested: qty}
	}
	rec.ReservedQuantity += qty
	return nil
}

func applyRelease(rec *models.StockRecord, qty float64) error {
	if qty <= 0 {
		return &ValidationError{Field: "reserved_quantity", Reason: "pozitif olmalı"}
	}
	if qty > rec.ReservedQuantity {
		// Rezerv sayacı eksiye düşmesin; kalan ne varsa onu bırak
		rec.ReservedQuantity = 0
		return nil
	}
	rec.ReservedQuantity -= qty
	return nil
}
