package expense

import "depo-backend/internal/ledger"

// quantityChange: Gider miktarı değişiminin stok ve maliyet etkisi.
// StockDifference pozitifse ek tahsis, negatifse iade gerekir.
type quantityChange struct {
	StockDifference float64
	TotalCost       float64
}

// planQuantityChange: Yeni miktarı doğrular ve uygulanacak stok farkını
// hesaplar. UnitCost ilk kayıttaki maliyettir, yeniden fiyatlanmaz;
// TotalCost her zaman yeni miktar * sabit birim maliyettir. Pozitif fark
// kalan stokla sınırlıdır, azalma her zaman geçerlidir.
func planQuantityChange(productID uint, oldQuantity, newQuantity, unitCost, remainingStock float64) (quantityChange, error) {
	if newQuantity <= 0 {
		return quantityChange{}, &ledger.ValidationError{Field: "quantity", Reason: "pozitif olmalı"}
	}

	diff := newQuantity - oldQuantity
	if diff > remainingStock {
		return quantityChange{}, &ledger.InsufficientStockError{
			ProductID: productID,
			Available: remainingStock,
			Requested: diff,
		}
	}

	return quantityChange{
		StockDifference: diff,
		TotalCost:       newQuantity * unitCost,
	}, nil
}
