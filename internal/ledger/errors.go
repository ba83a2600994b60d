package ledger

import "fmt"

// ValidationError: Eksik veya geçersiz zorunlu alan.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("geçersiz alan %q: %s", e.Field, e.Reason)
}

// InsufficientStockError: İşlem kalan stoğu eksiye düşürecekti.
type InsufficientStockError struct {
	ProductID uint
	Available float64
	Requested float64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("yetersiz stok (ürün %d): mevcut %.2f, istenen %.2f", e.ProductID, e.Available, e.Requested)
}

// InvalidAdjustmentError: Sayım düzeltmesi negatif olmama kuralını bozacaktı.
type InvalidAdjustmentError struct {
	ProductID uint
	Remaining float64
	Delta     float64
}

func (e *InvalidAdjustmentError) Error() string {
	return fmt.Sprintf("geçersiz düzeltme (ürün %d): kalan %.2f, delta %.2f", e.ProductID, e.Remaining, e.Delta)
}

// NotFoundError: Ürünün stok kaydı yok.
type NotFoundError struct {
	ProductID uint
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("stok kaydı bulunamadı (ürün %d)", e.ProductID)
}
