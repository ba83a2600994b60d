package expense

import (
	"testing"

	"depo-backend/internal/ledger"
)

func TestPlanQuantityChangeIncrease(t *testing.T) {
	// Miktar 8 -> 20, kalan stok 30: fark 12, 12 <= 30 olduğundan geçerli
	plan, err := planQuantityChange(1, 8, 20, 125.50, 30)
	if err != nil {
		t.Fatalf("geçerli artış reddedildi: %v", err)
	}
	if plan.StockDifference != 12 {
		t.Fatalf("stok farkı 12 olmalıydı: %.2f", plan.StockDifference)
	}
	if remaining := 30 - plan.StockDifference; remaining != 18 {
		t.Fatalf("kalan stok 18 olmalıydı: %.2f", remaining)
	}
}

func TestPlanQuantityChangeInsufficientStock(t *testing.T) {
	_, err := planQuantityChange(1, 8, 50, 125.50, 30)
	insufficient, ok := err.(*ledger.InsufficientStockError)
	if !ok {
		t.Fatalf("yetersiz stok hatası bekleniyordu: %v", err)
	}
	if insufficient.Available != 30 || insufficient.Requested != 42 {
		t.Fatalf("hata alanları yanlış: %+v", insufficient)
	}
}

func TestPlanQuantityChangeDecrease(t *testing.T) {
	// Azalma kalan stoktan bağımsız her zaman geçerlidir
	plan, err := planQuantityChange(1, 20, 8, 125.50, 0)
	if err != nil {
		t.Fatalf("azalma reddedildi: %v", err)
	}
	if plan.StockDifference != -12 {
		t.Fatalf("stok farkı -12 olmalıydı: %.2f", plan.StockDifference)
	}
}

func TestPlanQuantityChangeRoundTrip(t *testing.T) {
	// 8 -> 20 sonra 20 -> 8: farklar birbirini götürür, kalan stok geri gelir
	remaining := 30.0

	up, err := planQuantityChange(1, 8, 20, 125.50, remaining)
	if err != nil {
		t.Fatalf("artış: %v", err)
	}
	remaining -= up.StockDifference
	if remaining != 18 {
		t.Fatalf("artış sonrası kalan 18 olmalıydı: %.2f", remaining)
	}

	down, err := planQuantityChange(1, 20, 8, 125.50, remaining)
	if err != nil {
		t.Fatalf("azalış: %v", err)
	}
	remaining -= down.StockDifference
	if remaining != 30 {
		t.Fatalf("kalan stok geri gelmeliydi: %.2f", remaining)
	}
	if up.StockDifference+down.StockDifference != 0 {
		t.Fatalf("farklar toplamı sıfır olmalıydı: %.2f", up.StockDifference+down.StockDifference)
	}
}

func TestPlanQuantityChangeRejectsNonPositive(t *testing.T) {
	for _, qty := range []float64{0, -5} {
		_, err := planQuantityChange(1, 8, qty, 125.50, 30)
		validation, ok := err.(*ledger.ValidationError)
		if !ok {
			t.Fatalf("qty=%.0f: doğrulama hatası bekleniyordu: %v", qty, err)
		}
		if validation.Field != "quantity" {
			t.Fatalf("hata alanı 'quantity' olmalıydı: %+v", validation)
		}
	}
}

func TestPlanQuantityChangeKeepsUnitCost(t *testing.T) {
	// Birim maliyet donmuş kalır, toplam yeni miktarla hesaplanır
	plan, err := planQuantityChange(1, 8, 15, 125.50, 30)
	if err != nil {
		t.Fatalf("plan: %v", err)
	}
	if plan.TotalCost != 1882.50 {
		t.Fatalf("toplam maliyet 1882.50 olmalıydı: %.2f", plan.TotalCost)
	}
}

func TestPlanQuantityChangeUnchangedQuantity(t *testing.T) {
	plan, err := planQuantityChange(1, 8, 8, 125.50, 30)
	if err != nil {
		t.Fatalf("değişmeyen miktar reddedildi: %v", err)
	}
	if plan.StockDifference != 0 {
		t.Fatalf("stok farkı 0 olmalıydı: %.2f", plan.StockDifference)
	}
	if plan.TotalCost != 1004.0 {
		t.Fatalf("toplam maliyet 1004.00 olmalıydı: %.2f", plan.TotalCost)
	}
}
