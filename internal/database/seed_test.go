package database

import "testing"

func TestDefaultCatalogConsistency(t *testing.T) {
	records := defaultCatalog()
	if len(records) == 0 {
		t.Fatal("başlangıç kataloğu boş olmamalı")
	}

	seen := map[string]bool{}
	for _, rec := range records {
		if rec.Product.Article == "" || rec.Product.Name == "" {
			t.Fatalf("article ve name zorunlu: %+v", rec.Product)
		}
		if seen[rec.Product.Article] {
			t.Fatalf("tekrarlanan article: %s", rec.Product.Article)
		}
		seen[rec.Product.Article] = true

		if rec.RemainingStock != rec.ReceivedQuantity-rec.OutgoingQuantity {
			t.Fatalf("%s: kalan stok giriş - çıkış olmalı: %+v", rec.Product.Article, rec)
		}
		if rec.RemainingStock < 0 {
			t.Fatalf("%s: kalan stok negatif olamaz: %+v", rec.Product.Article, rec)
		}
		if rec.ReservedQuantity > rec.RemainingStock {
			t.Fatalf("%s: rezerv kalan stoğu aşamaz: %+v", rec.Product.Article, rec)
		}
		if rec.Product.CostPrice <= 0 {
			t.Fatalf("%s: birim maliyet pozitif olmalı: %+v", rec.Product.Article, rec)
		}
	}
}
