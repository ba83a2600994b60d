package database

import (
	"log"

	"depo-backend/internal/models"
)

// defaultCatalog: İlk kurulumda yüklenen başlangıç kataloğu. Kalan stok
// giriş - çıkış olarak türetilir, elle yazılmaz.
func defaultCatalog() []models.StockRecord {
	records := []models.StockRecord{
		{
			Product:          models.Product{Article: "PNL-001", Name: "Standard Wall Panel 2400x1200", CostPrice: 125.50, Category: "Wall Panels", Supplier: "Standard Materials Co"},
			ReceivedQuantity: 75, OutgoingQuantity: 30, ReservedQuantity: 10,
		},
		{
			Product:          models.Product{Article: "PNL-002", Name: "Insulated Panel 2400x600", CostPrice: 89.75, Category: "Wall Panels", Supplier: "Insulation Pro Ltd"},
			ReceivedQuantity: 50, OutgoingQuantity: 27, ReservedQuantity: 8,
		},
		{
			Product:          models.Product{Article: "DIV-001", Name: "Office Divider 1800x900", CostPrice: 156.25, Category: "Dividers", Supplier: "Office Solutions Inc"},
			ReceivedQuantity: 30, OutgoingQuantity: 18, ReservedQuantity: 5,
		},
		{
			Product:          models.Product{Article: "DIV-002", Name: "Glass Partition 2100x1200", CostPrice: 234.80, Category: "Dividers", Supplier: "Glass Tech Corp"},
			ReceivedQuantity: 20, OutgoingQuantity: 12, ReservedQuantity: 6,
		},
		{
			Product:          models.Product{Article: "ACC-001", Name: "Mounting Brackets Set", CostPrice: 12.45, Category: "Accessories", Supplier: "Hardware Plus"},
			ReceivedQuantity: 200, OutgoingQuantity: 44, ReservedQuantity: 15,
		},
		{
			Product:          models.Product{Article: "ACC-002", Name: "Sealing Strip 3m", CostPrice: 8.90, Category: "Accessories", Supplier: "Seal Solutions"},
			ReceivedQuantity: 120, OutgoingQuantity: 31, ReservedQuantity: 12,
		},
		{
			Product:          models.Product{Article: "PNL-003", Name: "Fire-Resistant Panel 2400x1200", CostPrice: 189.90, Category: "Wall Panels", Supplier: "Fire Safety Materials"},
			ReceivedQuantity: 25, OutgoingQuantity: 20, ReservedQuantity: 2,
		},
	}

	for i := range records {
		records[i].RemainingStock = records[i].ReceivedQuantity - records[i].OutgoingQuantity
	}
	return records
}

// seedCatalog: Ürün tablosu boşsa başlangıç kataloğunu yükler.
func seedCatalog() {
	var count int64
	if err := DB.Model(&models.Product{}).Count(&count).Error; err != nil {
		log.Printf("Katalog sayımı yapılamadı: %v", err)
		return
	}
	if count > 0 {
		return
	}

	log.Println("Ürün kataloğu boş, başlangıç kataloğu yükleniyor...")
	for _, rec := range defaultCatalog() {
		rec := rec
		if err := DB.Create(&rec).Error; err != nil {
			log.Printf("Başlangıç kaydı oluşturulamadı (%s): %v", rec.Product.Article, err)
		}
	}
}
