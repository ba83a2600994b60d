package database

import (
	"log"

	"depo-backend/internal/config"
	"depo-backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init(cfg *config.Config) {
	var err error

	DB, err = gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("Veritabanına bağlanılamadı: %v", err)
	}

	err = DB.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.StockRecord{},
		&models.Project{},
		&models.Expense{},
		&models.Reserve{},
		&models.ReserveItem{},
		&models.AuditSession{},
		&models.AuditItem{},
		&models.HistoryEntry{},
		&models.Setting{},
	)
	if err != nil {
		log.Fatalf("AutoMigrate hatası: %v", err)
	}

	seedCatalog()

	// Her ürünün bir stok kaydı olmalı; ürünler normalde stok kaydıyla birlikte
	// oluşturuluyor ama elle eklenmiş eski kayıtlar için eksikleri tamamla
	var orphans []models.Product
	if err := DB.
		Joins("LEFT JOIN stock_records ON stock_records.product_id = products.id").
		Where("stock_records.id IS NULL").
		Find(&orphans).Error; err == nil && len(orphans) > 0 {
		log.Printf("%d ürün için eksik stok kaydı oluşturuluyor...", len(orphans))
		for _, p := range orphans {
			DB.Create(&models.StockRecord{ProductID: p.ID})
		}
	}

	log.Println("Veritabanı bağlantısı başarılı. Migration tamamlandı.")
}
