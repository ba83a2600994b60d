package models

import "time"

// Expense: Projeye yazılan çıkış hareketi. UnitCost, oluşturma anındaki birim
// maliyetin kopyasıdır; ürün fiyatı sonradan değişse de gider kaydı sabit kalır.
type Expense struct {
	ID        uint `gorm:"primaryKey"`
	ProjectID uint `gorm:"index;not null"`
	Project   Project
	ProductID uint `gorm:"index;not null"`
	Product   Product
	Date      time.Time `gorm:"index;not null"`
	Quantity  float64   `gorm:"not null"`
	UnitCost  float64   `gorm:"not null"`
	TotalCost float64   `gorm:"not null"` // Quantity * UnitCost
	CreatedAt time.Time
	UpdatedAt time.Time
}
