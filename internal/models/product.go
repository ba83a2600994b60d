package models

import "time"

type Product struct {
	ID        uint    `gorm:"primaryKey"`
	Article   string  `gorm:"size:50;not null;uniqueIndex"` // Benzersiz ürün kodu (ör: PNL-001)
	Name      string  `gorm:"size:150;not null"`
	CostPrice float64 `gorm:"not null"` // USD birim maliyet
	Category  string  `gorm:"size:100"`
	Supplier  string  `gorm:"size:150"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
