package models

import "time"

// StockRecord: Ürün başına tek stok kaydı.
// İnvaryant: RemainingStock == ReceivedQuantity - OutgoingQuantity ve RemainingStock >= 0.
// ReservedQuantity ayrı bir soft-hold sayacıdır, RemainingStock'tan düşülmez;
// kullanılabilir stok = RemainingStock - ReservedQuantity (görünüm tarafında hesaplanır).
type StockRecord struct {
	ID               uint `gorm:"primaryKey"`
	ProductID        uint `gorm:"uniqueIndex;not null"`
	Product          Product
	ReceivedQuantity float64 `gorm:"not null;default:0"`
	OutgoingQuantity float64 `gorm:"not null;default:0"`
	ReservedQuantity float64 `gorm:"not null;default:0"`
	RemainingStock   float64 `gorm:"not null;default:0"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
