package models

import "time"

type ReserveStatus string

const (
	ReserveStatusActive    ReserveStatus = "Active"
	ReserveStatusCancelled ReserveStatus = "Cancelled"
)

// Reserve: Proje adına yapılan soft rezervasyon. Aktif rezervler
// StockRecord.ReservedQuantity'yi artırır, RemainingStock'a dokunmaz.
type Reserve struct {
	ID              uint          `gorm:"primaryKey"`
	ProjectName     string        `gorm:"size:150;not null"`
	ReservationDate time.Time     `gorm:"index;not null"`
	Status          ReserveStatus `gorm:"size:20;not null;default:'Active'"`
	CreatedBy       string        `gorm:"size:100"`
	Items           []ReserveItem `gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type ReserveItem struct {
	ID               uint `gorm:"primaryKey"`
	ReserveID        uint `gorm:"index;not null"`
	ProductID        uint `gorm:"index;not null"`
	Product          Product
	Article          string  `gorm:"size:50;not null"`  // Denormalize (rezerv anındaki kod)
	ProductName      string  `gorm:"size:150;not null"` // Denormalize
	ReservedQuantity float64 `gorm:"not null"`
	Comments         string  `gorm:"size:255"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
