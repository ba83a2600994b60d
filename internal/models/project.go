package models

import "time"

type Project struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"size:150;not null"`
	Code      string `gorm:"size:20;not null;uniqueIndex"` // Kısa proje kodu (ör: OBA-P1)
	CreatedAt time.Time
	UpdatedAt time.Time
}
