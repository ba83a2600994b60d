package models

import "time"

// Setting: Bölüm başına tek opak ayar bloğu (dil, bildirim, telegram,
// stok uyarıları, içe/dışa aktarma, profil). Şema doğrulaması kayıt
// anındaki zorunlu alan kontrolleriyle sınırlıdır.
type Setting struct {
	ID        uint   `gorm:"primaryKey"`
	Section   string `gorm:"size:50;not null;uniqueIndex"`
	Data      string `gorm:"type:jsonb;not null"`
	UpdatedAt time.Time
}
