package models

import "time"

type AuditStatus string

const (
	AuditStatusInProgress AuditStatus = "In Progress"
	AuditStatusCompleted  AuditStatus = "Completed" // Terminal durum
)

// AuditSession: Bir envanter sayımı oturumu. Açılışta tüm stok kayıtlarının
// anlık görüntüsü AuditItem olarak alınır; onaylandığında sayım sonuçları
// stok kayıtlarına geri yazılır.
type AuditSession struct {
	ID          uint        `gorm:"primaryKey"`
	AuditDate   time.Time   `gorm:"index;not null"`
	AuditorName string      `gorm:"size:100;not null"`
	Status      AuditStatus `gorm:"size:20;not null;default:'In Progress'"`
	Items       []AuditItem `gorm:"foreignKey:SessionID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type AuditItem struct {
	ID          uint `gorm:"primaryKey"`
	SessionID   uint `gorm:"index;not null"`
	ProductID   uint `gorm:"index;not null"`
	Article     string  `gorm:"size:50;not null"`
	ProductName string  `gorm:"size:150;not null"`
	SystemStock float64 `gorm:"not null"` // Oturum açılışındaki sistem stoğu
	ActualStock float64 `gorm:"not null"` // Sayılan miktar (varsayılan: SystemStock)
	Variance    float64 `gorm:"not null"` // ActualStock - SystemStock
	Verified    bool    `gorm:"not null;default:false"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
