package models

import "time"

type HistoryAction string

const (
	HistoryActionReceived HistoryAction = "received"
	HistoryActionOutgoing HistoryAction = "outgoing"
	HistoryActionReserved HistoryAction = "reserved"
	HistoryActionAudit    HistoryAction = "audit"
)

// HistoryEntry: Değişmez, yalnızca eklenen hareket günlüğü kaydı.
// Her stok mutasyonu tam olarak bir kayıt üretir; kayıtlar asla
// güncellenmez veya silinmez.
type HistoryEntry struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Timestamp time.Time `gorm:"index;not null" json:"timestamp"`

	Action HistoryAction `gorm:"size:20;index;not null" json:"action"`

	ProductID   uint   `gorm:"index;not null" json:"product_id"`
	Article     string `gorm:"size:50;index" json:"article"`
	ProductName string `gorm:"size:150" json:"product_name"`

	QuantityBefore   float64  `json:"quantity_before"`
	QuantityAfter    float64  `json:"quantity_after"`
	QuantityChange   float64  `json:"quantity_change"`
	ReservedQuantity *float64 `json:"reserved_quantity"` // Sadece reserved hareketlerinde dolu

	Cost      float64 `json:"cost"`       // Birim maliyet
	TotalCost float64 `json:"total_cost"` // Hareketin toplam maliyeti

	User      string `gorm:"size:100;index" json:"user"`
	Project   string `gorm:"size:150;index" json:"project"` // Boş = projesiz hareket
	Reference string `gorm:"size:100" json:"reference"`     // Ör: "Expense #EXP-2024-001"
	Comments  string `gorm:"size:255" json:"comments"`

	// Serbest biçimli ek alanlar (JSON)
	Details string `gorm:"type:jsonb" json:"details"`
}
