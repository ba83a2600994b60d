package history

import (
	"encoding/json"
	"fmt"
	"time"

	"depo-backend/internal/models"

	"gorm.io/gorm"
)

// Options: Bir hareket günlüğü kaydının alanları. Record çağıranın
// transaction'ında çalışır; stok mutasyonuyla aynı transaction'da
// kullanıldığında ikisi birlikte commit veya rollback olur.
type Options struct {
	Action           models.HistoryAction
	ProductID        uint
	Article          string
	ProductName      string
	QuantityBefore   float64
	QuantityAfter    float64
	ReservedQuantity *float64
	Cost             float64
	TotalCost        float64
	User             string
	Project          string
	Reference        string
	Comments         string
	Timestamp        time.Time // Sıfır ise kayıt anı kullanılır
	Details          map[string]string
}

func Record(tx *gorm.DB, opts Options) error {
	detailsStr := "null"
	if len(opts.Details) > 0 {
		if b, err := json.Marshal(opts.Details); err == nil {
			detailsStr = string(b)
		}
	}

	ts := opts.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}

	entry := models.HistoryEntry{
		Timestamp:        ts,
		Action:           opts.Action,
		ProductID:        opts.ProductID,
		Article:          opts.Article,
		ProductName:      opts.ProductName,
		QuantityBefore:   opts.QuantityBefore,
		QuantityAfter:    opts.QuantityAfter,
		QuantityChange:   opts.QuantityAfter - opts.QuantityBefore,
		ReservedQuantity: opts.ReservedQuantity,
		Cost:             opts.Cost,
		TotalCost:        opts.TotalCost,
		User:             opts.User,
		Project:          opts.Project,
		Reference:        opts.Reference,
		Comments:         opts.Comments,
		Details:          detailsStr,
	}

	if err := tx.Create(&entry).Error; err != nil {
		return fmt.Errorf("history kaydı yazılamadı: %w", err)
	}

	return nil
}

// Reference: "EXP-2024-001" biçiminde referans kodu üretir.
func Reference(prefix string, id uint) string {
	return fmt.Sprintf("%s-%d-%03d", prefix, time.Now().Year(), id)
}
