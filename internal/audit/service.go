package audit

import (
	"strconv"

	"depo-backend/internal/models"

	"gorm.io/gorm"
)

type Summary struct {
	TotalItems        int `json:"total_items"`
	TotalVariances    int `json:"total_variances"`
	PositiveVariances int `json:"positive_variances"`
	NegativeVariances int `json:"negative_variances"`
	VerifiedItems     int `json:"verified_items"`
}

// Summarize: Oturum kalemleri üzerinden saf toplama; yan etkisiz.
func Summarize(items []models.AuditItem) Summary {
	s := Summary{TotalItems: len(items)}
	for _, item := range items {
		if item.Variance != 0 {
			s.TotalVariances++
		}
		if item.Variance > 0 {
			s.PositiveVariances++
		}
		if item.Variance < 0 {
			s.NegativeVariances++
		}
		if item.Verified {
			s.VerifiedItems++
		}
	}
	return s
}

// ComputeVariance: Sayım farkı, tek doğruluk noktası.
func ComputeVariance(actualStock, systemStock float64) float64 {
	return actualStock - systemStock
}

func formatQty(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// completeInProgress: Oturumu yalnızca hâlâ açıksa kapatır. Koşullu UPDATE
// oturum satırını kilitler; yarışan iki onaydan geç kalan sıfır satır görür.
func completeInProgress(tx *gorm.DB, sessionID uint) *gorm.DB {
	return tx.Model(&models.AuditSession{}).
		Where("id = ? AND status = ?", sessionID, models.AuditStatusInProgress).
		Update("status", models.AuditStatusCompleted)
}
