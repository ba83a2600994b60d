package ledger

import (
	"errors"

	"depo-backend/internal/metrics"
	"depo-backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Tüm fonksiyonlar çağıranın transaction'ı içinde çalışır ve stok satırını
// SELECT ... FOR UPDATE ile kilitler. Aynı ürüne yarışan iki yazma böylece
// ürün bazında serileşir; history kaydı da aynı transaction'da atıldığı için
// stok mutasyonu ve günlük kaydı birlikte başarılı ya da birlikte geri alınır.

func lockRecord(tx *gorm.DB, productID uint) (*models.StockRecord, error) {
	var rec models.StockRecord
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("product_id = ?", productID).
		First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{ProductID: productID}
		}
		return nil, err
	}
	return &rec, nil
}

// Get: Kilitsiz okuma (görünümler için).
func Get(tx *gorm.DB, productID uint) (*models.StockRecord, error) {
	var rec models.StockRecord
	err := tx.Where("product_id = ?", productID).First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{ProductID: productID}
		}
		return nil, err
	}
	return &rec, nil
}

// Receive: Mal kabul; girişi ve kalan stoğu qty kadar artırır.
func Receive(tx *gorm.DB, productID uint, qty float64) (*models.StockRecord, error) {
	return mutate(tx, productID, "received", func(rec *models.StockRecord) error {
		return applyReceive(rec, qty)
	})
}

// Allocate: Gider tahsisi; çıkışı artırır, kalan stoğu düşer.
func Allocate(tx *gorm.DB, productID uint, qty float64) (*models.StockRecord, error) {
	return mutate(tx, productID, "outgoing", func(rec *models.StockRecord) error {
		return applyAllocate(rec, qty)
	})
}

// ReverseAllocate: Allocate'in tam tersi (gider silme/azaltma).
func ReverseAllocate(tx *gorm.DB, productID uint, qty float64) (*models.StockRecord, error) {
	return mutate(tx, productID, "outgoing", func(rec *models.StockRecord) error {
		return applyReverseAllocate(rec, qty)
	})
}

// Adjust: Sayım sonrası imzalı düzeltme.
func Adjust(tx *gorm.DB, productID uint, delta float64) (*models.StockRecord, error) {
	return mutate(tx, productID, "audit", func(rec *models.StockRecord) error {
		return applyAdjust(rec, delta)
	})
}

// Hold: Rezerv soft-hold ekler (kullanılabilir stok üzerinden doğrulanır).
func Hold(tx *gorm.DB, productID uint, qty float64) (*models.StockRecord, error) {
	return mutate(tx, productID, "reserved", func(rec *models.StockRecord) error {
		return applyHold(rec, qty)
	})
}

// Release: Soft-hold'u bırakır (rezerv iptal/silme).
func Release(tx *gorm.DB, productID uint, qty float64) (*models.StockRecord, error) {
	return mutate(tx, productID, "reserved", func(rec *models.StockRecord) error {
		return applyRelease(rec, qty)
	})
}

func mutate(tx *gorm.DB, productID uint, action string, apply func(*models.StockRecord) error) (*models.StockRecord, error) {
	rec, err := lockRecord(tx, productID)
	if err != nil {
		return nil, err
	}

	if err := apply(rec); err != nil {
		var insufficient *InsufficientStockError
		var invalid *InvalidAdjustmentError
		switch {
		case errors.As(err, &insufficient):
			metrics.RejectedOperations.WithLabelValues("insufficient_stock").Inc()
		case errors.As(err, &invalid):
			metrics.RejectedOperations.WithLabelValues("invalid_adjustment").Inc()
		default:
			metrics.RejectedOperations.WithLabelValues("validation").Inc()
		}
		return nil, err
	}

	if err := tx.Save(rec).Error; err != nil {
		return nil, err
	}

	metrics.StockMutations.WithLabelValues(action).Inc()
	return rec, nil
}
