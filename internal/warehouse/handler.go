package warehouse

import (
	"strings"
	"time"

	"depo-backend/internal/auth"
	"depo-backend/internal/config"
	"depo-backend/internal/database"
	"depo-backend/internal/history"
	"depo-backend/internal/ledger"
	"depo-backend/internal/models"
	"depo-backend/internal/settings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type StockRowResponse struct {
	ProductID        uint    `json:"product_id"`
	Article          string  `json:"article"`
	Name             string  `json:"name"`
	Category         string  `json:"category"`
	Supplier         string  `json:"supplier"`
	CostPrice        float64 `json:"cost_price"`
	ReceivedQuantity float64 `json:"received_quantity"`
	OutgoingQuantity float64 `json:"outgoing_quantity"`
	ReservedQuantity float64 `json:"reserved_quantity"`
	RemainingStock   float64 `json:"remaining_stock"`
	AvailableStock   float64 `json:"available_stock"` // remaining - reserved (soft hold düşülmüş)
	Critical         bool    `json:"critical"`
}

type ReceiveStockRequest struct {
	ProductID uint    `json:"product_id"`
	Quantity  float64 `json:"quantity"`
	UnitCost  float64 `json:"unit_cost"` // 0 ise ürünün kayıtlı maliyeti kullanılır
	Date      string  `json:"date"`     // "2025-12-09", boş ise bugün
	Comments  string  `json:"comments"`
}

func toStockRow(rec models.StockRecord, threshold float64) StockRowResponse {
	return StockRowResponse{
		ProductID:        rec.ProductID,
		Article:          rec.Product.Article,
		Name:             rec.Product.Name,
		Category:         rec.Product.Category,
		Supplier:         rec.Product.Supplier,
		CostPrice:        rec.Product.CostPrice,
		ReceivedQuantity: rec.ReceivedQuantity,
		OutgoingQuantity: rec.OutgoingQuantity,
		ReservedQuantity: rec.ReservedQuantity,
		RemainingStock:   rec.RemainingStock,
		AvailableStock:   rec.RemainingStock - rec.ReservedQuantity,
		Critical:         rec.RemainingStock <= threshold,
	}
}

// GET /api/warehouse?search=&stock_filter=all|critical
func ListStockHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		threshold := settings.CriticalThreshold(cfg.CriticalStock)

		dbq := database.DB.Model(&models.StockRecord{}).
			Preload("Product").
			Joins("JOIN products ON products.id = stock_records.product_id")

		if search := strings.TrimSpace(c.Query("search")); search != "" {
			like := "%" + strings.ToLower(search) + "%"
			dbq = dbq.Where("LOWER(products.article) LIKE ? OR LOWER(products.name) LIKE ? OR LOWER(products.category) LIKE ? OR LOWER(products.supplier) LIKE ?",
				like, like, like, like)
		}

		if c.Query("stock_filter") == "critical" {
			dbq = dbq.Where("stock_records.remaining_stock <= ?", threshold)
		}

		var records []models.StockRecord
		if err := dbq.Order("products.article asc").Find(&records).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Stok listelenemedi")
		}

		resp := make([]StockRowResponse, 0, len(records))
		for _, rec := range records {
			resp = append(resp, toStockRow(rec, threshold))
		}
		return c.JSON(resp)
	}
}

// GET /api/warehouse/:productId
func GetStockHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		productID, err := c.ParamsInt("productId")
		if err != nil || productID <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "productId geçersiz")
		}

		var rec models.StockRecord
		if err := database.DB.Preload("Product").
			Where("product_id = ?", productID).
			First(&rec).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Stok kaydı bulunamadı")
		}

		threshold := settings.CriticalThreshold(cfg.CriticalStock)
		return c.JSON(toStockRow(rec, threshold))
	}
}

// POST /api/warehouse/receive
// Mal kabul: girişi ve kalan stoğu artırır, bir 'received' history kaydı atar.
func ReceiveStockHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body ReceiveStockRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		if body.ProductID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "product_id zorunlu")
		}
		if body.Quantity <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "quantity pozitif olmalı")
		}

		date := time.Now()
		if body.Date != "" {
			d, err := time.Parse("2006-01-02", body.Date)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Tarih formatı 'YYYY-MM-DD' olmalı")
			}
			date = d
		}

		var product models.Product
		if err := database.DB.First(&product, "id = ?", body.ProductID).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Ürün bulunamadı")
		}

		unitCost := body.UnitCost
		if unitCost == 0 {
			unitCost = product.CostPrice
		}
		if unitCost < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "unit_cost negatif olamaz")
		}

		var updated *models.StockRecord
		err := database.DB.Transaction(func(tx *gorm.DB) error {
			before, err := ledger.Get(tx, product.ID)
			if err != nil {
				return err
			}
			beforeRemaining := before.RemainingStock

			rec, err := ledger.Receive(tx, product.ID, body.Quantity)
			if err != nil {
				return err
			}
			updated = rec

			return history.Record(tx, history.Options{
				Action:         models.HistoryActionReceived,
				ProductID:      product.ID,
				Article:        product.Article,
				ProductName:    product.Name,
				QuantityBefore: beforeRemaining,
				QuantityAfter:  rec.RemainingStock,
				Cost:           unitCost,
				TotalCost:      body.Quantity * unitCost,
				User:           auth.CurrentUserName(c),
				Reference:      "Stock Receipt #" + history.Reference("SR", rec.ID),
				Comments:       body.Comments,
				Timestamp:      date,
			})
		})
		if err != nil {
			return mapLedgerError(err)
		}

		updated.Product = product
		threshold := settings.CriticalThreshold(cfg.CriticalStock)
		return c.Status(fiber.StatusCreated).JSON(toStockRow(*updated, threshold))
	}
}

// mapLedgerError: Ledger'ın tipli hatalarını HTTP cevabına çevirir.
// Diğer handler paketleri de aynı dönüşümü kullanır.
func mapLedgerError(err error) error {
	switch e := err.(type) {
	case *ledger.ValidationError:
		return fiber.NewError(fiber.StatusBadRequest, e.Error())
	case *ledger.InsufficientStockError:
		return fiber.NewError(fiber.StatusConflict, e.Error())
	case *ledger.InvalidAdjustmentError:
		return fiber.NewError(fiber.StatusConflict, e.Error())
	case *ledger.NotFoundError:
		return fiber.NewError(fiber.StatusNotFound, e.Error())
	default:
		return fiber.NewError(fiber.StatusInternalServerError, "İşlem tamamlanamadı")
	}
}
