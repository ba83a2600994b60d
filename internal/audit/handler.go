package audit

import (
	"time"

	"depo-backend/internal/auth"
	"depo-backend/internal/database"
	"depo-backend/internal/history"
	"depo-backend/internal/ledger"
	"depo-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type StartAuditRequest struct {
	AuditDate   string `json:"audit_date"` // Boş ise bugün
	AuditorName string `json:"auditor_name"`
}

type SetActualStockRequest struct {
	ActualStock float64 `json:"actual_stock"`
}

type VerifyItemsRequest struct {
	ItemIDs []uint `json:"item_ids"`
}

type AuditItemResponse struct {
	ID          uint    `json:"id"`
	Article     string  `json:"article"`
	ProductName string  `json:"product_name"`
	SystemStock float64 `json:"system_stock"`
	ActualStock float64 `json:"actual_stock"`
	Variance    float64 `json:"variance"`
	Verified    bool    `json:"verified"`
}

type AuditSessionResponse struct {
	ID          uint                `json:"id"`
	AuditDate   string              `json:"audit_date"`
	AuditorName string              `json:"auditor_name"`
	Status      models.AuditStatus  `json:"status"`
	Items       []AuditItemResponse `json:"items"`
	Summary     Summary             `json:"summary"`
}

func toSessionResponse(s models.AuditSession) AuditSessionResponse {
	items := make([]AuditItemResponse, 0, len(s.Items))
	for _, item := range s.Items {
		items = append(items, AuditItemResponse{
			ID:          item.ID,
			Article:     item.Article,
			ProductName: item.ProductName,
			SystemStock: item.SystemStock,
			ActualStock: item.ActualStock,
			Variance:    item.Variance,
			Verified:    item.Verified,
		})
	}
	return AuditSessionResponse{
		ID:          s.ID,
		AuditDate:   s.AuditDate.Format("2006-01-02"),
		AuditorName: s.AuditorName,
		Status:      s.Status,
		Items:       items,
		Summary:     Summarize(s.Items),
	}
}

func loadSession(id string) (*models.AuditSession, error) {
	var session models.AuditSession
	if err := database.DB.Preload("Items").First(&session, "id = ?", id).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "Sayım oturumu bulunamadı")
	}
	return &session, nil
}

// POST /api/audits
// Tüm stok kayıtlarının anlık görüntüsüyle yeni bir sayım oturumu açar.
// Sayılan miktar başlangıçta sistem stoğuna eşittir (fark 0).
func StartAuditHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body StartAuditRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		auditDate := time.Now()
		if body.AuditDate != "" {
			d, err := time.Parse("2006-01-02", body.AuditDate)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Tarih formatı 'YYYY-MM-DD' olmalı")
			}
			auditDate = d
		}

		auditorName := body.AuditorName
		if auditorName == "" {
			auditorName = auth.CurrentUserName(c)
		}

		session := models.AuditSession{
			AuditDate:   auditDate,
			AuditorName: auditorName,
			Status:      models.AuditStatusInProgress,
		}

		err := database.DB.Transaction(func(tx *gorm.DB) error {
			// Aynı anda tek açık oturum; iki paralel sayım birbirinin
			// düzeltmesini ezebilir. Kontrol transaction içinde yapılır.
			var openCount int64
			if err := tx.Model(&models.AuditSession{}).
				Where("status = ?", models.AuditStatusInProgress).
				Count(&openCount).Error; err != nil {
				return err
			}
			if openCount > 0 {
				return fiber.NewError(fiber.StatusConflict, "Devam eden bir sayım oturumu zaten var")
			}

			if err := tx.Create(&session).Error; err != nil {
				return err
			}

			var records []models.StockRecord
			if err := tx.Preload("Product").
				Joins("JOIN products ON products.id = stock_records.product_id").
				Order("products.article asc").
				Find(&records).Error; err != nil {
				return err
			}

			for _, rec := range records {
				item := models.AuditItem{
					SessionID:   session.ID,
					ProductID:   rec.ProductID,
					Article:     rec.Product.Article,
					ProductName: rec.Product.Name,
					SystemStock: rec.RemainingStock,
					ActualStock: rec.RemainingStock,
					Variance:    0,
				}
				if err := tx.Create(&item).Error; err != nil {
					return err
				}
				session.Items = append(session.Items, item)
			}

			return nil
		})
		if err != nil {
			if e, ok := err.(*fiber.Error); ok {
				return e
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Sayım oturumu açılamadı")
		}

		return c.Status(fiber.StatusCreated).JSON(toSessionResponse(session))
	}
}

// GET /api/audits
func ListAuditsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var sessions []models.AuditSession
		if err := database.DB.Preload("Items").
			Order("audit_date desc, id desc").
			Find(&sessions).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Sayım oturumları listelenemedi")
		}

		resp := make([]AuditSessionResponse, 0, len(sessions))
		for _, s := range sessions {
			resp = append(resp, toSessionResponse(s))
		}
		return c.JSON(resp)
	}
}

// GET /api/audits/:id
func GetAuditHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		session, err := loadSession(c.Params("id"))
		if err != nil {
			return err
		}
		return c.JSON(toSessionResponse(*session))
	}
}

// GET /api/audits/:id/summary
func AuditSummaryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		session, err := loadSession(c.Params("id"))
		if err != nil {
			return err
		}
		return c.JSON(Summarize(session.Items))
	}
}

// PUT /api/audits/:id/items/:itemId
// Sayılan miktarı günceller, farkı yeniden hesaplar. Sadece açık oturumda.
func SetActualStockHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		session, err := loadSession(c.Params("id"))
		if err != nil {
			return err
		}
		if session.Status != models.AuditStatusInProgress {
			return fiber.NewError(fiber.StatusConflict, "Tamamlanmış oturumda sayım değiştirilemez")
		}

		var body SetActualStockRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}
		if body.ActualStock < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "actual_stock negatif olamaz")
		}

		var item models.AuditItem
		if err := database.DB.
			Where("id = ? AND session_id = ?", c.Params("itemId"), session.ID).
			First(&item).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Sayım kalemi bulunamadı")
		}

		item.ActualStock = body.ActualStock
		item.Variance = ComputeVariance(body.ActualStock, item.SystemStock)

		if err := database.DB.Save(&item).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Sayım kalemi güncellenemedi")
		}

		return c.JSON(AuditItemResponse{
			ID:          item.ID,
			Article:     item.Article,
			ProductName: item.ProductName,
			SystemStock: item.SystemStock,
			ActualStock: item.ActualStock,
			Variance:    item.Variance,
			Verified:    item.Verified,
		})
	}
}

// POST /api/audits/:id/verify
// Seçili kalemleri kontrol edildi olarak işaretler; farktan bağımsız bir
// checklist bayrağıdır.
func VerifyItemsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		session, err := loadSession(c.Params("id"))
		if err != nil {
			return err
		}
		if session.Status != models.AuditStatusInProgress {
			return fiber.NewError(fiber.StatusConflict, "Tamamlanmış oturumda işaretleme yapılamaz")
		}

		var body VerifyItemsRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}
		if len(body.ItemIDs) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "item_ids boş olamaz")
		}

		if err := database.DB.Model(&models.AuditItem{}).
			Where("session_id = ? AND id IN ?", session.ID, body.ItemIDs).
			Update("verified", true).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kalemler işaretlenemedi")
		}

		session, err = loadSession(c.Params("id"))
		if err != nil {
			return err
		}
		return c.JSON(toSessionResponse(*session))
	}
}

// POST /api/audits/:id/confirm
// Sayımı onaylar: farklı her kalem için sayılan miktar stok kaydına geri
// yazılır (ledger.Adjust) ve bir 'audit' history kaydı atılır; oturum
// Completed olur. Completed terminaldir. Tamamı tek transaction'dır.
func ConfirmAuditHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		session, err := loadSession(c.Params("id"))
		if err != nil {
			return err
		}
		if session.Status != models.AuditStatusInProgress {
			return fiber.NewError(fiber.StatusConflict, "Oturum zaten tamamlanmış")
		}

		userName := auth.CurrentUserName(c)

		err = database.DB.Transaction(func(tx *gorm.DB) error {
			// Önce durum kapatılır: koşullu UPDATE satırı kilitler, yarışan
			// ikinci onay sıfır satır görüp düzeltmeleri tekrarlamaz
			res := completeInProgress(tx, session.ID)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return fiber.NewError(fiber.StatusConflict, "Oturum zaten tamamlanmış")
			}

			for _, item := range session.Items {
				if item.Variance == 0 {
					continue
				}

				before, err := ledger.Get(tx, item.ProductID)
				if err != nil {
					return err
				}
				beforeRemaining := before.RemainingStock

				// Oturum açıldıktan sonra stok değişmiş olabilir; geri yazma
				// sayım anındaki farkı uygular, güncel kalan üzerine
				rec, err := ledger.Adjust(tx, item.ProductID, item.Variance)
				if err != nil {
					return err
				}

				var product models.Product
				if err := tx.First(&product, "id = ?", item.ProductID).Error; err != nil {
					return err
				}

				if err := history.Record(tx, history.Options{
					Action:         models.HistoryActionAudit,
					ProductID:      item.ProductID,
					Article:        item.Article,
					ProductName:    item.ProductName,
					QuantityBefore: beforeRemaining,
					QuantityAfter:  rec.RemainingStock,
					Cost:           product.CostPrice,
					TotalCost:      item.Variance * product.CostPrice,
					User:           userName,
					Reference:      "Audit #" + history.Reference("AUD", session.ID),
					Details: map[string]string{
						"system_stock": formatQty(item.SystemStock),
						"actual_stock": formatQty(item.ActualStock),
					},
				}); err != nil {
					return err
				}
			}

			return nil
		})
		if err != nil {
			switch e := err.(type) {
			case *fiber.Error:
				return e
			case *ledger.InvalidAdjustmentError:
				return fiber.NewError(fiber.StatusConflict, e.Error())
			case *ledger.NotFoundError:
				return fiber.NewError(fiber.StatusNotFound, e.Error())
			default:
				return fiber.NewError(fiber.StatusInternalServerError, "Sayım onaylanamadı")
			}
		}

		session.Status = models.AuditStatusCompleted
		return c.JSON(toSessionResponse(*session))
	}
}
