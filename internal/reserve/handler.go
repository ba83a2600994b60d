package reserve

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

type CreateReserveRequest struct {
	ProjectName     string      `json:"project_name"`
	ReservationDate string      `json:"reservation_date"` // "2024-02-01"
	Items           []ItemInput `json:"items"`
}

type SetStatusRequest struct {
	Status models.ReserveStatus `json:"status"`
}

type ReserveItemResponse struct {
	ID               uint    `json:"id"`
	Article          string  `json:"article"`
	ProductName      string  `json:"product_name"`
	ReservedQuantity float64 `json:"reserved_quantity"`
	Comments         string  `json:"comments"`
}

type ReserveResponse struct {
	ID              uint                  `json:"id"`
	ProjectName     string                `json:"project_name"`
	ReservationDate string                `json:"reservation_date"`
	Status          models.ReserveStatus  `json:"status"`
	Items           []ReserveItemResponse `json:"items"`
	TotalItems      int                   `json:"total_items"`
	TotalQuantity   float64               `json:"total_quantity"`
	CreatedBy       string                `json:"created_by"`
	CreatedAt       string                `json:"created_at"`
}

func toReserveResponse(r models.Reserve) ReserveResponse {
	items := make([]ReserveItemResponse, 0, len(r.Items))
	totalQuantity := 0.0
	for _, item := range r.Items {
		items = append(items, ReserveItemResponse{
			ID:               item.ID,
			Article:          item.Article,
			ProductName:      item.ProductName,
			ReservedQuantity: item.ReservedQuantity,
			Comments:         item.Comments,
		})
		totalQuantity += item.ReservedQuantity
	}

	return ReserveResponse{
		ID:              r.ID,
		ProjectName:     r.ProjectName,
		ReservationDate: r.ReservationDate.Format("2006-01-02"),
		Status:          r.Status,
		Items:           items,
		TotalItems:      len(items),
		TotalQuantity:   totalQuantity,
		CreatedBy:       r.CreatedBy,
		CreatedAt:       r.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

func mapLedgerError(err error) error {
	switch e := err.(type) {
	case *ledger.ValidationError:
		return fiber.NewError(fiber.StatusBadRequest, e.Error())
	case *ledger.InsufficientStockError:
		return fiber.NewError(fiber.StatusConflict, e.Error())
	case *ledger.NotFoundError:
		return fiber.NewError(fiber.StatusNotFound, e.Error())
	default:
		return fiber.NewError(fiber.StatusInternalServerError, "İşlem tamamlanamadı")
	}
}

// GET /api/reserves?status=
func ListReservesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Model(&models.Reserve{}).Preload("Items")

		if status := c.Query("status"); status != "" {
			dbq = dbq.Where("status = ?", status)
		}

		var reserves []models.Reserve
		if err := dbq.Order("reservation_date asc, id asc").Find(&reserves).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Rezervler listelenemedi")
		}

		resp := make([]ReserveResponse, 0, len(reserves))
		for _, r := range reserves {
			resp = append(resp, toReserveResponse(r))
		}
		return c.JSON(resp)
	}
}

// POST /api/reserves
// Rezerv soft-hold'dur: her kalem için StockRecord.ReservedQuantity artar,
// RemainingStock değişmez. Kalem miktarı kullanılabilir stok
// (kalan - rezerve) üzerinden doğrulanır.
func CreateReserveHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateReserveRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		if body.ReservationDate == "" {
			return fiber.NewError(fiber.StatusBadRequest, "reservation_date zorunlu")
		}
		d, err := time.Parse("2006-01-02", body.ReservationDate)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Tarih formatı 'YYYY-MM-DD' olmalı")
		}

		if err := validateInput(body.ProjectName, d, time.Now(), body.Items); err != nil {
			return mapLedgerError(err)
		}

		userName := auth.CurrentUserName(c)
		reserve := models.Reserve{
			ProjectName:     body.ProjectName,
			ReservationDate: d,
			Status:          models.ReserveStatusActive,
			CreatedBy:       userName,
		}

		err = database.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&reserve).Error; err != nil {
				return err
			}

			for _, input := range body.Items {
				var product models.Product
				if err := tx.Where("article = ?", input.Article).First(&product).Error; err != nil {
					return &ledger.ValidationError{Field: "items.article", Reason: "ürün bulunamadı: " + input.Article}
				}

				rec, err := ledger.Hold(tx, product.ID, input.ReservedQuantity)
				if err != nil {
					return err
				}

				item := models.ReserveItem{
					ReserveID:        reserve.ID,
					ProductID:        product.ID,
					Article:          product.Article,
					ProductName:      product.Name,
					ReservedQuantity: input.ReservedQuantity,
					Comments:         input.Comments,
				}
				if err := tx.Create(&item).Error; err != nil {
					return err
				}
				reserve.Items = append(reserve.Items, item)

				qty := input.ReservedQuantity
				if err := history.Record(tx, history.Options{
					Action:           models.HistoryActionReserved,
					ProductID:        product.ID,
					Article:          product.Article,
					ProductName:      product.Name,
					QuantityBefore:   rec.RemainingStock,
					QuantityAfter:    rec.RemainingStock,
					ReservedQuantity: &qty,
					Cost:             product.CostPrice,
					TotalCost:        qty * product.CostPrice,
					User:             userName,
					Project:          body.ProjectName,
					Reference:        "Reserve #" + history.Reference("RSV", reserve.ID),
					Comments:         input.Comments,
				}); err != nil {
					return err
				}
			}

			return nil
		})
		if err != nil {
			return mapLedgerError(err)
		}

		return c.Status(fiber.StatusCreated).JSON(toReserveResponse(reserve))
	}
}

// PUT /api/reserves/:id/status
// Active -> Cancelled hold'ları bırakır; Cancelled -> Active kullanılabilir
// stok üzerinden yeniden doğrulayıp hold'ları geri uygular.
func SetReserveStatusHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var body SetStatusRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}
		if body.Status != models.ReserveStatusActive && body.Status != models.ReserveStatusCancelled {
			return fiber.NewError(fiber.StatusBadRequest, "status 'Active' veya 'Cancelled' olmalı")
		}

		var reserve models.Reserve
		if err := database.DB.Preload("Items").First(&reserve, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Rezerv bulunamadı")
		}

		if reserve.Status == body.Status {
			return c.JSON(toReserveResponse(reserve))
		}

		err := database.DB.Transaction(func(tx *gorm.DB) error {
			for _, item := range reserve.Items {
				var err error
				if body.Status == models.ReserveStatusCancelled {
					_, err = ledger.Release(tx, item.ProductID, item.ReservedQuantity)
				} else {
					_, err = ledger.Hold(tx, item.ProductID, item.ReservedQuantity)
				}
				if err != nil {
					return err
				}
			}

			reserve.Status = body.Status
			return tx.Save(&reserve).Error
		})
		if err != nil {
			return mapLedgerError(err)
		}

		return c.JSON(toReserveResponse(reserve))
	}
}

// DELETE /api/reserves/:id
// Kullanıcı onayı frontend'de alınır; aktif rezervin hold'ları bırakılır.
func DeleteReserveHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var reserve models.Reserve
		if err := database.DB.Preload("Items").First(&reserve, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Rezerv bulunamadı")
		}

		err := database.DB.Transaction(func(tx *gorm.DB) error {
			if reserve.Status == models.ReserveStatusActive {
				for _, item := range reserve.Items {
					if _, err := ledger.Release(tx, item.ProductID, item.ReservedQuantity); err != nil {
						return err
					}
				}
			}

			if err := tx.Delete(&models.ReserveItem{}, "reserve_id = ?", reserve.ID).Error; err != nil {
				return err
			}
			return tx.Delete(&reserve).Error
		})
		if err != nil {
			return mapLedgerError(err)
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}
