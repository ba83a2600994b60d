package expense

import (
	"strings"
	"time"

	"depo-backend/internal/auth"
	"depo-backend/internal/database"
	"depo-backend/internal/history"
	"depo-backend/internal/ledger"
	"depo-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type CreateExpenseRequest struct {
	ProjectID uint    `json:"project_id"`
	ProductID uint    `json:"product_id"`
	Date      string  `json:"date"` // "2024-01-15"
	Quantity  float64 `json:"quantity"`
}

type UpdateExpenseRequest struct {
	ProjectID *uint    `json:"project_id"`
	Date      *string  `json:"date"`
	Quantity  *float64 `json:"quantity"`
}

type ExpenseResponse struct {
	ID          uint    `json:"id"`
	ProjectID   uint    `json:"project_id"`
	ProjectName string  `json:"project_name"`
	ProductID   uint    `json:"product_id"`
	Article     string  `json:"article"`
	ProductName string  `json:"product_name"`
	Date        string  `json:"date"`
	Quantity    float64 `json:"quantity"`
	UnitCost    float64 `json:"unit_cost"`
	TotalCost   float64 `json:"total_cost"`
	CreatedAt   string  `json:"created_at"`
}

func toExpenseResponse(e models.Expense) ExpenseResponse {
	return ExpenseResponse{
		ID:          e.ID,
		ProjectID:   e.ProjectID,
		ProjectName: e.Project.Name,
		ProductID:   e.ProductID,
		Article:     e.Product.Article,
		ProductName: e.Product.Name,
		Date:        e.Date.Format("2006-01-02"),
		Quantity:    e.Quantity,
		UnitCost:    e.UnitCost,
		TotalCost:   e.TotalCost,
		CreatedAt:   e.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

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

// POST /api/expenses
// Gider = projeye yazılan stok çıkışı. Tahsis ve history kaydı tek
// transaction'da yapılır.
func CreateExpenseHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateExpenseRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		if body.ProjectID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "project_id zorunlu")
		}
		if body.ProductID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "product_id zorunlu")
		}
		if body.Date == "" {
			return fiber.NewError(fiber.StatusBadRequest, "date zorunlu")
		}
		if body.Quantity <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "quantity pozitif olmalı")
		}

		d, err := time.Parse("2006-01-02", body.Date)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Tarih formatı 'YYYY-MM-DD' olmalı")
		}

		var project models.Project
		if err := database.DB.First(&project, "id = ?", body.ProjectID).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Proje bulunamadı")
		}

		var product models.Product
		if err := database.DB.First(&product, "id = ?", body.ProductID).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Ürün bulunamadı")
		}

		exp := models.Expense{
			ProjectID: project.ID,
			ProductID: product.ID,
			Date:      d,
			Quantity:  body.Quantity,
			UnitCost:  product.CostPrice,
			TotalCost: body.Quantity * product.CostPrice,
		}

		err = database.DB.Transaction(func(tx *gorm.DB) error {
			before, err := ledger.Get(tx, product.ID)
			if err != nil {
				return err
			}
			beforeRemaining := before.RemainingStock

			rec, err := ledger.Allocate(tx, product.ID, body.Quantity)
			if err != nil {
				return err
			}

			if err := tx.Create(&exp).Error; err != nil {
				return err
			}

			return history.Record(tx, history.Options{
				Action:         models.HistoryActionOutgoing,
				ProductID:      product.ID,
				Article:        product.Article,
				ProductName:    product.Name,
				QuantityBefore: beforeRemaining,
				QuantityAfter:  rec.RemainingStock,
				Cost:           exp.UnitCost,
				TotalCost:      exp.TotalCost,
				User:           auth.CurrentUserName(c),
				Project:        project.Name,
				Reference:      "Expense #" + history.Reference("EXP", exp.ID),
			})
		})
		if err != nil {
			return mapLedgerError(err)
		}

		exp.Project = project
		exp.Product = product
		return c.Status(fiber.StatusCreated).JSON(toExpenseResponse(exp))
	}
}

// PUT /api/expenses/:id
// Miktar değişiminde stok farkı uygulanır: artışta ek tahsis, azalışta iade.
// UnitCost ilk kayıttaki maliyet olarak sabit kalır, TotalCost yeniden hesaplanır.
func UpdateExpenseHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var exp models.Expense
		if err := database.DB.Preload("Project").Preload("Product").First(&exp, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Gider bulunamadı")
		}

		var body UpdateExpenseRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		if body.ProjectID != nil {
			var project models.Project
			if err := database.DB.First(&project, "id = ?", *body.ProjectID).Error; err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Proje bulunamadı")
			}
			exp.ProjectID = project.ID
			exp.Project = project
		}

		if body.Date != nil {
			d, err := time.Parse("2006-01-02", *body.Date)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Tarih formatı 'YYYY-MM-DD' olmalı")
			}
			exp.Date = d
		}

		oldQuantity := exp.Quantity
		newQuantity := oldQuantity
		if body.Quantity != nil {
			newQuantity = *body.Quantity
		}

		err := database.DB.Transaction(func(tx *gorm.DB) error {
			before, err := ledger.Get(tx, exp.ProductID)
			if err != nil {
				return err
			}
			beforeRemaining := before.RemainingStock

			plan, err := planQuantityChange(exp.ProductID, oldQuantity, newQuantity, exp.UnitCost, beforeRemaining)
			if err != nil {
				return err
			}

			if plan.StockDifference != 0 {
				var rec *models.StockRecord
				if plan.StockDifference > 0 {
					rec, err = ledger.Allocate(tx, exp.ProductID, plan.StockDifference)
				} else {
					rec, err = ledger.ReverseAllocate(tx, exp.ProductID, -plan.StockDifference)
				}
				if err != nil {
					return err
				}

				if err := history.Record(tx, history.Options{
					Action:         models.HistoryActionOutgoing,
					ProductID:      exp.ProductID,
					Article:        exp.Product.Article,
					ProductName:    exp.Product.Name,
					QuantityBefore: beforeRemaining,
					QuantityAfter:  rec.RemainingStock,
					Cost:           exp.UnitCost,
					TotalCost:      plan.StockDifference * exp.UnitCost,
					User:           auth.CurrentUserName(c),
					Project:        exp.Project.Name,
					Reference:      "Expense #" + history.Reference("EXP", exp.ID),
					Comments:       "Gider güncellendi",
					Details:        map[string]string{"change": "update"},
				}); err != nil {
					return err
				}
			}

			exp.Quantity = newQuantity
			exp.TotalCost = plan.TotalCost
			return tx.Save(&exp).Error
		})
		if err != nil {
			return mapLedgerError(err)
		}

		return c.JSON(toExpenseResponse(exp))
	}
}

// DELETE /api/expenses/:id
// Silme, tahsis edilen miktarı stoğa iade eder.
func DeleteExpenseHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var exp models.Expense
		if err := database.DB.Preload("Project").Preload("Product").First(&exp, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Gider bulunamadı")
		}

		err := database.DB.Transaction(func(tx *gorm.DB) error {
			before, err := ledger.Get(tx, exp.ProductID)
			if err != nil {
				return err
			}
			beforeRemaining := before.RemainingStock

			rec, err := ledger.ReverseAllocate(tx, exp.ProductID, exp.Quantity)
			if err != nil {
				return err
			}

			if err := tx.Delete(&exp).Error; err != nil {
				return err
			}

			return history.Record(tx, history.Options{
				Action:         models.HistoryActionOutgoing,
				ProductID:      exp.ProductID,
				Article:        exp.Product.Article,
				ProductName:    exp.Product.Name,
				QuantityBefore: beforeRemaining,
				QuantityAfter:  rec.RemainingStock,
				Cost:           exp.UnitCost,
				TotalCost:      -exp.TotalCost,
				User:           auth.CurrentUserName(c),
				Project:        exp.Project.Name,
				Reference:      "Expense #" + history.Reference("EXP", exp.ID),
				Comments:       "Gider silindi, stok iade edildi",
				Details:        map[string]string{"change": "delete"},
			})
		})
		if err != nil {
			return mapLedgerError(err)
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}

// GET /api/expenses?search=&project_id=&from=&to=
// Salt okunur görünüm; eşitlik durumunda ekleniş sırası korunur.
func ListExpensesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Model(&models.Expense{}).
			Preload("Project").
			Preload("Product").
			Joins("JOIN projects ON projects.id = expenses.project_id").
			Joins("JOIN products ON products.id = expenses.product_id")

		if search := strings.TrimSpace(c.Query("search")); search != "" {
			like := "%" + strings.ToLower(search) + "%"
			dbq = dbq.Where("LOWER(products.article) LIKE ? OR LOWER(products.name) LIKE ? OR LOWER(projects.name) LIKE ?",
				like, like, like)
		}

		if pidStr := c.Query("project_id"); pidStr != "" {
			dbq = dbq.Where("expenses.project_id = ?", pidStr)
		}

		if fromStr := c.Query("from"); fromStr != "" {
			from, err := time.Parse("2006-01-02", fromStr)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "from geçersiz")
			}
			dbq = dbq.Where("expenses.date >= ?", from)
		}

		if toStr := c.Query("to"); toStr != "" {
			to, err := time.Parse("2006-01-02", toStr)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "to geçersiz")
			}
			dbq = dbq.Where("expenses.date <= ?", to)
		}

		var rows []models.Expense
		if err := dbq.Order("expenses.date asc, expenses.id asc").Find(&rows).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Giderler listelenemedi")
		}

		resp := make([]ExpenseResponse, 0, len(rows))
		for _, r := range rows {
			resp = append(resp, toExpenseResponse(r))
		}
		return c.JSON(resp)
	}
}
