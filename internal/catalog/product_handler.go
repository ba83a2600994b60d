package catalog

import (
	"strings"

	"depo-backend/internal/database"
	"depo-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type CreateProductRequest struct {
	Article      string  `json:"article"`
	Name         string  `json:"name"`
	CostPrice    float64 `json:"cost_price"`
	Category     string  `json:"category"`
	Supplier     string  `json:"supplier"`
	InitialStock float64 `json:"initial_stock"`
}

type UpdateProductRequest struct {
	Name      *string  `json:"name"`
	CostPrice *float64 `json:"cost_price"`
	Category  *string  `json:"category"`
	Supplier  *string  `json:"supplier"`
}

type ProductResponse struct {
	ID        uint    `json:"id"`
	Article   string  `json:"article"`
	Name      string  `json:"name"`
	CostPrice float64 `json:"cost_price"`
	Category  string  `json:"category"`
	Supplier  string  `json:"supplier"`
	CreatedAt string  `json:"created_at"`
}

func toProductResponse(p models.Product) ProductResponse {
	return ProductResponse{
		ID:        p.ID,
		Article:   p.Article,
		Name:      p.Name,
		CostPrice: p.CostPrice,
		Category:  p.Category,
		Supplier:  p.Supplier,
		CreatedAt: p.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

// GET /api/products?search=
func ListProductsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Model(&models.Product{})

		if search := strings.TrimSpace(c.Query("search")); search != "" {
			like := "%" + strings.ToLower(search) + "%"
			dbq = dbq.Where("LOWER(article) LIKE ? OR LOWER(name) LIKE ? OR LOWER(category) LIKE ? OR LOWER(supplier) LIKE ?",
				like, like, like, like)
		}

		var products []models.Product
		if err := dbq.Order("article asc").Find(&products).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Ürünler listelenemedi")
		}

		resp := make([]ProductResponse, 0, len(products))
		for _, p := range products {
			resp = append(resp, toProductResponse(p))
		}
		return c.JSON(resp)
	}
}

// POST /api/admin/products
func CreateProductHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateProductRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		body.Article = strings.TrimSpace(body.Article)
		body.Name = strings.TrimSpace(body.Name)

		if body.Article == "" || body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Article ve name zorunlu")
		}
		if body.CostPrice < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "cost_price negatif olamaz")
		}
		if body.InitialStock < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "initial_stock negatif olamaz")
		}

		var existing models.Product
		if err := database.DB.Where("article = ?", body.Article).First(&existing).Error; err == nil {
			return fiber.NewError(fiber.StatusConflict, "Bu article koduyla bir ürün zaten var")
		}

		product := models.Product{
			Article:   body.Article,
			Name:      body.Name,
			CostPrice: body.CostPrice,
			Category:  body.Category,
			Supplier:  body.Supplier,
		}

		err := database.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&product).Error; err != nil {
				return err
			}
			rec := models.StockRecord{ProductID: product.ID}
			if err := tx.Create(&rec).Error; err != nil {
				return err
			}
			if body.InitialStock > 0 {
				return receiveInitialStock(tx, c, &product, body.InitialStock)
			}
			return nil
		})
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Ürün oluşturulamadı")
		}

		return c.Status(fiber.StatusCreated).JSON(toProductResponse(product))
	}
}

// PUT /api/admin/products/:id
// Article değiştirilemez; kimlik olarak sabittir.
func UpdateProductHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var product models.Product
		if err := database.DB.First(&product, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Ürün bulunamadı")
		}

		var body UpdateProductRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		if body.Name != nil {
			name := strings.TrimSpace(*body.Name)
			if name == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Name boş olamaz")
			}
			product.Name = name
		}
		if body.CostPrice != nil {
			if *body.CostPrice < 0 {
				return fiber.NewError(fiber.StatusBadRequest, "cost_price negatif olamaz")
			}
			product.CostPrice = *body.CostPrice
		}
		if body.Category != nil {
			product.Category = *body.Category
		}
		if body.Supplier != nil {
			product.Supplier = *body.Supplier
		}

		if err := database.DB.Save(&product).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Ürün güncellenemedi")
		}

		return c.JSON(toProductResponse(product))
	}
}

// DELETE /api/admin/products/:id
// Hareket görmüş ürün silinemez; günlük bütünlüğü bozulur.
func DeleteProductHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var product models.Product
		if err := database.DB.First(&product, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Ürün bulunamadı")
		}

		var expenseCount int64
		database.DB.Model(&models.Expense{}).Where("product_id = ?", product.ID).Count(&expenseCount)
		if expenseCount > 0 {
			return fiber.NewError(fiber.StatusConflict, "Gider kaydı olan ürün silinemez")
		}

		var reserveCount int64
		database.DB.Model(&models.ReserveItem{}).Where("product_id = ?", product.ID).Count(&reserveCount)
		if reserveCount > 0 {
			return fiber.NewError(fiber.StatusConflict, "Rezervi olan ürün silinemez")
		}

		var historyCount int64
		database.DB.Model(&models.HistoryEntry{}).Where("product_id = ?", product.ID).Count(&historyCount)
		if historyCount > 0 {
			return fiber.NewError(fiber.StatusConflict, "Stok hareketi olan ürün silinemez")
		}

		err := database.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Delete(&models.StockRecord{}, "product_id = ?", product.ID).Error; err != nil {
				return err
			}
			return tx.Delete(&product).Error
		})
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Ürün silinemedi")
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}
