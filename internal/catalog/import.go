package catalog

import (
	"fmt"
	"strconv"
	"strings"

	"depo-backend/internal/auth"
	"depo-backend/internal/database"
	"depo-backend/internal/history"
	"depo-backend/internal/ledger"
	"depo-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// İçe aktarma şablonu kolonları:
// Article | Name | Initial Stock | Cost Price (USD) | Category | Supplier
// Article ve Name zorunlu, diğerleri opsiyonel.

type ImportPolicy string

const (
	ImportPolicySkip   ImportPolicy = "skip"   // Mevcut article'ı atla
	ImportPolicyUpdate ImportPolicy = "update" // Mevcut ürünü güncelle
	ImportPolicyCreate ImportPolicy = "create" // Türetilmiş article ile yeni kayıt aç
)

type ImportRow struct {
	RowNumber    int
	Article      string
	Name         string
	InitialStock float64
	CostPrice    float64
	Category     string
	Supplier     string

	// Boş hücre ile sıfır/boş değer ayrımı; 'update' politikasında boş
	// hücreler mevcut değeri korur
	HasCostPrice bool
	HasCategory  bool
	HasSupplier  bool
}

type ImportRowError struct {
	RowNumber int    `json:"row"`
	Message   string `json:"message"`
}

type ImportResult struct {
	Created int              `json:"created"`
	Updated int              `json:"updated"`
	Skipped int              `json:"skipped"`
	Errors  []ImportRowError `json:"errors"`
}

// ParseImportRows: Çalışma kitabının ilk sayfasını şablona göre okur.
// Satır bazlı hatalar toplanır; dosya geneli bozuksa error döner.
func ParseImportRows(f *excelize.File) ([]ImportRow, []ImportRowError, error) {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, fmt.Errorf("çalışma kitabında sayfa yok")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, nil, fmt.Errorf("satırlar okunamadı: %w", err)
	}
	if len(rows) < 2 {
		return nil, nil, fmt.Errorf("dosyada başlık dışında satır yok")
	}

	// Başlık satırından kolon indekslerini çöz
	colIdx := map[string]int{}
	for i, h := range rows[0] {
		key := strings.ToLower(strings.TrimSpace(h))
		switch {
		case key == "article":
			colIdx["article"] = i
		case key == "name":
			colIdx["name"] = i
		case strings.HasPrefix(key, "initial stock"):
			colIdx["initial_stock"] = i
		case strings.HasPrefix(key, "cost price"):
			colIdx["cost_price"] = i
		case key == "category":
			colIdx["category"] = i
		case key == "supplier":
			colIdx["supplier"] = i
		}
	}

	if _, ok := colIdx["article"]; !ok {
		return nil, nil, fmt.Errorf("başlıkta 'Article' kolonu yok")
	}
	if _, ok := colIdx["name"]; !ok {
		return nil, nil, fmt.Errorf("başlıkta 'Name' kolonu yok")
	}

	cell := func(row []string, key string) string {
		idx, ok := colIdx[key]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	var parsed []ImportRow
	var rowErrors []ImportRowError

	for i, row := range rows[1:] {
		rowNo := i + 2 // 1 tabanlı, başlık dahil

		article := cell(row, "article")
		name := cell(row, "name")

		// Tamamen boş satırları sessizce geç
		if article == "" && name == "" {
			continue
		}

		if article == "" {
			rowErrors = append(rowErrors, ImportRowError{RowNumber: rowNo, Message: "Article zorunlu"})
			continue
		}
		if name == "" {
			rowErrors = append(rowErrors, ImportRowError{RowNumber: rowNo, Message: "Name zorunlu"})
			continue
		}

		ir := ImportRow{
			RowNumber: rowNo,
			Article:   article,
			Name:      name,
		}

		if s := cell(row, "category"); s != "" {
			ir.Category = s
			ir.HasCategory = true
		}
		if s := cell(row, "supplier"); s != "" {
			ir.Supplier = s
			ir.HasSupplier = true
		}

		if s := cell(row, "initial_stock"); s != "" {
			v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
			if err != nil || v < 0 {
				rowErrors = append(rowErrors, ImportRowError{RowNumber: rowNo, Message: "Initial Stock geçersiz"})
				continue
			}
			ir.InitialStock = v
		}

		if s := cell(row, "cost_price"); s != "" {
			v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
			if err != nil || v < 0 {
				rowErrors = append(rowErrors, ImportRowError{RowNumber: rowNo, Message: "Cost Price geçersiz"})
				continue
			}
			ir.CostPrice = v
			ir.HasCostPrice = true
		}

		parsed = append(parsed, ir)
	}

	return parsed, rowErrors, nil
}

// applyRowToProduct: 'update' politikasında satırı mevcut ürüne uygular.
// Name zorunlu olduğundan her zaman yazılır, boş hücreler eski değeri korur.
func applyRowToProduct(p *models.Product, row ImportRow) {
	p.Name = row.Name
	if row.HasCostPrice {
		p.CostPrice = row.CostPrice
	}
	if row.HasCategory {
		p.Category = row.Category
	}
	if row.HasSupplier {
		p.Supplier = row.Supplier
	}
}

// deriveArticle: 'create' politikasında benzersiz kod türetir (PNL-001-2, PNL-001-3, ...).
func deriveArticle(tx *gorm.DB, base string) (string, error) {
	for suffix := 2; suffix < 100; suffix++ {
		candidate := fmt.Sprintf("%s-%d", base, suffix)
		var count int64
		if err := tx.Model(&models.Product{}).Where("article = ?", candidate).Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("article için uygun türev bulunamadı: %s", base)
}

// receiveInitialStock: Başlangıç stoğunu mal kabul olarak işler (ledger + history).
func receiveInitialStock(tx *gorm.DB, c *fiber.Ctx, product *models.Product, qty float64) error {
	before, err := ledger.Get(tx, product.ID)
	if err != nil {
		return err
	}
	beforeRemaining := before.RemainingStock

	rec, err := ledger.Receive(tx, product.ID, qty)
	if err != nil {
		return err
	}

	return history.Record(tx, history.Options{
		Action:         models.HistoryActionReceived,
		ProductID:      product.ID,
		Article:        product.Article,
		ProductName:    product.Name,
		QuantityBefore: beforeRemaining,
		QuantityAfter:  rec.RemainingStock,
		Cost:           product.CostPrice,
		TotalCost:      qty * product.CostPrice,
		User:           auth.CurrentUserName(c),
		Reference:      "Stock Receipt #" + history.Reference("SR", product.ID),
		Details:        map[string]string{"source": "initial_stock"},
	})
}

// POST /api/admin/products/import (multipart: file, policy=skip|update|create)
func ImportProductsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		policy := ImportPolicy(c.FormValue("policy", string(ImportPolicySkip)))
		if policy != ImportPolicySkip && policy != ImportPolicyUpdate && policy != ImportPolicyCreate {
			return fiber.NewError(fiber.StatusBadRequest, "policy 'skip', 'update' veya 'create' olmalı")
		}

		fileHeader, err := c.FormFile("file")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Dosya yüklenemedi: "+err.Error())
		}
		if !strings.HasSuffix(strings.ToLower(fileHeader.Filename), ".xlsx") {
			return fiber.NewError(fiber.StatusBadRequest, "Sadece .xlsx dosyaları yüklenebilir")
		}

		file, err := fileHeader.Open()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Dosya açılamadı: "+err.Error())
		}
		defer file.Close()

		excelFile, err := excelize.OpenReader(file)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Excel dosyası okunamadı: "+err.Error())
		}
		defer excelFile.Close()

		parsed, rowErrors, err := ParseImportRows(excelFile)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		result := ImportResult{Errors: rowErrors}
		if result.Errors == nil {
			result.Errors = []ImportRowError{}
		}

		for _, row := range parsed {
			row := row
			err := database.DB.Transaction(func(tx *gorm.DB) error {
				var existing models.Product
				findErr := tx.Where("article = ?", row.Article).First(&existing).Error

				article := row.Article
				if findErr == nil {
					switch policy {
					case ImportPolicySkip:
						result.Skipped++
						return nil
					case ImportPolicyUpdate:
						applyRowToProduct(&existing, row)
						if err := tx.Save(&existing).Error; err != nil {
							return err
						}
						result.Updated++
						return nil
					case ImportPolicyCreate:
						derived, err := deriveArticle(tx, row.Article)
						if err != nil {
							return err
						}
						article = derived
					}
				}

				product := models.Product{
					Article:   article,
					Name:      row.Name,
					CostPrice: row.CostPrice,
					Category:  row.Category,
					Supplier:  row.Supplier,
				}
				if err := tx.Create(&product).Error; err != nil {
					return err
				}
				if err := tx.Create(&models.StockRecord{ProductID: product.ID}).Error; err != nil {
					return err
				}
				if row.InitialStock > 0 {
					if err := receiveInitialStock(tx, c, &product, row.InitialStock); err != nil {
						return err
					}
				}
				result.Created++
				return nil
			})
			if err != nil {
				result.Errors = append(result.Errors, ImportRowError{RowNumber: row.RowNumber, Message: err.Error()})
			}
		}

		return c.JSON(result)
	}
}
