package history

import (
	"strings"
	"time"

	"depo-backend/internal/database"
	"depo-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type HistoryEntryResponse struct {
	ID               uint                 `json:"id"`
	Timestamp        string               `json:"timestamp"`
	Action           models.HistoryAction `json:"action"`
	Article          string               `json:"article"`
	ProductName      string               `json:"product_name"`
	QuantityBefore   float64              `json:"quantity_before"`
	QuantityAfter    float64              `json:"quantity_after"`
	QuantityChange   float64              `json:"quantity_change"`
	ReservedQuantity *float64             `json:"reserved_quantity,omitempty"`
	Cost             float64              `json:"cost"`
	TotalCost        float64              `json:"total_cost"`
	User             string               `json:"user"`
	Project          string               `json:"project"`
	Reference        string               `json:"reference"`
	Comments         string               `json:"comments,omitempty"`
	Details          string               `json:"details"`
}

// Listeleme ve export aynı sorgu filtrelerini paylaşır.
func queryEntries(c *fiber.Ctx) ([]models.HistoryEntry, error) {
	dbq := database.DB.Model(&models.HistoryEntry{})

	if fromStr := c.Query("from"); fromStr != "" {
		from, err := time.Parse("2006-01-02", fromStr)
		if err != nil {
			return nil, fiber.NewError(fiber.StatusBadRequest, "from geçersiz")
		}
		dbq = dbq.Where("timestamp >= ?", from)
	}

	if toStr := c.Query("to"); toStr != "" {
		to, err := time.Parse("2006-01-02", toStr)
		if err != nil {
			return nil, fiber.NewError(fiber.StatusBadRequest, "to geçersiz")
		}
		// Gün sonuna kadar dahil
		dbq = dbq.Where("timestamp < ?", to.AddDate(0, 0, 1))
	}

	if search := strings.TrimSpace(c.Query("search")); search != "" {
		like := "%" + strings.ToLower(search) + "%"
		dbq = dbq.Where("LOWER(article) LIKE ? OR LOWER(product_name) LIKE ?", like, like)
	}

	if action := c.Query("action"); action != "" {
		dbq = dbq.Where("action = ?", action)
	}

	if user := c.Query("user"); user != "" {
		dbq = dbq.Where("\"user\" = ?", user)
	}

	if project := c.Query("project"); project != "" {
		if project == "none" {
			// Projesiz hareketler
			dbq = dbq.Where("project = ''")
		} else {
			dbq = dbq.Where("project = ?", project)
		}
	}

	var entries []models.HistoryEntry
	if err := dbq.Order("timestamp asc, id asc").Find(&entries).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Hareket günlüğü listelenemedi")
	}
	return entries, nil
}

// GET /api/history?from=&to=&search=&action=&user=&project=
func ListHistoryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		entries, err := queryEntries(c)
		if err != nil {
			return err
		}

		resp := make([]HistoryEntryResponse, 0, len(entries))
		for _, e := range entries {
			resp = append(resp, HistoryEntryResponse{
				ID:               e.ID,
				Timestamp:        e.Timestamp.Format("2006-01-02 15:04:05"),
				Action:           e.Action,
				Article:          e.Article,
				ProductName:      e.ProductName,
				QuantityBefore:   e.QuantityBefore,
				QuantityAfter:    e.QuantityAfter,
				QuantityChange:   e.QuantityChange,
				ReservedQuantity: e.ReservedQuantity,
				Cost:             e.Cost,
				TotalCost:        e.TotalCost,
				User:             e.User,
				Project:          e.Project,
				Reference:        e.Reference,
				Comments:         e.Comments,
				Details:          e.Details,
			})
		}

		return c.JSON(resp)
	}
}

// GET /api/history/export?format=csv|xlsx (+ listeleme filtreleri)
func ExportHistoryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		entries, err := queryEntries(c)
		if err != nil {
			return err
		}

		today := time.Now().Format("2006-01-02")
		format := c.Query("format", "csv")

		switch format {
		case "csv":
			data, err := BuildCSV(entries)
			if err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "CSV oluşturulamadı")
			}
			c.Set("Content-Type", "text/csv")
			c.Set("Content-Disposition", "attachment; filename="+ExportFilename("csv", today))
			return c.Send(data)

		case "xlsx":
			f, err := BuildXLSX(entries)
			if err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Excel dosyası oluşturulamadı")
			}
			buf, err := f.WriteToBuffer()
			if err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Excel dosyası yazılamadı")
			}
			c.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
			c.Set("Content-Disposition", "attachment; filename="+ExportFilename("xlsx", today))
			return c.Send(buf.Bytes())

		default:
			return fiber.NewError(fiber.StatusBadRequest, "format 'csv' veya 'xlsx' olmalı")
		}
	}
}
