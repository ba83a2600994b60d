package history

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"depo-backend/internal/models"

	"github.com/xuri/excelize/v2"
)

// Dışa aktarma kolonları sabittir; frontend'in indirdiği dosya formatıyla
// birebir aynı kalmalı.
var exportHeader = []string{"Date", "Time", "Action", "Article", "Product Name", "Quantity Change", "User", "Project", "Reference"}

func exportRow(e models.HistoryEntry) []string {
	project := e.Project
	if project == "" {
		project = "N/A"
	}
	return []string{
		e.Timestamp.Format("2006-01-02"),
		e.Timestamp.Format("15:04:05"),
		string(e.Action),
		e.Article,
		e.ProductName,
		strconv.FormatFloat(e.QuantityChange, 'f', -1, 64),
		e.User,
		project,
		e.Reference,
	}
}

// BuildCSV: 1 başlık + kayıt başına 1 satır. Virgül içeren alanları
// encoding/csv kendisi tırnaklar.
func BuildCSV(entries []models.HistoryEntry) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(exportHeader); err != nil {
		return nil, err
	}
	for _, e := range entries {
		if err := w.Write(exportRow(e)); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// BuildXLSX: Aynı satırların Excel çalışma kitabı hali.
func BuildXLSX(entries []models.HistoryEntry) (*excelize.File, error) {
	f := excelize.NewFile()
	sheet := "History"
	f.SetSheetName("Sheet1", sheet)

	for col, h := range exportHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, err
		}
	}

	for i, e := range entries {
		row := exportRow(e)
		for col, v := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, err
			}
		}
	}

	return f, nil
}

// ExportFilename: "history-journal-2024-01-15.csv" gibi.
func ExportFilename(ext string, dateStr string) string {
	return fmt.Sprintf("history-journal-%s.%s", dateStr, ext)
}
