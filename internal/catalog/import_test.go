package catalog

import (
	"testing"

	"depo-backend/internal/models"

	"github.com/xuri/excelize/v2"
)

func buildWorkbook(t *testing.T, rows [][]any) *excelize.File {
	t.Helper()
	f := excelize.NewFile()
	for i, row := range rows {
		for j, v := range row {
			cell, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				t.Fatalf("cell: %v", err)
			}
			if err := f.SetCellValue("Sheet1", cell, v); err != nil {
				t.Fatalf("set cell: %v", err)
			}
		}
	}
	return f
}

var importHeader = []any{"Article", "Name", "Initial Stock", "Cost Price (USD)", "Category", "Supplier"}

func TestParseImportRowsTemplate(t *testing.T) {
	f := buildWorkbook(t, [][]any{
		importHeader,
		{"PNL-001", "Standard Wall Panel 2400x1200", 75, 125.50, "Wall Panels", "Standard Materials Co"},
		{"ACC-001", "Mounting Brackets Set", 200, 12.45, "Accessories", "Hardware Plus"},
	})

	rows, rowErrors, err := ParseImportRows(f)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(rowErrors) != 0 {
		t.Fatalf("satır hatası beklenmiyordu: %v", rowErrors)
	}
	if len(rows) != 2 {
		t.Fatalf("2 satır bekleniyordu, geldi: %d", len(rows))
	}

	first := rows[0]
	if first.Article != "PNL-001" || first.Name != "Standard Wall Panel 2400x1200" {
		t.Fatalf("ilk satır yanlış: %+v", first)
	}
	if first.InitialStock != 75 || first.CostPrice != 125.50 {
		t.Fatalf("sayısal alanlar yanlış: %+v", first)
	}
	if first.Category != "Wall Panels" || first.Supplier != "Standard Materials Co" {
		t.Fatalf("opsiyonel alanlar yanlış: %+v", first)
	}
}

func TestParseImportRowsRequiredFields(t *testing.T) {
	f := buildWorkbook(t, [][]any{
		importHeader,
		{"", "İsimli ama kodsuz", 5, 1.0, "", ""},
		{"DIV-001", "", 5, 1.0, "", ""},
		{"DIV-002", "Glass Partition 2100x1200", "", "", "", ""},
	})

	rows, rowErrors, err := ParseImportRows(f)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(rowErrors) != 2 {
		t.Fatalf("2 satır hatası bekleniyordu, geldi: %v", rowErrors)
	}
	if rowErrors[0].RowNumber != 2 || rowErrors[1].RowNumber != 3 {
		t.Fatalf("hata satır numaraları yanlış: %v", rowErrors)
	}
	if len(rows) != 1 || rows[0].Article != "DIV-002" {
		t.Fatalf("sadece geçerli satır kalmalıydı: %+v", rows)
	}
	// Boş sayısal alanlar sıfır varsayılır
	if rows[0].InitialStock != 0 || rows[0].CostPrice != 0 {
		t.Fatalf("boş sayısal alanlar 0 olmalı: %+v", rows[0])
	}
}

func TestParseImportRowsInvalidNumbers(t *testing.T) {
	f := buildWorkbook(t, [][]any{
		importHeader,
		{"PNL-002", "Insulated Panel 2400x600", "abc", 89.75, "", ""},
		{"PNL-003", "Fire-Resistant Panel", -5, 189.90, "", ""},
		{"PNL-004", "Acoustic Panel", 10, "-1", "", ""},
	})

	rows, rowErrors, err := ParseImportRows(f)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("geçerli satır beklenmiyordu: %+v", rows)
	}
	if len(rowErrors) != 3 {
		t.Fatalf("3 satır hatası bekleniyordu: %v", rowErrors)
	}
}

func TestParseImportRowsSkipsBlankLines(t *testing.T) {
	f := buildWorkbook(t, [][]any{
		importHeader,
		{"", "", "", "", "", ""},
		{"ACC-002", "Sealing Strip 3m", 120, 8.90, "Accessories", "Seal Solutions"},
	})

	rows, rowErrors, err := ParseImportRows(f)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(rowErrors) != 0 {
		t.Fatalf("boş satır hata üretmemeli: %v", rowErrors)
	}
	if len(rows) != 1 {
		t.Fatalf("1 satır bekleniyordu: %+v", rows)
	}
}

func TestParseImportRowsMissingHeader(t *testing.T) {
	f := buildWorkbook(t, [][]any{
		{"Kod", "Ad"},
		{"X-1", "Bir şey"},
	})

	if _, _, err := ParseImportRows(f); err == nil {
		t.Fatal("eksik başlık için hata bekleniyordu")
	}
}

func TestParseImportRowsTracksBlankCells(t *testing.T) {
	f := buildWorkbook(t, [][]any{
		importHeader,
		{"PNL-001", "Standard Wall Panel 2400x1200", "", "", "", ""},
		{"PNL-002", "Insulated Panel 2400x600", 10, 89.75, "Wall Panels", "Insulation Pro Ltd"},
	})

	rows, rowErrors, err := ParseImportRows(f)
	if err != nil || len(rowErrors) != 0 {
		t.Fatalf("parse: %v %v", err, rowErrors)
	}
	if len(rows) != 2 {
		t.Fatalf("2 satır bekleniyordu: %+v", rows)
	}

	blank := rows[0]
	if blank.HasCostPrice || blank.HasCategory || blank.HasSupplier {
		t.Fatalf("boş hücreler dolu sayılmamalı: %+v", blank)
	}
	full := rows[1]
	if !full.HasCostPrice || !full.HasCategory || !full.HasSupplier {
		t.Fatalf("dolu hücreler işaretlenmeliydi: %+v", full)
	}
}

func TestApplyRowToProductKeepsExistingOnBlank(t *testing.T) {
	existing := models.Product{
		Article:   "PNL-001",
		Name:      "Eski İsim",
		CostPrice: 125.50,
		Category:  "Wall Panels",
		Supplier:  "Standard Materials Co",
	}

	applyRowToProduct(&existing, ImportRow{
		Article: "PNL-001",
		Name:    "Standard Wall Panel 2400x1200",
	})

	if existing.Name != "Standard Wall Panel 2400x1200" {
		t.Fatalf("isim güncellenmeliydi: %+v", existing)
	}
	if existing.CostPrice != 125.50 || existing.Category != "Wall Panels" || existing.Supplier != "Standard Materials Co" {
		t.Fatalf("boş hücreler mevcut değerleri ezmemeli: %+v", existing)
	}
}

func TestApplyRowToProductOverwritesFilledCells(t *testing.T) {
	existing := models.Product{
		Article:   "PNL-001",
		Name:      "Standard Wall Panel 2400x1200",
		CostPrice: 125.50,
		Category:  "Wall Panels",
		Supplier:  "Standard Materials Co",
	}

	applyRowToProduct(&existing, ImportRow{
		Article:      "PNL-001",
		Name:         "Standard Wall Panel 2400x1200",
		CostPrice:    130.00,
		HasCostPrice: true,
		Supplier:     "New Materials Ltd",
		HasSupplier:  true,
	})

	if existing.CostPrice != 130.00 {
		t.Fatalf("dolu maliyet hücresi yazılmalıydı: %+v", existing)
	}
	if existing.Supplier != "New Materials Ltd" {
		t.Fatalf("dolu tedarikçi hücresi yazılmalıydı: %+v", existing)
	}
	if existing.Category != "Wall Panels" {
		t.Fatalf("boş kategori hücresi korunmalıydı: %+v", existing)
	}
}

func TestParseImportRowsCommaDecimal(t *testing.T) {
	f := buildWorkbook(t, [][]any{
		importHeader,
		{"PNL-005", "Trim Panel", "12", "125,50", "", ""},
	})

	rows, rowErrors, err := ParseImportRows(f)
	if err != nil || len(rowErrors) != 0 {
		t.Fatalf("parse: %v %v", err, rowErrors)
	}
	if rows[0].CostPrice != 125.50 {
		t.Fatalf("virgüllü ondalık çözülemedi: %+v", rows[0])
	}
}
