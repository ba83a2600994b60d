package history

import (
	"strings"
	"testing"
	"time"

	"depo-backend/internal/models"
)

func sampleEntries() []models.HistoryEntry {
	ts := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)
	return []models.HistoryEntry{
		{
			Timestamp:      ts,
			Action:         models.HistoryActionReceived,
			Article:        "PNL-001",
			ProductName:    "Standard Wall Panel 2400x1200",
			QuantityChange: 75,
			User:           "Admin User",
			Project:        "",
			Reference:      "SR-2024-001",
		},
		{
			Timestamp:      ts.Add(4 * time.Hour),
			Action:         models.HistoryActionOutgoing,
			Article:        "DIV-001",
			ProductName:    "Divider, Office 1800x900",
			QuantityChange: -8,
			User:           "Admin User",
			Project:        "Warehouse Expansion",
			Reference:      "EXP-2024-002",
		},
	}
}

func TestBuildCSVLineCount(t *testing.T) {
	data, err := BuildCSV(sampleEntries())
	if err != nil {
		t.Fatalf("csv: %v", err)
	}

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("3 satır bekleniyordu (başlık + 2 kayıt), geldi: %d\n%s", len(lines), data)
	}

	if lines[0] != "Date,Time,Action,Article,Product Name,Quantity Change,User,Project,Reference" {
		t.Fatalf("başlık satırı yanlış: %s", lines[0])
	}
}

func TestBuildCSVProjectSentinel(t *testing.T) {
	data, err := BuildCSV(sampleEntries())
	if err != nil {
		t.Fatalf("csv: %v", err)
	}

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if !strings.Contains(lines[1], "N/A") {
		t.Fatalf("projesiz kayıt 'N/A' içermeli: %s", lines[1])
	}
	if strings.Contains(lines[2], "N/A") {
		t.Fatalf("projeli kayıt 'N/A' içermemeli: %s", lines[2])
	}
}

func TestBuildCSVQuotesCommas(t *testing.T) {
	data, err := BuildCSV(sampleEntries())
	if err != nil {
		t.Fatalf("csv: %v", err)
	}

	// Virgüllü ürün adı tırnaklanmalı
	if !strings.Contains(string(data), `"Divider, Office 1800x900"`) {
		t.Fatalf("virgüllü alan tırnaklanmamış:\n%s", data)
	}
}

func TestBuildCSVQuantityFormatting(t *testing.T) {
	data, err := BuildCSV(sampleEntries())
	if err != nil {
		t.Fatalf("csv: %v", err)
	}

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if !strings.Contains(lines[1], ",75,") {
		t.Fatalf("tam sayı miktar ondalıksız yazılmalı: %s", lines[1])
	}
	if !strings.Contains(lines[2], ",-8,") {
		t.Fatalf("negatif değişim işaretli yazılmalı: %s", lines[2])
	}
}

func TestBuildXLSXRows(t *testing.T) {
	f, err := BuildXLSX(sampleEntries())
	if err != nil {
		t.Fatalf("xlsx: %v", err)
	}

	rows, err := f.GetRows("History")
	if err != nil {
		t.Fatalf("rows: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("3 satır bekleniyordu, geldi: %d", len(rows))
	}
	if rows[0][0] != "Date" || rows[0][8] != "Reference" {
		t.Fatalf("başlık satırı yanlış: %v", rows[0])
	}
	if rows[1][3] != "PNL-001" {
		t.Fatalf("ilk kayıt article yanlış: %v", rows[1])
	}
	if rows[2][7] != "Warehouse Expansion" {
		t.Fatalf("proje kolonu yanlış: %v", rows[2])
	}
}

func TestReferenceFormat(t *testing.T) {
	ref := Reference("EXP", 7)
	year := time.Now().Format("2006")
	want := "EXP-" + year + "-007"
	if ref != want {
		t.Fatalf("referans %q olmalıydı, geldi: %q", want, ref)
	}
}
