package export

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"artesapos/internal/format"
	"artesapos/internal/models"

	"github.com/xuri/excelize/v2"
)

// CashClosures writes an xlsx report with one row per cash closure and
// returns the file path. The file name carries the report date in the
// shop's timezone.
func CashClosures(dir string, closures []models.CashClosure, loc *time.Location) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("error creating export directory: %v", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Cierres"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return "", fmt.Errorf("error creating sheet: %v", err)
	}
	f.SetActiveSheet(index)

	headers := []string{"ID", "Fecha", "Día", "Total"}
	for col, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		_ = f.SetCellValue(sheetName, cell, header)
	}

	style, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	_ = f.SetCellStyle(sheetName, "A1", "D1", style)

	for row, closure := range closures {
		label := ""
		if l, err := format.ShortDayLabel(closure.Date); err == nil {
			label = l
		}
		values := []any{closure.ID, closure.Date, label, format.Money(closure.Total)}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			_ = f.SetCellValue(sheetName, cell, value)
		}
	}

	_ = f.SetColWidth(sheetName, "A", "A", 22)
	_ = f.SetColWidth(sheetName, "B", "D", 16)
	_ = f.DeleteSheet("Sheet1")

	fileName := fmt.Sprintf("cierres_%s.xlsx", format.DateKey(time.Now(), loc))
	filePath := filepath.Join(dir, fileName)
	if err := f.SaveAs(filePath); err != nil {
		return "", fmt.Errorf("error saving file: %v", err)
	}
	return filePath, nil
}
