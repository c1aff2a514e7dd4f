package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/xuri/excelize/v2"

	"polyscope/internal/model"
)

const sheetName = "Events"

// XlsxStorage writes event rows to a single-sheet spreadsheet.
type XlsxStorage struct {
	path string
	mu   sync.Mutex
}

func NewXlsxStorage(path string) *XlsxStorage {
	return &XlsxStorage{path: path}
}

func (s *XlsxStorage) PutEventRows(_ context.Context, rows []model.EventRow) error {
	dir := filepath.Dir(s.path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	file := excelize.NewFile()
	defer file.Close()

	if err := file.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	header := make([]interface{}, len(columns))
	for i, col := range columns {
		header[i] = col
	}
	if err := file.SetSheetRow(sheetName, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("cell name: %w", err)
		}
		values := rowValues(row)
		if err := file.SetSheetRow(sheetName, cell, &values); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}

	if err := file.SaveAs(s.path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}
