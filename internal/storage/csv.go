package storage

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"polyscope/internal/model"
)

// CSVStorage writes event rows to a CSV file with a fixed header. The file
// is replaced on each write: one artifact per run.
type CSVStorage struct {
	path string
	mu   sync.Mutex
}

func NewCSVStorage(path string) *CSVStorage {
	return &CSVStorage{path: path}
}

func (s *CSVStorage) PutEventRows(_ context.Context, rows []model.EventRow) error {
	dir := filepath.Dir(s.path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := os.Create(s.path)
	if err != nil {
		return fmt.Errorf("open output file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(columns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, row := range rows {
		if err := writer.Write(rowStrings(row)); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush output: %w", err)
	}
	return nil
}
