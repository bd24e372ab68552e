package localstorage

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"thumbcheck/internal/core/domain"
)

// LocalStorage implements ports.ReportWriter for the local filesystem.
type LocalStorage struct {
	BaseDir string
	logger  *log.Logger
}

// NewLocalStorage creates a new LocalStorage instance.
// Relative report paths are resolved against baseDir.
func NewLocalStorage(baseDir string, logger *log.Logger) *LocalStorage {
	return &LocalStorage{BaseDir: baseDir, logger: logger}
}

// ReportPath returns the filesystem path a report name resolves to.
func (s *LocalStorage) ReportPath(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(s.BaseDir, name)
}

// WriteReport writes a header row followed by one CSV row per report row.
// The file is replaced atomically; nothing is written when rows is empty.
func (s *LocalStorage) WriteReport(ctx context.Context, name string, rows []domain.ReportRow) (int, error) {
	if len(rows) == 0 {
		s.logger.Println("No video data to write.")
		return 0, nil
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	path := s.ReportPath(name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return 0, fmt.Errorf("failed to create report directory: %w", err)
	}

	tmp := path + ".tmp"
	file, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return 0, fmt.Errorf("failed to create report file %s: %w", tmp, err)
	}

	if err := writeCSV(file, rows); err != nil {
		file.Close()
		os.Remove(tmp)
		return 0, err
	}
	if err := file.Close(); err != nil {
		os.Remove(tmp)
		return 0, fmt.Errorf("failed to close report file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return 0, fmt.Errorf("failed to move report into place: %w", err)
	}

	return len(rows), nil
}

// writeCSV writes excel-dialect CSV: CRLF row endings, fields quoted only
// when they contain the delimiter, a quote or a line break.
func writeCSV(file *os.File, rows []domain.ReportRow) error {
	w := bufio.NewWriter(file)
	if err := writeRecord(w, domain.ReportHeader); err != nil {
		return fmt.Errorf("failed to write report header: %w", err)
	}
	for _, row := range rows {
		if err := writeRecord(w, row.Fields()); err != nil {
			return fmt.Errorf("failed to write report row: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to flush report: %w", err)
	}
	return nil
}

func writeRecord(w *bufio.Writer, fields []string) error {
	for i, field := range fields {
		if i > 0 {
			w.WriteByte(',')
		}
		if strings.ContainsAny(field, ",\"\r\n") {
			w.WriteByte('"')
			w.WriteString(strings.ReplaceAll(field, `"`, `""`))
			w.WriteByte('"')
		} else {
			w.WriteString(field)
		}
	}
	_, err := w.WriteString("\r\n")
	return err
}
