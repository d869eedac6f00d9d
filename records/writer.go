package records

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nopeusbotti/nopeusbotti/utils"
)

// Writer appends violations to daily CSV files under one directory.
type Writer struct {
	dir string
}

// NewWriter creates a Writer rooted at dir. The directory is created on the
// first append.
func NewWriter(dir string) *Writer {
	return &Writer{dir: dir}
}

// Append writes the violation to the daily file its timestamp falls on,
// creating the directory and the header row as needed. The file is opened
// and closed per append so a crash loses at most the in-flight row.
func (w *Writer) Append(v Violation) error {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return fmt.Errorf("creating csv directory: %w", err)
	}

	path := filepath.Join(w.dir, utils.LocalDateFromUnixSeconds(v.Timestamp)+".csv")
	_, statErr := os.Stat(path)
	newFile := os.IsNotExist(statErr)

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}

	cw := csv.NewWriter(f)
	if newFile {
		if err := cw.Write(header); err != nil {
			_ = f.Close()
			return fmt.Errorf("writing header: %w", err)
		}
	}
	if err := cw.Write(v.row()); err != nil {
		_ = f.Close()
		return fmt.Errorf("writing record: %w", err)
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		_ = f.Close()
		return fmt.Errorf("flushing %s: %w", path, err)
	}
	return f.Close()
}
