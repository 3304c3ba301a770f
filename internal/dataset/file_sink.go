package dataset

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/nao1215/casecrawl/internal/model"
)

// Output formats.
const (
	FormatCSV  = "csv"
	FormatJSON = "json"
)

// FileName returns the dataset file name for the inclusive year range.
// The extension is the lower-cased format.
//
//	FileName(2020, 2025, "csv") == "elitigation_cases_2020_to_2025.csv"
func FileName(startYear, endYear int, format string) string {
	return fmt.Sprintf("elitigation_cases_%d_to_%d.%s", startYear, endYear, strings.ToLower(format))
}

// ValidFormat reports whether format is a supported output format.
func ValidFormat(format string) bool {
	switch strings.ToLower(format) {
	case FormatCSV, FormatJSON:
		return true
	default:
		return false
	}
}

// FileSink writes the dataset to a single file.
type FileSink struct {
	path   string
	format string
}

// NewFileSink creates a sink writing path in format.
func NewFileSink(path, format string) (*FileSink, error) {
	format = strings.ToLower(format)
	if !ValidFormat(format) {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	return &FileSink{path: path, format: format}, nil
}

// Name returns the sink name.
func (s *FileSink) Name() string {
	return s.format + " file " + s.path
}

// Path returns the output file path.
func (s *FileSink) Path() string {
	return s.path
}

// Write creates the output file, and any missing parent directories, and
// writes records to it. An existing file is overwritten.
func (s *FileSink) Write(ctx context.Context, records []model.CaseRecord) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644) //nolint:gosec // dataset is meant to be shared
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close output file: %w", closeErr)
		}
	}()

	switch s.format {
	case FormatJSON:
		return WriteJSON(f, records)
	default:
		return WriteCSV(f, records)
	}
}

// WriteCSV writes a header row and one row per record. Missing catchwords
// are written as empty cells.
func WriteCSV(w io.Writer, records []model.CaseRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(model.Columns); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, r := range records {
		if err := cw.Write(r.Row()); err != nil {
			return fmt.Errorf("failed to write CSV row for %s: %w", r.CaseIdentifier, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}
	return nil
}

// WriteJSON writes records as an indented JSON array. Missing catchwords
// are written as null.
func WriteJSON(w io.Writer, records []model.CaseRecord) error {
	if records == nil {
		records = []model.CaseRecord{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}
