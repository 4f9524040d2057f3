// Package listimport renames files from a list of new names kept in a
// spreadsheet (.xlsx) or CSV column.
package listimport

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/harrison/batchkit/internal/models"
	"github.com/harrison/batchkit/internal/naming"
)

var (
	// ErrColumnNotFound is returned when no header cell matches the column.
	ErrColumnNotFound = errors.New("column not found")
	// ErrUnsupportedFile is returned for files other than .xlsx and .csv.
	ErrUnsupportedFile = errors.New("unsupported list file")
)

// Options selects where the names are read from.
type Options struct {
	Sheet  string // Worksheet name; the active sheet when empty (xlsx only)
	Column string // Header of the name column; the first column when empty
}

// ReadNames reads the new names below the header row of the selected
// column. Cells are trimmed; blank cells are kept so that row i still
// lines up with input i.
func ReadNames(path string, opts Options) ([]string, error) {
	var (
		rows [][]string
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		rows, err = readXLSX(path, opts.Sheet)
	case ".csv":
		rows, err = readCSV(path)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFile, filepath.Base(path))
	}
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s: no header row", filepath.Base(path))
	}

	col, err := columnIndex(rows[0], opts.Column)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}

	names := make([]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		cell := ""
		if col < len(row) {
			cell = strings.TrimSpace(row[col])
		}
		names = append(names, cell)
	}
	// trailing blank rows carry no names
	for len(names) > 0 && names[len(names)-1] == "" {
		names = names[:len(names)-1]
	}
	return names, nil
}

func columnIndex(header []string, column string) (int, error) {
	if column == "" {
		if len(header) == 0 {
			return 0, fmt.Errorf("%w: empty header row", ErrColumnNotFound)
		}
		return 0, nil
	}
	for i, h := range header {
		if strings.TrimSpace(h) == column {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrColumnNotFound, column)
}

func readXLSX(path, sheet string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheet = f.GetSheetName(f.GetActiveSheetIndex())
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	return rows, nil
}

func readCSV(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	var rows [][]string
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}
		rows = append(rows, rec)
	}
	if len(rows) > 0 && len(rows[0]) > 0 {
		rows[0][0] = strings.TrimPrefix(rows[0][0], "\ufeff")
	}
	return rows, nil
}

// Apply maps names[i] to newNames[i]. Inputs past the end of the list, or
// facing a blank cell, keep their name. A new name without an extension
// takes the original one.
func Apply(names, newNames []string) []models.Row {
	rows := make([]models.Row, len(names))
	for i, name := range names {
		proposed := name
		if i < len(newNames) && newNames[i] != "" {
			proposed = newNames[i]
			if _, ext := naming.SplitExtension(proposed); ext == "" {
				_, origExt := naming.SplitExtension(name)
				proposed += origExt
			}
		}
		rows[i] = models.Row{Original: name, Proposed: proposed, Valid: true}
	}
	return rows
}

// Engine renames from a fixed list of new names.
type Engine struct {
	Source   string // Where the names came from, for descriptions
	NewNames []string
}

// NewEngine reads the list at path and returns an engine over it.
func NewEngine(path string, opts Options) (*Engine, error) {
	names, err := ReadNames(path, opts)
	if err != nil {
		return nil, err
	}
	src := filepath.Base(path)
	if opts.Column != "" {
		src += fmt.Sprintf(" column %q", opts.Column)
	}
	return &Engine{Source: src, NewNames: names}, nil
}

// Kind returns models.KindList.
func (e *Engine) Kind() string { return models.KindList }

// Describe summarises the list source.
func (e *Engine) Describe() string {
	return fmt.Sprintf("names from %s (%d entries)", e.Source, len(e.NewNames))
}

// Run applies the list; the instant is ignored.
func (e *Engine) Run(names []string, _ time.Time) []models.Row {
	return Apply(names, e.NewNames)
}
