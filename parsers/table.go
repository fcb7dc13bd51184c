package parsers

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// readRows decodes f into rows of cells. limit > 0 stops after that many
// rows. Spreadsheet cells come back as raw values so dates stay serial
// numbers instead of locale formatted strings.
func readRows(f RawFile, limit int) ([][]string, error) {
	if !f.Supported() {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, f.Name)
	}
	if len(f.Data) == 0 {
		return nil, fmt.Errorf("%w: %s is empty", ErrNoTradesFound, f.Name)
	}
	if f.ext() == ".xlsx" {
		return readXLSX(f.Data, limit)
	}
	return readCSV(f.Data, limit)
}

func readCSV(data []byte, limit int) ([][]string, error) {
	r := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(data, utf8BOM)))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	var rows [][]string
	for limit <= 0 || len(rows) < limit {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}
		rows = append(rows, rec)
	}
	return rows, nil
}

func readXLSX(data []byte, limit int) ([][]string, error) {
	xl, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer xl.Close()

	sheets := xl.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil
	}
	it, err := xl.Rows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	defer it.Close()

	var rows [][]string
	for (limit <= 0 || len(rows) < limit) && it.Next() {
		row, err := it.Columns(excelize.Options{RawCellValue: true})
		if err != nil {
			return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
		}
		rows = append(rows, row)
	}
	if err := it.Error(); err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	return rows, nil
}

// table is a header row plus the data rows beneath it.
type table struct {
	header []string
	index  map[string]int
	rows   [][]string
}

func newTable(header []string, rows [][]string) *table {
	t := &table{
		header: dedupeHeader(header),
		rows:   rows,
	}
	t.index = make(map[string]int, len(t.header))
	for i, name := range t.header {
		t.index[name] = i
	}
	return t
}

// dedupeHeader trims header names, names blank columns "Unnamed: N" and
// suffixes repeats ".1", ".2", ... so "Time, Price, Time, Price" becomes
// "Time, Price, Time.1, Price.1".
func dedupeHeader(header []string) []string {
	out := make([]string, len(header))
	seen := make(map[string]int, len(header))
	for i, h := range header {
		name := strings.TrimSpace(h)
		if name == "" {
			name = "Unnamed: " + strconv.Itoa(i)
		}
		base := name
		for {
			n, dup := seen[name]
			if !dup {
				break
			}
			seen[name] = n + 1
			name = base + "." + strconv.Itoa(n+1)
		}
		seen[name] = 0
		out[i] = name
	}
	return out
}

// lookup returns the column of the first alias present.
func (t *table) lookup(aliases []string) (int, bool) {
	for _, a := range aliases {
		if i, ok := t.index[a]; ok {
			return i, true
		}
	}
	return -1, false
}

func (t *table) require(field string, aliases []string) (int, error) {
	if i, ok := t.lookup(aliases); ok {
		return i, nil
	}
	return -1, &MissingColumnError{
		Field:     field,
		Aliases:   aliases,
		Available: t.header,
	}
}

// cell returns the trimmed value at column i, or "" when the row is short or
// the column is absent.
func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func trimmed(row []string) []string {
	out := make([]string, 0, len(row))
	for _, v := range row {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
