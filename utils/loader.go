package utils

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cast"
	"github.com/xuri/excelize/v2"
	"go.dedis.ch/onet/v3/log"
)

// ErrNoColumn is returned when a requested column is not in the table header.
var ErrNoColumn = errors.New("column not found")

// Table is a header row followed by raw cell values.
type Table struct {
	Header []string
	Rows   [][]string
}

// LoadTable reads a table from a CSV file, or from the first sheet of an .xlsx workbook.
// The first row is the header.
func LoadTable(path string) (*Table, error) {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return loadWorkbook(path)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	t, err := ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// ReadCSV reads a comma separated table. Rows may have differing lengths.
func ReadCSV(r io.Reader) (*Table, error) {
	rd := csv.NewReader(r)
	rd.FieldsPerRecord = -1
	rd.TrimLeadingSpace = true
	records, err := rd.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	return newTable(records)
}

func loadWorkbook(path string) (*Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%s: workbook has no sheets", path)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return newTable(rows)
}

func newTable(records [][]string) (*Table, error) {
	if len(records) == 0 {
		return nil, errors.New("table has no header row")
	}
	header := make([]string, len(records[0]))
	for i, h := range records[0] {
		header[i] = strings.TrimSpace(h)
	}
	return &Table{Header: header, Rows: records[1:]}, nil
}

// Column returns the index of the named header column.
func (t *Table) Column(name string) (int, error) {
	for i, h := range t.Header {
		if h == name {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%q: %w (have %s)", name, ErrNoColumn, strings.Join(t.Header, ", "))
}

// ExtractAgeDistance coerces the two named columns to float64 and keeps only the rows
// where both cells are finite numbers. Blank, non-numeric, NaN or infinite cells drop
// the whole row.
func ExtractAgeDistance(t *Table, ageCol, distCol string) (age, distance []float64, err error) {
	ai, err := t.Column(ageCol)
	if err != nil {
		return nil, nil, err
	}
	di, err := t.Column(distCol)
	if err != nil {
		return nil, nil, err
	}

	age = make([]float64, 0, len(t.Rows))
	distance = make([]float64, 0, len(t.Rows))
	for _, row := range t.Rows {
		a, ok := numericCell(row, ai)
		if !ok {
			continue
		}
		d, ok := numericCell(row, di)
		if !ok {
			continue
		}
		age = append(age, a)
		distance = append(distance, d)
	}

	if dropped := len(t.Rows) - len(age); dropped > 0 {
		log.Lvlf2("Dropped %d of %d rows with missing or non-numeric %q/%q", dropped, len(t.Rows), ageCol, distCol)
	}
	return age, distance, nil
}

func numericCell(row []string, i int) (float64, bool) {
	if i >= len(row) {
		return 0, false
	}
	s := strings.TrimSpace(row[i])
	if s == "" {
		return 0, false
	}
	v, err := cast.ToFloat64E(s)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
