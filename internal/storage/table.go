package storage

import (
	"fmt"
	"strings"
)

// Table is one model sheet after the header row has been located.
// Rows are indexed from 0 starting at the first row below the header.
type Table struct {
	Columns []string `json:"columns"`
	Rows    []Row    `json:"-"`

	index map[string]int
}

type Row struct {
	Index int      `json:"index"`
	Cells []string `json:"cells"`
}

func NewTable(columns []string, records [][]string) *Table {
	t := &Table{
		Columns: make([]string, len(columns)),
		Rows:    make([]Row, 0, len(records)),
		index:   make(map[string]int, len(columns)),
	}

	for i, c := range columns {
		name := uniqueName(strings.TrimSpace(c), i, t.index)
		t.Columns[i] = name
		t.index[name] = i
	}

	for i, rec := range records {
		cells := make([]string, len(rec))
		copy(cells, rec)
		t.Rows = append(t.Rows, Row{Index: i, Cells: cells})
	}

	return t
}

// uniqueName names a blank header "Unnamed: <i>" and suffixes repeated
// headers with ".1", ".2", ... so every column keeps its own position.
func uniqueName(name string, i int, taken map[string]int) string {
	if name == "" {
		name = fmt.Sprintf("Unnamed: %d", i)
	}

	candidate := name
	for n := 1; ; n++ {
		if _, ok := taken[candidate]; !ok {
			return candidate
		}
		candidate = fmt.Sprintf("%s.%d", name, n)
	}
}

func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[strings.TrimSpace(name)]
	return ok
}

func (t *Table) ColumnIndex(name string) (int, bool) {
	i, ok := t.index[strings.TrimSpace(name)]
	return i, ok
}

// Cell returns the raw text of a row under the named column, or "" when
// either the column or the cell is missing.
func (t *Table) Cell(row int, column string) string {
	if row < 0 || row >= len(t.Rows) {
		return ""
	}
	i, ok := t.index[strings.TrimSpace(column)]
	if !ok {
		return ""
	}
	return t.Rows[row].At(i)
}

// Description is the first column of the row.
func (t *Table) Description(row int) string {
	if row < 0 || row >= len(t.Rows) {
		return ""
	}
	return strings.TrimSpace(t.Rows[row].At(0))
}

// PartNumber is the second column of the row.
func (t *Table) PartNumber(row int) string {
	if row < 0 || row >= len(t.Rows) {
		return ""
	}
	return strings.TrimSpace(t.Rows[row].At(1))
}

func (r Row) At(i int) string {
	if i >= 0 && i < len(r.Cells) {
		return r.Cells[i]
	}
	return ""
}
