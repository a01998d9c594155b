// Package dataset holds the in-memory table operations that turn a wide
// polling-place sheet into long election-result records.
package dataset

import (
	"wahlimport/adapters/excel"
)

// Row is one table row keyed by column name. Absent keys are missing values.
type Row map[string]string

// Table is an ordered set of columns and rows
type Table struct {
	Columns []string
	Rows    []Row
}

// FromExcel wraps a loaded sheet as a table without copying the rows
func FromExcel(data *excel.ExcelData) Table {
	rows := make([]Row, len(data.Rows))
	for i, r := range data.Rows {
		rows[i] = Row(r)
	}
	return Table{Columns: append([]string(nil), data.Headers...), Rows: rows}
}

// HasColumn reports whether the table declares the column
func (t Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// Filter keeps the rows for which keep returns true
func (t Table) Filter(keep func(Row) bool) Table {
	out := Table{Columns: t.Columns, Rows: make([]Row, 0, len(t.Rows))}
	for _, r := range t.Rows {
		if keep(r) {
			out.Rows = append(out.Rows, r)
		}
	}
	return out
}

func (r Row) copyColumns(columns []string) Row {
	out := make(Row, len(columns)+3)
	for _, c := range columns {
		if v, ok := r[c]; ok {
			out[c] = v
		}
	}
	return out
}
