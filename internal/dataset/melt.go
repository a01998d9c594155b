package dataset

// Melt un-pivots valueVars into long rows. Each output row carries the idVars
// of its source row, the source column name under varName and the cell under
// valueName. Rows are emitted per value column, then per source row.
func Melt(t Table, idVars, valueVars []string, varName, valueName string) Table {
	columns := make([]string, 0, len(idVars)+2)
	columns = append(columns, idVars...)
	columns = append(columns, varName, valueName)

	out := Table{Columns: columns, Rows: make([]Row, 0, len(t.Rows)*len(valueVars))}
	for _, variable := range valueVars {
		for _, src := range t.Rows {
			row := src.copyColumns(idVars)
			row[varName] = variable
			if v, ok := src[variable]; ok {
				row[valueName] = v
			}
			out.Rows = append(out.Rows, row)
		}
	}
	return out
}

// MapColumn rewrites a column in place; missing values stay missing
func (t Table) MapColumn(column string, fn func(string) string) {
	for _, r := range t.Rows {
		if v, ok := r[column]; ok {
			r[column] = fn(v)
		}
	}
}

// DeriveColumn sets target from source on every row that has source
func (t *Table) DeriveColumn(source, target string, fn func(string) string) {
	for _, r := range t.Rows {
		if v, ok := r[source]; ok {
			r[target] = fn(v)
		}
	}
	if !t.HasColumn(target) {
		t.Columns = append(t.Columns, target)
	}
}

// DropColumn removes a column from the table and its rows
func (t *Table) DropColumn(column string) {
	for _, r := range t.Rows {
		delete(r, column)
	}
	kept := t.Columns[:0:0]
	for _, c := range t.Columns {
		if c != column {
			kept = append(kept, c)
		}
	}
	t.Columns = kept
}
