package dataset

import (
	"fmt"
	"strings"
)

// JoinType defines the type of merge/join operation
type JoinType string

const (
	InnerJoin JoinType = "inner" // INNER JOIN - matching keys only
	LeftJoin  JoinType = "left"  // LEFT JOIN - all from left, matching from right
)

// Merge joins right onto left on the key columns. Missing key values match
// each other, duplicate keys produce every pairing, and output rows follow
// the order of left, then of right within one key.
func Merge(left, right Table, on []string, how JoinType) (Table, error) {
	if how != InnerJoin && how != LeftJoin {
		return Table{}, fmt.Errorf("unsupported join type: %s", how)
	}

	keys := make(map[string]bool, len(on))
	for _, k := range on {
		if !left.HasColumn(k) || !right.HasColumn(k) {
			return Table{}, fmt.Errorf("merge key %q missing from one side", k)
		}
		keys[k] = true
	}

	columns := append([]string(nil), left.Columns...)
	var rightOnly []string
	for _, c := range right.Columns {
		if keys[c] {
			continue
		}
		if left.HasColumn(c) {
			return Table{}, fmt.Errorf("column %q exists on both sides of the merge", c)
		}
		rightOnly = append(rightOnly, c)
		columns = append(columns, c)
	}

	index := make(map[string][]Row, len(right.Rows))
	for _, r := range right.Rows {
		k := joinKey(r, on)
		index[k] = append(index[k], r)
	}

	out := Table{Columns: columns, Rows: make([]Row, 0, len(left.Rows))}
	for _, l := range left.Rows {
		matches := index[joinKey(l, on)]
		if len(matches) == 0 {
			if how == LeftJoin {
				out.Rows = append(out.Rows, l.copyColumns(left.Columns))
			}
			continue
		}
		for _, r := range matches {
			row := l.copyColumns(left.Columns)
			for _, c := range rightOnly {
				if v, ok := r[c]; ok {
					row[c] = v
				}
			}
			out.Rows = append(out.Rows, row)
		}
	}
	return out, nil
}

// joinKey encodes the key columns of a row, distinguishing missing from empty
func joinKey(r Row, on []string) string {
	var b strings.Builder
	for i, k := range on {
		if i > 0 {
			b.WriteByte(0x1f)
		}
		if v, ok := r[k]; ok {
			b.WriteByte(0x01)
			b.WriteString(v)
		} else {
			b.WriteByte(0x00)
		}
	}
	return b.String()
}
