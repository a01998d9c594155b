package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMerge_InnerAndLeft(t *testing.T) {
	left := Table{Columns: []string{"k", "a"}, Rows: []Row{
		{"k": "1", "a": "x1"},
		{"k": "2", "a": "x2"},
		{"a": "x3"},
	}}
	right := Table{Columns: []string{"k", "b"}, Rows: []Row{
		{"k": "2", "b": "y2"},
		{"k": "1", "b": "y1"},
		{"k": "1", "b": "y1b"},
		{"b": "ymissing"},
	}}

	inner, err := Merge(left, right, []string{"k"}, InnerJoin)
	require.NoError(t, err)
	assert.Equal(t, []string{"k", "a", "b"}, inner.Columns)
	require.Len(t, inner.Rows, 4)
	assert.Equal(t, Row{"k": "1", "a": "x1", "b": "y1"}, inner.Rows[0])
	assert.Equal(t, Row{"k": "1", "a": "x1", "b": "y1b"}, inner.Rows[1])
	assert.Equal(t, Row{"k": "2", "a": "x2", "b": "y2"}, inner.Rows[2])
	assert.Equal(t, Row{"a": "x3", "b": "ymissing"}, inner.Rows[3], "missing keys match each other")

	right.Rows = right.Rows[:1]
	leftJoined, err := Merge(left, right, []string{"k"}, LeftJoin)
	require.NoError(t, err)
	require.Len(t, leftJoined.Rows, 3)
	_, ok := leftJoined.Rows[0]["b"]
	assert.False(t, ok, "unmatched left rows keep missing right values")
	assert.Equal(t, "y2", leftJoined.Rows[1]["b"])
}

func TestMerge_EmptyStringIsNotMissing(t *testing.T) {
	left := Table{Columns: []string{"k"}, Rows: []Row{{"k": ""}}}
	right := Table{Columns: []string{"k", "v"}, Rows: []Row{{"v": "1"}}}

	out, err := Merge(left, right, []string{"k"}, InnerJoin)
	require.NoError(t, err)
	assert.Empty(t, out.Rows)
}

func TestMerge_Errors(t *testing.T) {
	left := Table{Columns: []string{"k", "a"}}
	right := Table{Columns: []string{"k", "a"}}

	_, err := Merge(left, right, []string{"k"}, InnerJoin)
	assert.Error(t, err, "overlapping value columns")

	_, err = Merge(left, Table{Columns: []string{"z"}}, []string{"k"}, InnerJoin)
	assert.Error(t, err, "key missing on the right")

	_, err = Merge(left, right, []string{"k"}, JoinType("outer"))
	assert.Error(t, err)
}

func TestMelt_OrdersByValueColumnThenRow(t *testing.T) {
	wide := Table{Columns: []string{"id", "a_1", "a_2"}, Rows: []Row{
		{"id": "r1", "a_1": "1", "a_2": "2"},
		{"id": "r2", "a_1": "3"},
	}}

	long := Melt(wide, []string{"id"}, []string{"a_1", "a_2"}, "var", "val")
	assert.Equal(t, []string{"id", "var", "val"}, long.Columns)
	require.Len(t, long.Rows, 4)
	assert.Equal(t, Row{"id": "r1", "var": "a_1", "val": "1"}, long.Rows[0])
	assert.Equal(t, Row{"id": "r2", "var": "a_1", "val": "3"}, long.Rows[1])
	assert.Equal(t, Row{"id": "r1", "var": "a_2", "val": "2"}, long.Rows[2])
	assert.Equal(t, Row{"id": "r2", "var": "a_2"}, long.Rows[3])
}
