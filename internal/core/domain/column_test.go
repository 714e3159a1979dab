package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultColumns(t *testing.T) {
	cols := DefaultColumns()

	assert.Len(t, cols, 3)
	for _, c := range cols {
		assert.False(t, c.Sorted, "column %s should not be active", c.Key)
		assert.True(t, c.Sortable())
	}
}

func TestColumn_Matches(t *testing.T) {
	col := Column{Key: "size", FieldName: FieldFileSize}

	assert.True(t, col.Matches("size"))
	assert.True(t, col.Matches("fileSize"))
	assert.True(t, col.Matches("FILESIZE"))
	assert.False(t, col.Matches("name"))
}

func TestColumn_Compare(t *testing.T) {
	a := Document{Filename: "a.txt", FileSize: 1000}
	b := Document{Filename: "b.pdf", FileSize: 2000000}

	tests := []struct {
		field    string
		expected int
	}{
		{FieldFilename, -1},
		{FieldFileSize, -1},
		{FieldFileType, 1},
		{"download", 0},
	}

	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			col := Column{FieldName: tt.field}
			assert.Equal(t, tt.expected, col.Compare(a, b))
			assert.Equal(t, -tt.expected, col.Compare(b, a))
		})
	}
}

func TestColumn_Sortable(t *testing.T) {
	assert.False(t, Column{Key: "download", FieldName: "download"}.Sortable())
}

func TestListState_ActiveColumn(t *testing.T) {
	state := ListState{Columns: DefaultColumns()}
	_, ok := state.ActiveColumn()
	assert.False(t, ok)

	state.Columns[2].Sorted = true
	col, ok := state.ActiveColumn()
	assert.True(t, ok)
	assert.Equal(t, "size", col.Key)
}

func TestListState_IsSelected(t *testing.T) {
	state := ListState{Selected: map[string]bool{"a.txt": true}}
	assert.True(t, state.IsSelected("a.txt"))
	assert.False(t, state.IsSelected("b.pdf"))
}
