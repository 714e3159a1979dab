package domain

import "strings"

// Column field names. These are the document fields a column sorts on.
const (
	FieldFileType = "fileType"
	FieldFilename = "filename"
	FieldFileSize = "fileSize"
)

// Column describes one column of the document list and its sort state.
type Column struct {
	// Key identifies the column in SortBy calls.
	Key string

	// Name is the display name.
	Name string

	// FieldName is the document field the column compares on.
	FieldName string

	// Descending is the current direction toggle.
	Descending bool

	// Sorted is true for the active sort column.
	Sorted bool
}

// DefaultColumns returns the columns of a fresh listing. No column is active.
func DefaultColumns() []Column {
	return []Column{
		{Key: "type", Name: "File Type", FieldName: FieldFileType, Descending: true},
		{Key: "name", Name: "Name", FieldName: FieldFilename, Descending: true},
		{Key: "size", Name: "File Size", FieldName: FieldFileSize, Descending: true},
	}
}

// Matches reports whether key names this column, either by key or by field name.
func (c Column) Matches(key string) bool {
	return strings.EqualFold(c.Key, key) || strings.EqualFold(c.FieldName, key)
}

// Compare orders two documents on the column's field.
// It returns a negative number when a < b, zero when equal, positive otherwise.
// Unknown fields compare equal.
func (c Column) Compare(a, b Document) int {
	switch c.FieldName {
	case FieldFilename:
		return strings.Compare(a.Filename, b.Filename)
	case FieldFileType:
		return strings.Compare(a.FileType(), b.FileType())
	case FieldFileSize:
		switch {
		case a.FileSize < b.FileSize:
			return -1
		case a.FileSize > b.FileSize:
			return 1
		}
		return 0
	default:
		return 0
	}
}

// Sortable reports whether the column has a comparable field.
func (c Column) Sortable() bool {
	switch c.FieldName {
	case FieldFilename, FieldFileType, FieldFileSize:
		return true
	default:
		return false
	}
}
