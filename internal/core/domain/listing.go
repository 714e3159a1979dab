package domain

// SelectionSummary describes the current selection for display.
// Filename is only set when exactly one document is selected.
type SelectionSummary struct {
	Count    int
	Filename string
}

// Announcement is a status message for the presentation layer.
// MessageID names a localised message and Data holds its template values.
type Announcement struct {
	MessageID string
	Data      map[string]any
}

// Announcement message identifiers.
const (
	AnnounceItemsAfterFilter = "itemsAfterFilter"
	AnnounceSortedAscending  = "sortedAscending"
	AnnounceSortedDescending = "sortedDescending"
)

// ListState is the derived view model of a document listing.
// It is a snapshot; mutating it does not affect the listing.
type ListState struct {
	// Items is the filtered then sorted view of the full collection.
	Items []Document

	// Columns holds every column with its sort state.
	Columns []Column

	// Filter is the current filename substring.
	Filter string

	// Selected holds the selected filenames in no particular order.
	Selected map[string]bool

	// Summary describes the selection.
	Summary SelectionSummary

	// Total is the size of the full collection.
	Total int

	// Reloading is true while a reload request is in flight.
	Reloading bool

	// Deleting is true while a delete request is in flight.
	Deleting bool

	// ReadOnly is true when delete and reload are disabled.
	ReadOnly bool

	// Announcement is the most recent status message, if any.
	Announcement *Announcement
}

// ActiveColumn returns the active sort column, if any.
func (s ListState) ActiveColumn() (Column, bool) {
	for _, c := range s.Columns {
		if c.Sorted {
			return c, true
		}
	}
	return Column{}, false
}

// IsSelected reports whether the filename is selected.
func (s ListState) IsSelected(filename string) bool {
	return s.Selected[filename]
}
