// Package list provides list display components for the TUI.
package list

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/custodia-labs/docdeck-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/docdeck-cli/internal/core/domain"
)

const (
	arrowAscending  = "▲"
	arrowDescending = "▼"
	checkedMark     = "[x]"
	uncheckedMark   = "[ ]"

	// reservedLines covers the table borders and the header row.
	reservedLines = 4
)

// DocumentTable displays documents in a navigable table with a selection
// column and sortable headings.
type DocumentTable struct {
	styles   *styles.Styles
	items    []domain.Document
	columns  []domain.Column
	headers  []string
	selected map[string]bool
	empty    string
	cursor   int
	offset   int
	width    int
	height   int
}

// NewDocumentTable creates a new document table component.
func NewDocumentTable(s *styles.Styles) *DocumentTable {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &DocumentTable{
		styles:   s,
		selected: map[string]bool{},
		empty:    "No documents",
		width:    80,
		height:   10,
	}
}

// Init initialises the table.
func (t *DocumentTable) Init() tea.Cmd {
	return nil
}

// Update handles cursor movement.
func (t *DocumentTable) Update(msg tea.Msg) (*DocumentTable, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			t.MoveUp()
		case "down", "j":
			t.MoveDown()
		case "home", "g":
			t.cursor = 0
			t.adjustScroll()
		case "end", "G":
			t.cursor = max(len(t.items)-1, 0)
			t.adjustScroll()
		}
	}
	return t, nil
}

// SetState replaces the rows, columns and selection from a listing
// snapshot. headers holds one localised heading per column. The cursor
// stays on the same index, clamped to the new row count.
func (t *DocumentTable) SetState(state domain.ListState, headers []string) {
	t.items = state.Items
	t.columns = state.Columns
	t.headers = headers
	t.selected = state.Selected
	if t.selected == nil {
		t.selected = map[string]bool{}
	}
	if t.cursor >= len(t.items) {
		t.cursor = max(len(t.items)-1, 0)
	}
	t.adjustScroll()
}

// SetEmptyText sets the text shown when there are no rows.
func (t *DocumentTable) SetEmptyText(text string) {
	t.empty = text
}

// View renders the table.
func (t *DocumentTable) View() string {
	if len(t.items) == 0 {
		return t.styles.Muted.Render(t.empty)
	}

	end := min(t.offset+t.visibleRows(), len(t.items))
	visible := t.items[t.offset:end]

	rows := make([][]string, 0, len(visible))
	for _, doc := range visible {
		row := make([]string, 0, len(t.columns)+1)
		row = append(row, t.mark(doc))
		for _, col := range t.columns {
			row = append(row, cellValue(col, doc))
		}
		rows = append(rows, row)
	}

	tbl := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(t.styles.Theme().Border)).
		Headers(t.renderHeaders()...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			return t.cellStyle(visible, row, col).Padding(0, 1)
		})
	if t.width > 0 {
		tbl = tbl.Width(t.width)
	}
	return tbl.Render()
}

// cellStyle picks the style of a cell. Column 0 is the checkbox column.
func (t *DocumentTable) cellStyle(visible []domain.Document, row, col int) lipgloss.Style {
	if row == table.HeaderRow {
		if col > 0 && col <= len(t.columns) && t.columns[col-1].Sorted {
			return t.styles.ActiveHeader
		}
		return t.styles.Header
	}
	if row < 0 || row >= len(visible) {
		return t.styles.Normal
	}
	switch {
	case t.offset+row == t.cursor:
		return t.styles.Selected
	case t.selected[visible[row].Key()]:
		return t.styles.Checked
	default:
		return t.styles.Normal
	}
}

func (t *DocumentTable) renderHeaders() []string {
	headers := make([]string, 0, len(t.columns)+1)
	headers = append(headers, "")
	for i, col := range t.columns {
		name := col.Name
		if i < len(t.headers) && t.headers[i] != "" {
			name = t.headers[i]
		}
		if col.Sorted {
			if col.Descending {
				name += " " + arrowDescending
			} else {
				name += " " + arrowAscending
			}
		}
		headers = append(headers, name)
	}
	return headers
}

func (t *DocumentTable) mark(doc domain.Document) string {
	if t.selected[doc.Key()] {
		return checkedMark
	}
	return uncheckedMark
}

func cellValue(col domain.Column, doc domain.Document) string {
	switch col.FieldName {
	case domain.FieldFileType:
		return doc.FileType()
	case domain.FieldFilename:
		return doc.Filename
	case domain.FieldFileSize:
		return domain.FormatFileSize(doc.FileSize)
	default:
		return ""
	}
}

// Current returns the document under the cursor.
func (t *DocumentTable) Current() (domain.Document, bool) {
	if t.cursor < 0 || t.cursor >= len(t.items) {
		return domain.Document{}, false
	}
	return t.items[t.cursor], true
}

// Cursor returns the cursor index.
func (t *DocumentTable) Cursor() int {
	return t.cursor
}

// SetCursor moves the cursor to index if it is in range.
func (t *DocumentTable) SetCursor(index int) {
	if index >= 0 && index < len(t.items) {
		t.cursor = index
		t.adjustScroll()
	}
}

// MoveUp moves the cursor up.
func (t *DocumentTable) MoveUp() {
	if t.cursor > 0 {
		t.cursor--
		t.adjustScroll()
	}
}

// MoveDown moves the cursor down.
func (t *DocumentTable) MoveDown() {
	if t.cursor < len(t.items)-1 {
		t.cursor++
		t.adjustScroll()
	}
}

// Offset returns the index of the first visible row.
func (t *DocumentTable) Offset() int {
	return t.offset
}

func (t *DocumentTable) adjustScroll() {
	visible := t.visibleRows()
	if t.cursor < t.offset {
		t.offset = t.cursor
	} else if t.cursor >= t.offset+visible {
		t.offset = t.cursor - visible + 1
	}
	if maxOffset := max(len(t.items)-visible, 0); t.offset > maxOffset {
		t.offset = maxOffset
	}
}

func (t *DocumentTable) visibleRows() int {
	return max(t.height-reservedLines, 1)
}

// SetDimensions sets the component dimensions.
func (t *DocumentTable) SetDimensions(width, height int) {
	t.width = width
	t.height = height
	t.adjustScroll()
}

// Width returns the current width.
func (t *DocumentTable) Width() int {
	return t.width
}

// Height returns the current height.
func (t *DocumentTable) Height() int {
	return t.height
}

// Count returns the number of rows.
func (t *DocumentTable) Count() int {
	return len(t.items)
}

// IsEmpty returns whether the table has no rows.
func (t *DocumentTable) IsEmpty() bool {
	return len(t.items) == 0
}
