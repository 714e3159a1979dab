package driving

import (
	"context"

	"github.com/custodia-labs/docdeck-cli/internal/core/domain"
)

// DocumentList is the controller of one document listing session.
// It owns the fetched collection, the filter, the sort and the selection.
// All methods are safe for concurrent use.
type DocumentList interface {
	// Load fetches the owner's documents, replacing the collection and
	// clearing the filter. Failures wrap domain.ErrFetchFailed.
	Load(ctx context.Context, ownerID string) ([]domain.Document, error)

	// SetFilter restricts the visible items to filenames containing
	// substring, ignoring case. An empty substring shows everything.
	SetFilter(substring string)

	// SortBy activates or flips the named column.
	SortBy(columnKey string) error

	// Select adds the given filenames to the selection.
	Select(keys ...string)

	// Toggle flips the selection of one filename.
	Toggle(key string)

	// ClearSelection empties the selection.
	ClearSelection()

	// SelectAll selects every visible document, or clears the selection.
	SelectAll(selected bool)

	// SelectionSummary describes the current selection.
	SelectionSummary() domain.SelectionSummary

	// DeleteSelected deletes the selected documents in one batch.
	// Failures wrap domain.ErrDeleteFailed and change nothing locally.
	DeleteSelected(ctx context.Context) error

	// Reload triggers a server-side reload. Failures wrap domain.ErrReloadFailed.
	Reload(ctx context.Context, ownerID string) error

	// Close discards the collection, filter and selection.
	Close()

	// State returns a snapshot of the view model.
	State() domain.ListState
}

// ExplorerService opens document listing sessions.
type ExplorerService interface {
	// NewList returns a fresh controller bound to the configured store.
	NewList() DocumentList
}
