package services

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"sort"
	"strings"
	"sync"

	"github.com/custodia-labs/docdeck-cli/internal/core/domain"
	"github.com/custodia-labs/docdeck-cli/internal/core/ports/driven"
	"github.com/custodia-labs/docdeck-cli/internal/core/ports/driving"
	"github.com/custodia-labs/docdeck-cli/internal/logger"
)

// Ensure DocumentList implements the interface.
var _ driving.DocumentList = (*DocumentList)(nil)

// DocumentList is the controller of one listing session.
//
// The full collection is never reordered; items is re-derived from it
// after every change. The lock is never held across a store call, so
// only one delete and one reload may be in flight at a time.
type DocumentList struct {
	store    driven.DocumentStore
	readOnly bool

	mu           sync.RWMutex
	all          []domain.Document
	items        []domain.Document
	columns      []domain.Column
	filter       string
	selected     map[string]bool
	reloading    bool
	deleting     bool
	announcement *domain.Announcement
}

// NewDocumentList creates an empty listing backed by store.
// A read-only listing refuses DeleteSelected and Reload.
func NewDocumentList(store driven.DocumentStore, readOnly bool) *DocumentList {
	return &DocumentList{
		store:    store,
		readOnly: readOnly,
		columns:  domain.DefaultColumns(),
		selected: make(map[string]bool),
	}
}

// Load fetches the owner's documents and replaces the collection.
func (l *DocumentList) Load(ctx context.Context, ownerID string) ([]domain.Document, error) {
	if l.store == nil {
		return nil, domain.ErrNotImplemented
	}

	logger.Section("Load")
	logger.Debug("fetching documents for owner %q", ownerID)

	docs, err := l.store.FetchDocuments(ctx, ownerID)
	if err != nil {
		logger.Error(err, "fetching documents")
		return nil, fmt.Errorf("%w: %w", domain.ErrFetchFailed, err)
	}
	logger.Debug("fetched %d documents", len(docs))

	l.mu.Lock()
	defer l.mu.Unlock()

	l.all = slices.Clone(docs)
	l.filter = ""
	l.announcement = nil
	l.pruneSelection()
	l.derive()

	return slices.Clone(docs), nil
}

// SetFilter restricts items to filenames containing substring, ignoring case.
func (l *DocumentList) SetFilter(substring string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.filter = substring
	l.derive()
	l.announcement = &domain.Announcement{
		MessageID: domain.AnnounceItemsAfterFilter,
		Data:      map[string]any{"Count": len(l.items)},
	}
}

// SortBy activates the named column or flips it when already active.
// The column may be named by key ("size") or field name ("fileSize").
func (l *DocumentList) SortBy(columnKey string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	idx := slices.IndexFunc(l.columns, func(c domain.Column) bool {
		return c.Matches(columnKey)
	})
	if idx < 0 || !l.columns[idx].Sortable() {
		return fmt.Errorf("%w: %q", domain.ErrUnknownColumn, columnKey)
	}

	for i := range l.columns {
		col := &l.columns[i]
		switch {
		case i != idx:
			col.Sorted = false
			col.Descending = true
		case col.Sorted:
			col.Descending = !col.Descending
		default:
			col.Sorted = true
			col.Descending = false
		}
	}
	l.derive()

	active := l.columns[idx]
	msg := domain.AnnounceSortedAscending
	if active.Descending {
		msg = domain.AnnounceSortedDescending
	}
	l.announcement = &domain.Announcement{
		MessageID: msg,
		Data:      map[string]any{"Column": active.Name, "Key": active.Key},
	}
	logger.Debug("sorted by %s (descending=%t)", active.Key, active.Descending)
	return nil
}

// Select adds filenames to the selection. Unknown filenames are ignored.
func (l *DocumentList) Select(keys ...string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, key := range keys {
		if l.contains(key) {
			l.selected[key] = true
		}
	}
}

// Toggle flips the selection of one filename.
func (l *DocumentList) Toggle(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.selected[key] {
		delete(l.selected, key)
		return
	}
	if l.contains(key) {
		l.selected[key] = true
	}
}

// ClearSelection empties the selection.
func (l *DocumentList) ClearSelection() {
	l.mu.Lock()
	defer l.mu.Unlock()
	clear(l.selected)
}

// SelectAll selects every visible document, or clears the selection.
// Selected documents hidden by the filter stay selected.
func (l *DocumentList) SelectAll(selected bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !selected {
		clear(l.selected)
		return
	}
	for _, d := range l.items {
		l.selected[d.Key()] = true
	}
}

// SelectionSummary describes the current selection.
func (l *DocumentList) SelectionSummary() domain.SelectionSummary {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.summary()
}

// DeleteSelected deletes every selected document in one store call.
// An empty selection is a no-op. On failure nothing changes locally.
func (l *DocumentList) DeleteSelected(ctx context.Context) error {
	if l.readOnly {
		return domain.ErrReadOnly
	}
	if l.store == nil {
		return domain.ErrNotImplemented
	}

	l.mu.Lock()
	if l.deleting {
		l.mu.Unlock()
		return fmt.Errorf("delete: %w", domain.ErrOperationInProgress)
	}
	if len(l.selected) == 0 {
		l.mu.Unlock()
		return nil
	}
	var docs []domain.Document
	for _, d := range l.all {
		if l.selected[d.Key()] {
			docs = append(docs, d)
		}
	}
	l.deleting = true
	l.mu.Unlock()

	logger.Section("Delete")
	logger.Debug("deleting %d documents", len(docs))

	err := l.store.DeleteDocuments(ctx, docs)

	l.mu.Lock()
	defer l.mu.Unlock()
	l.deleting = false

	if err != nil {
		logger.Error(err, "deleting documents")
		return fmt.Errorf("%w: %w", domain.ErrDeleteFailed, err)
	}

	deleted := make(map[string]bool, len(docs))
	for _, d := range docs {
		deleted[d.Key()] = true
	}
	l.all = slices.DeleteFunc(l.all, func(d domain.Document) bool {
		return deleted[d.Key()]
	})
	for key := range deleted {
		delete(l.selected, key)
	}
	l.derive()
	return nil
}

// Reload asks the store to re-process the owner's files.
// The reloading flag is reset whatever the outcome.
func (l *DocumentList) Reload(ctx context.Context, ownerID string) error {
	if l.readOnly {
		return domain.ErrReadOnly
	}
	if l.store == nil {
		return domain.ErrNotImplemented
	}

	l.mu.Lock()
	if l.reloading {
		l.mu.Unlock()
		return fmt.Errorf("reload: %w", domain.ErrOperationInProgress)
	}
	l.reloading = true
	l.mu.Unlock()

	defer func() {
		l.mu.Lock()
		l.reloading = false
		l.mu.Unlock()
	}()

	logger.Section("Reload")
	logger.Debug("reloading files for owner %q", ownerID)

	if err := l.store.Reload(ctx, ownerID); err != nil {
		logger.Error(err, "reloading documents")
		return fmt.Errorf("%w: %w", domain.ErrReloadFailed, err)
	}
	return nil
}

// Close discards the collection, filter and selection.
func (l *DocumentList) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.all = nil
	l.items = nil
	l.filter = ""
	l.announcement = nil
	clear(l.selected)
}

// State returns a snapshot of the view model.
func (l *DocumentList) State() domain.ListState {
	l.mu.RLock()
	defer l.mu.RUnlock()

	state := domain.ListState{
		Items:     slices.Clone(l.items),
		Columns:   slices.Clone(l.columns),
		Filter:    l.filter,
		Selected:  maps.Clone(l.selected),
		Summary:   l.summary(),
		Total:     len(l.all),
		Reloading: l.reloading,
		Deleting:  l.deleting,
		ReadOnly:  l.readOnly,
	}
	if l.announcement != nil {
		a := *l.announcement
		a.Data = maps.Clone(a.Data)
		state.Announcement = &a
	}
	return state
}

// derive rebuilds items from the full collection (caller must hold lock).
func (l *DocumentList) derive() {
	needle := strings.ToLower(l.filter)
	items := make([]domain.Document, 0, len(l.all))
	for _, d := range l.all {
		if needle == "" || strings.Contains(strings.ToLower(d.Filename), needle) {
			items = append(items, d)
		}
	}

	for _, col := range l.columns {
		if !col.Sorted {
			continue
		}
		sort.SliceStable(items, func(i, j int) bool {
			return placedAfter(col, items[j], items[i])
		})
		break
	}
	l.items = items
}

// placedAfter is the toggle comparator of the list: a descending column
// places a after b when a < b, an ascending one when a > b.
func placedAfter(col domain.Column, a, b domain.Document) bool {
	c := col.Compare(a, b)
	if col.Descending {
		return c < 0
	}
	return c > 0
}

// pruneSelection drops keys missing from the collection (caller must hold lock).
func (l *DocumentList) pruneSelection() {
	for key := range l.selected {
		if !l.contains(key) {
			delete(l.selected, key)
		}
	}
}

// contains reports whether the full collection holds key (caller must hold lock).
func (l *DocumentList) contains(key string) bool {
	return slices.ContainsFunc(l.all, func(d domain.Document) bool {
		return d.Key() == key
	})
}

// summary builds the selection summary (caller must hold lock).
func (l *DocumentList) summary() domain.SelectionSummary {
	s := domain.SelectionSummary{Count: len(l.selected)}
	if s.Count == 1 {
		for key := range l.selected {
			s.Filename = key
		}
	}
	return s
}

// Ensure ExplorerService implements the interface.
var _ driving.ExplorerService = (*ExplorerService)(nil)

// ExplorerService opens listing sessions against one store.
type ExplorerService struct {
	store    driven.DocumentStore
	readOnly bool
}

// NewExplorerService creates a new explorer service.
func NewExplorerService(store driven.DocumentStore, readOnly bool) *ExplorerService {
	return &ExplorerService{store: store, readOnly: readOnly}
}

// NewList returns a fresh listing controller.
func (s *ExplorerService) NewList() driving.DocumentList {
	return NewDocumentList(s.store, s.readOnly)
}
