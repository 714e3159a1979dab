package memory

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"slices"
	"sync"

	"github.com/custodia-labs/docdeck-cli/internal/core/domain"
	"github.com/custodia-labs/docdeck-cli/internal/core/ports/driven"
)

// Ensure DocumentStore implements the interfaces.
var (
	_ driven.DocumentStore    = (*DocumentStore)(nil)
	_ driven.LanguageStore    = (*DocumentStore)(nil)
	_ driven.ContentStore     = (*DocumentStore)(nil)
	_ driven.DocumentImporter = (*DocumentStore)(nil)
)

type entry struct {
	doc     domain.Document
	content []byte
}

// DocumentStore is an in-memory implementation of driven.DocumentStore.
// Documents are returned in insertion order.
type DocumentStore struct {
	mu        sync.RWMutex
	owners    map[string][]entry
	languages map[string]domain.Language
	reloads   map[string]int
}

// NewDocumentStore creates a new in-memory document store.
func NewDocumentStore() *DocumentStore {
	return &DocumentStore{
		owners:    make(map[string][]entry),
		languages: make(map[string]domain.Language),
		reloads:   make(map[string]int),
	}
}

// FetchDocuments returns the owner's documents.
func (s *DocumentStore) FetchDocuments(_ context.Context, ownerID string) ([]domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := s.owners[ownerID]
	docs := make([]domain.Document, 0, len(entries))
	for _, e := range entries {
		docs = append(docs, e.doc)
	}
	return docs, nil
}

// DeleteDocuments removes the given documents. The batch is rejected as a
// whole when any document is missing.
func (s *DocumentStore) DeleteDocuments(_ context.Context, docs []domain.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, d := range docs {
		if s.index(d.OwnerID, d.Filename) < 0 {
			return fmt.Errorf("%s: %w", d.Filename, domain.ErrNotFound)
		}
	}
	for _, d := range docs {
		i := s.index(d.OwnerID, d.Filename)
		s.owners[d.OwnerID] = slices.Delete(s.owners[d.OwnerID], i, i+1)
	}
	return nil
}

// Reload records a reload request for the owner.
func (s *DocumentStore) Reload(_ context.Context, ownerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reloads[ownerID]++
	return nil
}

// Reloads returns how many reloads the owner requested.
func (s *DocumentStore) Reloads(ownerID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.reloads[ownerID]
}

// SetLanguage stores the owner's language.
func (s *DocumentStore) SetLanguage(_ context.Context, update domain.LanguageUpdate) error {
	if !update.Language.IsValid() {
		return domain.ErrUnsupportedLanguage
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.languages[update.OwnerID] = update.Language
	return nil
}

// GetLanguage returns the owner's language.
func (s *DocumentStore) GetLanguage(_ context.Context, ownerID string) (domain.Language, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	lang, ok := s.languages[ownerID]
	if !ok {
		return "", domain.ErrNotFound
	}
	return lang, nil
}

// Download returns the stored content of a document.
func (s *DocumentStore) Download(_ context.Context, ownerID, filename string) (io.ReadCloser, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.index(ownerID, filename)
	if i < 0 {
		return nil, 0, domain.ErrNotFound
	}
	content := s.owners[ownerID][i].content
	return io.NopCloser(bytes.NewReader(content)), int64(len(content)), nil
}

// Put stores a document, replacing one with the same filename.
// FileSize is taken from the content.
func (s *DocumentStore) Put(_ context.Context, doc domain.Document, content io.Reader) error {
	data, err := io.ReadAll(content)
	if err != nil {
		return fmt.Errorf("reading content: %w", err)
	}
	doc.FileSize = int64(len(data))

	s.mu.Lock()
	defer s.mu.Unlock()

	e := entry{doc: doc, content: data}
	if i := s.index(doc.OwnerID, doc.Filename); i >= 0 {
		s.owners[doc.OwnerID][i] = e
		return nil
	}
	s.owners[doc.OwnerID] = append(s.owners[doc.OwnerID], e)
	return nil
}

// Add stores documents without content, keeping their FileSize.
func (s *DocumentStore) Add(docs ...domain.Document) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, d := range docs {
		if i := s.index(d.OwnerID, d.Filename); i >= 0 {
			s.owners[d.OwnerID][i] = entry{doc: d}
			continue
		}
		s.owners[d.OwnerID] = append(s.owners[d.OwnerID], entry{doc: d})
	}
}

// index finds a document (caller must hold lock).
func (s *DocumentStore) index(ownerID, filename string) int {
	return slices.IndexFunc(s.owners[ownerID], func(e entry) bool {
		return e.doc.Filename == filename
	})
}
