package driven

import (
	"context"
	"io"

	"github.com/custodia-labs/docdeck-cli/internal/core/domain"
)

// DocumentStore is the remote collaborator of a document listing.
// Every backend (REST API, databases, object stores) implements it.
type DocumentStore interface {
	// FetchDocuments returns every document owned by ownerID.
	FetchDocuments(ctx context.Context, ownerID string) ([]domain.Document, error)

	// DeleteDocuments removes the given documents in one batch.
	DeleteDocuments(ctx context.Context, docs []domain.Document) error

	// Reload asks the store to re-process the owner's files.
	// It does not return the refreshed collection.
	Reload(ctx context.Context, ownerID string) error

	// SetLanguage stores the owner's interface language.
	SetLanguage(ctx context.Context, update domain.LanguageUpdate) error
}

// LanguageStore reads back the language written by SetLanguage.
type LanguageStore interface {
	// GetLanguage returns domain.ErrNotFound when no language is stored.
	GetLanguage(ctx context.Context, ownerID string) (domain.Language, error)
}

// ContentStore streams document contents.
type ContentStore interface {
	// Download opens the named document. The returned size is -1 when unknown.
	// The caller must close the reader.
	Download(ctx context.Context, ownerID, filename string) (io.ReadCloser, int64, error)
}

// DocumentImporter adds documents to stores that accept local uploads.
type DocumentImporter interface {
	// Put stores content under doc.Filename for doc.OwnerID, replacing any
	// existing document with the same filename.
	Put(ctx context.Context, doc domain.Document, content io.Reader) error
}
