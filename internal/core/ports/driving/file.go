package driving

import (
	"context"
	"io"

	"github.com/custodia-labs/docdeck-cli/internal/core/domain"
)

// FileService moves document contents between the store and local disk.
type FileService interface {
	// Download opens a document for reading. Size is -1 when unknown.
	Download(ctx context.Context, ownerID, filename string) (io.ReadCloser, int64, error)

	// Import adds a local file to the owner's documents.
	Import(ctx context.Context, ownerID, path string) (*domain.Document, error)
}
