package services

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/custodia-labs/docdeck-cli/internal/core/domain"
	"github.com/custodia-labs/docdeck-cli/internal/core/ports/driven"
	"github.com/custodia-labs/docdeck-cli/internal/core/ports/driving"
	"github.com/custodia-labs/docdeck-cli/internal/logger"
)

// Ensure FileService implements the interface.
var _ driving.FileService = (*FileService)(nil)

// FileService moves document contents between the store and local disk.
type FileService struct {
	store driven.DocumentStore
	now   func() time.Time
}

// NewFileService creates a new file service.
func NewFileService(store driven.DocumentStore) *FileService {
	return &FileService{store: store, now: time.Now}
}

// Download opens a document for reading.
func (s *FileService) Download(ctx context.Context, ownerID, filename string) (io.ReadCloser, int64, error) {
	if filename == "" {
		return nil, 0, fmt.Errorf("%w: filename required", domain.ErrInvalidInput)
	}
	cs, ok := s.store.(driven.ContentStore)
	if !ok {
		return nil, 0, domain.ErrNotImplemented
	}
	logger.Debug("downloading %q for owner %q", filename, ownerID)
	return cs.Download(ctx, ownerID, filename)
}

// Import adds a local file to the owner's documents under its base name.
func (s *FileService) Import(ctx context.Context, ownerID, path string) (*domain.Document, error) {
	if ownerID == "" {
		return nil, domain.ErrOwnerRequired
	}
	importer, ok := s.store.(driven.DocumentImporter)
	if !ok {
		return nil, domain.ErrNotImplemented
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", domain.ErrInvalidInput, path)
	}

	doc := domain.Document{
		OwnerID:    ownerID,
		Filename:   filepath.Base(path),
		FileSize:   info.Size(),
		UploadedAt: s.now().UTC(),
	}
	if err := importer.Put(ctx, doc, f); err != nil {
		return nil, fmt.Errorf("storing %s: %w", doc.Filename, err)
	}
	logger.Debug("imported %s (%d bytes)", doc.Filename, doc.FileSize)
	return &doc, nil
}
