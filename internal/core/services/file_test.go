package services

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docdeck-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/docdeck-cli/internal/core/domain"
)

func TestFileService_ImportAndDownload(t *testing.T) {
	ctx := context.Background()
	store := memory.NewDocumentStore()
	svc := NewFileService(store)
	fixed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello world"), 0600))

	doc, err := svc.Import(ctx, "owner-1", path)
	require.NoError(t, err)
	assert.Equal(t, "notes.txt", doc.Filename)
	assert.Equal(t, int64(11), doc.FileSize)
	assert.Equal(t, fixed, doc.UploadedAt)

	rc, size, err := svc.Download(ctx, "owner-1", "notes.txt")
	require.NoError(t, err)
	defer rc.Close()
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "hello world", string(data))
	assert.Equal(t, int64(11), size)
}

func TestFileService_Import_Errors(t *testing.T) {
	ctx := context.Background()
	svc := NewFileService(memory.NewDocumentStore())

	_, err := svc.Import(ctx, "", "x")
	assert.ErrorIs(t, err, domain.ErrOwnerRequired)

	_, err = svc.Import(ctx, "owner-1", filepath.Join(t.TempDir(), "missing"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = svc.Import(ctx, "owner-1", t.TempDir())
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = NewFileService(&mockDocumentStore{}).Import(ctx, "owner-1", "x")
	assert.ErrorIs(t, err, domain.ErrNotImplemented)
}

func TestFileService_Download_Errors(t *testing.T) {
	ctx := context.Background()

	_, _, err := NewFileService(memory.NewDocumentStore()).Download(ctx, "owner-1", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, _, err = NewFileService(&mockDocumentStore{}).Download(ctx, "owner-1", "a.txt")
	assert.ErrorIs(t, err, domain.ErrNotImplemented)

	_, _, err = NewFileService(memory.NewDocumentStore()).Download(ctx, "owner-1", "a.txt")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
