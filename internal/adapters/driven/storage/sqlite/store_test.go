package sqlite

import (
	"context"
	"io"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docdeck-cli/internal/core/domain"
)

// setupTestStore creates a SQLite store in a temporary directory.
func setupTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	require.NotNil(t, store)
	t.Cleanup(func() {
		assert.NoError(t, store.Close())
	})
	return store
}

func putDoc(t *testing.T, store *Store, owner, filename, content string) {
	t.Helper()
	err := store.Put(context.Background(), domain.Document{OwnerID: owner, Filename: filename}, strings.NewReader(content))
	require.NoError(t, err)
}

func TestNewStore_CreatesDatabase(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir)
	require.NoError(t, err)
	defer store.Close()

	assert.Equal(t, filepath.Join(dir, "docdeck.db"), store.Path())
	assert.FileExists(t, store.Path())

	version, err := store.SchemaVersion(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, version)
}

func TestNewStore_ReopenKeepsData(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir)
	require.NoError(t, err)
	putDoc(t, store, "alice", "a.txt", "hello")
	require.NoError(t, store.Close())

	store, err = NewStore(dir)
	require.NoError(t, err)
	defer store.Close()

	docs, err := store.FetchDocuments(context.Background(), "alice")
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "a.txt", docs[0].Filename)
}

func TestStore_PutAndFetch(t *testing.T) {
	store := setupTestStore(t)
	store.now = func() time.Time { return time.UnixMilli(1_700_000_000_000) }
	ctx := context.Background()

	putDoc(t, store, "alice", "a.txt", "hello")
	putDoc(t, store, "alice", "b.pdf", "pdf-bytes")
	putDoc(t, store, "bob", "c.txt", "bob's")

	docs, err := store.FetchDocuments(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "a.txt", docs[0].Filename)
	assert.Equal(t, int64(5), docs[0].FileSize)
	assert.Equal(t, "alice", docs[0].OwnerID)
	assert.NotEmpty(t, docs[0].ID)
	assert.Equal(t, time.UnixMilli(1_700_000_000_000).UTC(), docs[0].UploadedAt)
	assert.Equal(t, "b.pdf", docs[1].Filename)

	docs, err = store.FetchDocuments(ctx, "nobody")
	require.NoError(t, err)
	assert.Empty(t, docs)
	assert.NotNil(t, docs)
}

func TestStore_PutReplacesSameFilename(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	putDoc(t, store, "alice", "a.txt", "v1")
	putDoc(t, store, "alice", "a.txt", "version two")

	docs, err := store.FetchDocuments(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, int64(11), docs[0].FileSize)

	rc, size, err := store.Download(ctx, "alice", "a.txt")
	require.NoError(t, err)
	defer rc.Close()
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "version two", string(data))
	assert.Equal(t, int64(11), size)
}

func TestStore_PutRequiresOwner(t *testing.T) {
	store := setupTestStore(t)
	err := store.Put(context.Background(), domain.Document{Filename: "a.txt"}, strings.NewReader("x"))
	assert.ErrorIs(t, err, domain.ErrOwnerRequired)
}

func TestStore_DeleteDocuments(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	putDoc(t, store, "alice", "a.txt", "a")
	putDoc(t, store, "alice", "b.txt", "b")
	putDoc(t, store, "alice", "c.txt", "c")

	err := store.DeleteDocuments(ctx, []domain.Document{
		{OwnerID: "alice", Filename: "a.txt"},
		{OwnerID: "alice", Filename: "c.txt"},
	})
	require.NoError(t, err)

	docs, err := store.FetchDocuments(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "b.txt", docs[0].Filename)
}

func TestStore_DeleteDocuments_AllOrNothing(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	putDoc(t, store, "alice", "a.txt", "a")

	err := store.DeleteDocuments(ctx, []domain.Document{
		{OwnerID: "alice", Filename: "a.txt"},
		{OwnerID: "alice", Filename: "missing.txt"},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	docs, err := store.FetchDocuments(ctx, "alice")
	require.NoError(t, err)
	assert.Len(t, docs, 1)
}

func TestStore_DeleteDocuments_OtherOwner(t *testing.T) {
	store := setupTestStore(t)
	putDoc(t, store, "alice", "a.txt", "a")

	err := store.DeleteDocuments(context.Background(), []domain.Document{{OwnerID: "bob", Filename: "a.txt"}})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStore_Reload(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Reload(ctx, "alice"))
	require.NoError(t, store.Reload(ctx, "alice"))

	n, err := store.Reloads(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = store.Reloads(ctx, "bob")
	require.NoError(t, err)
	assert.Zero(t, n)

	assert.ErrorIs(t, store.Reload(ctx, ""), domain.ErrOwnerRequired)
}

func TestStore_Language(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	_, err := store.GetLanguage(ctx, "alice")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// A user created by an upload has no language yet.
	putDoc(t, store, "alice", "a.txt", "a")
	_, err = store.GetLanguage(ctx, "alice")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, store.SetLanguage(ctx, domain.LanguageUpdate{Language: domain.LanguageGerman, OwnerID: "alice"}))
	lang, err := store.GetLanguage(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, domain.LanguageGerman, lang)

	require.NoError(t, store.SetLanguage(ctx, domain.LanguageUpdate{Language: domain.LanguageEnglish, OwnerID: "alice"}))
	lang, err = store.GetLanguage(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, domain.LanguageEnglish, lang)

	err = store.SetLanguage(ctx, domain.LanguageUpdate{Language: "fr", OwnerID: "alice"})
	assert.ErrorIs(t, err, domain.ErrUnsupportedLanguage)
}

func TestStore_DownloadMissing(t *testing.T) {
	store := setupTestStore(t)
	_, _, err := store.Download(context.Background(), "alice", "nope.txt")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
