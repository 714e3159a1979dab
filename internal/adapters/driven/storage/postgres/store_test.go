package postgres

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"io/fs"
	"os"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docdeck-cli/internal/adapters/driven/storage/postgres/migrations"
	"github.com/custodia-labs/docdeck-cli/internal/core/domain"
)

// envTestDSN enables the integration tests against a live database.
const envTestDSN = "DOCDECK_TEST_POSTGRES_DSN"

func TestMapError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{name: "no rows", err: sql.ErrNoRows, want: domain.ErrNotFound},
		{name: "foreign key", err: &pgconn.PgError{Code: "23503"}, want: domain.ErrNotFound},
		{name: "unique", err: &pgconn.PgError{Code: "23505"}, want: domain.ErrInvalidInput},
		{name: "too long", err: &pgconn.PgError{Code: "22001"}, want: domain.ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, mapError(tt.err), tt.want)
		})
	}

	assert.NoError(t, mapError(nil))

	other := errors.New("boom")
	assert.Same(t, other, mapError(other))

	syntax := &pgconn.PgError{Code: "42601"}
	assert.Equal(t, error(syntax), mapError(syntax))
}

func TestValidateDSN(t *testing.T) {
	assert.ErrorIs(t, validateDSN(""), domain.ErrInvalidInput)
	assert.ErrorIs(t, validateDSN("host=localhost user=x"), domain.ErrInvalidInput)
	assert.NoError(t, validateDSN("postgres://u:p@localhost:5432/docdeck?sslmode=disable"))
	assert.NoError(t, validateDSN("postgresql://localhost/docdeck"))
}

func TestMigrationsArePaired(t *testing.T) {
	entries, err := fs.ReadDir(migrations.FS, ".")
	require.NoError(t, err)

	names := make(map[string]bool)
	for _, e := range entries {
		names[e.Name()] = true
	}
	require.NotEmpty(t, names)
	for name := range names {
		if base, ok := strings.CutSuffix(name, ".up.sql"); ok {
			assert.True(t, names[base+".down.sql"], "missing down migration for %s", name)
		}
	}
}

func TestOpen_RejectsBadDSN(t *testing.T) {
	_, err := Open(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func openTestStore(t *testing.T) *Store {
	t.Helper()
	dsn := os.Getenv(envTestDSN)
	if dsn == "" {
		t.Skipf("%s not set", envTestDSN)
	}
	store, err := Open(context.Background(), dsn)
	require.NoError(t, err)
	t.Cleanup(func() {
		_, _ = store.db.Exec("TRUNCATE reloads, documents, users RESTART IDENTITY CASCADE")
		assert.NoError(t, store.Close())
	})
	return store
}

func TestStore_Integration(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	for _, name := range []string{"a.txt", "b.pdf", "c.docx"} {
		err := store.Put(ctx, domain.Document{OwnerID: "alice", Filename: name}, strings.NewReader(name))
		require.NoError(t, err)
	}

	docs, err := store.FetchDocuments(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, docs, 3)
	assert.Equal(t, "a.txt", docs[0].Filename)
	assert.Equal(t, int64(5), docs[0].FileSize)

	err = store.DeleteDocuments(ctx, []domain.Document{
		{OwnerID: "alice", Filename: "a.txt"},
		{OwnerID: "alice", Filename: "missing"},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, store.DeleteDocuments(ctx, []domain.Document{{OwnerID: "alice", Filename: "a.txt"}}))
	docs, err = store.FetchDocuments(ctx, "alice")
	require.NoError(t, err)
	assert.Len(t, docs, 2)

	rc, size, err := store.Download(ctx, "alice", "b.pdf")
	require.NoError(t, err)
	data, _ := io.ReadAll(rc)
	rc.Close()
	assert.Equal(t, "b.pdf", string(data))
	assert.Equal(t, int64(5), size)

	require.NoError(t, store.Reload(ctx, "alice"))

	_, err = store.GetLanguage(ctx, "alice")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	require.NoError(t, store.SetLanguage(ctx, domain.LanguageUpdate{Language: domain.LanguageGerman, OwnerID: "alice"}))
	lang, err := store.GetLanguage(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, domain.LanguageGerman, lang)
}
