package sqlite

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/docdeck-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/docdeck-cli/internal/core/domain"
	"github.com/custodia-labs/docdeck-cli/internal/core/ports/driven"
)

// Ensure Store implements the interfaces.
var (
	_ driven.DocumentStore    = (*Store)(nil)
	_ driven.LanguageStore    = (*Store)(nil)
	_ driven.ContentStore     = (*Store)(nil)
	_ driven.DocumentImporter = (*Store)(nil)
)

// dbFile is the database file name inside the data directory.
const dbFile = "docdeck.db"

// Store is a SQLite-backed document store.
type Store struct {
	db   *sql.DB
	path string
	now  func() time.Time
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.docdeck/data/docdeck.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".docdeck", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, dbFile)

	// WAL mode lets readers proceed during writes.
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
		now:  time.Now,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// migrate runs all pending migrations, recording each applied version.
func (s *Store) migrate(fsys fs.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		if name := entry.Name(); strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// "001_initial.up.sql" -> 1
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if err := s.apply(version, string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
	}

	return nil
}

func (s *Store) apply(version int, script string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err := tx.Exec(script); err != nil {
		return err
	}
	if _, err := tx.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
		return err
	}
	return tx.Commit()
}

// SchemaVersion returns the highest applied migration version.
func (s *Store) SchemaVersion(ctx context.Context) (int, error) {
	var v int
	err := s.db.QueryRowContext(ctx, "SELECT COALESCE(MAX(version), 0) FROM schema_migrations").Scan(&v)
	return v, err
}

// FetchDocuments returns the owner's documents in upload order.
func (s *Store) FetchDocuments(ctx context.Context, ownerID string) ([]domain.Document, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT d.id, d.filename, d.file_size, COALESCE(d.lang, ''), d.uploaded_at
		FROM documents d
		JOIN users u ON u.id = d.user_id
		WHERE u.auth0_id = ?
		ORDER BY d.id
	`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("querying documents: %w", err)
	}
	defer rows.Close()

	docs := []domain.Document{}
	for rows.Next() {
		var (
			id       int64
			lang     string
			uploaded int64
		)
		doc := domain.Document{OwnerID: ownerID}
		if err := rows.Scan(&id, &doc.Filename, &doc.FileSize, &lang, &uploaded); err != nil {
			return nil, fmt.Errorf("scanning document: %w", err)
		}
		doc.ID = strconv.FormatInt(id, 10)
		doc.Language = domain.Language(lang)
		if uploaded > 0 {
			doc.UploadedAt = time.UnixMilli(uploaded).UTC()
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating documents: %w", err)
	}
	return docs, nil
}

// DeleteDocuments removes the documents in one transaction. Nothing is
// deleted when any document is missing.
func (s *Store) DeleteDocuments(ctx context.Context, docs []domain.Document) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	for _, d := range docs {
		res, err := tx.ExecContext(ctx, `
			DELETE FROM documents
			WHERE filename = ? AND user_id = (SELECT id FROM users WHERE auth0_id = ?)
		`, d.Filename, d.OwnerID)
		if err != nil {
			return fmt.Errorf("deleting %s: %w", d.Filename, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("deleting %s: %w", d.Filename, err)
		}
		if n == 0 {
			return fmt.Errorf("%s: %w", d.Filename, domain.ErrNotFound)
		}
	}
	return tx.Commit()
}

// Reload records a reload request for the owner.
func (s *Store) Reload(ctx context.Context, ownerID string) error {
	userID, err := s.ensureUser(ctx, s.db, ownerID)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		"INSERT INTO reloads (user_id, requested_at) VALUES (?, ?)", userID, s.now().UnixMilli())
	if err != nil {
		return fmt.Errorf("recording reload: %w", err)
	}
	return nil
}

// Reloads returns how many reloads the owner requested.
func (s *Store) Reloads(ctx context.Context, ownerID string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM reloads r JOIN users u ON u.id = r.user_id
		WHERE u.auth0_id = ?
	`, ownerID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting reloads: %w", err)
	}
	return n, nil
}

// SetLanguage stores the owner's language.
func (s *Store) SetLanguage(ctx context.Context, update domain.LanguageUpdate) error {
	if !update.Language.IsValid() {
		return domain.ErrUnsupportedLanguage
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (auth0_id, language) VALUES (?, ?)
		ON CONFLICT(auth0_id) DO UPDATE SET language = excluded.language
	`, update.OwnerID, update.Language.String())
	if err != nil {
		return fmt.Errorf("saving language: %w", err)
	}
	return nil
}

// GetLanguage returns the owner's language.
func (s *Store) GetLanguage(ctx context.Context, ownerID string) (domain.Language, error) {
	var lang sql.NullString
	err := s.db.QueryRowContext(ctx,
		"SELECT language FROM users WHERE auth0_id = ?", ownerID).Scan(&lang)
	if errors.Is(err, sql.ErrNoRows) || (err == nil && !lang.Valid) {
		return "", domain.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("reading language: %w", err)
	}
	return domain.Language(lang.String), nil
}

// Download returns the stored content of a document.
func (s *Store) Download(ctx context.Context, ownerID, filename string) (io.ReadCloser, int64, error) {
	var content []byte
	err := s.db.QueryRowContext(ctx, `
		SELECT d.content FROM documents d
		JOIN users u ON u.id = d.user_id
		WHERE u.auth0_id = ? AND d.filename = ?
	`, ownerID, filename).Scan(&content)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, 0, domain.ErrNotFound
	}
	if err != nil {
		return nil, 0, fmt.Errorf("reading content: %w", err)
	}
	return io.NopCloser(bytes.NewReader(content)), int64(len(content)), nil
}

// Put stores a document, replacing one with the same filename.
// FileSize is taken from the content.
func (s *Store) Put(ctx context.Context, doc domain.Document, content io.Reader) error {
	data, err := io.ReadAll(content)
	if err != nil {
		return fmt.Errorf("reading content: %w", err)
	}

	uploaded := doc.UploadedAt
	if uploaded.IsZero() {
		uploaded = s.now()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	userID, err := s.ensureUser(ctx, tx, doc.OwnerID)
	if err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx, `
		INSERT INTO documents (user_id, filename, file_size, lang, content, uploaded_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id, filename) DO UPDATE SET
			file_size = excluded.file_size,
			lang = excluded.lang,
			content = excluded.content,
			uploaded_at = excluded.uploaded_at
	`, userID, doc.Filename, len(data), nullString(doc.Language.String()), data, uploaded.UnixMilli())
	if err != nil {
		return fmt.Errorf("saving document: %w", err)
	}
	return tx.Commit()
}

type execQuerier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// ensureUser returns the row id for ownerID, creating the user if needed.
func (s *Store) ensureUser(ctx context.Context, q execQuerier, ownerID string) (int64, error) {
	if ownerID == "" {
		return 0, domain.ErrOwnerRequired
	}
	if _, err := q.ExecContext(ctx,
		"INSERT INTO users (auth0_id) VALUES (?) ON CONFLICT(auth0_id) DO NOTHING", ownerID); err != nil {
		return 0, fmt.Errorf("creating user: %w", err)
	}
	var id int64
	if err := q.QueryRowContext(ctx, "SELECT id FROM users WHERE auth0_id = ?", ownerID).Scan(&id); err != nil {
		return 0, fmt.Errorf("reading user: %w", err)
	}
	return id, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
