package postgres

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres" // migrate driver
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/jackc/pgx/v5/stdlib" // database/sql driver

	"github.com/custodia-labs/docdeck-cli/internal/adapters/driven/storage/postgres/migrations"
	"github.com/custodia-labs/docdeck-cli/internal/core/domain"
	"github.com/custodia-labs/docdeck-cli/internal/core/ports/driven"
	"github.com/custodia-labs/docdeck-cli/internal/logger"
)

// Ensure Store implements the interfaces.
var (
	_ driven.DocumentStore    = (*Store)(nil)
	_ driven.LanguageStore    = (*Store)(nil)
	_ driven.ContentStore     = (*Store)(nil)
	_ driven.DocumentImporter = (*Store)(nil)
)

const (
	maxOpenConns    = 10
	maxIdleConns    = 5
	connMaxLifetime = 30 * time.Minute
	pingTimeout     = 5 * time.Second
)

// Store is a PostgreSQL-backed document store.
type Store struct {
	db *sql.DB
}

// Open connects to dsn, verifies the connection and applies pending
// migrations. dsn must be a postgres:// URL.
func Open(ctx context.Context, dsn string) (*Store, error) {
	if err := validateDSN(dsn); err != nil {
		return nil, err
	}

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(maxOpenConns)
	db.SetMaxIdleConns(maxIdleConns)
	db.SetConnMaxLifetime(connMaxLifetime)

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := Migrate(dsn); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

// Migrate applies all pending up migrations.
func Migrate(dsn string) error {
	source, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return fmt.Errorf("create migration source: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", source, dsn)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("run migrations: %w", err)
	}

	v, dirty, err := m.Version()
	if err == nil {
		logger.Debug("postgres schema version %d (dirty: %v)", v, dirty)
	}
	return nil
}

func validateDSN(dsn string) error {
	if dsn == "" {
		return fmt.Errorf("%w: postgres DSN required", domain.ErrInvalidInput)
	}
	if !strings.HasPrefix(dsn, "postgres://") && !strings.HasPrefix(dsn, "postgresql://") {
		return fmt.Errorf("%w: postgres DSN must be a postgres:// URL", domain.ErrInvalidInput)
	}
	return nil
}

// Close closes the connection pool.
func (s *Store) Close() error {
	return s.db.Close()
}

// FetchDocuments returns the owner's documents in upload order.
func (s *Store) FetchDocuments(ctx context.Context, ownerID string) ([]domain.Document, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT d.id, d.filename, d.file_size, COALESCE(d.lang, ''), d.uploaded_at
		FROM documents d
		JOIN users u ON u.id = d.user_id
		WHERE u.auth0_id = $1
		ORDER BY d.id
	`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("query documents: %w", mapError(err))
	}
	defer rows.Close()

	docs := make([]domain.Document, 0)
	for rows.Next() {
		doc, err := scanDocument(rows, ownerID)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate documents: %w", err)
	}
	return docs, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanDocument(row scanner, ownerID string) (domain.Document, error) {
	var (
		id   int64
		lang string
	)
	doc := domain.Document{OwnerID: ownerID}
	if err := row.Scan(&id, &doc.Filename, &doc.FileSize, &lang, &doc.UploadedAt); err != nil {
		return domain.Document{}, fmt.Errorf("scan document: %w", mapError(err))
	}
	doc.ID = strconv.FormatInt(id, 10)
	doc.Language = domain.Language(lang)
	return doc, nil
}

// DeleteDocuments removes the documents in one transaction. Nothing is
// deleted when any document is missing.
func (s *Store) DeleteDocuments(ctx context.Context, docs []domain.Document) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	for _, d := range docs {
		res, err := tx.ExecContext(ctx, `
			DELETE FROM documents
			WHERE filename = $1 AND user_id = (SELECT id FROM users WHERE auth0_id = $2)
		`, d.Filename, d.OwnerID)
		if err != nil {
			return fmt.Errorf("delete %s: %w", d.Filename, mapError(err))
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("delete %s: %w", d.Filename, err)
		}
		if n == 0 {
			return fmt.Errorf("%s: %w", d.Filename, domain.ErrNotFound)
		}
	}
	return tx.Commit()
}

// Reload records a reload request. The document service picks up pending
// rows from the reloads table.
func (s *Store) Reload(ctx context.Context, ownerID string) error {
	userID, err := ensureUser(ctx, s.db, ownerID)
	if err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, "INSERT INTO reloads (user_id) VALUES ($1)", userID); err != nil {
		return fmt.Errorf("record reload: %w", mapError(err))
	}
	return nil
}

// SetLanguage stores the owner's language.
func (s *Store) SetLanguage(ctx context.Context, update domain.LanguageUpdate) error {
	if !update.Language.IsValid() {
		return domain.ErrUnsupportedLanguage
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (auth0_id, language) VALUES ($1, $2)
		ON CONFLICT (auth0_id) DO UPDATE SET language = EXCLUDED.language
	`, update.OwnerID, update.Language.String())
	if err != nil {
		return fmt.Errorf("save language: %w", mapError(err))
	}
	return nil
}

// GetLanguage returns the owner's language.
func (s *Store) GetLanguage(ctx context.Context, ownerID string) (domain.Language, error) {
	var lang sql.NullString
	err := s.db.QueryRowContext(ctx, "SELECT language FROM users WHERE auth0_id = $1", ownerID).Scan(&lang)
	if err != nil {
		return "", mapError(err)
	}
	if !lang.Valid || lang.String == "" {
		return "", domain.ErrNotFound
	}
	return domain.Language(lang.String), nil
}

// Download returns the stored content of a document.
func (s *Store) Download(ctx context.Context, ownerID, filename string) (io.ReadCloser, int64, error) {
	var content []byte
	err := s.db.QueryRowContext(ctx, `
		SELECT d.content FROM documents d
		JOIN users u ON u.id = d.user_id
		WHERE u.auth0_id = $1 AND d.filename = $2
	`, ownerID, filename).Scan(&content)
	if err != nil {
		return nil, 0, mapError(err)
	}
	return io.NopCloser(bytes.NewReader(content)), int64(len(content)), nil
}

// Put stores a document, replacing one with the same filename.
func (s *Store) Put(ctx context.Context, doc domain.Document, content io.Reader) error {
	data, err := io.ReadAll(content)
	if err != nil {
		return fmt.Errorf("read content: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	userID, err := ensureUser(ctx, tx, doc.OwnerID)
	if err != nil {
		return err
	}

	var lang sql.NullString
	if doc.Language != "" {
		lang = sql.NullString{String: doc.Language.String(), Valid: true}
	}
	_, err = tx.ExecContext(ctx, `
		INSERT INTO documents (user_id, filename, file_size, lang, content)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id, filename) DO UPDATE SET
			file_size = EXCLUDED.file_size,
			lang = EXCLUDED.lang,
			content = EXCLUDED.content,
			uploaded_at = NOW()
	`, userID, doc.Filename, len(data), lang, data)
	if err != nil {
		return fmt.Errorf("save document: %w", mapError(err))
	}
	return tx.Commit()
}

type execQuerier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func ensureUser(ctx context.Context, q execQuerier, ownerID string) (int64, error) {
	if ownerID == "" {
		return 0, domain.ErrOwnerRequired
	}
	var id int64
	err := q.QueryRowContext(ctx, `
		INSERT INTO users (auth0_id) VALUES ($1)
		ON CONFLICT (auth0_id) DO UPDATE SET auth0_id = EXCLUDED.auth0_id
		RETURNING id
	`, ownerID).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("ensure user: %w", mapError(err))
	}
	return id, nil
}
