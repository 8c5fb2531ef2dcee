package revision

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS revisions (
	entity_id  TEXT    NOT NULL,
	number     INTEGER NOT NULL,
	author     TEXT    NOT NULL DEFAULT '',
	text       TEXT    NOT NULL,
	created_at INTEGER NOT NULL,
	PRIMARY KEY (entity_id, number)
);`

// SQLiteStore is a Store backed by an SQLite database file.
type SQLiteStore struct {
	db   *sql.DB
	path string
	mu   sync.Mutex // serializes Add's read-then-insert
}

// OpenSQLite opens or creates the revision database at path. ":memory:"
// opens a private in-memory database.
func OpenSQLite(path string) (*SQLiteStore, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// One connection keeps ":memory:" databases alive and writes serialized.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set busy_timeout: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &SQLiteStore{db: db, path: path}, nil
}

// Path returns the database file path.
func (s *SQLiteStore) Path() string {
	return s.path
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Add stores text as the next revision of entityID.
func (s *SQLiteStore) Add(ctx context.Context, entityID, author, text string) (Revision, error) {
	if entityID == "" {
		return Revision{}, errors.New("entity id must not be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Revision{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var last int
	row := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(number), 0) FROM revisions WHERE entity_id = ?`, entityID)
	if err := row.Scan(&last); err != nil {
		return Revision{}, fmt.Errorf("failed to read latest revision of %s: %w", entityID, err)
	}

	rev := Revision{
		EntityID: entityID,
		Number:   last + 1,
		Author:   author,
		Text:     text,
		Created:  stamp(time.Now()),
	}
	_, err = tx.ExecContext(ctx,
		`INSERT INTO revisions (entity_id, number, author, text, created_at) VALUES (?, ?, ?, ?, ?)`,
		rev.EntityID, rev.Number, rev.Author, rev.Text, rev.Created.UnixNano())
	if err != nil {
		return Revision{}, fmt.Errorf("failed to insert revision %d of %s: %w", rev.Number, entityID, err)
	}

	if err := tx.Commit(); err != nil {
		return Revision{}, fmt.Errorf("failed to commit revision: %w", err)
	}
	return rev, nil
}

// Get returns revision number of entityID.
func (s *SQLiteStore) Get(ctx context.Context, entityID string, number int) (Revision, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT entity_id, number, author, text, created_at FROM revisions WHERE entity_id = ? AND number = ?`,
		entityID, number)
	rev, err := scanRevision(row)
	if err != nil {
		return Revision{}, fmt.Errorf("revision %d of %s: %w", number, entityID, err)
	}
	return rev, nil
}

// Latest returns the newest revision of entityID.
func (s *SQLiteStore) Latest(ctx context.Context, entityID string) (Revision, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT entity_id, number, author, text, created_at FROM revisions WHERE entity_id = ? ORDER BY number DESC LIMIT 1`,
		entityID)
	rev, err := scanRevision(row)
	if err != nil {
		return Revision{}, fmt.Errorf("latest revision of %s: %w", entityID, err)
	}
	return rev, nil
}

// List returns all revisions of entityID, oldest first.
func (s *SQLiteStore) List(ctx context.Context, entityID string) ([]Revision, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT entity_id, number, author, text, created_at FROM revisions WHERE entity_id = ? ORDER BY number`,
		entityID)
	if err != nil {
		return nil, fmt.Errorf("failed to list revisions of %s: %w", entityID, err)
	}
	defer rows.Close()

	var revs []Revision
	for rows.Next() {
		rev, err := scanRevision(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to list revisions of %s: %w", entityID, err)
		}
		revs = append(revs, rev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list revisions of %s: %w", entityID, err)
	}
	if len(revs) == 0 {
		return nil, fmt.Errorf("entity %s: %w", entityID, ErrNotFound)
	}
	return revs, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRevision(row scanner) (Revision, error) {
	var (
		rev     Revision
		created int64
	)
	if err := row.Scan(&rev.EntityID, &rev.Number, &rev.Author, &rev.Text, &created); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Revision{}, ErrNotFound
		}
		return Revision{}, err
	}
	rev.Created = time.Unix(0, created).UTC()
	return rev, nil
}
