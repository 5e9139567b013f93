// Package history is the CLI's local SQLite store: documents saved on this
// machine and small preferences such as the last identifier entered.
package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"github.com/dmitrijs2005/examdesk/internal/client/history/migrations"
)

// KeyIdentifier holds the last identifier used in the wizard.
const KeyIdentifier = "identifier"

type Document struct {
	ID       string
	Kind     string
	Filename string
	Path     string
	SavedAt  time.Time
}

type Store struct {
	db *sql.DB
}

// RunMigrations applies the embedded schema.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return err
	}
	return goose.UpContext(ctx, db, ".")
}

// Open opens (creating if needed) the database at path and migrates it.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("history migrations: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// RecordDocument stores d, replacing an earlier save of the same document.
func (s *Store) RecordDocument(ctx context.Context, d Document) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO documents (id, kind, filename, path, saved_at) VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET kind = excluded.kind, filename = excluded.filename,
			path = excluded.path, saved_at = excluded.saved_at
	`, d.ID, d.Kind, d.Filename, d.Path, d.SavedAt.UnixMilli())
	if err != nil {
		return fmt.Errorf("failed to record document %s: %w", d.ID, err)
	}
	return nil
}

// Document returns (nil, nil) when id was never saved here.
func (s *Store) Document(ctx context.Context, id string) (*Document, error) {
	var (
		d  Document
		ms int64
	)
	err := s.db.QueryRowContext(ctx, `SELECT id, kind, filename, path, saved_at FROM documents WHERE id = ?`, id).
		Scan(&d.ID, &d.Kind, &d.Filename, &d.Path, &ms)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get document %s: %w", id, err)
	}
	d.SavedAt = time.UnixMilli(ms)
	return &d, nil
}

// Documents lists saved documents, newest first.
func (s *Store) Documents(ctx context.Context) ([]Document, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, kind, filename, path, saved_at FROM documents ORDER BY saved_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	defer rows.Close()

	var out []Document
	for rows.Next() {
		var (
			d  Document
			ms int64
		)
		if err := rows.Scan(&d.ID, &d.Kind, &d.Filename, &d.Path, &ms); err != nil {
			return nil, fmt.Errorf("failed to scan document row: %w", err)
		}
		d.SavedAt = time.UnixMilli(ms)
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate document rows: %w", err)
	}
	return out, nil
}

// Get returns "" for a missing key.
func (s *Store) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM metadata WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get metadata[%s]: %w", key, err)
	}
	return value, nil
}

func (s *Store) Set(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO metadata (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to set metadata[%s]: %w", key, err)
	}
	return nil
}
