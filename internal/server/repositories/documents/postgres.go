// Package documents records generated PDFs kept in object storage.
package documents

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/examdesk/internal/common"
	"github.com/dmitrijs2005/examdesk/internal/dbx"
	"github.com/dmitrijs2005/examdesk/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, d *models.Document) (*models.Document, error) {
	query :=
		`INSERT INTO documents (kind, owner_ref, filename, storage_key)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at`

	if err := r.db.QueryRowContext(ctx, query, d.Kind, d.OwnerRef, d.Filename, d.StorageKey).Scan(&d.ID, &d.CreatedAt); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return d, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (*models.Document, error) {
	query := `SELECT id, kind, owner_ref, filename, storage_key, created_at FROM documents WHERE id = $1`

	d := &models.Document{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&d.ID, &d.Kind, &d.OwnerRef, &d.Filename, &d.StorageKey, &d.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || dbx.IsInvalidText(err) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return d, nil
}
