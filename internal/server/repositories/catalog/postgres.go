// Package catalog stores purchasable items: practice tests, syllabus
// material and subscriptions.
package catalog

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

// List returns items of kind, or all items when kind is empty.
func (r *PostgresRepository) List(ctx context.Context, kind string) ([]*models.CatalogItem, error) {
	query :=
		`SELECT id, kind, title, price, duration_days, asset_key FROM catalog_items
		 WHERE ($1 = '' OR kind = $1)
		 ORDER BY kind, title`

	rows, err := r.db.QueryContext(ctx, query, kind)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var out []*models.CatalogItem
	for rows.Next() {
		it := &models.CatalogItem{}
		if err := rows.Scan(&it.ID, &it.Kind, &it.Title, &it.Price, &it.DurationDays, &it.AssetKey); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		out = append(out, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return out, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (*models.CatalogItem, error) {
	query := `SELECT id, kind, title, price, duration_days, asset_key FROM catalog_items WHERE id = $1`

	it := &models.CatalogItem{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&it.ID, &it.Kind, &it.Title, &it.Price, &it.DurationDays, &it.AssetKey)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return it, nil
}
