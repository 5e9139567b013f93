// Package subscriptions looks up super user subscriptions.
package subscriptions

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

func (r *PostgresRepository) Get(ctx context.Context, subscriberID string) (*models.Subscription, error) {
	query := `SELECT subscriber_id, name, expires_at FROM subscriptions WHERE subscriber_id = $1`

	s := &models.Subscription{}
	err := r.db.QueryRowContext(ctx, query, subscriberID).Scan(&s.SubscriberID, &s.Name, &s.ExpiresAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return s, nil
}
