// Package purchases stores bought catalog items with their expiry.
package purchases

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

// Create stores p. ExpiresAt must already be set by the caller.
func (r *PostgresRepository) Create(ctx context.Context, p *models.Purchase) (*models.Purchase, error) {
	query :=
		`INSERT INTO purchases (candidate_id, item_id, payment_id, amount, purchased_at, expires_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id`

	err := r.db.QueryRowContext(ctx, query, p.CandidateID, p.ItemID, dbx.NullString(p.PaymentID),
		p.Amount, p.PurchasedAt, p.ExpiresAt).Scan(&p.ID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return p, nil
}

const columns = `id, candidate_id, item_id, payment_id, amount, purchased_at, expires_at`

func (r *PostgresRepository) Get(ctx context.Context, id string) (*models.Purchase, error) {
	return r.getOne(ctx, `SELECT `+columns+` FROM purchases WHERE id = $1`, id)
}

// GetByPaymentID returns the purchase a payment settled into.
func (r *PostgresRepository) GetByPaymentID(ctx context.Context, paymentID string) (*models.Purchase, error) {
	return r.getOne(ctx, `SELECT `+columns+` FROM purchases WHERE payment_id = $1`, paymentID)
}

func (r *PostgresRepository) getOne(ctx context.Context, query string, arg string) (*models.Purchase, error) {
	p := &models.Purchase{}
	var paymentID sql.NullString
	err := r.db.QueryRowContext(ctx, query, arg).
		Scan(&p.ID, &p.CandidateID, &p.ItemID, &paymentID, &p.Amount, &p.PurchasedAt, &p.ExpiresAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	p.PaymentID = paymentID.String
	return p, nil
}

// ListByCandidate returns a candidate's purchases, newest first.
func (r *PostgresRepository) ListByCandidate(ctx context.Context, candidateID string) ([]*models.PurchaseRow, error) {
	query :=
		`SELECT p.id, p.candidate_id, p.item_id, p.payment_id, p.amount, p.purchased_at, p.expires_at, i.kind, i.title
		 FROM purchases p
		 JOIN catalog_items i ON i.id = p.item_id
		 WHERE p.candidate_id = $1
		 ORDER BY p.purchased_at DESC`

	rows, err := r.db.QueryContext(ctx, query, candidateID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var out []*models.PurchaseRow
	for rows.Next() {
		row := &models.PurchaseRow{}
		var paymentID sql.NullString
		if err := rows.Scan(&row.ID, &row.CandidateID, &row.ItemID, &paymentID, &row.Amount,
			&row.PurchasedAt, &row.ExpiresAt, &row.ItemKind, &row.ItemTitle); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		row.PaymentID = paymentID.String
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return out, nil
}
