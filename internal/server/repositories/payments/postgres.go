// Package payments stores gateway orders and bypassed payments.
package payments

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/examdesk/internal/common"
	"github.com/dmitrijs2005/examdesk/internal/dbx"
	"github.com/dmitrijs2005/examdesk/internal/server/models"
)

const columns = `id, order_id, payment_id, signature, amount, currency, status, bypass_reason,
	session_id, candidate_id, item_id, flow, created_at`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func scanPayment(row *sql.Row) (*models.Payment, error) {
	p := &models.Payment{}
	var orderID, candidateID, itemID sql.NullString
	err := row.Scan(&p.ID, &orderID, &p.PaymentID, &p.Signature, &p.Amount, &p.Currency, &p.Status, &p.BypassReason,
		&p.SessionID, &candidateID, &itemID, &p.Flow, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	p.OrderID, p.CandidateID, p.ItemID = orderID.String, candidateID.String, itemID.String
	return p, nil
}

// Create inserts a payment. Bypassed payments have no order id.
func (r *PostgresRepository) Create(ctx context.Context, p *models.Payment) (*models.Payment, error) {
	query :=
		`INSERT INTO payments (order_id, payment_id, signature, amount, currency, status, bypass_reason,
		                       session_id, candidate_id, item_id, flow)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		 RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query, dbx.NullString(p.OrderID), p.PaymentID, p.Signature,
		p.Amount, p.Currency, p.Status, p.BypassReason,
		p.SessionID, dbx.NullString(p.CandidateID), dbx.NullString(p.ItemID), p.Flow).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return p, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (*models.Payment, error) {
	return scanPayment(r.db.QueryRowContext(ctx, `SELECT `+columns+` FROM payments WHERE id = $1`, id))
}

func (r *PostgresRepository) GetByOrderID(ctx context.Context, orderID string) (*models.Payment, error) {
	return scanPayment(r.db.QueryRowContext(ctx, `SELECT `+columns+` FROM payments WHERE order_id = $1`, orderID))
}

// GetBypass returns the zero amount payment already recorded for a wizard
// session, if any.
func (r *PostgresRepository) GetBypass(ctx context.Context, sessionID string) (*models.Payment, error) {
	query := `SELECT ` + columns + ` FROM payments WHERE session_id = $1 AND bypass_reason <> ''`
	return scanPayment(r.db.QueryRowContext(ctx, query, sessionID))
}

// MarkPaid records the gateway payment id and signature. Marking an already
// paid order again returns the stored row unchanged.
func (r *PostgresRepository) MarkPaid(ctx context.Context, orderID, paymentID, signature string) (*models.Payment, error) {
	query :=
		`UPDATE payments
		 SET status = 'paid',
		     payment_id = CASE WHEN status = 'paid' THEN payment_id ELSE $2 END,
		     signature = CASE WHEN status = 'paid' THEN signature ELSE $3 END
		 WHERE order_id = $1
		 RETURNING ` + columns

	return scanPayment(r.db.QueryRowContext(ctx, query, orderID, paymentID, signature))
}

// MarkFailed flags a created order as failed. Paid orders are left alone.
func (r *PostgresRepository) MarkFailed(ctx context.Context, orderID, paymentID string) error {
	query :=
		`UPDATE payments SET status = 'failed', payment_id = $2
		 WHERE order_id = $1 AND status = 'created'`

	if _, err := r.db.ExecContext(ctx, query, orderID, paymentID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
