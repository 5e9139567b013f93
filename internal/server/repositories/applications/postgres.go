// Package applications stores exam registrations.
package applications

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/examdesk/internal/common"
	"github.com/dmitrijs2005/examdesk/internal/dbx"
	"github.com/dmitrijs2005/examdesk/internal/server/models"
)

const columns = `id, application_no, candidate_id, exam_id, status, payment_id, created_at, updated_at`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanApplication(s scanner, extra ...any) (*models.Application, error) {
	a := &models.Application{}
	var paymentID sql.NullString
	dest := append([]any{&a.ID, &a.ApplicationNo, &a.CandidateID, &a.ExamID, &a.Status, &paymentID, &a.CreatedAt, &a.UpdatedAt}, extra...)
	if err := s.Scan(dest...); err != nil {
		return nil, err
	}
	a.PaymentID = paymentID.String
	return a, nil
}

func notFoundOr(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return common.ErrorNotFound
	}
	return fmt.Errorf("db error: %w", err)
}

// Create inserts a new application. A second application for the same
// candidate and exam yields common.ErrorAlreadyExists.
func (r *PostgresRepository) Create(ctx context.Context, a *models.Application) (*models.Application, error) {
	query :=
		`INSERT INTO applications (application_no, candidate_id, exam_id, status, payment_id)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query, a.ApplicationNo, a.CandidateID, a.ExamID, a.Status, dbx.NullString(a.PaymentID)).
		Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return a, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (*models.Application, error) {
	a, err := scanApplication(r.db.QueryRowContext(ctx, `SELECT `+columns+` FROM applications WHERE id = $1`, id))
	if err != nil {
		return nil, notFoundOr(err)
	}
	return a, nil
}

// GetByPaymentID returns the application a payment settled into.
func (r *PostgresRepository) GetByPaymentID(ctx context.Context, paymentID string) (*models.Application, error) {
	a, err := scanApplication(r.db.QueryRowContext(ctx, `SELECT `+columns+` FROM applications WHERE payment_id = $1`, paymentID))
	if err != nil {
		return nil, notFoundOr(err)
	}
	return a, nil
}

func (r *PostgresRepository) GetByCandidateExam(ctx context.Context, candidateID, examID string) (*models.Application, error) {
	a, err := scanApplication(r.db.QueryRowContext(ctx,
		`SELECT `+columns+` FROM applications WHERE candidate_id = $1 AND exam_id = $2`, candidateID, examID))
	if err != nil {
		return nil, notFoundOr(err)
	}
	return a, nil
}

// List returns applications with candidate and exam names, newest first.
// An empty status returns every application.
func (r *PostgresRepository) List(ctx context.Context, status models.ApplicationStatus) ([]*models.ApplicationRow, error) {
	query :=
		`SELECT a.id, a.application_no, a.candidate_id, a.exam_id, a.status, a.payment_id, a.created_at, a.updated_at,
		        c.name, e.code, e.name
		 FROM applications a
		 JOIN candidates c ON c.id = a.candidate_id
		 JOIN exams e ON e.id = a.exam_id
		 WHERE ($1 = '' OR a.status = $1)
		 ORDER BY a.created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, string(status))
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var out []*models.ApplicationRow
	for rows.Next() {
		row := &models.ApplicationRow{}
		a, err := scanApplication(rows, &row.CandidateName, &row.ExamCode, &row.ExamName)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		row.Application = *a
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return out, nil
}

// SetStatus updates the status and returns the updated row.
func (r *PostgresRepository) SetStatus(ctx context.Context, id string, status models.ApplicationStatus) (*models.Application, error) {
	query :=
		`UPDATE applications SET status = $2, updated_at = now()
		 WHERE id = $1
		 RETURNING ` + columns

	a, err := scanApplication(r.db.QueryRowContext(ctx, query, id, status))
	if err != nil {
		return nil, notFoundOr(err)
	}
	return a, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM applications WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
