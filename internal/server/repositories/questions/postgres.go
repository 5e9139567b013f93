// Package questions stores question papers.
package questions

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/examdesk/internal/dbx"
	"github.com/dmitrijs2005/examdesk/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// ListByExam returns the exam's questions in ordinal order.
func (r *PostgresRepository) ListByExam(ctx context.Context, examID string) ([]*models.Question, error) {
	query :=
		`SELECT id, exam_id, ordinal, text, image_url, options, correct_option
		 FROM questions WHERE exam_id = $1 ORDER BY ordinal`

	rows, err := r.db.QueryContext(ctx, query, examID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var out []*models.Question
	for rows.Next() {
		q := &models.Question{}
		if err := rows.Scan(&q.ID, &q.ExamID, &q.Ordinal, &q.Text, &q.ImageURL,
			(*dbx.StringList)(&q.Options), &q.CorrectOption); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		out = append(out, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return out, nil
}

// ReplaceForExam deletes the exam's questions and inserts qs with ordinals
// 1..n. Run it inside a transaction.
func (r *PostgresRepository) ReplaceForExam(ctx context.Context, examID string, qs []*models.Question) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM questions WHERE exam_id = $1`, examID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	query :=
		`INSERT INTO questions (exam_id, ordinal, text, image_url, options, correct_option)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id`

	for i, q := range qs {
		q.ExamID = examID
		q.Ordinal = i + 1
		err := r.db.QueryRowContext(ctx, query, examID, q.Ordinal, q.Text, q.ImageURL,
			dbx.StringList(q.Options), q.CorrectOption).Scan(&q.ID)
		if err != nil {
			return fmt.Errorf("db error: %w", err)
		}
	}
	return nil
}
