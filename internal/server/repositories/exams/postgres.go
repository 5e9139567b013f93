// Package exams stores scheduled exams.
package exams

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/examdesk/internal/common"
	"github.com/dmitrijs2005/examdesk/internal/dbx"
	"github.com/dmitrijs2005/examdesk/internal/server/models"
)

const columns = `id, code, name, category_id, price, exam_date, start_at, end_at, venue, duration_minutes, instructions`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanExam(s scanner) (*models.Exam, error) {
	e := &models.Exam{}
	var category sql.NullString
	err := s.Scan(&e.ID, &e.Code, &e.Name, &category, &e.Price, &e.ExamDate, &e.StartAt, &e.EndAt,
		&e.Venue, &e.DurationMinutes, (*dbx.StringList)(&e.Instructions))
	if err != nil {
		return nil, err
	}
	e.CategoryID = category.String
	return e, nil
}

func (r *PostgresRepository) query(ctx context.Context, query string, args ...any) ([]*models.Exam, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var out []*models.Exam
	for rows.Next() {
		e, err := scanExam(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return out, nil
}

// List returns all exams ordered by start time.
func (r *PostgresRepository) List(ctx context.Context) ([]*models.Exam, error) {
	return r.query(ctx, `SELECT `+columns+` FROM exams ORDER BY start_at`)
}

// ListByDate returns exams held on the calendar day of day.
func (r *PostgresRepository) ListByDate(ctx context.Context, day time.Time) ([]*models.Exam, error) {
	return r.query(ctx, `SELECT `+columns+` FROM exams WHERE exam_date = $1 ORDER BY start_at`, day.Format("2006-01-02"))
}

func (r *PostgresRepository) get(ctx context.Context, where string, arg any) (*models.Exam, error) {
	e, err := scanExam(r.db.QueryRowContext(ctx, `SELECT `+columns+` FROM exams WHERE `+where+` = $1`, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return e, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (*models.Exam, error) {
	return r.get(ctx, "id", id)
}

func (r *PostgresRepository) GetByCode(ctx context.Context, code string) (*models.Exam, error) {
	return r.get(ctx, "code", code)
}
