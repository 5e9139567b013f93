// Package attendance stores per-exam attendance marks.
package attendance

import (
	"context"
	"database/sql"
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

// Roster lists every candidate with an application for the exam. Candidates
// not marked yet come back as absent.
func (r *PostgresRepository) Roster(ctx context.Context, examID string) ([]models.RosterEntry, error) {
	query :=
		`SELECT c.id, c.name, a.application_no, att.status
		 FROM applications a
		 JOIN candidates c ON c.id = a.candidate_id
		 LEFT JOIN attendance att ON att.exam_id = a.exam_id AND att.candidate_id = a.candidate_id
		 WHERE a.exam_id = $1
		 ORDER BY c.name, a.application_no`

	rows, err := r.db.QueryContext(ctx, query, examID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var out []models.RosterEntry
	for rows.Next() {
		var e models.RosterEntry
		var status sql.NullString
		if err := rows.Scan(&e.CandidateID, &e.CandidateName, &e.ApplicationNo, &status); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		e.Status = models.Absent
		if status.Valid {
			e.Status = models.AttendanceStatus(status.String)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return out, nil
}

// Save upserts one row per mark. Run it inside a transaction.
func (r *PostgresRepository) Save(ctx context.Context, examID string, marks []models.AttendanceMark) error {
	query :=
		`INSERT INTO attendance (exam_id, candidate_id, status, marked_at)
		 VALUES ($1, $2, $3, now())
		 ON CONFLICT (exam_id, candidate_id) DO UPDATE SET status = EXCLUDED.status, marked_at = EXCLUDED.marked_at`

	for _, m := range marks {
		if _, err := r.db.ExecContext(ctx, query, examID, m.CandidateID, m.Status); err != nil {
			return fmt.Errorf("db error: %w", err)
		}
	}
	return nil
}
