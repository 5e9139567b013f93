// Package candidates stores registered candidates.
package candidates

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

func (r *PostgresRepository) get(ctx context.Context, where string, arg string) (*models.Candidate, error) {
	query := `SELECT id, identifier, name, father_name, date_of_birth, email, phone, address, photo_key, created_at
		 FROM candidates WHERE ` + where + ` = $1`

	c := &models.Candidate{}
	var dob sql.NullTime
	err := r.db.QueryRowContext(ctx, query, arg).Scan(&c.ID, &c.Identifier, &c.Name, &c.FatherName, &dob,
		&c.Email, &c.Phone, &c.Address, &c.PhotoKey, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	c.DateOfBirth = dob.Time
	return c, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (*models.Candidate, error) {
	return r.get(ctx, "id", id)
}

// GetByIdentifier looks a candidate up by phone number or email.
func (r *PostgresRepository) GetByIdentifier(ctx context.Context, identifier string) (*models.Candidate, error) {
	return r.get(ctx, "identifier", identifier)
}

func (r *PostgresRepository) Create(ctx context.Context, c *models.Candidate) (*models.Candidate, error) {
	query :=
		`INSERT INTO candidates (identifier, name, father_name, date_of_birth, email, phone, address, photo_key)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query, c.Identifier, c.Name, c.FatherName, dbx.NullTime(c.DateOfBirth),
		c.Email, c.Phone, c.Address, c.PhotoKey).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return c, nil
}

// Update overwrites the editable fields. The identifier never changes.
func (r *PostgresRepository) Update(ctx context.Context, c *models.Candidate) error {
	query :=
		`UPDATE candidates
		 SET name = $2, father_name = $3, date_of_birth = $4, email = $5, phone = $6, address = $7, photo_key = $8
		 WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, c.ID, c.Name, c.FatherName, dbx.NullTime(c.DateOfBirth),
		c.Email, c.Phone, c.Address, c.PhotoKey)
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
