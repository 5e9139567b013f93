// Package admins stores dashboard operators.
package admins

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

func (r *PostgresRepository) GetByUserName(ctx context.Context, userName string) (*models.Admin, error) {
	query := `SELECT id, username, password_hash FROM admins WHERE username = $1`

	a := &models.Admin{}
	err := r.db.QueryRowContext(ctx, query, userName).Scan(&a.ID, &a.UserName, &a.PasswordHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return a, nil
}

// Upsert creates the admin or replaces the password of an existing one.
func (r *PostgresRepository) Upsert(ctx context.Context, admin *models.Admin) (*models.Admin, error) {
	query :=
		`INSERT INTO admins (username, password_hash)
		 VALUES ($1, $2)
		 ON CONFLICT (username) DO UPDATE SET password_hash = EXCLUDED.password_hash
		 RETURNING id`

	if err := r.db.QueryRowContext(ctx, query, admin.UserName, admin.PasswordHash).Scan(&admin.ID); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return admin, nil
}
