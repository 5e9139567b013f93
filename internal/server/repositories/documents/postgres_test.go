package documents

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/examdesk/internal/common"
	"github.com/dmitrijs2005/examdesk/internal/server/models"
)

func TestCreateAndGet(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()
	repo := NewPostgresRepository(db)

	now := time.Now()
	mock.ExpectQuery(`(?s)^INSERT INTO documents`).
		WithArgs("invoice", "purchase:pu1", "Invoice_Asha_INV-1.pdf", "documents/2026/10/19/k").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow("d1", now))
	d, err := repo.Create(context.Background(), &models.Document{
		Kind: "invoice", OwnerRef: "purchase:pu1", Filename: "Invoice_Asha_INV-1.pdf", StorageKey: "documents/2026/10/19/k",
	})
	require.NoError(t, err)
	assert.Equal(t, "d1", d.ID)

	mock.ExpectQuery(`FROM documents WHERE id = \$1`).WithArgs("d2").WillReturnError(sql.ErrNoRows)
	_, err = repo.Get(context.Background(), "d2")
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestGet_MalformedIDIsNotFound(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectQuery(`FROM documents WHERE id = \$1`).WithArgs("not-a-uuid").
		WillReturnError(&pgconn.PgError{Code: "22P02", Message: `invalid input syntax for type uuid: "not-a-uuid"`})
	_, err = repo.Get(context.Background(), "not-a-uuid")
	require.ErrorIs(t, err, common.ErrorNotFound)

	mock.ExpectQuery(`FROM documents WHERE id = \$1`).WithArgs("d3").WillReturnError(&pgconn.PgError{Code: "08006"})
	_, err = repo.Get(context.Background(), "d3")
	require.Error(t, err)
	assert.NotErrorIs(t, err, common.ErrorNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}
