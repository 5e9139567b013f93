package candidates

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/examdesk/internal/common"
	"github.com/dmitrijs2005/examdesk/internal/server/models"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return NewPostgresRepository(db), mock, db
}

var cols = []string{"id", "identifier", "name", "father_name", "date_of_birth", "email", "phone", "address", "photo_key", "created_at"}

func TestGetByIdentifier(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	dob := time.Date(2004, 5, 6, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`(?s)SELECT .+ FROM candidates WHERE identifier = \$1`).
		WithArgs("9876543210").
		WillReturnRows(sqlmock.NewRows(cols).AddRow("c1", "9876543210", "Asha", "Raman", dob, "", "9876543210", "", "", time.Now()))

	c, err := repo.GetByIdentifier(context.Background(), "9876543210")
	require.NoError(t, err)
	assert.Equal(t, "c1", c.ID)
	assert.Equal(t, dob, c.DateOfBirth)
}

func TestGet_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`FROM candidates WHERE id = \$1`).WithArgs("x").WillReturnError(sql.ErrNoRows)
	_, err := repo.Get(context.Background(), "x")
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestCreate(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	created := time.Now()
	mock.ExpectQuery(`(?s)^INSERT\s+INTO\s+candidates .+ RETURNING id, created_at$`).
		WithArgs("a@b.in", "Asha", "", nil, "a@b.in", "9876543210", "", "").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow("c9", created))

	c, err := repo.Create(context.Background(), &models.Candidate{
		Identifier: "a@b.in", Name: "Asha", Email: "a@b.in", Phone: "9876543210",
	})
	require.NoError(t, err)
	assert.Equal(t, "c9", c.ID)
	assert.Equal(t, created, c.CreatedAt)
}

func TestCreate_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`INSERT INTO candidates`).WillReturnError(errors.New("unique violation"))
	_, err := repo.Create(context.Background(), &models.Candidate{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db error: unique violation")
}

func TestUpdate(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`(?s)^UPDATE candidates\s+SET name = \$2`).
		WithArgs("c1", "Asha R", "", nil, "", "9876543210", "Pune", "photos/x").
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.Update(context.Background(), &models.Candidate{
		ID: "c1", Name: "Asha R", Phone: "9876543210", Address: "Pune", PhotoKey: "photos/x",
	}))

	mock.ExpectExec(`UPDATE candidates`).WillReturnResult(sqlmock.NewResult(0, 0))
	require.ErrorIs(t, repo.Update(context.Background(), &models.Candidate{ID: "nope"}), common.ErrorNotFound)
}
