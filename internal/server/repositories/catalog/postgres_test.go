package catalog

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/examdesk/internal/common"
)

var cols = []string{"id", "kind", "title", "price", "duration_days", "asset_key"}

func TestList(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectQuery(`(?s)FROM catalog_items\s+WHERE \(\$1 = '' OR kind = \$1\)`).WithArgs("practice_test").
		WillReturnRows(sqlmock.NewRows(cols).AddRow("i1", "practice_test", "NEET Mock", int64(19900), 90, "tests/neet"))

	items, err := repo.List(context.Background(), "practice_test")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 90, items[0].DurationDays)
}

func TestGet_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectQuery(`WHERE id = \$1`).WithArgs("x").WillReturnError(sql.ErrNoRows)
	_, err = repo.Get(context.Background(), "x")
	require.ErrorIs(t, err, common.ErrorNotFound)
}
