package payments

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

var cols = []string{"id", "order_id", "payment_id", "signature", "amount", "currency", "status", "bypass_reason",
	"session_id", "candidate_id", "item_id", "flow", "created_at"}

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return NewPostgresRepository(db), mock, db
}

func TestCreate_Bypass(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)^INSERT\s+INTO\s+payments`).
		WithArgs(nil, "", "", int64(0), "INR", models.PaymentPaid, models.BypassFree,
			"sess-1", "c1", "e1", models.FlowExamRegistration).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow("p1", time.Now()))

	p, err := repo.Create(context.Background(), &models.Payment{
		Amount: 0, Currency: "INR", Status: models.PaymentPaid, BypassReason: models.BypassFree,
		SessionID: "sess-1", CandidateID: "c1", ItemID: "e1", Flow: models.FlowExamRegistration,
	})
	require.NoError(t, err)
	assert.Equal(t, "p1", p.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByOrderID(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`FROM payments WHERE order_id = \$1`).WithArgs("order_1").
		WillReturnRows(sqlmock.NewRows(cols).AddRow("p1", "order_1", "", "", int64(49900), "INR", "created", "", "sess-2", "c1", "item-1", "purchase", time.Now()))
	p, err := repo.GetByOrderID(context.Background(), "order_1")
	require.NoError(t, err)
	assert.Equal(t, models.PaymentCreated, p.Status)
	assert.Equal(t, "order_1", p.OrderID)
	assert.Equal(t, "c1", p.CandidateID)
	assert.Equal(t, "item-1", p.ItemID)
	assert.Equal(t, models.FlowPurchase, p.Flow)

	mock.ExpectQuery(`FROM payments WHERE id = \$1`).WithArgs("zz").WillReturnError(sql.ErrNoRows)
	_, err = repo.Get(context.Background(), "zz")
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestMarkPaid(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)^UPDATE payments\s+SET status = 'paid'.+WHERE order_id = \$1`).
		WithArgs("order_1", "pay_1", "sig").
		WillReturnRows(sqlmock.NewRows(cols).AddRow("p1", "order_1", "pay_1", "sig", int64(49900), "INR", "paid", "", "", nil, nil, "", time.Now()))

	p, err := repo.MarkPaid(context.Background(), "order_1", "pay_1", "sig")
	require.NoError(t, err)
	assert.Equal(t, models.PaymentPaid, p.Status)
	assert.Equal(t, "pay_1", p.PaymentID)
	assert.Empty(t, p.CandidateID)
}

func TestGetBypass(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`FROM payments WHERE session_id = \$1 AND bypass_reason <> ''`).WithArgs("sess-1").
		WillReturnRows(sqlmock.NewRows(cols).AddRow("p1", nil, "", "", int64(0), "INR", "paid", "free", "sess-1", "c1", "e1", "exam_registration", time.Now()))
	p, err := repo.GetBypass(context.Background(), "sess-1")
	require.NoError(t, err)
	assert.Equal(t, "p1", p.ID)
	assert.Empty(t, p.OrderID)

	mock.ExpectQuery(`WHERE session_id`).WithArgs("sess-2").WillReturnError(sql.ErrNoRows)
	_, err = repo.GetBypass(context.Background(), "sess-2")
	require.ErrorIs(t, err, common.ErrorNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkFailed(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`(?s)SET status = 'failed'.+AND status = 'created'`).WithArgs("order_1", "pay_x").
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.MarkFailed(context.Background(), "order_1", "pay_x"))

	mock.ExpectExec(`UPDATE payments`).WillReturnError(errors.New("boom"))
	require.Error(t, repo.MarkFailed(context.Background(), "order_2", ""))
}
