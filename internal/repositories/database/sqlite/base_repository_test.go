package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/SscSPs/shopledger/internal/apperrors"
	"github.com/SscSPs/shopledger/internal/core/domain"
	portsrepo "github.com/SscSPs/shopledger/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockStore(t *testing.T) (*SQLStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewStore(db), mock
}

func TestWithinTx_RollsBackWhenCallbackFails(t *testing.T) {
	store, mock := newMockStore(t)
	boom := errors.New("boom")

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO customers").
		WithArgs("c-1", "Asha", nil, nil, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectRollback()

	err := store.WithinTx(context.Background(), func(ctx context.Context, tx portsrepo.Tx) error {
		require.NoError(t, tx.SaveCustomer(ctx, domain.Customer{CustomerID: "c-1", Name: "Asha"}))
		return boom
	})

	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithinTx_Commits(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectCommit()

	err := store.WithinTx(context.Background(), func(ctx context.Context, tx portsrepo.Tx) error {
		return nil
	})

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdjustLedgerBalance_MissingLedger(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery("SELECT current_balance FROM ledgers").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"current_balance"}))

	_, err := store.AdjustLedgerBalance(context.Background(), "missing", decimal.NewFromInt(10), time.Now())

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdjustLedgerBalance_WritesFixedPointText(t *testing.T) {
	store, mock := newMockStore(t)
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery("SELECT current_balance FROM ledgers").
		WithArgs("l-1").
		WillReturnRows(sqlmock.NewRows([]string{"current_balance"}).AddRow("100.50"))
	mock.ExpectExec("UPDATE ledgers SET current_balance").
		WithArgs("80.25", "2026-03-01T10:00:00.000000000Z", "l-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	balance, err := store.AdjustLedgerBalance(context.Background(), "l-1", decimal.RequireFromString("-20.25"), now)

	require.NoError(t, err)
	assert.True(t, balance.Equal(decimal.RequireFromString("80.25")))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteLedgerTransaction_NoRows(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectExec("DELETE FROM ledger_transactions").
		WithArgs("t-1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := store.DeleteLedgerTransaction(context.Background(), "t-1")

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestTimeColumns(t *testing.T) {
	var ts time.Time
	require.NoError(t, timeCol{&ts}.Scan("2026-01-02T03:04:05.000000006Z"))
	assert.Equal(t, time.Date(2026, 1, 2, 3, 4, 5, 6, time.UTC), ts)

	var due *time.Time
	require.NoError(t, nullTimeCol{&due}.Scan(nil))
	assert.Nil(t, due)
	require.NoError(t, nullTimeCol{&due}.Scan([]byte("2026-01-02T00:00:00.000000000Z")))
	require.NotNil(t, due)

	assert.Error(t, timeCol{&ts}.Scan(42))
	assert.Equal(t, "2026-01-02T03:04:05.000000006Z", formatTime(ts))
}
