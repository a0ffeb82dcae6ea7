package pg

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"

	"github.com/taskhive/taskhive/internal/domain"
)

func newManager(t *testing.T) (*Manager, pgxmock.PgxPoolIface) {
	mockDB, err := pgxmock.NewPool()
	assert.NoError(t, err)
	return &Manager{pool: mockDB}, mockDB
}

func TestManagerBegin_Commit(t *testing.T) {
	manager, mock := newManager(t)

	mock.ExpectBegin()
	mock.ExpectCommit()
	mock.ExpectRollback().WillReturnError(pgx.ErrTxClosed)

	err := manager.Begin(context.Background(), func(ctx context.Context) error {
		return nil
	})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestManagerBegin_FnErrorRollsBack(t *testing.T) {
	manager, mock := newManager(t)

	mock.ExpectBegin()
	mock.ExpectRollback()

	err := manager.Begin(context.Background(), func(ctx context.Context) error {
		return domain.ErrConflict
	})
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestManagerBegin_CommitFailure(t *testing.T) {
	manager, mock := newManager(t)

	mock.ExpectBegin()
	mock.ExpectCommit().WillReturnError(errors.New("broken pipe"))
	mock.ExpectRollback().WillReturnError(pgx.ErrTxClosed)

	// a failed commit is a store failure, not an application error
	err := manager.Begin(context.Background(), func(ctx context.Context) error {
		return nil
	})
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestManagerBegin_NestedReusesTransaction(t *testing.T) {
	manager, mock := newManager(t)

	mock.ExpectBegin()
	mock.ExpectCommit()
	mock.ExpectRollback().WillReturnError(pgx.ErrTxClosed)

	err := manager.Begin(context.Background(), func(ctx context.Context) error {
		// inner Begin must not open a second transaction
		return manager.Begin(ctx, func(ctx context.Context) error {
			return nil
		})
	})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
