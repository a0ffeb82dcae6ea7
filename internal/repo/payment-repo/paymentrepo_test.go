package paymentrepo

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/taskhive/taskhive/internal/domain"
)

func NewMock(t *testing.T) (*Repository, pgxmock.PgxPoolIface) {
	mockDB, err := pgxmock.NewPool()
	assert.NoError(t, err)
	repo := New(mockDB)
	defer mockDB.Close()

	return repo, mockDB
}

func TestRepository_Save(t *testing.T) {
	repo, mock := NewMock(t)
	now := time.Now()
	amount := decimal.NewFromInt(10)

	mock.ExpectQuery(regexp.QuoteMeta(`
		INSERT INTO payments (user_email, user_name, coins, amount, provider_ref)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`)).
		WithArgs("buyer@example.com", "Buyer", int64(150), amount, "pi_1").
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(1, now))

	p := &domain.Payment{
		UserEmail:   "buyer@example.com",
		UserName:    "Buyer",
		Coins:       150,
		Amount:      amount,
		ProviderRef: "pi_1",
	}
	err := repo.Save(context.Background(), p)
	assert.NoError(t, err)
	assert.Equal(t, 1, p.ID)
}

func TestRepository_ListByUser(t *testing.T) {
	repo, mock := NewMock(t)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta(`
		SELECT id, user_email, user_name, coins, amount, provider_ref, created_at
		FROM payments
		WHERE user_email = $1
		ORDER BY created_at DESC
	`)).
		WithArgs("buyer@example.com").
		WillReturnRows(pgxmock.NewRows([]string{"id", "user_email", "user_name", "coins", "amount", "provider_ref", "created_at"}).
			AddRow(2, "buyer@example.com", "Buyer", int64(500), decimal.NewFromInt(20), "pi_2", now).
			AddRow(1, "buyer@example.com", "Buyer", int64(150), decimal.NewFromInt(10), "pi_1", now))

	payments, err := repo.ListByUser(context.Background(), "buyer@example.com")
	assert.NoError(t, err)
	assert.Len(t, payments, 2)
	assert.Equal(t, int64(500), payments[0].Coins)
}

func TestRepository_SumAmount(t *testing.T) {
	repo, mock := NewMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COALESCE(SUM(amount), 0) FROM payments`)).
		WillReturnRows(pgxmock.NewRows([]string{"coalesce"}).AddRow(decimal.NewFromInt(75)))

	total, err := repo.SumAmount(context.Background())
	assert.NoError(t, err)
	assert.True(t, total.Equal(decimal.NewFromInt(75)))
}

func TestRepository_SumAmountByUser(t *testing.T) {
	repo, mock := NewMock(t)

	t.Run("Sums only the user's payments", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT COALESCE(SUM(amount), 0) FROM payments WHERE user_email = $1`)).
			WithArgs("buyer@example.com").
			WillReturnRows(pgxmock.NewRows([]string{"coalesce"}).AddRow(decimal.NewFromInt(30)))

		total, err := repo.SumAmountByUser(context.Background(), "buyer@example.com")
		assert.NoError(t, err)
		assert.True(t, total.Equal(decimal.NewFromInt(30)))
	})

	t.Run("Store failure", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT COALESCE(SUM(amount), 0) FROM payments WHERE user_email = $1`)).
			WithArgs("buyer@example.com").
			WillReturnError(errors.New("db error"))

		total, err := repo.SumAmountByUser(context.Background(), "buyer@example.com")
		assert.Error(t, err)
		assert.True(t, total.IsZero())
	})
}
