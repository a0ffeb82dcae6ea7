package withdrawalrepo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/taskhive/taskhive/internal/domain"
	"github.com/taskhive/taskhive/internal/pg"
)

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

const withdrawalColumns = "id, worker_email, worker_name, coin_amount, amount, payment_system, account_number, status, created_at, updated_at"

func (r *Repository) Save(ctx context.Context, w *domain.Withdrawal) error {
	query := `
		INSERT INTO withdrawals (worker_email, worker_name, coin_amount, amount, payment_system, account_number, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query,
		w.WorkerEmail, w.WorkerName, w.CoinAmount, w.Amount,
		w.PaymentSystem, w.AccountNumber, w.Status,
	).Scan(&w.ID, &w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		zap.L().Error("can't save withdrawal", zap.Error(err))
		return pg.TranslateError(err)
	}
	return nil
}

// ApproveIfPending flips a pending withdrawal to approved and returns the
// updated record. A second approval attempt matches zero rows and reports
// ErrNotFound.
func (r *Repository) ApproveIfPending(ctx context.Context, id int) (*domain.Withdrawal, error) {
	query := `
		UPDATE withdrawals
		SET status = 'approved', updated_at = now()
		WHERE id = $1 AND status = 'pending'
		RETURNING ` + withdrawalColumns + `
	`
	row := r.db.QueryRow(ctx, query, id)
	var w domain.Withdrawal
	err := row.Scan(&w.ID, &w.WorkerEmail, &w.WorkerName, &w.CoinAmount, &w.Amount,
		&w.PaymentSystem, &w.AccountNumber, &w.Status, &w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, fmt.Errorf("%w: withdrawal not found", domain.ErrNotFound)
		}
		zap.L().Error("can't approve withdrawal", zap.Error(err))
		return nil, pg.TranslateError(err)
	}
	return &w, nil
}

func (r *Repository) ListByWorker(ctx context.Context, workerEmail string) ([]domain.Withdrawal, error) {
	query := `SELECT ` + withdrawalColumns + ` FROM withdrawals WHERE worker_email = $1 ORDER BY created_at DESC`
	return r.queryWithdrawals(ctx, query, workerEmail)
}

func (r *Repository) ListPending(ctx context.Context) ([]domain.Withdrawal, error) {
	query := `SELECT ` + withdrawalColumns + ` FROM withdrawals WHERE status = 'pending' ORDER BY created_at DESC`
	return r.queryWithdrawals(ctx, query)
}

func (r *Repository) queryWithdrawals(ctx context.Context, query string, args ...any) ([]domain.Withdrawal, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		zap.L().Error("can't query withdrawals", zap.Error(err))
		return nil, pg.TranslateError(err)
	}
	defer rows.Close()

	var withdrawals []domain.Withdrawal
	for rows.Next() {
		var w domain.Withdrawal
		err := rows.Scan(&w.ID, &w.WorkerEmail, &w.WorkerName, &w.CoinAmount, &w.Amount,
			&w.PaymentSystem, &w.AccountNumber, &w.Status, &w.CreatedAt, &w.UpdatedAt)
		if err != nil {
			zap.L().Error("can't scan withdrawal row", zap.Error(err))
			return nil, pg.TranslateError(err)
		}
		withdrawals = append(withdrawals, w)
	}

	return withdrawals, nil
}
