package paymentrepo

import (
	"context"

	"github.com/shopspring/decimal"
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

func (r *Repository) Save(ctx context.Context, p *domain.Payment) error {
	query := `
		INSERT INTO payments (user_email, user_name, coins, amount, provider_ref)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`
	err := r.db.QueryRow(ctx, query, p.UserEmail, p.UserName, p.Coins, p.Amount, p.ProviderRef).
		Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		zap.L().Error("can't save payment", zap.Error(err))
		return pg.TranslateError(err)
	}
	return nil
}

func (r *Repository) ListByUser(ctx context.Context, userEmail string) ([]domain.Payment, error) {
	query := `
		SELECT id, user_email, user_name, coins, amount, provider_ref, created_at
		FROM payments
		WHERE user_email = $1
		ORDER BY created_at DESC
	`
	rows, err := r.db.Query(ctx, query, userEmail)
	if err != nil {
		zap.L().Error("can't query payments", zap.Error(err))
		return nil, pg.TranslateError(err)
	}
	defer rows.Close()

	var payments []domain.Payment
	for rows.Next() {
		var p domain.Payment
		err := rows.Scan(&p.ID, &p.UserEmail, &p.UserName, &p.Coins, &p.Amount, &p.ProviderRef, &p.CreatedAt)
		if err != nil {
			zap.L().Error("can't scan payment row", zap.Error(err))
			return nil, pg.TranslateError(err)
		}
		payments = append(payments, p)
	}
	return payments, nil
}

func (r *Repository) SumAmount(ctx context.Context) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.QueryRow(ctx, `SELECT COALESCE(SUM(amount), 0) FROM payments`).Scan(&total)
	if err != nil {
		zap.L().Error("can't sum payments", zap.Error(err))
		return decimal.Zero, pg.TranslateError(err)
	}
	return total, nil
}

func (r *Repository) SumAmountByUser(ctx context.Context, userEmail string) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.QueryRow(ctx, `SELECT COALESCE(SUM(amount), 0) FROM payments WHERE user_email = $1`, userEmail).Scan(&total)
	if err != nil {
		zap.L().Error("can't sum user payments", zap.Error(err))
		return decimal.Zero, pg.TranslateError(err)
	}
	return total, nil
}
