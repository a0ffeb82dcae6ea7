package userrepo

import (
	"context"

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

const userColumns = "id, email, name, photo_url, role, coin, password_hash, created_at"

func (r *Repository) scanUser(row pgx.Row) (*domain.User, error) {
	var user domain.User
	err := row.Scan(&user.ID, &user.Email, &user.Name, &user.PhotoURL, &user.Role, &user.Coin, &user.PasswordHash, &user.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		zap.L().Error("can't scan user", zap.Error(err))
		return nil, pg.TranslateError(err)
	}
	return &user, nil
}

func (r *Repository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return r.scanUser(r.db.QueryRow(ctx, query, email))
}

// FindByEmailFold matches the email case-insensitively. Emails are
// case-insensitive identifiers here; the exact match is tried first and this
// is the fallback.
func (r *Repository) FindByEmailFold(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE lower(email) = lower($1)`
	return r.scanUser(r.db.QueryRow(ctx, query, email))
}

func (r *Repository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	query := `
		INSERT INTO users (email, name, photo_url, role, coin, password_hash)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`
	err := r.db.QueryRow(ctx, query, user.Email, user.Name, user.PhotoURL, user.Role, user.Coin, user.PasswordHash).
		Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		zap.L().Error("can't save user", zap.Error(err))
		return nil, pg.TranslateError(err)
	}
	return user, nil
}

// Credit adds amount coins to the user's balance.
func (r *Repository) Credit(ctx context.Context, email string, amount int64) error {
	query := `UPDATE users SET coin = coin + $1 WHERE email = $2 RETURNING coin`
	var balance int64
	err := r.db.QueryRow(ctx, query, amount, email).Scan(&balance)
	if err != nil {
		if err == pgx.ErrNoRows {
			return domain.ErrNotFound
		}
		zap.L().Error("can't credit user", zap.Error(err))
		return pg.TranslateError(err)
	}
	return nil
}

// Debit subtracts amount coins, conditional on the current stored balance
// covering it. Losing a race against a concurrent debit surfaces as
// ErrInsufficientFunds, never as a negative balance.
func (r *Repository) Debit(ctx context.Context, email string, amount int64) error {
	query := `UPDATE users SET coin = coin - $1 WHERE email = $2 AND coin >= $1 RETURNING coin`
	var balance int64
	err := r.db.QueryRow(ctx, query, amount, email).Scan(&balance)
	if err != nil {
		if err == pgx.ErrNoRows {
			return domain.ErrInsufficientFunds
		}
		zap.L().Error("can't debit user", zap.Error(err))
		return pg.TranslateError(err)
	}
	return nil
}

func (r *Repository) UpdateRole(ctx context.Context, email string, role domain.Role) error {
	tag, err := r.db.Exec(ctx, `UPDATE users SET role = $1 WHERE email = $2`, role, email)
	if err != nil {
		zap.L().Error("can't update role", zap.Error(err))
		return pg.TranslateError(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *Repository) Delete(ctx context.Context, email string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM users WHERE email = $1`, email)
	if err != nil {
		zap.L().Error("can't delete user", zap.Error(err))
		return pg.TranslateError(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *Repository) List(ctx context.Context) ([]domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at DESC`
	return r.queryUsers(ctx, query)
}

func (r *Repository) TopWorkers(ctx context.Context, limit int) ([]domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE role = 'worker' ORDER BY coin DESC LIMIT $1`
	return r.queryUsers(ctx, query, limit)
}

func (r *Repository) queryUsers(ctx context.Context, query string, args ...any) ([]domain.User, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		zap.L().Error("can't query users", zap.Error(err))
		return nil, pg.TranslateError(err)
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		var user domain.User
		err := rows.Scan(&user.ID, &user.Email, &user.Name, &user.PhotoURL, &user.Role, &user.Coin, &user.PasswordHash, &user.CreatedAt)
		if err != nil {
			zap.L().Error("can't scan user row", zap.Error(err))
			return nil, pg.TranslateError(err)
		}
		users = append(users, user)
	}
	return users, nil
}

func (r *Repository) CountByRole(ctx context.Context, role domain.Role) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM users WHERE role = $1`, role).Scan(&count)
	if err != nil {
		zap.L().Error("can't count users", zap.Error(err))
		return 0, pg.TranslateError(err)
	}
	return count, nil
}

func (r *Repository) SumCoins(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.QueryRow(ctx, `SELECT COALESCE(SUM(coin), 0) FROM users`).Scan(&total)
	if err != nil {
		zap.L().Error("can't sum coins", zap.Error(err))
		return 0, pg.TranslateError(err)
	}
	return total, nil
}
