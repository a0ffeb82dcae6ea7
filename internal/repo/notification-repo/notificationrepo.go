package notificationrepo

import (
	"context"

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

func (r *Repository) Save(ctx context.Context, n *domain.Notification) error {
	query := `
		INSERT INTO notifications (to_email, message, action_route)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`
	err := r.db.QueryRow(ctx, query, n.ToEmail, n.Message, n.ActionRoute).Scan(&n.ID, &n.CreatedAt)
	if err != nil {
		zap.L().Error("can't save notification", zap.Error(err))
		return pg.TranslateError(err)
	}
	return nil
}

func (r *Repository) ListByRecipient(ctx context.Context, toEmail string, limit int) ([]domain.Notification, error) {
	query := `
		SELECT id, to_email, message, action_route, created_at
		FROM notifications
		WHERE to_email = $1
		ORDER BY created_at DESC
		LIMIT $2
	`
	rows, err := r.db.Query(ctx, query, toEmail, limit)
	if err != nil {
		zap.L().Error("can't query notifications", zap.Error(err))
		return nil, pg.TranslateError(err)
	}
	defer rows.Close()

	var notifications []domain.Notification
	for rows.Next() {
		var n domain.Notification
		err := rows.Scan(&n.ID, &n.ToEmail, &n.Message, &n.ActionRoute, &n.CreatedAt)
		if err != nil {
			zap.L().Error("can't scan notification row", zap.Error(err))
			return nil, pg.TranslateError(err)
		}
		notifications = append(notifications, n)
	}
	return notifications, nil
}
