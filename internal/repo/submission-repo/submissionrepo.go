package submissionrepo

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

const submissionColumns = "id, task_id, task_title, payable_amount, worker_email, worker_name, buyer_email, buyer_name, details, status, created_at, updated_at"

// Save inserts a pending submission. The unique index on
// (task_id, worker_email) turns a duplicate submission into ErrConflict.
func (r *Repository) Save(ctx context.Context, sub *domain.Submission) error {
	query := `
		INSERT INTO submissions (task_id, task_title, payable_amount, worker_email, worker_name, buyer_email, buyer_name, details, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query,
		sub.TaskID, sub.TaskTitle, sub.PayableAmount,
		sub.WorkerEmail, sub.WorkerName, sub.BuyerEmail, sub.BuyerName,
		sub.Details, sub.Status,
	).Scan(&sub.ID, &sub.CreatedAt, &sub.UpdatedAt)
	if err != nil {
		zap.L().Error("can't save submission", zap.Error(err))
		return pg.TranslateError(err)
	}
	return nil
}

func (r *Repository) FindByID(ctx context.Context, id int) (*domain.Submission, error) {
	query := `SELECT ` + submissionColumns + ` FROM submissions WHERE id = $1`
	row := r.db.QueryRow(ctx, query, id)
	var sub domain.Submission
	err := row.Scan(&sub.ID, &sub.TaskID, &sub.TaskTitle, &sub.PayableAmount,
		&sub.WorkerEmail, &sub.WorkerName, &sub.BuyerEmail, &sub.BuyerName,
		&sub.Details, &sub.Status, &sub.CreatedAt, &sub.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		zap.L().Error("can't find submission", zap.Error(err))
		return nil, pg.TranslateError(err)
	}
	return &sub, nil
}

// UpdateStatusIfPending flips a pending submission owned by buyerEmail to
// status and returns the updated record. A stale or repeated transition
// matches zero rows and reports ErrNotFound, same as a submission the buyer
// does not own.
func (r *Repository) UpdateStatusIfPending(ctx context.Context, id int, buyerEmail, status string) (*domain.Submission, error) {
	query := `
		UPDATE submissions
		SET status = $1, updated_at = now()
		WHERE id = $2 AND buyer_email = $3 AND status = 'pending'
		RETURNING ` + submissionColumns + `
	`
	row := r.db.QueryRow(ctx, query, status, id, buyerEmail)
	var sub domain.Submission
	err := row.Scan(&sub.ID, &sub.TaskID, &sub.TaskTitle, &sub.PayableAmount,
		&sub.WorkerEmail, &sub.WorkerName, &sub.BuyerEmail, &sub.BuyerName,
		&sub.Details, &sub.Status, &sub.CreatedAt, &sub.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, fmt.Errorf("%w: submission not found", domain.ErrNotFound)
		}
		zap.L().Error("can't update submission status", zap.Error(err))
		return nil, pg.TranslateError(err)
	}
	return &sub, nil
}

func (r *Repository) ListByWorker(ctx context.Context, workerEmail string, page, limit int) ([]domain.Submission, int, error) {
	var total int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM submissions WHERE worker_email = $1`, workerEmail).Scan(&total)
	if err != nil {
		zap.L().Error("can't count submissions", zap.Error(err))
		return nil, 0, pg.TranslateError(err)
	}

	query := `SELECT ` + submissionColumns + ` FROM submissions WHERE worker_email = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	subs, err := r.querySubmissions(ctx, query, workerEmail, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, err
	}
	return subs, total, nil
}

func (r *Repository) ListApprovedByWorker(ctx context.Context, workerEmail string) ([]domain.Submission, error) {
	query := `SELECT ` + submissionColumns + ` FROM submissions WHERE worker_email = $1 AND status = 'approved' ORDER BY created_at DESC`
	return r.querySubmissions(ctx, query, workerEmail)
}

func (r *Repository) ListPendingByBuyer(ctx context.Context, buyerEmail string) ([]domain.Submission, error) {
	query := `SELECT ` + submissionColumns + ` FROM submissions WHERE buyer_email = $1 AND status = 'pending' ORDER BY created_at DESC`
	return r.querySubmissions(ctx, query, buyerEmail)
}

func (r *Repository) querySubmissions(ctx context.Context, query string, args ...any) ([]domain.Submission, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		zap.L().Error("can't query submissions", zap.Error(err))
		return nil, pg.TranslateError(err)
	}
	defer rows.Close()

	var subs []domain.Submission
	for rows.Next() {
		var sub domain.Submission
		err := rows.Scan(&sub.ID, &sub.TaskID, &sub.TaskTitle, &sub.PayableAmount,
			&sub.WorkerEmail, &sub.WorkerName, &sub.BuyerEmail, &sub.BuyerName,
			&sub.Details, &sub.Status, &sub.CreatedAt, &sub.UpdatedAt)
		if err != nil {
			zap.L().Error("can't scan submission row", zap.Error(err))
			return nil, pg.TranslateError(err)
		}
		subs = append(subs, sub)
	}
	return subs, nil
}

// WorkerStats returns submission counts and total coins earned through
// approvals.
func (r *Repository) WorkerStats(ctx context.Context, workerEmail string) (total int, pending int, earned int64, err error) {
	query := `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE status = 'pending'),
		       COALESCE(SUM(payable_amount) FILTER (WHERE status = 'approved'), 0)
		FROM submissions
		WHERE worker_email = $1
	`
	err = r.db.QueryRow(ctx, query, workerEmail).Scan(&total, &pending, &earned)
	if err != nil {
		zap.L().Error("can't fetch worker stats", zap.Error(err))
		return 0, 0, 0, pg.TranslateError(err)
	}
	return total, pending, earned, nil
}
