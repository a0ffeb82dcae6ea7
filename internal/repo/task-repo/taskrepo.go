package taskrepo

import (
	"context"
	"fmt"
	"strings"
	"time"

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

// Filter narrows the public task listing. Only tasks with open slots are
// visible unless IncludeFull is set (admin listing).
type Filter struct {
	Search       string
	DeadlineFrom time.Time
	RewardMin    int64
	RewardMax    int64
	IncludeFull  bool
	Page         int
	Limit        int
}

const taskColumns = "id, title, detail, buyer_email, buyer_name, required_workers, payable_amount, completion_date, submission_info, image_url, created_at, updated_at"

func (r *Repository) Save(ctx context.Context, task *domain.Task) error {
	query := `
		INSERT INTO tasks (title, detail, buyer_email, buyer_name, required_workers, payable_amount, completion_date, submission_info, image_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query,
		task.Title, task.Detail, task.BuyerEmail, task.BuyerName,
		task.RequiredWorkers, task.PayableAmount, task.CompletionDate,
		task.SubmissionInfo, task.ImageURL,
	).Scan(&task.ID, &task.CreatedAt, &task.UpdatedAt)
	if err != nil {
		zap.L().Error("can't save task", zap.Error(err))
		return pg.TranslateError(err)
	}
	return nil
}

func (r *Repository) FindByID(ctx context.Context, id int) (*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1`
	row := r.db.QueryRow(ctx, query, id)
	var task domain.Task
	err := row.Scan(&task.ID, &task.Title, &task.Detail, &task.BuyerEmail, &task.BuyerName,
		&task.RequiredWorkers, &task.PayableAmount, &task.CompletionDate,
		&task.SubmissionInfo, &task.ImageURL, &task.CreatedAt, &task.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		zap.L().Error("can't find task", zap.Error(err))
		return nil, pg.TranslateError(err)
	}
	return &task, nil
}

func (r *Repository) List(ctx context.Context, filter Filter) ([]domain.Task, int, error) {
	conds := make([]string, 0, 4)
	args := make([]any, 0, 4)
	if !filter.IncludeFull {
		conds = append(conds, "required_workers > 0")
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		conds = append(conds, fmt.Sprintf("(title ILIKE $%d OR detail ILIKE $%d)", len(args), len(args)))
	}
	if !filter.DeadlineFrom.IsZero() {
		args = append(args, filter.DeadlineFrom)
		conds = append(conds, fmt.Sprintf("completion_date >= $%d", len(args)))
	}
	if filter.RewardMin > 0 {
		args = append(args, filter.RewardMin)
		conds = append(conds, fmt.Sprintf("payable_amount >= $%d", len(args)))
	}
	if filter.RewardMax > 0 {
		args = append(args, filter.RewardMax)
		conds = append(conds, fmt.Sprintf("payable_amount <= $%d", len(args)))
	}

	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var total int
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM tasks"+where, args...).Scan(&total); err != nil {
		zap.L().Error("can't count tasks", zap.Error(err))
		return nil, 0, pg.TranslateError(err)
	}

	offset := (filter.Page - 1) * filter.Limit
	args = append(args, filter.Limit, offset)
	query := fmt.Sprintf("SELECT %s FROM tasks%s ORDER BY completion_date DESC LIMIT $%d OFFSET $%d",
		taskColumns, where, len(args)-1, len(args))

	tasks, err := r.queryTasks(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	return tasks, total, nil
}

func (r *Repository) FindByBuyer(ctx context.Context, buyerEmail string) ([]domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE buyer_email = $1 ORDER BY completion_date DESC`
	return r.queryTasks(ctx, query, buyerEmail)
}

func (r *Repository) FindAll(ctx context.Context) ([]domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks ORDER BY created_at DESC`
	return r.queryTasks(ctx, query)
}

func (r *Repository) queryTasks(ctx context.Context, query string, args ...any) ([]domain.Task, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		zap.L().Error("can't query tasks", zap.Error(err))
		return nil, pg.TranslateError(err)
	}
	defer rows.Close()

	var tasks []domain.Task
	for rows.Next() {
		var task domain.Task
		err := rows.Scan(&task.ID, &task.Title, &task.Detail, &task.BuyerEmail, &task.BuyerName,
			&task.RequiredWorkers, &task.PayableAmount, &task.CompletionDate,
			&task.SubmissionInfo, &task.ImageURL, &task.CreatedAt, &task.UpdatedAt)
		if err != nil {
			zap.L().Error("can't scan task row", zap.Error(err))
			return nil, pg.TranslateError(err)
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}

// UpdateDetails edits the descriptive fields only. Capacity and payout are
// entangled with outstanding submissions and the ledger and never change
// after creation.
func (r *Repository) UpdateDetails(ctx context.Context, id int, buyerEmail, title, detail, submissionInfo string) error {
	query := `
		UPDATE tasks
		SET title = $1, detail = $2, submission_info = $3, updated_at = now()
		WHERE id = $4 AND buyer_email = $5
	`
	tag, err := r.db.Exec(ctx, query, title, detail, submissionInfo, id, buyerEmail)
	if err != nil {
		zap.L().Error("can't update task", zap.Error(err))
		return pg.TranslateError(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes the task and reports the capacity the DELETE itself saw.
// The refund must be computed from these values, not from an earlier read:
// a submit can consume a slot between that read and this statement.
func (r *Repository) Delete(ctx context.Context, id int) (requiredWorkers int, payableAmount int64, err error) {
	query := `DELETE FROM tasks WHERE id = $1 RETURNING required_workers, payable_amount`
	err = r.db.QueryRow(ctx, query, id).Scan(&requiredWorkers, &payableAmount)
	if err != nil {
		if err == pgx.ErrNoRows {
			return 0, 0, domain.ErrNotFound
		}
		zap.L().Error("can't delete task", zap.Error(err))
		return 0, 0, pg.TranslateError(err)
	}
	return requiredWorkers, payableAmount, nil
}

// ReserveSlot consumes one open slot, conditional on capacity remaining.
// Two concurrent submitters racing for the last slot cannot both succeed;
// the loser gets ErrConflict.
func (r *Repository) ReserveSlot(ctx context.Context, id int) error {
	query := `
		UPDATE tasks
		SET required_workers = required_workers - 1, updated_at = now()
		WHERE id = $1 AND required_workers > 0
	`
	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		zap.L().Error("can't reserve task slot", zap.Error(err))
		return pg.TranslateError(err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: task is full", domain.ErrConflict)
	}
	return nil
}

// ReleaseSlot reopens a slot after a rejected submission.
func (r *Repository) ReleaseSlot(ctx context.Context, id int) error {
	query := `
		UPDATE tasks
		SET required_workers = required_workers + 1, updated_at = now()
		WHERE id = $1
	`
	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		zap.L().Error("can't release task slot", zap.Error(err))
		return pg.TranslateError(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// BuyerStats returns the task count and the sum of open slots for a buyer.
func (r *Repository) BuyerStats(ctx context.Context, buyerEmail string) (totalTasks int, pendingWorkers int, err error) {
	query := `SELECT COUNT(*), COALESCE(SUM(required_workers), 0) FROM tasks WHERE buyer_email = $1`
	err = r.db.QueryRow(ctx, query, buyerEmail).Scan(&totalTasks, &pendingWorkers)
	if err != nil {
		zap.L().Error("can't fetch buyer stats", zap.Error(err))
		return 0, 0, pg.TranslateError(err)
	}
	return totalTasks, pendingWorkers, nil
}
