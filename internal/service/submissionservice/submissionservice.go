package submissionservice

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/taskhive/taskhive/internal/domain"
	"github.com/taskhive/taskhive/internal/notify"
	"github.com/taskhive/taskhive/internal/pg"
)

type SubmissionRepo interface {
	Save(ctx context.Context, sub *domain.Submission) error
	UpdateStatusIfPending(ctx context.Context, id int, buyerEmail, status string) (*domain.Submission, error)
	ListByWorker(ctx context.Context, workerEmail string, page, limit int) ([]domain.Submission, int, error)
	ListApprovedByWorker(ctx context.Context, workerEmail string) ([]domain.Submission, error)
	ListPendingByBuyer(ctx context.Context, buyerEmail string) ([]domain.Submission, error)
	WorkerStats(ctx context.Context, workerEmail string) (int, int, int64, error)
}

type TaskRepo interface {
	FindByID(ctx context.Context, id int) (*domain.Task, error)
	ReserveSlot(ctx context.Context, id int) error
	ReleaseSlot(ctx context.Context, id int) error
}

type Ledger interface {
	Credit(ctx context.Context, email string, amount int64) error
}

type Notifier interface {
	Notify(ctx context.Context, msg notify.Message)
}

type Service struct {
	submissionRepo SubmissionRepo
	taskRepo       TaskRepo
	ledger         Ledger
	notifier       Notifier
	txManager      pg.TXManager
}

func New(submissionRepo SubmissionRepo, taskRepo TaskRepo, ledger Ledger, notifier Notifier, txManager pg.TXManager) *Service {
	return &Service{
		submissionRepo: submissionRepo,
		taskRepo:       taskRepo,
		ledger:         ledger,
		notifier:       notifier,
		txManager:      txManager,
	}
}

// Submit inserts a pending submission and consumes one task slot in the
// same transaction. Capacity is consumed here, not at approval, so
// concurrent submitters cannot oversubscribe a task; the slot is given back
// only if the work is later rejected. A duplicate by the same worker hits
// the unique index and rolls the reservation back.
func (s *Service) Submit(ctx context.Context, worker *domain.User, taskID int, details string) (*domain.Submission, error) {
	task, err := s.taskRepo.FindByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, fmt.Errorf("%w: task not found", domain.ErrNotFound)
	}
	if task.RequiredWorkers <= 0 {
		return nil, fmt.Errorf("%w: task is full", domain.ErrConflict)
	}

	sub := &domain.Submission{
		TaskID:        task.ID,
		TaskTitle:     task.Title,
		PayableAmount: task.PayableAmount,
		WorkerEmail:   worker.Email,
		WorkerName:    worker.Name,
		BuyerEmail:    task.BuyerEmail,
		BuyerName:     task.BuyerName,
		Details:       details,
		Status:        domain.SubmissionPending,
	}

	err = s.txManager.Begin(ctx, func(ctx context.Context) error {
		if err := s.taskRepo.ReserveSlot(ctx, task.ID); err != nil {
			return err
		}
		return s.submissionRepo.Save(ctx, sub)
	})
	if err != nil {
		zap.L().Info("submission rejected", zap.Int("task_id", taskID),
			zap.String("worker", worker.Email), zap.Error(err))
		return nil, err
	}

	s.notifier.Notify(ctx, notify.Message{
		ToEmail:      task.BuyerEmail,
		Text:         fmt.Sprintf("%s submitted for task %q. Payable: %d coins.", worker.Name, task.Title, task.PayableAmount),
		ActionRoute:  "/dashboard/tasks-to-review",
		EmailSubject: "New submission",
		EmailBody:    fmt.Sprintf("%s submitted for task %q.", worker.Name, task.Title),
	})

	zap.L().Info("submission created", zap.Int("submission_id", sub.ID),
		zap.Int("task_id", taskID), zap.String("worker", worker.Email))
	return sub, nil
}

// Approve flips pending to approved and credits the worker the payable
// amount captured at submit time. The status flip is the guard: a second
// approve or reject attempt matches nothing and cannot pay twice. Capacity
// stays consumed.
func (s *Service) Approve(ctx context.Context, buyer *domain.User, id int) (*domain.Submission, error) {
	var sub *domain.Submission
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		var err error
		sub, err = s.submissionRepo.UpdateStatusIfPending(ctx, id, buyer.Email, domain.SubmissionApproved)
		if err != nil {
			return err
		}
		return s.ledger.Credit(ctx, sub.WorkerEmail, sub.PayableAmount)
	})
	if err != nil {
		zap.L().Info("approval failed", zap.Int("submission_id", id), zap.Error(err))
		return nil, err
	}

	s.notifier.Notify(ctx, notify.Message{
		ToEmail:      sub.WorkerEmail,
		Text:         fmt.Sprintf("You have earned %d coins from %s for completing %q.", sub.PayableAmount, sub.BuyerName, sub.TaskTitle),
		ActionRoute:  "/dashboard/worker-home",
		EmailSubject: "Task approved",
		EmailBody:    fmt.Sprintf("You earned %d coins for %q.", sub.PayableAmount, sub.TaskTitle),
	})

	zap.L().Info("submission approved", zap.Int("submission_id", id),
		zap.String("worker", sub.WorkerEmail), zap.Int64("credited", sub.PayableAmount))
	return sub, nil
}

// Reject flips pending to rejected and reopens the task slot. No coins
// move; the reservation stays with the task until it is filled or deleted.
func (s *Service) Reject(ctx context.Context, buyer *domain.User, id int) (*domain.Submission, error) {
	var sub *domain.Submission
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		var err error
		sub, err = s.submissionRepo.UpdateStatusIfPending(ctx, id, buyer.Email, domain.SubmissionRejected)
		if err != nil {
			return err
		}
		if err := s.taskRepo.ReleaseSlot(ctx, sub.TaskID); err != nil {
			// a deleted task has no slot to reopen; the flip still lands
			if errors.Is(err, domain.ErrNotFound) {
				return nil
			}
			return err
		}
		return nil
	})
	if err != nil {
		zap.L().Info("rejection failed", zap.Int("submission_id", id), zap.Error(err))
		return nil, err
	}

	s.notifier.Notify(ctx, notify.Message{
		ToEmail:     sub.WorkerEmail,
		Text:        fmt.Sprintf("Your submission for %q was rejected by %s.", sub.TaskTitle, sub.BuyerName),
		ActionRoute: "/dashboard/my-submissions",
	})

	zap.L().Info("submission rejected by buyer", zap.Int("submission_id", id),
		zap.Int("task_id", sub.TaskID))
	return sub, nil
}

func (s *Service) ListByWorker(ctx context.Context, workerEmail string, page, limit int) ([]domain.Submission, int, error) {
	if page < 1 {
		page = 1
	}
	if limit < 5 || limit > 20 {
		limit = 10
	}
	return s.submissionRepo.ListByWorker(ctx, workerEmail, page, limit)
}

func (s *Service) ListApprovedByWorker(ctx context.Context, workerEmail string) ([]domain.Submission, error) {
	return s.submissionRepo.ListApprovedByWorker(ctx, workerEmail)
}

func (s *Service) ListPendingByBuyer(ctx context.Context, buyerEmail string) ([]domain.Submission, error) {
	return s.submissionRepo.ListPendingByBuyer(ctx, buyerEmail)
}

func (s *Service) WorkerStats(ctx context.Context, workerEmail string) (total, pending int, earned int64, err error) {
	return s.submissionRepo.WorkerStats(ctx, workerEmail)
}
