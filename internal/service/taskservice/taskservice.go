package taskservice

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/taskhive/taskhive/internal/domain"
	"github.com/taskhive/taskhive/internal/pg"
	taskrepo "github.com/taskhive/taskhive/internal/repo/task-repo"
)

type TaskRepo interface {
	Save(ctx context.Context, task *domain.Task) error
	FindByID(ctx context.Context, id int) (*domain.Task, error)
	List(ctx context.Context, filter taskrepo.Filter) ([]domain.Task, int, error)
	FindByBuyer(ctx context.Context, buyerEmail string) ([]domain.Task, error)
	FindAll(ctx context.Context) ([]domain.Task, error)
	UpdateDetails(ctx context.Context, id int, buyerEmail, title, detail, submissionInfo string) error
	Delete(ctx context.Context, id int) (requiredWorkers int, payableAmount int64, err error)
	BuyerStats(ctx context.Context, buyerEmail string) (int, int, error)
}

// Ledger is the coin balance surface of the user store. Debit fails with
// ErrInsufficientFunds against the current stored balance, not a cached one.
type Ledger interface {
	Credit(ctx context.Context, email string, amount int64) error
	Debit(ctx context.Context, email string, amount int64) error
}

type PaymentRepo interface {
	SumAmountByUser(ctx context.Context, userEmail string) (decimal.Decimal, error)
}

type Service struct {
	taskRepo    TaskRepo
	ledger      Ledger
	paymentRepo PaymentRepo
	txManager   pg.TXManager
}

func New(taskRepo TaskRepo, ledger Ledger, paymentRepo PaymentRepo, txManager pg.TXManager) *Service {
	return &Service{
		taskRepo:    taskRepo,
		ledger:      ledger,
		paymentRepo: paymentRepo,
		txManager:   txManager,
	}
}

// Create reserves required_workers * payable_amount from the buyer and
// inserts the task in the same transaction. The capacity counter and the
// reserved coins stay in lockstep by construction: the reservation exists
// only as the debit paired with the inserted capacity.
func (s *Service) Create(ctx context.Context, buyer *domain.User, task *domain.Task) error {
	if task.Title == "" {
		return fmt.Errorf("%w: task title is required", domain.ErrValidation)
	}
	if task.RequiredWorkers <= 0 {
		return fmt.Errorf("%w: required_workers must be positive", domain.ErrValidation)
	}
	if task.PayableAmount <= 0 {
		return fmt.Errorf("%w: payable_amount must be positive", domain.ErrValidation)
	}

	totalReserved := int64(task.RequiredWorkers) * task.PayableAmount
	if buyer.Coin < totalReserved {
		zap.L().Info("task creation rejected: insufficient funds",
			zap.String("buyer", buyer.Email), zap.Int64("required", totalReserved))
		return fmt.Errorf("%w: not enough coins, purchase coins first", domain.ErrInsufficientFunds)
	}

	task.BuyerEmail = buyer.Email
	task.BuyerName = buyer.Name

	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		if err := s.taskRepo.Save(ctx, task); err != nil {
			return err
		}
		// authoritative funds check; the balance may have moved since the
		// fast-path read above
		return s.ledger.Debit(ctx, buyer.Email, totalReserved)
	})
	if err != nil {
		zap.L().Error("can't create task", zap.String("buyer", buyer.Email), zap.Error(err))
		return err
	}

	zap.L().Info("task created", zap.Int("task_id", task.ID),
		zap.String("buyer", buyer.Email), zap.Int64("reserved", totalReserved))
	return nil
}

func (s *Service) List(ctx context.Context, filter taskrepo.Filter) ([]domain.Task, int, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 50 {
		filter.Limit = 12
	}
	return s.taskRepo.List(ctx, filter)
}

func (s *Service) Get(ctx context.Context, id int) (*domain.Task, error) {
	task, err := s.taskRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, fmt.Errorf("%w: task not found", domain.ErrNotFound)
	}
	return task, nil
}

func (s *Service) ListByBuyer(ctx context.Context, buyerEmail string) ([]domain.Task, error) {
	return s.taskRepo.FindByBuyer(ctx, buyerEmail)
}

func (s *Service) ListAll(ctx context.Context) ([]domain.Task, error) {
	return s.taskRepo.FindAll(ctx)
}

// Edit changes descriptive fields only; capacity and payout are entangled
// with outstanding submissions and the reservation debit.
func (s *Service) Edit(ctx context.Context, buyer *domain.User, id int, title, detail, submissionInfo string) error {
	return s.taskRepo.UpdateDetails(ctx, id, buyer.Email, title, detail, submissionInfo)
}

// Delete removes the task and refunds the unconsumed reservation
// (required_workers * payable_amount) to the owning buyer. An admin
// deleting on a buyer's behalf still refunds that buyer. The refund comes
// from the capacity the DELETE returns, not from the ownership read: a
// submit committing in between has already consumed its slot, and that
// slot's coins belong to the worker's pending submission, not the buyer.
func (s *Service) Delete(ctx context.Context, actor *domain.User, id int) error {
	task, err := s.taskRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if task == nil {
		return fmt.Errorf("%w: task not found", domain.ErrNotFound)
	}
	if actor.Email != task.BuyerEmail && actor.Role != domain.RoleAdmin {
		return fmt.Errorf("%w: only the owning buyer or an admin can delete a task", domain.ErrForbidden)
	}

	var refund int64
	err = s.txManager.Begin(ctx, func(ctx context.Context) error {
		remaining, payable, err := s.taskRepo.Delete(ctx, task.ID)
		if err != nil {
			return err
		}
		refund = int64(remaining) * payable
		if refund > 0 {
			return s.ledger.Credit(ctx, task.BuyerEmail, refund)
		}
		return nil
	})
	if err != nil {
		zap.L().Error("can't delete task", zap.Int("task_id", id), zap.Error(err))
		return err
	}

	zap.L().Info("task deleted", zap.Int("task_id", id),
		zap.String("actor", actor.Email), zap.Int64("refund", refund))
	return nil
}

func (s *Service) BuyerStats(ctx context.Context, buyerEmail string) (totalTasks, pendingWorkers int, totalPayment decimal.Decimal, err error) {
	totalTasks, pendingWorkers, err = s.taskRepo.BuyerStats(ctx, buyerEmail)
	if err != nil {
		return 0, 0, decimal.Zero, err
	}
	totalPayment, err = s.paymentRepo.SumAmountByUser(ctx, buyerEmail)
	if err != nil {
		return 0, 0, decimal.Zero, err
	}
	return totalTasks, pendingWorkers, totalPayment, nil
}
