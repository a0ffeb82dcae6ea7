package withdrawalservice

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/taskhive/taskhive/internal/domain"
	"github.com/taskhive/taskhive/internal/notify"
	"github.com/taskhive/taskhive/internal/pg"
	"github.com/taskhive/taskhive/pkg/validate"
)

const (
	// MinWithdrawCoins is the smallest cash-out a worker can request.
	MinWithdrawCoins = 200
	// CoinsPerDollar is the fixed coin to currency exchange rate.
	CoinsPerDollar = 20
)

type WithdrawalRepo interface {
	Save(ctx context.Context, w *domain.Withdrawal) error
	ApproveIfPending(ctx context.Context, id int) (*domain.Withdrawal, error)
	ListByWorker(ctx context.Context, workerEmail string) ([]domain.Withdrawal, error)
	ListPending(ctx context.Context) ([]domain.Withdrawal, error)
}

type Ledger interface {
	Debit(ctx context.Context, email string, amount int64) error
}

type Notifier interface {
	Notify(ctx context.Context, msg notify.Message)
}

type Service struct {
	withdrawalRepo WithdrawalRepo
	ledger         Ledger
	notifier       Notifier
	txManager      pg.TXManager
}

func New(withdrawalRepo WithdrawalRepo, ledger Ledger, notifier Notifier, txManager pg.TXManager) *Service {
	return &Service{
		withdrawalRepo: withdrawalRepo,
		ledger:         ledger,
		notifier:       notifier,
		txManager:      txManager,
	}
}

// Request records a pending cash-out. The balance check here is advisory:
// nothing is debited until an admin approves, and the approval re-validates
// against the live balance.
func (s *Service) Request(ctx context.Context, worker *domain.User, coinAmount int64, paymentSystem, accountNumber string) (*domain.Withdrawal, error) {
	if coinAmount < MinWithdrawCoins {
		return nil, fmt.Errorf("%w: minimum withdrawal is %d coins", domain.ErrValidation, MinWithdrawCoins)
	}
	if accountNumber != "" && !validate.IsCardNumber(accountNumber) {
		return nil, fmt.Errorf("%w: invalid account number", domain.ErrValidation)
	}
	if worker.Coin < coinAmount {
		return nil, fmt.Errorf("%w: balance is below the requested amount", domain.ErrInsufficientFunds)
	}
	if paymentSystem == "" {
		paymentSystem = "Stripe"
	}

	w := &domain.Withdrawal{
		WorkerEmail:   worker.Email,
		WorkerName:    worker.Name,
		CoinAmount:    coinAmount,
		Amount:        decimal.NewFromInt(coinAmount).Div(decimal.NewFromInt(CoinsPerDollar)),
		PaymentSystem: paymentSystem,
		AccountNumber: accountNumber,
		Status:        domain.WithdrawalPending,
	}
	if err := s.withdrawalRepo.Save(ctx, w); err != nil {
		zap.L().Error("can't save withdrawal request", zap.Error(err))
		return nil, err
	}

	zap.L().Info("withdrawal requested", zap.Int("withdrawal_id", w.ID),
		zap.String("worker", worker.Email), zap.Int64("coins", coinAmount))
	return w, nil
}

// Approve settles a pending withdrawal: the status flip and the debit
// happen in one transaction. The debit is conditional on the worker's
// current balance, because coins may have been spent or claimed by another
// withdrawal since the request; an uncovered debit rolls the flip back and
// reports ErrInsufficientFunds instead of overdrafting.
func (s *Service) Approve(ctx context.Context, id int) (*domain.Withdrawal, error) {
	var w *domain.Withdrawal
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		var err error
		w, err = s.withdrawalRepo.ApproveIfPending(ctx, id)
		if err != nil {
			return err
		}
		return s.ledger.Debit(ctx, w.WorkerEmail, w.CoinAmount)
	})
	if err != nil {
		zap.L().Info("withdrawal approval failed", zap.Int("withdrawal_id", id), zap.Error(err))
		return nil, err
	}

	s.notifier.Notify(ctx, notify.Message{
		ToEmail:      w.WorkerEmail,
		Text:         fmt.Sprintf("Your withdrawal of $%s has been approved and processed.", w.Amount.StringFixed(2)),
		ActionRoute:  "/dashboard/withdrawals",
		EmailSubject: "Withdrawal approved",
		EmailBody:    fmt.Sprintf("Your withdrawal of $%s was successful.", w.Amount.StringFixed(2)),
	})

	zap.L().Info("withdrawal approved", zap.Int("withdrawal_id", id),
		zap.String("worker", w.WorkerEmail), zap.Int64("debited", w.CoinAmount))
	return w, nil
}

func (s *Service) ListByWorker(ctx context.Context, workerEmail string) ([]domain.Withdrawal, error) {
	return s.withdrawalRepo.ListByWorker(ctx, workerEmail)
}

func (s *Service) ListPending(ctx context.Context) ([]domain.Withdrawal, error) {
	return s.withdrawalRepo.ListPending(ctx)
}
