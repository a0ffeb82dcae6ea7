package userservice

import (
	"context"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/taskhive/taskhive/internal/domain"
)

type UserRepo interface {
	List(ctx context.Context) ([]domain.User, error)
	TopWorkers(ctx context.Context, limit int) ([]domain.User, error)
	UpdateRole(ctx context.Context, email string, role domain.Role) error
	Delete(ctx context.Context, email string) error
	CountByRole(ctx context.Context, role domain.Role) (int, error)
	SumCoins(ctx context.Context) (int64, error)
}

type PaymentRepo interface {
	SumAmount(ctx context.Context) (decimal.Decimal, error)
}

type Service struct {
	userRepo    UserRepo
	paymentRepo PaymentRepo
}

func New(userRepo UserRepo, paymentRepo PaymentRepo) *Service {
	return &Service{
		userRepo:    userRepo,
		paymentRepo: paymentRepo,
	}
}

const topWorkersLimit = 6

func (s *Service) List(ctx context.Context) ([]domain.User, error) {
	return s.userRepo.List(ctx)
}

func (s *Service) TopWorkers(ctx context.Context) ([]domain.User, error) {
	return s.userRepo.TopWorkers(ctx, topWorkersLimit)
}

// UpdateRole validates against the closed role set before writing.
func (s *Service) UpdateRole(ctx context.Context, email, role string) error {
	parsedRole, err := domain.ParseRole(role)
	if err != nil {
		return err
	}
	if err := s.userRepo.UpdateRole(ctx, email, parsedRole); err != nil {
		return err
	}
	zap.L().Info("role updated", zap.String("email", email), zap.String("role", string(parsedRole)))
	return nil
}

func (s *Service) Delete(ctx context.Context, email string) error {
	if err := s.userRepo.Delete(ctx, email); err != nil {
		return err
	}
	zap.L().Info("user deleted", zap.String("email", email))
	return nil
}

type PlatformStats struct {
	TotalWorkers  int
	TotalBuyers   int
	TotalCoins    int64
	TotalPayments decimal.Decimal
}

func (s *Service) Stats(ctx context.Context) (*PlatformStats, error) {
	var stats PlatformStats

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		stats.TotalWorkers, err = s.userRepo.CountByRole(ctx, domain.RoleWorker)
		return err
	})
	g.Go(func() error {
		var err error
		stats.TotalBuyers, err = s.userRepo.CountByRole(ctx, domain.RoleBuyer)
		return err
	})
	g.Go(func() error {
		var err error
		stats.TotalCoins, err = s.userRepo.SumCoins(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		stats.TotalPayments, err = s.paymentRepo.SumAmount(ctx)
		return err
	})

	if err := g.Wait(); err != nil {
		zap.L().Error("can't collect platform stats", zap.Error(err))
		return nil, err
	}
	return &stats, nil
}
