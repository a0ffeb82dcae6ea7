package paymentservice

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/taskhive/taskhive/internal/domain"
	"github.com/taskhive/taskhive/internal/payments"
	"github.com/taskhive/taskhive/internal/pg"
)

// Package is a purchasable coin bundle.
type Package struct {
	Coins int64
	Price int64 // whole dollars
}

// Packages are fixed; the index doubles as the package id on the wire.
var Packages = []Package{
	{Coins: 10, Price: 1},
	{Coins: 150, Price: 10},
	{Coins: 500, Price: 20},
	{Coins: 1000, Price: 35},
}

type PaymentRepo interface {
	Save(ctx context.Context, p *domain.Payment) error
	ListByUser(ctx context.Context, userEmail string) ([]domain.Payment, error)
}

type Ledger interface {
	Credit(ctx context.Context, email string, amount int64) error
}

type Provider interface {
	Configured() bool
	CreateIntent(ctx context.Context, amountCents int64, currency, userEmail string, coins int64) (*payments.Intent, error)
	RetrieveIntent(ctx context.Context, id string) (*payments.Intent, error)
}

type Service struct {
	paymentRepo PaymentRepo
	ledger      Ledger
	provider    Provider
	txManager   pg.TXManager
}

func New(paymentRepo PaymentRepo, ledger Ledger, provider Provider, txManager pg.TXManager) *Service {
	return &Service{
		paymentRepo: paymentRepo,
		ledger:      ledger,
		provider:    provider,
		txManager:   txManager,
	}
}

// Intent describes what CreateIntent produced: either a provider-side
// handle or an explicit demo fallback when no provider is configured.
type Intent struct {
	ClientSecret string
	Coins        int64
	Amount       decimal.Decimal
	Demo         bool
}

func (s *Service) PackageByIndex(index int) (Package, error) {
	if index < 0 || index >= len(Packages) {
		return Package{}, fmt.Errorf("%w: invalid package", domain.ErrValidation)
	}
	return Packages[index], nil
}

func (s *Service) CreateIntent(ctx context.Context, buyer *domain.User, packageIndex int) (*Intent, error) {
	pkg, err := s.PackageByIndex(packageIndex)
	if err != nil {
		return nil, err
	}
	amount := decimal.NewFromInt(pkg.Price)

	if !s.provider.Configured() {
		zap.L().Warn("payment provider not configured, returning demo intent",
			zap.String("buyer", buyer.Email))
		return &Intent{Coins: pkg.Coins, Amount: amount, Demo: true}, nil
	}

	intent, err := s.provider.CreateIntent(ctx, pkg.Price*100, "usd", buyer.Email, pkg.Coins)
	if err != nil {
		zap.L().Error("can't create payment intent", zap.Error(err))
		return nil, err
	}
	return &Intent{ClientSecret: intent.ClientSecret, Coins: pkg.Coins, Amount: amount}, nil
}

// Confirm credits purchased coins. With a provider reference the settlement
// status is fetched and must be succeeded before any coins move. Without a
// configured provider the purchase is trusted as-is; that degradation is
// explicit and logged, never silent.
func (s *Service) Confirm(ctx context.Context, buyer *domain.User, coins int64, amount decimal.Decimal, providerRef string) (*domain.Payment, error) {
	if coins <= 0 {
		return nil, fmt.Errorf("%w: coins must be positive", domain.ErrValidation)
	}

	switch {
	case providerRef != "" && s.provider.Configured():
		intent, err := s.provider.RetrieveIntent(ctx, providerRef)
		if err != nil {
			zap.L().Error("can't verify payment intent", zap.String("ref", providerRef), zap.Error(err))
			return nil, err
		}
		if intent.Status != payments.StatusSucceeded {
			return nil, fmt.Errorf("%w: payment not successful, status %s", domain.ErrValidation, intent.Status)
		}
	default:
		zap.L().Warn("crediting purchase without provider verification",
			zap.String("buyer", buyer.Email), zap.Int64("coins", coins))
	}

	if providerRef == "" {
		providerRef = "manual"
	}
	payment := &domain.Payment{
		UserEmail:   buyer.Email,
		UserName:    buyer.Name,
		Coins:       coins,
		Amount:      amount,
		ProviderRef: providerRef,
	}
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		if err := s.paymentRepo.Save(ctx, payment); err != nil {
			return err
		}
		return s.ledger.Credit(ctx, buyer.Email, coins)
	})
	if err != nil {
		zap.L().Error("can't confirm payment", zap.String("buyer", buyer.Email), zap.Error(err))
		return nil, err
	}

	zap.L().Info("payment confirmed", zap.String("buyer", buyer.Email),
		zap.Int64("coins", coins), zap.String("ref", providerRef))
	return payment, nil
}

func (s *Service) History(ctx context.Context, userEmail string) ([]domain.Payment, error) {
	return s.paymentRepo.ListByUser(ctx, userEmail)
}
