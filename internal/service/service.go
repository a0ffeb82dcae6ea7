package service

import (
	"github.com/taskhive/taskhive/internal/config"
	"github.com/taskhive/taskhive/internal/notify"
	"github.com/taskhive/taskhive/internal/payments"
	"github.com/taskhive/taskhive/internal/pg"
	"github.com/taskhive/taskhive/internal/repo"
	"github.com/taskhive/taskhive/internal/service/authservice"
	"github.com/taskhive/taskhive/internal/service/paymentservice"
	"github.com/taskhive/taskhive/internal/service/reportservice"
	"github.com/taskhive/taskhive/internal/service/submissionservice"
	"github.com/taskhive/taskhive/internal/service/taskservice"
	"github.com/taskhive/taskhive/internal/service/userservice"
	"github.com/taskhive/taskhive/internal/service/withdrawalservice"
	pkgauth "github.com/taskhive/taskhive/pkg/auth"
)

type Services struct {
	Auth       *authservice.Service
	Task       *taskservice.Service
	Submission *submissionservice.Service
	Withdrawal *withdrawalservice.Service
	Payment    *paymentservice.Service
	User       *userservice.Service
	Report     *reportservice.Service
}

func New(cfg *config.Config, repos *repo.Repositories, txManager pg.TXManager, dispatcher *notify.Dispatcher, provider *payments.Client) *Services {
	jwtService := pkgauth.NewJWTService(cfg.JWTSecret)

	return &Services{
		Auth:       authservice.New(repos.User, &pkgauth.HashService{}, jwtService),
		Task:       taskservice.New(repos.Task, repos.User, repos.Payment, txManager),
		Submission: submissionservice.New(repos.Submission, repos.Task, repos.User, dispatcher, txManager),
		Withdrawal: withdrawalservice.New(repos.Withdrawal, repos.User, dispatcher, txManager),
		Payment:    paymentservice.New(repos.Payment, repos.User, provider, txManager),
		User:       userservice.New(repos.User, repos.Payment),
		Report:     reportservice.New(repos.Report, repos.Submission),
	}
}
