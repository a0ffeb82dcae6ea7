package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/taskhive/taskhive/docs"
	"github.com/taskhive/taskhive/internal/domain"
	authhandlers "github.com/taskhive/taskhive/internal/handlers/auth"
	notificationhandlers "github.com/taskhive/taskhive/internal/handlers/notifications"
	paymenthandlers "github.com/taskhive/taskhive/internal/handlers/payments"
	reporthandlers "github.com/taskhive/taskhive/internal/handlers/reports"
	submissionhandlers "github.com/taskhive/taskhive/internal/handlers/submissions"
	taskhandlers "github.com/taskhive/taskhive/internal/handlers/tasks"
	userhandlers "github.com/taskhive/taskhive/internal/handlers/users"
	withdrawalhandlers "github.com/taskhive/taskhive/internal/handlers/withdrawals"
	"github.com/taskhive/taskhive/internal/middleware"
	"github.com/taskhive/taskhive/internal/repo"
	"github.com/taskhive/taskhive/internal/service"
	pkgauth "github.com/taskhive/taskhive/pkg/auth"
)

type AuthHandler interface {
	Register(w http.ResponseWriter, r *http.Request)
	Login(w http.ResponseWriter, r *http.Request)
	Me(w http.ResponseWriter, r *http.Request)
}

type TaskHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Mine(w http.ResponseWriter, r *http.Request)
	Stats(w http.ResponseWriter, r *http.Request)
	All(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type SubmissionHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Mine(w http.ResponseWriter, r *http.Request)
	Approved(w http.ResponseWriter, r *http.Request)
	Stats(w http.ResponseWriter, r *http.Request)
	Pending(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
}

type WithdrawalHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Mine(w http.ResponseWriter, r *http.Request)
	Pending(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
}

type PaymentHandler interface {
	Packages(w http.ResponseWriter, r *http.Request)
	CreateIntent(w http.ResponseWriter, r *http.Request)
	Confirm(w http.ResponseWriter, r *http.Request)
	History(w http.ResponseWriter, r *http.Request)
}

type UserHandler interface {
	TopWorkers(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	UpdateRole(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	Stats(w http.ResponseWriter, r *http.Request)
}

type NotificationHandler interface {
	List(w http.ResponseWriter, r *http.Request)
}

type ReportHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
}

type Handlers struct {
	AuthHandler         AuthHandler
	TaskHandler         TaskHandler
	SubmissionHandler   SubmissionHandler
	WithdrawalHandler   WithdrawalHandler
	PaymentHandler      PaymentHandler
	UserHandler         UserHandler
	NotificationHandler NotificationHandler
	ReportHandler       ReportHandler

	verifier pkgauth.TokenVerifier
	resolver middleware.UserResolver
}

func New(s *service.Services, repos *repo.Repositories, verifier pkgauth.TokenVerifier) *Handlers {
	return &Handlers{
		AuthHandler:         authhandlers.New(s.Auth),
		TaskHandler:         taskhandlers.New(s.Task),
		SubmissionHandler:   submissionhandlers.New(s.Submission),
		WithdrawalHandler:   withdrawalhandlers.New(s.Withdrawal),
		PaymentHandler:      paymenthandlers.New(s.Payment),
		UserHandler:         userhandlers.New(s.User),
		NotificationHandler: notificationhandlers.New(repos.Notification),
		ReportHandler:       reporthandlers.New(s.Report),

		verifier: verifier,
		resolver: s.Auth,
	}
}

func (h *Handlers) InitRoutes(r chi.Router) chi.Router {
	r.Use(
		chimiddleware.RealIP,
		chimiddleware.Recoverer,
		chimiddleware.Logger,
	)
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("doc.json"),
	))

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", h.AuthHandler.Register)
		r.Post("/auth/login", h.AuthHandler.Login)

		r.Get("/tasks", h.TaskHandler.List)
		r.Get("/tasks/{id}", h.TaskHandler.Get)
		r.Get("/users/top-workers", h.UserHandler.TopWorkers)
		r.Get("/payments/packages", h.PaymentHandler.Packages)

		r.Group(func(r chi.Router) {
			r.Use(pkgauth.Middleware(h.verifier))
			r.Use(middleware.ResolveUser(h.resolver))

			r.Get("/auth/me", h.AuthHandler.Me)
			r.Get("/notifications", h.NotificationHandler.List)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole(domain.RoleBuyer, domain.RoleAdmin))
				r.Post("/tasks", h.TaskHandler.Create)
				r.Patch("/tasks/{id}", h.TaskHandler.Update)
				r.Get("/tasks/buyer/mine", h.TaskHandler.Mine)
				r.Get("/tasks/buyer/stats", h.TaskHandler.Stats)

				r.Get("/submissions/buyer/pending", h.SubmissionHandler.Pending)
				r.Patch("/submissions/{id}/approve", h.SubmissionHandler.Approve)
				r.Patch("/submissions/{id}/reject", h.SubmissionHandler.Reject)

				r.Post("/payments/create-intent", h.PaymentHandler.CreateIntent)
				r.Post("/payments/confirm", h.PaymentHandler.Confirm)
				r.Get("/payments/history", h.PaymentHandler.History)

				r.Post("/reports", h.ReportHandler.Create)
			})
			r.Delete("/tasks/{id}", h.TaskHandler.Delete)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole(domain.RoleWorker))
				r.Post("/submissions", h.SubmissionHandler.Create)
				r.Get("/submissions/worker/mine", h.SubmissionHandler.Mine)
				r.Get("/submissions/worker/approved", h.SubmissionHandler.Approved)
				r.Get("/submissions/worker/stats", h.SubmissionHandler.Stats)

				r.Post("/withdrawals", h.WithdrawalHandler.Create)
				r.Get("/withdrawals/worker/mine", h.WithdrawalHandler.Mine)
			})

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole(domain.RoleAdmin))
				r.Get("/users", h.UserHandler.List)
				r.Patch("/users/{email}/role", h.UserHandler.UpdateRole)
				r.Delete("/users/{email}", h.UserHandler.Delete)
				r.Get("/users/admin/stats", h.UserHandler.Stats)

				r.Get("/tasks/admin/all", h.TaskHandler.All)
				r.Get("/withdrawals/admin/pending", h.WithdrawalHandler.Pending)
				r.Patch("/withdrawals/{id}/approve", h.WithdrawalHandler.Approve)
				r.Get("/reports", h.ReportHandler.List)
			})
		})
	})

	return r
}
