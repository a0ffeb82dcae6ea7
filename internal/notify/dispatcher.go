package notify

import (
	"context"

	"go.uber.org/zap"

	"github.com/taskhive/taskhive/internal/domain"
)

// Message is one side-effect bundle emitted by a lifecycle event: a
// persisted in-app notification plus an optional email.
type Message struct {
	ToEmail      string
	Text         string
	ActionRoute  string
	EmailSubject string
	EmailBody    string
}

type NotificationRepo interface {
	Save(ctx context.Context, n *domain.Notification) error
}

type EmailSender interface {
	Send(ctx context.Context, to, subject, body string) error
}

// Dispatcher delivers lifecycle side effects asynchronously. Delivery is
// fire-and-forget: failures are logged and never reach the caller, and the
// ledger mutation that triggered the message has already committed.
type Dispatcher struct {
	repo  NotificationRepo
	email EmailSender
	pool  WorkerPoolI
}

func New(repo NotificationRepo, email EmailSender) *Dispatcher {
	return &Dispatcher{
		repo:  repo,
		email: email,
		pool:  NewWorkerPool(4, 256),
	}
}

func (d *Dispatcher) Notify(ctx context.Context, msg Message) {
	// detach from the request: the caller's context ends with the response
	ctx = context.WithoutCancel(ctx)
	err := d.pool.AddTask(func() error {
		d.deliver(ctx, msg)
		return nil
	})
	if err != nil {
		zap.L().Warn("notification dropped",
			zap.String("to", msg.ToEmail), zap.Error(err))
	}
}

func (d *Dispatcher) deliver(ctx context.Context, msg Message) {
	route := msg.ActionRoute
	if route == "" {
		route = "/dashboard"
	}
	err := d.repo.Save(ctx, &domain.Notification{
		ToEmail:     msg.ToEmail,
		Message:     msg.Text,
		ActionRoute: route,
	})
	if err != nil {
		zap.L().Error("can't persist notification",
			zap.String("to", msg.ToEmail), zap.Error(err))
	}

	if msg.EmailSubject == "" {
		return
	}
	if err := d.email.Send(ctx, msg.ToEmail, msg.EmailSubject, msg.EmailBody); err != nil {
		zap.L().Error("can't send email",
			zap.String("to", msg.ToEmail), zap.Error(err))
	}
}

func (d *Dispatcher) Close() {
	d.pool.Close()
}
