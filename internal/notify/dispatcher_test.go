package notify

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	"github.com/taskhive/taskhive/internal/domain"
)

// inlinePool runs tasks synchronously so assertions see the delivery.
type inlinePool struct{ full bool }

func (p *inlinePool) AddTask(task Task) error {
	if p.full {
		return ErrQueueFull
	}
	return task()
}

func (p *inlinePool) Close() {}

func newMockDispatcher(t *testing.T, pool WorkerPoolI) (*Dispatcher, *MockNotificationRepo, *MockEmailSender) {
	ctrl := gomock.NewController(t)
	repo := NewMockNotificationRepo(ctrl)
	email := NewMockEmailSender(ctrl)
	d := &Dispatcher{repo: repo, email: email, pool: pool}
	defer ctrl.Finish()
	return d, repo, email
}

func TestNotify(t *testing.T) {
	t.Run("Persists and emails", func(t *testing.T) {
		d, repo, email := newMockDispatcher(t, &inlinePool{})

		repo.EXPECT().Save(gomock.Any(), gomock.Any()).DoAndReturn(
			func(ctx context.Context, n *domain.Notification) error {
				assert.Equal(t, "worker@example.com", n.ToEmail)
				assert.Equal(t, "Your submission was approved", n.Message)
				assert.Equal(t, "/dashboard/submissions", n.ActionRoute)
				return nil
			})
		email.EXPECT().
			Send(gomock.Any(), "worker@example.com", "Submission approved", "You earned 10 coins").
			Return(nil)

		d.Notify(context.Background(), Message{
			ToEmail:      "worker@example.com",
			Text:         "Your submission was approved",
			ActionRoute:  "/dashboard/submissions",
			EmailSubject: "Submission approved",
			EmailBody:    "You earned 10 coins",
		})
	})

	t.Run("No email without a subject", func(t *testing.T) {
		d, repo, _ := newMockDispatcher(t, &inlinePool{})

		repo.EXPECT().Save(gomock.Any(), gomock.Any()).DoAndReturn(
			func(ctx context.Context, n *domain.Notification) error {
				assert.Equal(t, "/dashboard", n.ActionRoute)
				return nil
			})

		d.Notify(context.Background(), Message{
			ToEmail: "worker@example.com",
			Text:    "Your task slot was released",
		})
	})

	t.Run("Email still sent when persistence fails", func(t *testing.T) {
		d, repo, email := newMockDispatcher(t, &inlinePool{})

		repo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(assert.AnError)
		email.EXPECT().
			Send(gomock.Any(), "worker@example.com", "Withdrawal approved", gomock.Any()).
			Return(nil)

		d.Notify(context.Background(), Message{
			ToEmail:      "worker@example.com",
			Text:         "Your withdrawal was approved",
			EmailSubject: "Withdrawal approved",
			EmailBody:    "10.00 is on its way",
		})
	})

	t.Run("Full queue drops the message", func(t *testing.T) {
		d, _, _ := newMockDispatcher(t, &inlinePool{full: true})

		d.Notify(context.Background(), Message{
			ToEmail: "worker@example.com",
			Text:    "dropped",
		})
	})
}
