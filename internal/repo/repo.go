package repo

import (
	"github.com/taskhive/taskhive/internal/pg"
	notificationrepo "github.com/taskhive/taskhive/internal/repo/notification-repo"
	paymentrepo "github.com/taskhive/taskhive/internal/repo/payment-repo"
	reportrepo "github.com/taskhive/taskhive/internal/repo/report-repo"
	submissionrepo "github.com/taskhive/taskhive/internal/repo/submission-repo"
	taskrepo "github.com/taskhive/taskhive/internal/repo/task-repo"
	userrepo "github.com/taskhive/taskhive/internal/repo/user-repo"
	withdrawalrepo "github.com/taskhive/taskhive/internal/repo/withdrawal-repo"
)

type Repositories struct {
	User         *userrepo.Repository
	Task         *taskrepo.Repository
	Submission   *submissionrepo.Repository
	Withdrawal   *withdrawalrepo.Repository
	Payment      *paymentrepo.Repository
	Notification *notificationrepo.Repository
	Report       *reportrepo.Repository
}

func New(conn pg.Database) *Repositories {
	return &Repositories{
		User:         userrepo.New(conn),
		Task:         taskrepo.New(conn),
		Submission:   submissionrepo.New(conn),
		Withdrawal:   withdrawalrepo.New(conn),
		Payment:      paymentrepo.New(conn),
		Notification: notificationrepo.New(conn),
		Report:       reportrepo.New(conn),
	}
}
