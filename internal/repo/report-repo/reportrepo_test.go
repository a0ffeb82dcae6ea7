package reportrepo

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"

	"github.com/taskhive/taskhive/internal/domain"
)

func NewMock(t *testing.T) (*Repository, pgxmock.PgxPoolIface) {
	mockDB, err := pgxmock.NewPool()
	assert.NoError(t, err)
	repo := New(mockDB)
	defer mockDB.Close()

	return repo, mockDB
}

func TestRepository_Save(t *testing.T) {
	repo, mock := NewMock(t)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta(`
		INSERT INTO reports (submission_id, reported_by, reason, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`)).
		WithArgs(7, "buyer@example.com", "Invalid submission", "pending").
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(1, now))

	report := &domain.Report{
		SubmissionID: 7,
		ReportedBy:   "buyer@example.com",
		Reason:       "Invalid submission",
		Status:       "pending",
	}
	err := repo.Save(context.Background(), report)
	assert.NoError(t, err)
	assert.Equal(t, 1, report.ID)
}

func TestRepository_ListAll(t *testing.T) {
	repo, mock := NewMock(t)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta(`
		SELECT id, submission_id, reported_by, reason, status, created_at
		FROM reports
		ORDER BY created_at DESC
	`)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "submission_id", "reported_by", "reason", "status", "created_at"}).
			AddRow(1, 7, "buyer@example.com", "Invalid submission", "pending", now))

	reports, err := repo.ListAll(context.Background())
	assert.NoError(t, err)
	assert.Len(t, reports, 1)
	assert.Equal(t, 7, reports[0].SubmissionID)
}
