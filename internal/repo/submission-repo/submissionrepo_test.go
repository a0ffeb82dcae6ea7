package submissionrepo

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
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

var submissionRows = []string{"id", "task_id", "task_title", "payable_amount", "worker_email", "worker_name", "buyer_email", "buyer_name", "details", "status", "created_at", "updated_at"}

func TestRepository_Save(t *testing.T) {
	repo, mock := NewMock(t)
	now := time.Now()

	tests := []struct {
		name        string
		mockSetup   func()
		expectedErr error
	}{
		{
			name: "Saved successfully",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`
		INSERT INTO submissions (task_id, task_title, payable_amount, worker_email, worker_name, buyer_email, buyer_name, details, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at
	`)).
					WithArgs(42, "Label images", int64(10), "worker@example.com", "Worker",
						"buyer@example.com", "Buyer", "my work", domain.SubmissionPending).
					WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(7, now, now))
			},
			expectedErr: nil,
		},
		{
			name: "Duplicate submission by the same worker",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`
		INSERT INTO submissions (task_id, task_title, payable_amount, worker_email, worker_name, buyer_email, buyer_name, details, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at
	`)).
					WithArgs(42, "Label images", int64(10), "worker@example.com", "Worker",
						"buyer@example.com", "Buyer", "my work", domain.SubmissionPending).
					WillReturnError(&pgconn.PgError{Code: "23505"})
			},
			expectedErr: domain.ErrConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			sub := &domain.Submission{
				TaskID:        42,
				TaskTitle:     "Label images",
				PayableAmount: 10,
				WorkerEmail:   "worker@example.com",
				WorkerName:    "Worker",
				BuyerEmail:    "buyer@example.com",
				BuyerName:     "Buyer",
				Details:       "my work",
				Status:        domain.SubmissionPending,
			}
			err := repo.Save(context.Background(), sub)
			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, 7, sub.ID)
			}
		})
	}
}

func TestRepository_UpdateStatusIfPending(t *testing.T) {
	repo, mock := NewMock(t)
	now := time.Now()

	tests := []struct {
		name        string
		status      string
		mockSetup   func()
		expectedErr error
	}{
		{
			name:   "Pending flipped to approved",
			status: domain.SubmissionApproved,
			mockSetup: func() {
				rows := pgxmock.NewRows(submissionRows).
					AddRow(7, 42, "Label images", int64(10), "worker@example.com", "Worker",
						"buyer@example.com", "Buyer", "my work", domain.SubmissionApproved, now, now)
				mock.ExpectQuery(regexp.QuoteMeta(`
		UPDATE submissions
		SET status = $1, updated_at = now()
		WHERE id = $2 AND buyer_email = $3 AND status = 'pending'
		RETURNING id, task_id, task_title, payable_amount, worker_email, worker_name, buyer_email, buyer_name, details, status, created_at, updated_at
	`)).
					WithArgs(domain.SubmissionApproved, 7, "buyer@example.com").
					WillReturnRows(rows)
			},
			expectedErr: nil,
		},
		{
			name:   "Already decided",
			status: domain.SubmissionApproved,
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`
		UPDATE submissions
		SET status = $1, updated_at = now()
		WHERE id = $2 AND buyer_email = $3 AND status = 'pending'
		RETURNING id, task_id, task_title, payable_amount, worker_email, worker_name, buyer_email, buyer_name, details, status, created_at, updated_at
	`)).
					WithArgs(domain.SubmissionApproved, 7, "buyer@example.com").
					WillReturnError(pgx.ErrNoRows)
			},
			expectedErr: domain.ErrNotFound,
		},
		{
			name:   "Database error",
			status: domain.SubmissionRejected,
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`
		UPDATE submissions
		SET status = $1, updated_at = now()
		WHERE id = $2 AND buyer_email = $3 AND status = 'pending'
		RETURNING id, task_id, task_title, payable_amount, worker_email, worker_name, buyer_email, buyer_name, details, status, created_at, updated_at
	`)).
					WithArgs(domain.SubmissionRejected, 7, "buyer@example.com").
					WillReturnError(errors.New("database error"))
			},
			expectedErr: domain.ErrStoreUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			sub, err := repo.UpdateStatusIfPending(context.Background(), 7, "buyer@example.com", tt.status)
			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				assert.Nil(t, sub)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.status, sub.Status)
				assert.Equal(t, "worker@example.com", sub.WorkerEmail)
			}
		})
	}
}

func TestRepository_ListByWorker(t *testing.T) {
	repo, mock := NewMock(t)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM submissions WHERE worker_email = $1`)).
		WithArgs("worker@example.com").
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(12))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, task_id, task_title, payable_amount, worker_email, worker_name, buyer_email, buyer_name, details, status, created_at, updated_at FROM submissions WHERE worker_email = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`)).
		WithArgs("worker@example.com", 10, 10).
		WillReturnRows(pgxmock.NewRows(submissionRows).
			AddRow(7, 42, "Label images", int64(10), "worker@example.com", "Worker",
				"buyer@example.com", "Buyer", "my work", domain.SubmissionPending, now, now))

	subs, total, err := repo.ListByWorker(context.Background(), "worker@example.com", 2, 10)
	assert.NoError(t, err)
	assert.Equal(t, 12, total)
	assert.Len(t, subs, 1)
}

func TestRepository_WorkerStats(t *testing.T) {
	repo, mock := NewMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(`
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE status = 'pending'),
		       COALESCE(SUM(payable_amount) FILTER (WHERE status = 'approved'), 0)
		FROM submissions
		WHERE worker_email = $1
	`)).
		WithArgs("worker@example.com").
		WillReturnRows(pgxmock.NewRows([]string{"total", "pending", "earned"}).AddRow(25, 3, int64(220)))

	total, pending, earned, err := repo.WorkerStats(context.Background(), "worker@example.com")
	assert.NoError(t, err)
	assert.Equal(t, 25, total)
	assert.Equal(t, 3, pending)
	assert.Equal(t, int64(220), earned)
}
