package taskrepo

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
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

var taskRows = []string{"id", "title", "detail", "buyer_email", "buyer_name", "required_workers", "payable_amount", "completion_date", "submission_info", "image_url", "created_at", "updated_at"}

func TestRepository_Save(t *testing.T) {
	repo, mock := NewMock(t)
	now := time.Now()
	deadline := now.Add(72 * time.Hour)

	task := &domain.Task{
		Title:           "Label images",
		Detail:          "Draw boxes around cats",
		BuyerEmail:      "buyer@example.com",
		BuyerName:       "Buyer",
		RequiredWorkers: 5,
		PayableAmount:   10,
		CompletionDate:  deadline,
		SubmissionInfo:  "Link to the labeled set",
	}

	mock.ExpectQuery(regexp.QuoteMeta(`
		INSERT INTO tasks (title, detail, buyer_email, buyer_name, required_workers, payable_amount, completion_date, submission_info, image_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at
	`)).
		WithArgs("Label images", "Draw boxes around cats", "buyer@example.com", "Buyer",
			5, int64(10), deadline, "Link to the labeled set", "").
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(1, now, now))

	err := repo.Save(context.Background(), task)
	assert.NoError(t, err)
	assert.Equal(t, 1, task.ID)
}

func TestRepository_FindByID(t *testing.T) {
	repo, mock := NewMock(t)
	now := time.Now()

	tests := []struct {
		name      string
		id        int
		mockSetup func()
		expectErr bool
		result    *domain.Task
	}{
		{
			name: "Task found",
			id:   1,
			mockSetup: func() {
				rows := pgxmock.NewRows(taskRows).
					AddRow(1, "Label images", "Detail", "buyer@example.com", "Buyer", 5, int64(10), now, "Info", "", now, now)
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, title, detail, buyer_email, buyer_name, required_workers, payable_amount, completion_date, submission_info, image_url, created_at, updated_at FROM tasks WHERE id = $1`)).
					WithArgs(1).
					WillReturnRows(rows)
			},
			result: &domain.Task{
				ID: 1, Title: "Label images", Detail: "Detail",
				BuyerEmail: "buyer@example.com", BuyerName: "Buyer",
				RequiredWorkers: 5, PayableAmount: 10,
				CompletionDate: now, SubmissionInfo: "Info",
				CreatedAt: now, UpdatedAt: now,
			},
		},
		{
			name: "Task not found",
			id:   99,
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, title, detail, buyer_email, buyer_name, required_workers, payable_amount, completion_date, submission_info, image_url, created_at, updated_at FROM tasks WHERE id = $1`)).
					WithArgs(99).
					WillReturnError(pgx.ErrNoRows)
			},
			result: nil,
		},
		{
			name: "Database error",
			id:   1,
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, title, detail, buyer_email, buyer_name, required_workers, payable_amount, completion_date, submission_info, image_url, created_at, updated_at FROM tasks WHERE id = $1`)).
					WithArgs(1).
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			result, err := repo.FindByID(context.Background(), tt.id)
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.result, result)
			}
		})
	}
}

func TestRepository_ReserveSlot(t *testing.T) {
	repo, mock := NewMock(t)

	tests := []struct {
		name        string
		id          int
		mockSetup   func()
		expectedErr error
	}{
		{
			name: "Slot reserved",
			id:   1,
			mockSetup: func() {
				mock.ExpectExec(regexp.QuoteMeta(`
		UPDATE tasks
		SET required_workers = required_workers - 1, updated_at = now()
		WHERE id = $1 AND required_workers > 0
	`)).
					WithArgs(1).
					WillReturnResult(pgxmock.NewResult("UPDATE", 1))
			},
			expectedErr: nil,
		},
		{
			name: "Task is full",
			id:   1,
			mockSetup: func() {
				mock.ExpectExec(regexp.QuoteMeta(`
		UPDATE tasks
		SET required_workers = required_workers - 1, updated_at = now()
		WHERE id = $1 AND required_workers > 0
	`)).
					WithArgs(1).
					WillReturnResult(pgxmock.NewResult("UPDATE", 0))
			},
			expectedErr: domain.ErrConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			err := repo.ReserveSlot(context.Background(), tt.id)
			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRepository_ReleaseSlot(t *testing.T) {
	repo, mock := NewMock(t)

	mock.ExpectExec(regexp.QuoteMeta(`
		UPDATE tasks
		SET required_workers = required_workers + 1, updated_at = now()
		WHERE id = $1
	`)).
		WithArgs(1).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := repo.ReleaseSlot(context.Background(), 1)
	assert.NoError(t, err)
}

func TestRepository_Delete(t *testing.T) {
	repo, mock := NewMock(t)

	tests := []struct {
		name            string
		mockSetup       func()
		requiredWorkers int
		payableAmount   int64
		expectedErr     error
	}{
		{
			name: "Returns the capacity the delete saw",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`DELETE FROM tasks WHERE id = $1 RETURNING required_workers, payable_amount`)).
					WithArgs(1).
					WillReturnRows(pgxmock.NewRows([]string{"required_workers", "payable_amount"}).AddRow(2, int64(10)))
			},
			requiredWorkers: 2,
			payableAmount:   10,
		},
		{
			name: "Task already gone",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`DELETE FROM tasks WHERE id = $1 RETURNING required_workers, payable_amount`)).
					WithArgs(1).
					WillReturnError(pgx.ErrNoRows)
			},
			expectedErr: domain.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			requiredWorkers, payableAmount, err := repo.Delete(context.Background(), 1)
			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.requiredWorkers, requiredWorkers)
				assert.Equal(t, tt.payableAmount, payableAmount)
			}
		})
	}
}

func TestRepository_UpdateDetails(t *testing.T) {
	repo, mock := NewMock(t)

	tests := []struct {
		name        string
		buyerEmail  string
		mockSetup   func()
		expectedErr error
	}{
		{
			name:       "Updated by the owning buyer",
			buyerEmail: "buyer@example.com",
			mockSetup: func() {
				mock.ExpectExec(regexp.QuoteMeta(`
		UPDATE tasks
		SET title = $1, detail = $2, submission_info = $3, updated_at = now()
		WHERE id = $4 AND buyer_email = $5
	`)).
					WithArgs("New title", "New detail", "New info", 1, "buyer@example.com").
					WillReturnResult(pgxmock.NewResult("UPDATE", 1))
			},
			expectedErr: nil,
		},
		{
			name:       "Someone else's task",
			buyerEmail: "other@example.com",
			mockSetup: func() {
				mock.ExpectExec(regexp.QuoteMeta(`
		UPDATE tasks
		SET title = $1, detail = $2, submission_info = $3, updated_at = now()
		WHERE id = $4 AND buyer_email = $5
	`)).
					WithArgs("New title", "New detail", "New info", 1, "other@example.com").
					WillReturnResult(pgxmock.NewResult("UPDATE", 0))
			},
			expectedErr: domain.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			err := repo.UpdateDetails(context.Background(), 1, tt.buyerEmail, "New title", "New detail", "New info")
			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRepository_List(t *testing.T) {
	repo, mock := NewMock(t)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM tasks WHERE required_workers > 0 AND (title ILIKE $1 OR detail ILIKE $1)`)).
		WithArgs("%cats%").
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, title, detail, buyer_email, buyer_name, required_workers, payable_amount, completion_date, submission_info, image_url, created_at, updated_at FROM tasks WHERE required_workers > 0 AND (title ILIKE $1 OR detail ILIKE $1) ORDER BY completion_date DESC LIMIT $2 OFFSET $3`)).
		WithArgs("%cats%", 12, 0).
		WillReturnRows(pgxmock.NewRows(taskRows).
			AddRow(1, "Label cats", "Detail", "buyer@example.com", "Buyer", 3, int64(10), now, "", "", now, now))

	tasks, total, err := repo.List(context.Background(), Filter{Search: "cats", Page: 1, Limit: 12})
	assert.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Len(t, tasks, 1)
	assert.Equal(t, "Label cats", tasks[0].Title)
}

func TestRepository_BuyerStats(t *testing.T) {
	repo, mock := NewMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*), COALESCE(SUM(required_workers), 0) FROM tasks WHERE buyer_email = $1`)).
		WithArgs("buyer@example.com").
		WillReturnRows(pgxmock.NewRows([]string{"count", "sum"}).AddRow(4, 11))

	total, pending, err := repo.BuyerStats(context.Background(), "buyer@example.com")
	assert.NoError(t, err)
	assert.Equal(t, 4, total)
	assert.Equal(t, 11, pending)
}
