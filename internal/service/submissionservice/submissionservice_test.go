package submissionservice

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	"github.com/taskhive/taskhive/internal/domain"
	"github.com/taskhive/taskhive/internal/pg"
)

func NewMock(t *testing.T) (*Service, *MockSubmissionRepo, *MockTaskRepo, *MockLedger, *MockNotifier, *pg.MockTXManager) {
	ctrl := gomock.NewController(t)
	submissionRepo := NewMockSubmissionRepo(ctrl)
	taskRepo := NewMockTaskRepo(ctrl)
	ledger := NewMockLedger(ctrl)
	notifier := NewMockNotifier(ctrl)
	txManager := pg.NewMockTXManager(ctrl)
	service := New(submissionRepo, taskRepo, ledger, notifier, txManager)
	defer ctrl.Finish()
	return service, submissionRepo, taskRepo, ledger, notifier, txManager
}

func passthroughTX(txManager *pg.MockTXManager) {
	txManager.EXPECT().
		Begin(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(ctx context.Context) error) error {
			return fn(ctx)
		})
}

var worker = &domain.User{Email: "worker@example.com", Name: "Worker", Role: domain.RoleWorker}

func openTask() *domain.Task {
	return &domain.Task{
		ID:              42,
		Title:           "Label images",
		BuyerEmail:      "buyer@example.com",
		BuyerName:       "Buyer",
		RequiredWorkers: 3,
		PayableAmount:   10,
	}
}

func TestSubmit(t *testing.T) {
	tests := []struct {
		name        string
		prepareMock func(submissionRepo *MockSubmissionRepo, taskRepo *MockTaskRepo, notifier *MockNotifier, txManager *pg.MockTXManager)
		expectedErr error
	}{
		{
			name: "Slot reserved and submission saved",
			prepareMock: func(submissionRepo *MockSubmissionRepo, taskRepo *MockTaskRepo, notifier *MockNotifier, txManager *pg.MockTXManager) {
				taskRepo.EXPECT().FindByID(gomock.Any(), 42).Return(openTask(), nil)
				passthroughTX(txManager)
				taskRepo.EXPECT().ReserveSlot(gomock.Any(), 42).Return(nil)
				submissionRepo.EXPECT().Save(gomock.Any(), gomock.Any()).DoAndReturn(
					func(ctx context.Context, sub *domain.Submission) error {
						sub.ID = 7
						return nil
					})
				notifier.EXPECT().Notify(gomock.Any(), gomock.Any())
			},
			expectedErr: nil,
		},
		{
			name: "Task not found",
			prepareMock: func(submissionRepo *MockSubmissionRepo, taskRepo *MockTaskRepo, notifier *MockNotifier, txManager *pg.MockTXManager) {
				taskRepo.EXPECT().FindByID(gomock.Any(), 42).Return(nil, nil)
			},
			expectedErr: domain.ErrNotFound,
		},
		{
			name: "Task already full",
			prepareMock: func(submissionRepo *MockSubmissionRepo, taskRepo *MockTaskRepo, notifier *MockNotifier, txManager *pg.MockTXManager) {
				full := openTask()
				full.RequiredWorkers = 0
				taskRepo.EXPECT().FindByID(gomock.Any(), 42).Return(full, nil)
			},
			expectedErr: domain.ErrConflict,
		},
		{
			name: "Lost the race for the last slot",
			prepareMock: func(submissionRepo *MockSubmissionRepo, taskRepo *MockTaskRepo, notifier *MockNotifier, txManager *pg.MockTXManager) {
				taskRepo.EXPECT().FindByID(gomock.Any(), 42).Return(openTask(), nil)
				passthroughTX(txManager)
				taskRepo.EXPECT().ReserveSlot(gomock.Any(), 42).Return(domain.ErrConflict)
			},
			expectedErr: domain.ErrConflict,
		},
		{
			name: "Duplicate submission rolls the reservation back",
			prepareMock: func(submissionRepo *MockSubmissionRepo, taskRepo *MockTaskRepo, notifier *MockNotifier, txManager *pg.MockTXManager) {
				taskRepo.EXPECT().FindByID(gomock.Any(), 42).Return(openTask(), nil)
				passthroughTX(txManager)
				taskRepo.EXPECT().ReserveSlot(gomock.Any(), 42).Return(nil)
				submissionRepo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(domain.ErrConflict)
			},
			expectedErr: domain.ErrConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, submissionRepo, taskRepo, _, notifier, txManager := NewMock(t)
			tt.prepareMock(submissionRepo, taskRepo, notifier, txManager)

			sub, err := service.Submit(context.Background(), worker, 42, "my work")
			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				assert.Nil(t, sub)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, 7, sub.ID)
				assert.Equal(t, domain.SubmissionPending, sub.Status)
				// payable amount and buyer identity are captured at submit time
				assert.Equal(t, int64(10), sub.PayableAmount)
				assert.Equal(t, "buyer@example.com", sub.BuyerEmail)
			}
		})
	}
}

func TestApprove(t *testing.T) {
	buyer := &domain.User{Email: "buyer@example.com", Role: domain.RoleBuyer}
	approved := &domain.Submission{
		ID: 7, TaskID: 42, TaskTitle: "Label images", PayableAmount: 10,
		WorkerEmail: "worker@example.com", BuyerEmail: "buyer@example.com", BuyerName: "Buyer",
		Status: domain.SubmissionApproved,
	}

	tests := []struct {
		name        string
		prepareMock func(submissionRepo *MockSubmissionRepo, ledger *MockLedger, notifier *MockNotifier, txManager *pg.MockTXManager)
		expectedErr error
	}{
		{
			name: "Worker credited the captured amount",
			prepareMock: func(submissionRepo *MockSubmissionRepo, ledger *MockLedger, notifier *MockNotifier, txManager *pg.MockTXManager) {
				passthroughTX(txManager)
				submissionRepo.EXPECT().
					UpdateStatusIfPending(gomock.Any(), 7, "buyer@example.com", domain.SubmissionApproved).
					Return(approved, nil)
				ledger.EXPECT().Credit(gomock.Any(), "worker@example.com", int64(10)).Return(nil)
				notifier.EXPECT().Notify(gomock.Any(), gomock.Any())
			},
			expectedErr: nil,
		},
		{
			name: "Second approval matches nothing",
			prepareMock: func(submissionRepo *MockSubmissionRepo, ledger *MockLedger, notifier *MockNotifier, txManager *pg.MockTXManager) {
				passthroughTX(txManager)
				submissionRepo.EXPECT().
					UpdateStatusIfPending(gomock.Any(), 7, "buyer@example.com", domain.SubmissionApproved).
					Return(nil, domain.ErrNotFound)
			},
			expectedErr: domain.ErrNotFound,
		},
		{
			name: "Credit failure rolls the flip back",
			prepareMock: func(submissionRepo *MockSubmissionRepo, ledger *MockLedger, notifier *MockNotifier, txManager *pg.MockTXManager) {
				passthroughTX(txManager)
				submissionRepo.EXPECT().
					UpdateStatusIfPending(gomock.Any(), 7, "buyer@example.com", domain.SubmissionApproved).
					Return(approved, nil)
				ledger.EXPECT().Credit(gomock.Any(), "worker@example.com", int64(10)).Return(domain.ErrStoreUnavailable)
			},
			expectedErr: domain.ErrStoreUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, submissionRepo, _, ledger, notifier, txManager := NewMock(t)
			tt.prepareMock(submissionRepo, ledger, notifier, txManager)

			sub, err := service.Approve(context.Background(), buyer, 7)
			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				assert.Nil(t, sub)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, domain.SubmissionApproved, sub.Status)
			}
		})
	}
}

func TestReject(t *testing.T) {
	buyer := &domain.User{Email: "buyer@example.com", Role: domain.RoleBuyer}
	rejected := &domain.Submission{
		ID: 7, TaskID: 42, TaskTitle: "Label images", PayableAmount: 10,
		WorkerEmail: "worker@example.com", BuyerEmail: "buyer@example.com",
		Status: domain.SubmissionRejected,
	}

	tests := []struct {
		name        string
		prepareMock func(submissionRepo *MockSubmissionRepo, taskRepo *MockTaskRepo, notifier *MockNotifier, txManager *pg.MockTXManager)
		expectedErr error
	}{
		{
			name: "Slot released, no coins move",
			prepareMock: func(submissionRepo *MockSubmissionRepo, taskRepo *MockTaskRepo, notifier *MockNotifier, txManager *pg.MockTXManager) {
				passthroughTX(txManager)
				submissionRepo.EXPECT().
					UpdateStatusIfPending(gomock.Any(), 7, "buyer@example.com", domain.SubmissionRejected).
					Return(rejected, nil)
				taskRepo.EXPECT().ReleaseSlot(gomock.Any(), 42).Return(nil)
				notifier.EXPECT().Notify(gomock.Any(), gomock.Any())
			},
			expectedErr: nil,
		},
		{
			// the task was deleted after this submission consumed its slot;
			// there is nothing to reopen, but the rejection must still land
			// or the submission stays pending forever
			name: "Task already deleted, rejection still lands",
			prepareMock: func(submissionRepo *MockSubmissionRepo, taskRepo *MockTaskRepo, notifier *MockNotifier, txManager *pg.MockTXManager) {
				passthroughTX(txManager)
				submissionRepo.EXPECT().
					UpdateStatusIfPending(gomock.Any(), 7, "buyer@example.com", domain.SubmissionRejected).
					Return(rejected, nil)
				taskRepo.EXPECT().ReleaseSlot(gomock.Any(), 42).Return(domain.ErrNotFound)
				notifier.EXPECT().Notify(gomock.Any(), gomock.Any())
			},
			expectedErr: nil,
		},
		{
			name: "Already decided",
			prepareMock: func(submissionRepo *MockSubmissionRepo, taskRepo *MockTaskRepo, notifier *MockNotifier, txManager *pg.MockTXManager) {
				passthroughTX(txManager)
				submissionRepo.EXPECT().
					UpdateStatusIfPending(gomock.Any(), 7, "buyer@example.com", domain.SubmissionRejected).
					Return(nil, domain.ErrNotFound)
			},
			expectedErr: domain.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, submissionRepo, taskRepo, _, notifier, txManager := NewMock(t)
			tt.prepareMock(submissionRepo, taskRepo, notifier, txManager)

			sub, err := service.Reject(context.Background(), buyer, 7)
			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				assert.Nil(t, sub)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, domain.SubmissionRejected, sub.Status)
			}
		})
	}
}

func TestListByWorker(t *testing.T) {
	service, submissionRepo, _, _, _, _ := NewMock(t)

	// out-of-range paging falls back to defaults
	submissionRepo.EXPECT().
		ListByWorker(gomock.Any(), "worker@example.com", 1, 10).
		Return([]domain.Submission{{ID: 7}}, 1, nil)

	subs, total, err := service.ListByWorker(context.Background(), "worker@example.com", 0, 100)
	assert.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Len(t, subs, 1)
}

func TestWorkerStats(t *testing.T) {
	service, submissionRepo, _, _, _, _ := NewMock(t)

	submissionRepo.EXPECT().WorkerStats(gomock.Any(), "worker@example.com").Return(25, 3, int64(220), nil)

	total, pending, earned, err := service.WorkerStats(context.Background(), "worker@example.com")
	assert.NoError(t, err)
	assert.Equal(t, 25, total)
	assert.Equal(t, 3, pending)
	assert.Equal(t, int64(220), earned)
}
