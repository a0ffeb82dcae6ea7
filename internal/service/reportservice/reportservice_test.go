package reportservice

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	"github.com/taskhive/taskhive/internal/domain"
)

func NewMock(t *testing.T) (*Service, *MockReportRepo, *MockSubmissionRepo) {
	ctrl := gomock.NewController(t)
	reportRepo := NewMockReportRepo(ctrl)
	submissionRepo := NewMockSubmissionRepo(ctrl)
	service := New(reportRepo, submissionRepo)
	defer ctrl.Finish()
	return service, reportRepo, submissionRepo
}

var buyer = &domain.User{Email: "buyer@example.com", Role: domain.RoleBuyer}

func TestCreate(t *testing.T) {
	tests := []struct {
		name           string
		reason         string
		prepareMock    func(reportRepo *MockReportRepo, submissionRepo *MockSubmissionRepo)
		expectedReason string
		expectedError  error
	}{
		{
			name:   "Report against own submission",
			reason: "Screenshot is unrelated to the task",
			prepareMock: func(reportRepo *MockReportRepo, submissionRepo *MockSubmissionRepo) {
				submissionRepo.EXPECT().FindByID(gomock.Any(), 7).
					Return(&domain.Submission{ID: 7, BuyerEmail: "buyer@example.com"}, nil)
				reportRepo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)
			},
			expectedReason: "Screenshot is unrelated to the task",
		},
		{
			name: "Empty reason gets the default",
			prepareMock: func(reportRepo *MockReportRepo, submissionRepo *MockSubmissionRepo) {
				submissionRepo.EXPECT().FindByID(gomock.Any(), 7).
					Return(&domain.Submission{ID: 7, BuyerEmail: "buyer@example.com"}, nil)
				reportRepo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)
			},
			expectedReason: "Invalid submission",
		},
		{
			name: "Someone else's submission looks missing",
			prepareMock: func(reportRepo *MockReportRepo, submissionRepo *MockSubmissionRepo) {
				submissionRepo.EXPECT().FindByID(gomock.Any(), 7).
					Return(&domain.Submission{ID: 7, BuyerEmail: "other@example.com"}, nil)
			},
			expectedError: domain.ErrNotFound,
		},
		{
			name: "Missing submission",
			prepareMock: func(reportRepo *MockReportRepo, submissionRepo *MockSubmissionRepo) {
				submissionRepo.EXPECT().FindByID(gomock.Any(), 7).Return(nil, nil)
			},
			expectedError: domain.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, reportRepo, submissionRepo := NewMock(t)
			tt.prepareMock(reportRepo, submissionRepo)

			report, err := service.Create(context.Background(), buyer, 7, tt.reason)
			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, report)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedReason, report.Reason)
				assert.Equal(t, "buyer@example.com", report.ReportedBy)
				assert.Equal(t, "pending", report.Status)
			}
		})
	}
}

func TestReportList(t *testing.T) {
	service, reportRepo, _ := NewMock(t)

	reportRepo.EXPECT().ListAll(gomock.Any()).Return([]domain.Report{
		{ID: 1, SubmissionID: 7, Reason: "Invalid submission"},
	}, nil)

	reports, err := service.List(context.Background())
	assert.NoError(t, err)
	assert.Len(t, reports, 1)
}
