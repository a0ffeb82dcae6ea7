package reportservice

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/taskhive/taskhive/internal/domain"
)

type ReportRepo interface {
	Save(ctx context.Context, report *domain.Report) error
	ListAll(ctx context.Context) ([]domain.Report, error)
}

type SubmissionRepo interface {
	FindByID(ctx context.Context, id int) (*domain.Submission, error)
}

type Service struct {
	reportRepo     ReportRepo
	submissionRepo SubmissionRepo
}

func New(reportRepo ReportRepo, submissionRepo SubmissionRepo) *Service {
	return &Service{
		reportRepo:     reportRepo,
		submissionRepo: submissionRepo,
	}
}

// Create files a report against a submission the buyer owns. A submission
// owned by someone else is indistinguishable from a missing one.
func (s *Service) Create(ctx context.Context, buyer *domain.User, submissionID int, reason string) (*domain.Report, error) {
	sub, err := s.submissionRepo.FindByID(ctx, submissionID)
	if err != nil {
		return nil, err
	}
	if sub == nil || sub.BuyerEmail != buyer.Email {
		return nil, fmt.Errorf("%w: submission not found", domain.ErrNotFound)
	}

	if reason == "" {
		reason = "Invalid submission"
	}
	report := &domain.Report{
		SubmissionID: submissionID,
		ReportedBy:   buyer.Email,
		Reason:       reason,
		Status:       "pending",
	}
	if err := s.reportRepo.Save(ctx, report); err != nil {
		zap.L().Error("can't save report", zap.Error(err))
		return nil, err
	}
	return report, nil
}

func (s *Service) List(ctx context.Context) ([]domain.Report, error) {
	return s.reportRepo.ListAll(ctx)
}
