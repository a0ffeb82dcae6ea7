package reportrepo

import (
	"context"

	"go.uber.org/zap"

	"github.com/taskhive/taskhive/internal/domain"
	"github.com/taskhive/taskhive/internal/pg"
)

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

func (r *Repository) Save(ctx context.Context, report *domain.Report) error {
	query := `
		INSERT INTO reports (submission_id, reported_by, reason, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`
	err := r.db.QueryRow(ctx, query, report.SubmissionID, report.ReportedBy, report.Reason, report.Status).
		Scan(&report.ID, &report.CreatedAt)
	if err != nil {
		zap.L().Error("can't save report", zap.Error(err))
		return pg.TranslateError(err)
	}
	return nil
}

func (r *Repository) ListAll(ctx context.Context) ([]domain.Report, error) {
	query := `
		SELECT id, submission_id, reported_by, reason, status, created_at
		FROM reports
		ORDER BY created_at DESC
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		zap.L().Error("can't query reports", zap.Error(err))
		return nil, pg.TranslateError(err)
	}
	defer rows.Close()

	var reports []domain.Report
	for rows.Next() {
		var report domain.Report
		err := rows.Scan(&report.ID, &report.SubmissionID, &report.ReportedBy, &report.Reason, &report.Status, &report.CreatedAt)
		if err != nil {
			zap.L().Error("can't scan report row", zap.Error(err))
			return nil, pg.TranslateError(err)
		}
		reports = append(reports, report)
	}
	return reports, nil
}
