package reports

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/taskhive/taskhive/internal/domain"
	"github.com/taskhive/taskhive/internal/dto"
	"github.com/taskhive/taskhive/internal/handlers/httperr"
	"github.com/taskhive/taskhive/internal/middleware"
	"github.com/taskhive/taskhive/pkg/utils"
)

type Service interface {
	Create(ctx context.Context, buyer *domain.User, submissionID int, reason string) (*domain.Report, error)
	List(ctx context.Context) ([]domain.Report, error)
}

type ReportHandler struct {
	reportService Service
}

func New(reportService Service) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
	}
}

// Create godoc
//
//	@Summary		Report a submission
//	@Description	Flags one of the buyer's own submissions for admin review
//	@Tags			Reports
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.CreateReportRequestDTO	true	"Report payload"
//	@Success		201		{object}	dto.ReportResponseDTO
//	@Failure		404		{object}	utils.Response	"Submission not found"
//	@Router			/api/reports [post]
func (h *ReportHandler) Create(w http.ResponseWriter, r *http.Request) {
	buyer, _ := middleware.UserFrom(r.Context())

	var req dto.CreateReportRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	report, err := h.reportService.Create(r.Context(), buyer, req.SubmissionID, req.Reason)
	if err != nil {
		httperr.Respond(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, toDTO(*report))
}

// List godoc
//
//	@Summary	List all reports (admin)
//	@Tags		Reports
//	@Security	BearerAuth
//	@Produce	json
//	@Success	200	{array}	dto.ReportResponseDTO
//	@Router		/api/reports [get]
func (h *ReportHandler) List(w http.ResponseWriter, r *http.Request) {
	reports, err := h.reportService.List(r.Context())
	if err != nil {
		httperr.Respond(w, err)
		return
	}
	response := make([]dto.ReportResponseDTO, 0, len(reports))
	for _, report := range reports {
		response = append(response, toDTO(report))
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

func toDTO(report domain.Report) dto.ReportResponseDTO {
	return dto.ReportResponseDTO{
		ID:           report.ID,
		SubmissionID: report.SubmissionID,
		ReportedBy:   report.ReportedBy,
		Reason:       report.Reason,
		Status:       report.Status,
		CreatedAt:    report.CreatedAt,
	}
}
