package submissions

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/taskhive/taskhive/internal/domain"
	"github.com/taskhive/taskhive/internal/dto"
	"github.com/taskhive/taskhive/internal/handlers/httperr"
	"github.com/taskhive/taskhive/internal/middleware"
	"github.com/taskhive/taskhive/pkg/utils"
)

type Service interface {
	Submit(ctx context.Context, worker *domain.User, taskID int, details string) (*domain.Submission, error)
	Approve(ctx context.Context, buyer *domain.User, id int) (*domain.Submission, error)
	Reject(ctx context.Context, buyer *domain.User, id int) (*domain.Submission, error)
	ListByWorker(ctx context.Context, workerEmail string, page, limit int) ([]domain.Submission, int, error)
	ListApprovedByWorker(ctx context.Context, workerEmail string) ([]domain.Submission, error)
	ListPendingByBuyer(ctx context.Context, buyerEmail string) ([]domain.Submission, error)
	WorkerStats(ctx context.Context, workerEmail string) (int, int, int64, error)
}

type SubmissionHandler struct {
	submissionService Service
}

func New(submissionService Service) *SubmissionHandler {
	return &SubmissionHandler{
		submissionService: submissionService,
	}
}

// Create godoc
//
//	@Summary		Submit work for a task
//	@Description	Consumes one open slot of the task and records a pending submission
//	@Tags			Submissions
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.CreateSubmissionRequestDTO	true	"Submission payload"
//	@Success		201		{object}	dto.SubmissionResponseDTO
//	@Failure		404		{object}	utils.Response	"Task not found"
//	@Failure		409		{object}	utils.Response	"Task full or already submitted"
//	@Router			/api/submissions [post]
func (h *SubmissionHandler) Create(w http.ResponseWriter, r *http.Request) {
	worker, _ := middleware.UserFrom(r.Context())

	var req dto.CreateSubmissionRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	sub, err := h.submissionService.Submit(r.Context(), worker, req.TaskID, req.Details)
	if err != nil {
		httperr.Respond(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, toDTO(*sub))
}

// Mine godoc
//
//	@Summary	List the worker's own submissions
//	@Tags		Submissions
//	@Security	BearerAuth
//	@Produce	json
//	@Param		page	query		int	false	"page number"
//	@Param		limit	query		int	false	"page size (5-20)"
//	@Success	200		{object}	dto.SubmissionListResponseDTO
//	@Router		/api/submissions/worker/mine [get]
func (h *SubmissionHandler) Mine(w http.ResponseWriter, r *http.Request) {
	worker, _ := middleware.UserFrom(r.Context())

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	subs, total, err := h.submissionService.ListByWorker(r.Context(), worker.Email, page, limit)
	if err != nil {
		httperr.Respond(w, err)
		return
	}
	if page < 1 {
		page = 1
	}
	if limit < 5 || limit > 20 {
		limit = 10
	}
	response := dto.SubmissionListResponseDTO{
		Submissions: toDTOs(subs),
		Total:       total,
		Page:        page,
		Limit:       limit,
		TotalPages:  (total + limit - 1) / limit,
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

// Approved godoc
//
//	@Summary	List the worker's approved submissions
//	@Tags		Submissions
//	@Security	BearerAuth
//	@Produce	json
//	@Success	200	{array}	dto.SubmissionResponseDTO
//	@Router		/api/submissions/worker/approved [get]
func (h *SubmissionHandler) Approved(w http.ResponseWriter, r *http.Request) {
	worker, _ := middleware.UserFrom(r.Context())

	subs, err := h.submissionService.ListApprovedByWorker(r.Context(), worker.Email)
	if err != nil {
		httperr.Respond(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, toDTOs(subs))
}

// Stats godoc
//
//	@Summary	Worker dashboard stats
//	@Tags		Submissions
//	@Security	BearerAuth
//	@Produce	json
//	@Success	200	{object}	dto.WorkerStatsResponseDTO
//	@Router		/api/submissions/worker/stats [get]
func (h *SubmissionHandler) Stats(w http.ResponseWriter, r *http.Request) {
	worker, _ := middleware.UserFrom(r.Context())

	total, pending, earned, err := h.submissionService.WorkerStats(r.Context(), worker.Email)
	if err != nil {
		httperr.Respond(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.WorkerStatsResponseDTO{
		TotalSubmissions:   total,
		PendingSubmissions: pending,
		TotalEarning:       earned,
	})
}

// Pending godoc
//
//	@Summary	List pending submissions for the buyer's tasks
//	@Tags		Submissions
//	@Security	BearerAuth
//	@Produce	json
//	@Success	200	{array}	dto.SubmissionResponseDTO
//	@Router		/api/submissions/buyer/pending [get]
func (h *SubmissionHandler) Pending(w http.ResponseWriter, r *http.Request) {
	buyer, _ := middleware.UserFrom(r.Context())

	subs, err := h.submissionService.ListPendingByBuyer(r.Context(), buyer.Email)
	if err != nil {
		httperr.Respond(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, toDTOs(subs))
}

// Approve godoc
//
//	@Summary		Approve a pending submission
//	@Description	Credits the worker the payable amount captured at submit time
//	@Tags			Submissions
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		int	true	"submission id"
//	@Success		200	{object}	dto.SubmissionResponseDTO
//	@Failure		404	{object}	utils.Response	"Submission not found or not pending"
//	@Router			/api/submissions/{id}/approve [patch]
func (h *SubmissionHandler) Approve(w http.ResponseWriter, r *http.Request) {
	buyer, _ := middleware.UserFrom(r.Context())

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid ID")
		return
	}
	sub, err := h.submissionService.Approve(r.Context(), buyer, id)
	if err != nil {
		httperr.Respond(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, toDTO(*sub))
}

// Reject godoc
//
//	@Summary		Reject a pending submission
//	@Description	Reopens the task slot; no coins move
//	@Tags			Submissions
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		int	true	"submission id"
//	@Success		200	{object}	dto.SubmissionResponseDTO
//	@Failure		404	{object}	utils.Response	"Submission not found or not pending"
//	@Router			/api/submissions/{id}/reject [patch]
func (h *SubmissionHandler) Reject(w http.ResponseWriter, r *http.Request) {
	buyer, _ := middleware.UserFrom(r.Context())

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid ID")
		return
	}
	sub, err := h.submissionService.Reject(r.Context(), buyer, id)
	if err != nil {
		httperr.Respond(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, toDTO(*sub))
}

func toDTO(sub domain.Submission) dto.SubmissionResponseDTO {
	return dto.SubmissionResponseDTO{
		ID:            sub.ID,
		TaskID:        sub.TaskID,
		TaskTitle:     sub.TaskTitle,
		PayableAmount: sub.PayableAmount,
		WorkerEmail:   sub.WorkerEmail,
		WorkerName:    sub.WorkerName,
		BuyerEmail:    sub.BuyerEmail,
		BuyerName:     sub.BuyerName,
		Details:       sub.Details,
		Status:        sub.Status,
		CreatedAt:     sub.CreatedAt,
	}
}

func toDTOs(subs []domain.Submission) []dto.SubmissionResponseDTO {
	response := make([]dto.SubmissionResponseDTO, 0, len(subs))
	for _, sub := range subs {
		response = append(response, toDTO(sub))
	}
	return response
}
