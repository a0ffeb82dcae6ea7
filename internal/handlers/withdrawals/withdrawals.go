package withdrawals

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
	Request(ctx context.Context, worker *domain.User, coinAmount int64, paymentSystem, accountNumber string) (*domain.Withdrawal, error)
	Approve(ctx context.Context, id int) (*domain.Withdrawal, error)
	ListByWorker(ctx context.Context, workerEmail string) ([]domain.Withdrawal, error)
	ListPending(ctx context.Context) ([]domain.Withdrawal, error)
}

type WithdrawalHandler struct {
	withdrawalService Service
}

func New(withdrawalService Service) *WithdrawalHandler {
	return &WithdrawalHandler{
		withdrawalService: withdrawalService,
	}
}

// Create godoc
//
//	@Summary		Request a withdrawal
//	@Description	Record a pending cash-out; coins are debited only at admin approval
//	@Tags			Withdrawals
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.CreateWithdrawalRequestDTO	true	"Withdrawal payload"
//	@Success		201		{object}	dto.WithdrawalResponseDTO
//	@Failure		400		{object}	utils.Response	"Below minimum or bad account number"
//	@Failure		402		{object}	utils.Response	"Insufficient funds"
//	@Router			/api/withdrawals [post]
func (h *WithdrawalHandler) Create(w http.ResponseWriter, r *http.Request) {
	worker, _ := middleware.UserFrom(r.Context())

	var req dto.CreateWithdrawalRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	withdrawal, err := h.withdrawalService.Request(r.Context(), worker, req.CoinAmount, req.PaymentSystem, req.AccountNumber)
	if err != nil {
		httperr.Respond(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, toDTO(*withdrawal))
}

// Mine godoc
//
//	@Summary	List the worker's own withdrawals
//	@Tags		Withdrawals
//	@Security	BearerAuth
//	@Produce	json
//	@Success	200	{array}	dto.WithdrawalResponseDTO
//	@Router		/api/withdrawals/worker/mine [get]
func (h *WithdrawalHandler) Mine(w http.ResponseWriter, r *http.Request) {
	worker, _ := middleware.UserFrom(r.Context())

	withdrawals, err := h.withdrawalService.ListByWorker(r.Context(), worker.Email)
	if err != nil {
		httperr.Respond(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, toDTOs(withdrawals))
}

// Pending godoc
//
//	@Summary	List pending withdrawals (admin)
//	@Tags		Withdrawals
//	@Security	BearerAuth
//	@Produce	json
//	@Success	200	{array}	dto.WithdrawalResponseDTO
//	@Router		/api/withdrawals/admin/pending [get]
func (h *WithdrawalHandler) Pending(w http.ResponseWriter, r *http.Request) {
	withdrawals, err := h.withdrawalService.ListPending(r.Context())
	if err != nil {
		httperr.Respond(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, toDTOs(withdrawals))
}

// Approve godoc
//
//	@Summary		Approve a pending withdrawal (admin)
//	@Description	Flips the request to approved and debits the worker's live balance in one transaction
//	@Tags			Withdrawals
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		int	true	"withdrawal id"
//	@Success		200	{object}	dto.WithdrawalResponseDTO
//	@Failure		402	{object}	utils.Response	"Balance no longer covers the request"
//	@Failure		404	{object}	utils.Response	"Withdrawal not found or not pending"
//	@Router			/api/withdrawals/{id}/approve [patch]
func (h *WithdrawalHandler) Approve(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid ID")
		return
	}
	withdrawal, err := h.withdrawalService.Approve(r.Context(), id)
	if err != nil {
		httperr.Respond(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, toDTO(*withdrawal))
}

func toDTO(w domain.Withdrawal) dto.WithdrawalResponseDTO {
	return dto.WithdrawalResponseDTO{
		ID:            w.ID,
		WorkerEmail:   w.WorkerEmail,
		WorkerName:    w.WorkerName,
		CoinAmount:    w.CoinAmount,
		Amount:        w.Amount.StringFixed(2),
		PaymentSystem: w.PaymentSystem,
		AccountNumber: w.AccountNumber,
		Status:        w.Status,
		CreatedAt:     w.CreatedAt,
	}
}

func toDTOs(withdrawals []domain.Withdrawal) []dto.WithdrawalResponseDTO {
	response := make([]dto.WithdrawalResponseDTO, 0, len(withdrawals))
	for _, w := range withdrawals {
		response = append(response, toDTO(w))
	}
	return response
}
