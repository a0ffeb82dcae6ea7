package payments

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/taskhive/taskhive/internal/domain"
	"github.com/taskhive/taskhive/internal/dto"
	"github.com/taskhive/taskhive/internal/handlers/httperr"
	"github.com/taskhive/taskhive/internal/middleware"
	"github.com/taskhive/taskhive/internal/service/paymentservice"
	"github.com/taskhive/taskhive/pkg/utils"
)

type Service interface {
	CreateIntent(ctx context.Context, buyer *domain.User, packageIndex int) (*paymentservice.Intent, error)
	Confirm(ctx context.Context, buyer *domain.User, coins int64, amount decimal.Decimal, providerRef string) (*domain.Payment, error)
	History(ctx context.Context, userEmail string) ([]domain.Payment, error)
}

type PaymentHandler struct {
	paymentService Service
}

func New(paymentService Service) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
	}
}

// Packages godoc
//
//	@Summary	List purchasable coin packages
//	@Tags		Payments
//	@Produce	json
//	@Success	200	{array}	dto.CoinPackageDTO
//	@Router		/api/payments/packages [get]
func (h *PaymentHandler) Packages(w http.ResponseWriter, r *http.Request) {
	response := make([]dto.CoinPackageDTO, 0, len(paymentservice.Packages))
	for _, pkg := range paymentservice.Packages {
		response = append(response, dto.CoinPackageDTO{
			Coins: pkg.Coins,
			Price: strconv.FormatInt(pkg.Price, 10),
		})
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

// CreateIntent godoc
//
//	@Summary		Start a coin purchase
//	@Description	Creates a provider payment intent for the selected package, or a demo intent when no provider is configured
//	@Tags			Payments
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.CreateIntentRequestDTO	true	"Package selection"
//	@Success		200		{object}	dto.CreateIntentResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid package"
//	@Router			/api/payments/create-intent [post]
func (h *PaymentHandler) CreateIntent(w http.ResponseWriter, r *http.Request) {
	buyer, _ := middleware.UserFrom(r.Context())

	var req dto.CreateIntentRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	intent, err := h.paymentService.CreateIntent(r.Context(), buyer, req.PackageIndex)
	if err != nil {
		httperr.Respond(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.CreateIntentResponseDTO{
		ClientSecret: intent.ClientSecret,
		Coins:        intent.Coins,
		Amount:       intent.Amount.StringFixed(2),
		Demo:         intent.Demo,
	})
}

// Confirm godoc
//
//	@Summary		Confirm a coin purchase
//	@Description	Verifies the provider intent when a reference is given, then records the payment and credits the coins
//	@Tags			Payments
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.ConfirmPaymentRequestDTO	true	"Purchase confirmation"
//	@Success		201		{object}	dto.PaymentResponseDTO
//	@Failure		400		{object}	utils.Response	"Payment not successful"
//	@Router			/api/payments/confirm [post]
func (h *PaymentHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	buyer, _ := middleware.UserFrom(r.Context())

	var req dto.ConfirmPaymentRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid amount")
		return
	}
	payment, err := h.paymentService.Confirm(r.Context(), buyer, req.Coins, amount, req.PaymentIntentID)
	if err != nil {
		httperr.Respond(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, toDTO(*payment))
}

// History godoc
//
//	@Summary	List the buyer's coin purchases
//	@Tags		Payments
//	@Security	BearerAuth
//	@Produce	json
//	@Success	200	{array}	dto.PaymentResponseDTO
//	@Router		/api/payments/history [get]
func (h *PaymentHandler) History(w http.ResponseWriter, r *http.Request) {
	buyer, _ := middleware.UserFrom(r.Context())

	history, err := h.paymentService.History(r.Context(), buyer.Email)
	if err != nil {
		httperr.Respond(w, err)
		return
	}
	response := make([]dto.PaymentResponseDTO, 0, len(history))
	for _, payment := range history {
		response = append(response, toDTO(payment))
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

func toDTO(payment domain.Payment) dto.PaymentResponseDTO {
	return dto.PaymentResponseDTO{
		ID:          payment.ID,
		UserEmail:   payment.UserEmail,
		Coins:       payment.Coins,
		Amount:      payment.Amount.StringFixed(2),
		ProviderRef: payment.ProviderRef,
		CreatedAt:   payment.CreatedAt,
	}
}
