package users

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taskhive/taskhive/internal/domain"
	"github.com/taskhive/taskhive/internal/dto"
	"github.com/taskhive/taskhive/internal/handlers/httperr"
	"github.com/taskhive/taskhive/internal/service/userservice"
	"github.com/taskhive/taskhive/pkg/utils"
)

type Service interface {
	List(ctx context.Context) ([]domain.User, error)
	TopWorkers(ctx context.Context) ([]domain.User, error)
	UpdateRole(ctx context.Context, email, role string) error
	Delete(ctx context.Context, email string) error
	Stats(ctx context.Context) (*userservice.PlatformStats, error)
}

type UserHandler struct {
	userService Service
}

func New(userService Service) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// TopWorkers godoc
//
//	@Summary	Workers with the highest coin balances
//	@Tags		Users
//	@Produce	json
//	@Success	200	{array}	dto.TopWorkerResponseDTO
//	@Router		/api/users/top-workers [get]
func (h *UserHandler) TopWorkers(w http.ResponseWriter, r *http.Request) {
	workers, err := h.userService.TopWorkers(r.Context())
	if err != nil {
		httperr.Respond(w, err)
		return
	}
	response := make([]dto.TopWorkerResponseDTO, 0, len(workers))
	for _, worker := range workers {
		response = append(response, dto.TopWorkerResponseDTO{
			Name:     worker.Name,
			Email:    worker.Email,
			PhotoURL: worker.PhotoURL,
			Coin:     worker.Coin,
		})
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

// List godoc
//
//	@Summary	List all users (admin)
//	@Tags		Users
//	@Security	BearerAuth
//	@Produce	json
//	@Success	200	{array}	dto.UserResponseDTO
//	@Router		/api/users [get]
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.List(r.Context())
	if err != nil {
		httperr.Respond(w, err)
		return
	}
	response := make([]dto.UserResponseDTO, 0, len(users))
	for _, user := range users {
		response = append(response, dto.UserResponseDTO{
			ID:        user.ID,
			Email:     user.Email,
			Name:      user.Name,
			PhotoURL:  user.PhotoURL,
			Role:      string(user.Role),
			Coin:      user.Coin,
			CreatedAt: user.CreatedAt,
		})
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

// UpdateRole godoc
//
//	@Summary	Change a user's role (admin)
//	@Tags		Users
//	@Security	BearerAuth
//	@Accept		json
//	@Produce	json
//	@Param		email	path		string					true	"user email"
//	@Param		request	body		dto.UpdateRoleRequestDTO	true	"New role"
//	@Success	200		{object}	utils.Response
//	@Failure	400		{object}	utils.Response	"Unknown role"
//	@Failure	404		{object}	utils.Response	"User not found"
//	@Router		/api/users/{email}/role [patch]
func (h *UserHandler) UpdateRole(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")

	var req dto.UpdateRoleRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := h.userService.UpdateRole(r.Context(), email, req.Role); err != nil {
		httperr.Respond(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.Response{Message: "Role updated"})
}

// Delete godoc
//
//	@Summary	Delete a user (admin)
//	@Tags		Users
//	@Security	BearerAuth
//	@Produce	json
//	@Param		email	path		string	true	"user email"
//	@Success	200		{object}	utils.Response
//	@Failure	404		{object}	utils.Response	"User not found"
//	@Router		/api/users/{email} [delete]
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")

	if err := h.userService.Delete(r.Context(), email); err != nil {
		httperr.Respond(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.Response{Message: "User deleted"})
}

// Stats godoc
//
//	@Summary	Platform-wide totals (admin)
//	@Tags		Users
//	@Security	BearerAuth
//	@Produce	json
//	@Success	200	{object}	dto.PlatformStatsResponseDTO
//	@Router		/api/users/admin/stats [get]
func (h *UserHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.userService.Stats(r.Context())
	if err != nil {
		httperr.Respond(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.PlatformStatsResponseDTO{
		TotalWorkers:  stats.TotalWorkers,
		TotalBuyers:   stats.TotalBuyers,
		TotalCoins:    stats.TotalCoins,
		TotalPayments: stats.TotalPayments.StringFixed(2),
	})
}
