package notifications

import (
	"context"
	"net/http"
	"strconv"

	"github.com/taskhive/taskhive/internal/domain"
	"github.com/taskhive/taskhive/internal/dto"
	"github.com/taskhive/taskhive/internal/handlers/httperr"
	"github.com/taskhive/taskhive/internal/middleware"
	"github.com/taskhive/taskhive/pkg/utils"
)

const defaultLimit = 20

type Store interface {
	ListByRecipient(ctx context.Context, toEmail string, limit int) ([]domain.Notification, error)
}

type NotificationHandler struct {
	store Store
}

func New(store Store) *NotificationHandler {
	return &NotificationHandler{
		store: store,
	}
}

// List godoc
//
//	@Summary	Recent notifications for the authenticated user
//	@Tags		Notifications
//	@Security	BearerAuth
//	@Produce	json
//	@Param		limit	query	int	false	"max entries, newest first"
//	@Success	200		{array}	dto.NotificationResponseDTO
//	@Router		/api/notifications [get]
func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.UserFrom(r.Context())

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit < 1 || limit > 100 {
		limit = defaultLimit
	}

	notifications, err := h.store.ListByRecipient(r.Context(), user.Email, limit)
	if err != nil {
		httperr.Respond(w, err)
		return
	}
	response := make([]dto.NotificationResponseDTO, 0, len(notifications))
	for _, n := range notifications {
		response = append(response, dto.NotificationResponseDTO{
			ID:          n.ID,
			Message:     n.Message,
			ActionRoute: n.ActionRoute,
			CreatedAt:   n.CreatedAt,
		})
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}
