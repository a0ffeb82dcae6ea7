package notifications

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	"github.com/taskhive/taskhive/internal/domain"
	"github.com/taskhive/taskhive/internal/dto"
	"github.com/taskhive/taskhive/internal/middleware"
)

func NewMock(t *testing.T) (*NotificationHandler, *MockStore) {
	ctrl := gomock.NewController(t)
	store := NewMockStore(ctrl)
	handler := New(store)
	defer ctrl.Finish()
	return handler, store
}

var worker = &domain.User{ID: 2, Email: "worker@example.com", Role: domain.RoleWorker}

func TestListHandler(t *testing.T) {
	tests := []struct {
		name          string
		target        string
		expectedLimit int
	}{
		{name: "Default limit", target: "/notifications", expectedLimit: 20},
		{name: "Explicit limit", target: "/notifications?limit=5", expectedLimit: 5},
		{name: "Oversized limit falls back", target: "/notifications?limit=500", expectedLimit: 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, store := NewMock(t)

			store.EXPECT().
				ListByRecipient(gomock.Any(), "worker@example.com", tt.expectedLimit).
				Return([]domain.Notification{
					{ID: 1, Message: "Your submission was approved", ActionRoute: "/dashboard/submissions"},
				}, nil)

			r := httptest.NewRequest(http.MethodGet, tt.target, nil)
			r = r.WithContext(context.WithValue(r.Context(), middleware.UserKey, worker))
			w := httptest.NewRecorder()
			handler.List(w, r)

			assert.Equal(t, http.StatusOK, w.Code)
			var body []dto.NotificationResponseDTO
			_ = json.NewDecoder(w.Body).Decode(&body)
			assert.Len(t, body, 1)
			assert.Equal(t, "Your submission was approved", body[0].Message)
		})
	}
}
