package withdrawals

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	"github.com/taskhive/taskhive/internal/domain"
	"github.com/taskhive/taskhive/internal/dto"
	"github.com/taskhive/taskhive/internal/middleware"
)

func NewMock(t *testing.T) (*WithdrawalHandler, *MockService) {
	ctrl := gomock.NewController(t)
	service := NewMockService(ctrl)
	handler := New(service)
	defer ctrl.Finish()
	return handler, service
}

var worker = &domain.User{ID: 2, Email: "worker@example.com", Role: domain.RoleWorker}

func authed(r *http.Request, user *domain.User) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), middleware.UserKey, user))
}

func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func TestCreateHandler(t *testing.T) {
	tests := []struct {
		name         string
		body         string
		prepareMock  func(service *MockService)
		expectedCode int
	}{
		{
			name: "Request recorded",
			body: `{"withdrawal_coin":200,"payment_system":"Stripe","account_number":"4561261212345467"}`,
			prepareMock: func(service *MockService) {
				service.EXPECT().
					Request(gomock.Any(), worker, int64(200), "Stripe", "4561261212345467").
					Return(&domain.Withdrawal{
						ID:         3,
						CoinAmount: 200,
						Amount:     decimal.NewFromInt(10),
						Status:     "pending",
					}, nil)
			},
			expectedCode: http.StatusCreated,
		},
		{
			name:         "Invalid request body",
			body:         `{"withdrawal_coin":`,
			prepareMock:  func(service *MockService) {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name: "Below the minimum",
			body: `{"withdrawal_coin":199,"account_number":"4561261212345467"}`,
			prepareMock: func(service *MockService) {
				service.EXPECT().
					Request(gomock.Any(), worker, int64(199), "", "4561261212345467").
					Return(nil, domain.ErrValidation)
			},
			expectedCode: http.StatusBadRequest,
		},
		{
			name: "Balance too low",
			body: `{"withdrawal_coin":200,"account_number":"4561261212345467"}`,
			prepareMock: func(service *MockService) {
				service.EXPECT().
					Request(gomock.Any(), worker, int64(200), "", "4561261212345467").
					Return(nil, domain.ErrInsufficientFunds)
			},
			expectedCode: http.StatusPaymentRequired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, service := NewMock(t)
			tt.prepareMock(service)

			r := httptest.NewRequest(http.MethodPost, "/withdrawals", bytes.NewBufferString(tt.body))
			r = authed(r, worker)
			w := httptest.NewRecorder()
			handler.Create(w, r)

			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedCode == http.StatusCreated {
				var body dto.WithdrawalResponseDTO
				_ = json.NewDecoder(w.Body).Decode(&body)
				assert.Equal(t, int64(200), body.CoinAmount)
				assert.Equal(t, "10.00", body.Amount)
			}
		})
	}
}

func TestMineHandler(t *testing.T) {
	handler, service := NewMock(t)

	service.EXPECT().
		ListByWorker(gomock.Any(), "worker@example.com").
		Return([]domain.Withdrawal{{ID: 3, CoinAmount: 200, Amount: decimal.NewFromInt(10)}}, nil)

	r := httptest.NewRequest(http.MethodGet, "/withdrawals/worker/mine", nil)
	r = authed(r, worker)
	w := httptest.NewRecorder()
	handler.Mine(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	var body []dto.WithdrawalResponseDTO
	_ = json.NewDecoder(w.Body).Decode(&body)
	assert.Len(t, body, 1)
}

func TestPendingHandler(t *testing.T) {
	handler, service := NewMock(t)

	service.EXPECT().
		ListPending(gomock.Any()).
		Return([]domain.Withdrawal{{ID: 3, Status: "pending", Amount: decimal.NewFromInt(10)}}, nil)

	r := httptest.NewRequest(http.MethodGet, "/withdrawals/admin/pending", nil)
	w := httptest.NewRecorder()
	handler.Pending(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestApproveHandler(t *testing.T) {
	tests := []struct {
		name         string
		id           string
		prepareMock  func(service *MockService)
		expectedCode int
	}{
		{
			name: "Coins debited",
			id:   "3",
			prepareMock: func(service *MockService) {
				service.EXPECT().Approve(gomock.Any(), 3).
					Return(&domain.Withdrawal{ID: 3, Status: "approved", Amount: decimal.NewFromInt(10)}, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name:         "Non-numeric id",
			id:           "abc",
			prepareMock:  func(service *MockService) {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name: "Balance no longer covers it",
			id:   "3",
			prepareMock: func(service *MockService) {
				service.EXPECT().Approve(gomock.Any(), 3).
					Return(nil, domain.ErrInsufficientFunds)
			},
			expectedCode: http.StatusPaymentRequired,
		},
		{
			name: "Already approved",
			id:   "3",
			prepareMock: func(service *MockService) {
				service.EXPECT().Approve(gomock.Any(), 3).
					Return(nil, domain.ErrNotFound)
			},
			expectedCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, service := NewMock(t)
			tt.prepareMock(service)

			r := httptest.NewRequest(http.MethodPatch, "/withdrawals/"+tt.id+"/approve", nil)
			r = withURLParam(r, "id", tt.id)
			w := httptest.NewRecorder()
			handler.Approve(w, r)

			assert.Equal(t, tt.expectedCode, w.Code)
		})
	}
}
