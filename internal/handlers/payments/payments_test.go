package payments

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	"github.com/taskhive/taskhive/internal/domain"
	"github.com/taskhive/taskhive/internal/dto"
	"github.com/taskhive/taskhive/internal/middleware"
	"github.com/taskhive/taskhive/internal/service/paymentservice"
)

func NewMock(t *testing.T) (*PaymentHandler, *MockService) {
	ctrl := gomock.NewController(t)
	service := NewMockService(ctrl)
	handler := New(service)
	defer ctrl.Finish()
	return handler, service
}

var buyer = &domain.User{ID: 1, Email: "buyer@example.com", Role: domain.RoleBuyer}

func authed(r *http.Request, user *domain.User) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), middleware.UserKey, user))
}

func TestPackagesHandler(t *testing.T) {
	handler, _ := NewMock(t)

	r := httptest.NewRequest(http.MethodGet, "/payments/packages", nil)
	w := httptest.NewRecorder()
	handler.Packages(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	var body []dto.CoinPackageDTO
	_ = json.NewDecoder(w.Body).Decode(&body)
	assert.Len(t, body, len(paymentservice.Packages))
	assert.Equal(t, int64(10), body[0].Coins)
	assert.Equal(t, "1", body[0].Price)
}

func TestCreateIntentHandler(t *testing.T) {
	tests := []struct {
		name         string
		body         string
		prepareMock  func(service *MockService)
		expectedCode int
	}{
		{
			name: "Intent created",
			body: `{"packageIndex":1}`,
			prepareMock: func(service *MockService) {
				service.EXPECT().CreateIntent(gomock.Any(), buyer, 1).
					Return(&paymentservice.Intent{
						ClientSecret: "secret",
						Coins:        150,
						Amount:       decimal.NewFromInt(10),
					}, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name:         "Invalid request body",
			body:         `{"packageIndex":`,
			prepareMock:  func(service *MockService) {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name: "Unknown package",
			body: `{"packageIndex":9}`,
			prepareMock: func(service *MockService) {
				service.EXPECT().CreateIntent(gomock.Any(), buyer, 9).
					Return(nil, domain.ErrValidation)
			},
			expectedCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, service := NewMock(t)
			tt.prepareMock(service)

			r := httptest.NewRequest(http.MethodPost, "/payments/create-intent", bytes.NewBufferString(tt.body))
			r = authed(r, buyer)
			w := httptest.NewRecorder()
			handler.CreateIntent(w, r)

			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedCode == http.StatusOK {
				var body dto.CreateIntentResponseDTO
				_ = json.NewDecoder(w.Body).Decode(&body)
				assert.Equal(t, "secret", body.ClientSecret)
				assert.Equal(t, "10.00", body.Amount)
			}
		})
	}
}

func TestConfirmHandler(t *testing.T) {
	tests := []struct {
		name         string
		body         string
		prepareMock  func(service *MockService)
		expectedCode int
	}{
		{
			name: "Coins credited",
			body: `{"coins":150,"amount":"10","paymentIntentId":"pi_1"}`,
			prepareMock: func(service *MockService) {
				service.EXPECT().
					Confirm(gomock.Any(), buyer, int64(150), decimal.NewFromInt(10), "pi_1").
					Return(&domain.Payment{ID: 1, Coins: 150, Amount: decimal.NewFromInt(10), ProviderRef: "pi_1"}, nil)
			},
			expectedCode: http.StatusCreated,
		},
		{
			name:         "Unparseable amount",
			body:         `{"coins":150,"amount":"ten"}`,
			prepareMock:  func(service *MockService) {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name: "Provider reports failure",
			body: `{"coins":150,"amount":"10","paymentIntentId":"pi_1"}`,
			prepareMock: func(service *MockService) {
				service.EXPECT().
					Confirm(gomock.Any(), buyer, int64(150), decimal.NewFromInt(10), "pi_1").
					Return(nil, domain.ErrValidation)
			},
			expectedCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, service := NewMock(t)
			tt.prepareMock(service)

			r := httptest.NewRequest(http.MethodPost, "/payments/confirm", bytes.NewBufferString(tt.body))
			r = authed(r, buyer)
			w := httptest.NewRecorder()
			handler.Confirm(w, r)

			assert.Equal(t, tt.expectedCode, w.Code)
		})
	}
}

func TestHistoryHandler(t *testing.T) {
	handler, service := NewMock(t)

	service.EXPECT().History(gomock.Any(), "buyer@example.com").
		Return([]domain.Payment{{ID: 1, Coins: 150, Amount: decimal.NewFromInt(10)}}, nil)

	r := httptest.NewRequest(http.MethodGet, "/payments/history", nil)
	r = authed(r, buyer)
	w := httptest.NewRecorder()
	handler.History(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	var body []dto.PaymentResponseDTO
	_ = json.NewDecoder(w.Body).Decode(&body)
	assert.Len(t, body, 1)
	assert.Equal(t, "10.00", body[0].Amount)
}
