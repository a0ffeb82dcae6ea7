package httperr

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taskhive/taskhive/internal/domain"
)

func TestStatus(t *testing.T) {
	tests := []struct {
		err      error
		expected int
	}{
		{domain.ErrValidation, http.StatusBadRequest},
		{domain.ErrUnauthenticated, http.StatusUnauthorized},
		{domain.ErrInsufficientFunds, http.StatusPaymentRequired},
		{domain.ErrForbidden, http.StatusForbidden},
		{domain.ErrNotFound, http.StatusNotFound},
		{domain.ErrConflict, http.StatusConflict},
		{domain.ErrStoreUnavailable, http.StatusServiceUnavailable},
		{errors.New("anything else"), http.StatusInternalServerError},
		{fmt.Errorf("%w: task not found", domain.ErrNotFound), http.StatusNotFound},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, Status(tt.err))
	}
}

func TestRespond(t *testing.T) {
	t.Run("Domain error keeps its message", func(t *testing.T) {
		w := httptest.NewRecorder()
		Respond(w, fmt.Errorf("%w: task not found", domain.ErrNotFound))

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "task not found")
	})

	t.Run("Unclassified error is reported generically", func(t *testing.T) {
		w := httptest.NewRecorder()
		Respond(w, errors.New("pq: connection reset"))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, w.Body.String(), "Internal server error")
		assert.NotContains(t, w.Body.String(), "connection reset")
	})
}
