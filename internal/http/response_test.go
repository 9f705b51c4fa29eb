package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	inErrors "github.com/Alturino/storefront/internal/errors"
)

func TestStatusCodeFromError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{
			name:     "given wrapped invalid quantity should return bad request",
			err:      fmt.Errorf("failed adding to cart with error=%w", inErrors.ErrInvalidQuantity),
			expected: http.StatusBadRequest,
		},
		{
			name:     "given product not found should return not found",
			err:      inErrors.ErrProductNotFound,
			expected: http.StatusNotFound,
		},
		{
			name:     "given cart unavailable should return service unavailable",
			err:      fmt.Errorf("failed with error=%w", inErrors.ErrCartUnavailable),
			expected: http.StatusServiceUnavailable,
		},
		{
			name:     "given unknown error should return internal server error",
			err:      errors.New("boom"),
			expected: http.StatusInternalServerError,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.expected, StatusCodeFromError(test.err))
		})
	}
}

func TestWriteErrorResponse(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)

	WriteErrorResponse(r.Context(), w, inErrors.ErrProductNotFound)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	body := map[string]interface{}{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Equal(t, "failed", body["status"])
	assert.Equal(t, inErrors.ErrProductNotFound.Error(), body["message"])
}
