package otel

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	inErrors "github.com/Alturino/storefront/internal/errors"
)

func TestErrorKind(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "given wrapped cart unavailable should name it",
			err:      fmt.Errorf("failed adding cart item with error=%w", inErrors.ErrCartUnavailable),
			expected: "cart_unavailable",
		},
		{
			name:     "given joined product not found should name it",
			err:      errors.Join(errors.New("status code=404"), inErrors.ErrProductNotFound),
			expected: "product_not_found",
		},
		{
			name:     "given deadline should be timeout",
			err:      fmt.Errorf("failed finding product with error=%w", context.DeadlineExceeded),
			expected: "timeout",
		},
		{
			name:     "given unknown error should be other",
			err:      assert.AnError,
			expected: "_OTHER",
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.expected, ErrorKind(test.err))
		})
	}
}

func TestRecordError(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })
	tracer := provider.Tracer("storefront-test")

	_, failed := tracer.Start(context.Background(), "CartService FindCart")
	RecordError(fmt.Errorf("failed finding cart items with error=%w", inErrors.ErrCartUnavailable), failed)
	failed.End()

	_, ok := tracer.Start(context.Background(), "CartService ClearCart")
	RecordError(nil, ok)
	ok.End()

	ended := recorder.Ended()
	require.Len(t, ended, 2)

	assert.Equal(t, codes.Error, ended[0].Status().Code)
	assert.Contains(t, ended[0].Attributes(), semconv.ErrorTypeKey.String("cart_unavailable"))
	require.Len(t, ended[0].Events(), 1)
	assert.Equal(t, "exception", ended[0].Events()[0].Name)

	assert.Equal(t, codes.Unset, ended[1].Status().Code)
	assert.Empty(t, ended[1].Events())
}
