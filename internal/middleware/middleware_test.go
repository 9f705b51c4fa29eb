package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"

	"github.com/Alturino/storefront/internal/constants"
	"github.com/Alturino/storefront/internal/log"
)

func TestSession(t *testing.T) {
	tests := []struct {
		name     string
		header   string
		expected func(t *testing.T, got string)
	}{
		{
			name:   "given session header should keep session id",
			header: "session-1",
			expected: func(t *testing.T, got string) {
				assert.Equal(t, "session-1", got)
			},
		},
		{
			name:   "given no session header should start new session",
			header: "",
			expected: func(t *testing.T, got string) {
				assert.NotEmpty(t, got)
			},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			var got string
			handler := Session(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got = log.SessionIDFromContext(r.Context())
			}))

			r := httptest.NewRequest(http.MethodGet, "/carts", nil)
			if test.header != "" {
				r.Header.Set(constants.KEY_HEADER_SESSION_ID, test.header)
			}
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, r)

			test.expected(t, got)
			assert.Equal(t, got, w.Header().Get(constants.KEY_HEADER_SESSION_ID))
		})
	}
}

func TestLoggingKeepsRequestBody(t *testing.T) {
	body := `{"quantity":3}`
	var got []byte
	handler := Logging(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var err error
		got, err = io.ReadAll(r.Body)
		require.NoError(t, err)
		assert.NotEmpty(t, log.RequestIDFromContext(r.Context()))
	}))

	r := httptest.NewRequest(http.MethodPost, "/shop/products/P1/buy", bytes.NewBufferString(body))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	assert.JSONEq(t, body, string(got))
	assert.NotEmpty(t, w.Header().Get(constants.KEY_HEADER_REQUEST_ID))
}

func TestLoggingAttachesTraceId(t *testing.T) {
	traceID, err := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	require.NoError(t, err)
	spanID, err := trace.SpanIDFromHex("00f067aa0ba902b7")
	require.NoError(t, err)
	spanCtx := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
	})

	buf := &bytes.Buffer{}
	logger := zerolog.New(buf).Hook(log.AttachTraceIdFromContext())
	c := trace.ContextWithSpanContext(logger.WithContext(context.Background()), spanCtx)

	handler := Logging(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		zerolog.Ctx(r.Context()).Info().Msg("handling request")
	}))
	r := httptest.NewRequest(http.MethodGet, "/carts", nil).WithContext(c)
	handler.ServeHTTP(httptest.NewRecorder(), r)

	var line map[string]interface{}
	for _, raw := range bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n")) {
		entry := map[string]interface{}{}
		require.NoError(t, json.Unmarshal(raw, &entry))
		if entry[zerolog.MessageFieldName] == "handling request" {
			line = entry
		}
	}
	require.NotNil(t, line)
	assert.Equal(t, traceID.String(), line[constants.KEY_TRACE_ID])
	assert.NotEmpty(t, line[constants.KEY_SPAN_ID])
	assert.NotEmpty(t, line[constants.KEY_REQUEST_ID])
}

func TestRecoverPanic(t *testing.T) {
	handler := RecoverPanic(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
