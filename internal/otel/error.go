package otel

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	inErrors "github.com/Alturino/storefront/internal/errors"
)

var errorKinds = []struct {
	err  error
	kind string
}{
	{err: inErrors.ErrCartUnavailable, kind: "cart_unavailable"},
	{err: inErrors.ErrCartBackendNotShared, kind: "cart_backend_not_shared"},
	{err: inErrors.ErrEmptyProductID, kind: "empty_product_id"},
	{err: inErrors.ErrEmptySession, kind: "empty_session"},
	{err: inErrors.ErrInvalidQuantity, kind: "invalid_quantity"},
	{err: inErrors.ErrProductAlreadyExist, kind: "product_already_exist"},
	{err: inErrors.ErrProductNotFound, kind: "product_not_found"},
	{err: inErrors.ErrSelectorClosed, kind: "selector_closed"},
	{err: context.DeadlineExceeded, kind: "timeout"},
	{err: context.Canceled, kind: "canceled"},
}

// ErrorKind names the storefront failure err wraps, or "_OTHER".
func ErrorKind(err error) string {
	for _, k := range errorKinds {
		if errors.Is(err, k.err) {
			return k.kind
		}
	}
	return semconv.ErrorTypeOther.Value.AsString()
}

// RecordError marks span as failed and tags it with the error kind.
func RecordError(err error, span trace.Span) {
	if err == nil {
		return
	}
	span.SetAttributes(semconv.ErrorTypeKey.String(ErrorKind(err)))
	span.SetStatus(codes.Error, err.Error())
	span.RecordError(err, trace.WithStackTrace(true))
}
