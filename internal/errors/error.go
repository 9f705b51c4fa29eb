package errors

import (
	"errors"
)

var (
	ErrCartBackendNotShared   = errors.New("cart backend is not shared between services")
	ErrCartUnavailable        = errors.New("cart is unavailable")
	ErrEmptyProductID         = errors.New("missing product id")
	ErrEmptySession           = errors.New("missing session id")
	ErrInvalidQuantity        = errors.New("quantity must be a positive integer")
	ErrInvalidRole            = errors.New("role must be one of user or admin")
	ErrProductAlreadyExist    = errors.New("product already exist")
	ErrProductNotFound        = errors.New("product not found")
	ErrSelectorClosed         = errors.New("quantity selector is closed")
	ErrUnknownCartBackend     = errors.New("unknown cart backend")
	ErrUnknownNotifierBackend = errors.New("unknown notifier backend")
)
