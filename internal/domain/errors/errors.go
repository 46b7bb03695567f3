package errors

import "errors"

var (
	ErrNotFound            = errors.New("not found")
	ErrTransport           = errors.New("transport error")
	ErrNotRemovable        = errors.New("order is not removable")
	ErrUnsupportedCurrency = errors.New("unsupported currency")
	ErrRateUnavailable     = errors.New("exchange rate unavailable")
	ErrInvalidRequest      = errors.New("invalid request")
)
