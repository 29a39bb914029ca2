package toasts

import "errors"

var (
	ErrInvalidID   = errors.New("toasts: invalid notification id")
	ErrInvalidBody = errors.New("toasts: invalid request body")
	ErrNoCatalog   = errors.New("toasts: no message catalog configured")
	ErrNoRelay     = errors.New("toasts: no relay configured")
)
