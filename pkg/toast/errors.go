package toast

import "errors"

var (
	// ErrEmptyMessage is returned when Show is called with a blank message.
	ErrEmptyMessage = errors.New("toast: message is required")

	// ErrUnknownCategory is returned when Show is called with a category outside the known set.
	ErrUnknownCategory = errors.New("toast: unknown category")

	// ErrClosed is returned when Show is called after the queue was closed.
	ErrClosed = errors.New("toast: queue is closed")
)
