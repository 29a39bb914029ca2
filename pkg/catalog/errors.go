package catalog

import "errors"

var (
	// ErrUnknownKey is returned when a message key is not in the catalog.
	ErrUnknownKey = errors.New("catalog: unknown message key")

	// ErrInvalidEntry is returned when a catalog entry has no message or an unknown category.
	ErrInvalidEntry = errors.New("catalog: invalid entry")

	// ErrArgCount is returned when the arguments do not match the verbs of a message.
	ErrArgCount = errors.New("catalog: wrong number of message arguments")

	// ErrDecode is returned when catalog YAML cannot be parsed.
	ErrDecode = errors.New("catalog: failed to decode")
)
