package broadcast

import "errors"

var (
	ErrSubscribe = errors.New("broadcast: failed to subscribe to channel")
	ErrPublish   = errors.New("broadcast: failed to publish message")
	ErrEncode    = errors.New("broadcast: failed to encode message")
)
