package core

import "errors"

// ErrUnsupportedEvent is a sentinel error for webhook events whose type is
// not part of the gateway's known vocabulary. Unlike malformed events, which
// degrade to a non-replying parse result, an unknown event type signals a
// gateway contract change and must surface to the caller.
var ErrUnsupportedEvent = errors.New("unsupported event type")

// IsUnsupportedEventError checks if an error indicates an unknown event type
func IsUnsupportedEventError(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, ErrUnsupportedEvent)
}
