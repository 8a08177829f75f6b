package errors

import "fmt"

var (
	ErrWorkerPanic      = fmt.Errorf("worker panic")
	ErrMissingToken     = fmt.Errorf("authentication token is missing")
	ErrInvalidToken     = fmt.Errorf("invalid or expired token")
	ErrEmptyEventName   = fmt.Errorf("event name must not be empty")
	ErrNilHandler       = fmt.Errorf("event handler must not be nil")
	ErrMissingBus       = fmt.Errorf("event bus reference is missing")
	ErrMissingNotifier  = fmt.Errorf("notifier reference is missing")
	ErrInvalidPayload   = fmt.Errorf("invalid event payload")
	ErrUnknownControl   = fmt.Errorf("unknown control message type")
	ErrConnectionClosed = fmt.Errorf("connection closed")
	ErrSendBufferFull   = fmt.Errorf("connection send buffer full")
)
