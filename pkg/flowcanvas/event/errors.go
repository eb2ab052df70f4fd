package event

import (
	"errors"
	"fmt"
)

// Sentinel errors for bus operations.
var (
	// ErrBusClosed is returned when publishing to or subscribing on a closed bus.
	ErrBusClosed = errors.New("bus is closed")

	// ErrSubscriberLimit is returned when MaxSubscribers is reached.
	ErrSubscriberLimit = errors.New("subscriber limit reached")
)

// PublishError reports an event that could not be delivered.
type PublishError struct {
	Event Event
	Err   error
}

// Error implements error.
func (e *PublishError) Error() string {
	return fmt.Sprintf("event %s (%s): %v", e.Event.ID, e.Event.Type, e.Err)
}

// Unwrap returns the underlying error.
func (e *PublishError) Unwrap() error {
	return e.Err
}
