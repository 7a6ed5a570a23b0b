package core

import "errors"

var (
	// ErrInvalidQueueSize is returned by NewWithConfig for a negative queue size.
	ErrInvalidQueueSize = errors.New("intercept: queue size must not be negative")
)
