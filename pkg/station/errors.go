package station

import "errors"

// Client errors.
var (
	// ErrNotInitialized is returned by Connect and Disconnect before a
	// successful Init.
	ErrNotInitialized = errors.New("station client not initialized")

	// ErrAlreadyInitialized is returned by a second Init call.
	ErrAlreadyInitialized = errors.New("station client already initialized")

	// ErrInvalidQueueSize is returned by RegisterEventReceiver for a
	// zero or negative queue size.
	ErrInvalidQueueSize = errors.New("receiver queue size must be greater than 0")

	// ErrResourceExhausted is returned by RegisterEventReceiver when the
	// receiver limit has been reached.
	ErrResourceExhausted = errors.New("receiver limit reached")
)
