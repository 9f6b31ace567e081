package utils

// Numeric error codes attached to JSON error responses, stable across
// releases so clients can dispatch on them.
const (
	ErrorTokenAuthFail = 40001
	ErrorBadRequest    = 40002
)
