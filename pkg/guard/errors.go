package guard

import "errors"

var (
	// ErrBodyTooLarge is returned when a JSON body exceeds the configured limit.
	ErrBodyTooLarge = errors.New("request body too large")
	// ErrInvalidBody is returned when a JSON body cannot be decoded.
	ErrInvalidBody = errors.New("invalid request body")
	// ErrInvalidQuery is returned when the raw query has a malformed escape.
	ErrInvalidQuery = errors.New("invalid request query")
)
