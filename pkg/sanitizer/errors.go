package sanitizer

import "errors"

// ErrInvalidConfig is returned when a recognised configuration key holds a
// value that is not a boolean.
var ErrInvalidConfig = errors.New("invalid sanitization config")
