package guard

import (
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/reqguard/pkg/validator"
)

// FailureHandler writes the response for a request that failed validation.
type FailureHandler func(w http.ResponseWriter, r *http.Request, f *validator.Failure)

// Option configures the guard middleware.
type Option func(*options)

type options struct {
	logger      *slog.Logger
	maxBodySize int64
	onFailure   FailureHandler
}

func newOptions(opts []Option) *options {
	o := &options{
		logger:      slog.Default(),
		maxBodySize: DefaultMaxBodySize,
		onFailure:   WriteFailure,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithLogger sets the logger used for rejected requests. Nil is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithMaxBodySize limits the size of JSON bodies read by the middleware.
// Non-positive sizes are ignored.
func WithMaxBodySize(n int64) Option {
	return func(o *options) {
		if n > 0 {
			o.maxBodySize = n
		}
	}
}

// WithFailureHandler replaces the default 400 response for validation failures.
func WithFailureHandler(h FailureHandler) Option {
	return func(o *options) {
		if h != nil {
			o.onFailure = h
		}
	}
}
