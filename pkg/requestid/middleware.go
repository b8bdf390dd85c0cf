package requestid

import (
	"net/http"
	"regexp"

	"github.com/google/uuid"

	"github.com/dmitrymomot/reqguard/pkg/sanitizer"
)

const (
	Header      = "X-Request-ID"
	maxIDLength = 128
	idPattern   = "^[a-zA-Z0-9_-]+$"
)

var (
	validIDRegex = regexp.MustCompile(idPattern)

	// Client ids are trimmed and flattened before they are checked.
	cleanID = sanitizer.Compose(sanitizer.Trim, sanitizer.RemoveCRLF)
)

// Option configures the middleware returned by New.
type Option func(*options)

type options struct {
	header    string
	generator func() string
}

// WithHeader reads and writes the id under a custom header name.
func WithHeader(name string) Option {
	return func(o *options) {
		if name != "" {
			o.header = name
		}
	}
}

// WithGenerator replaces the UUIDv4 generator.
func WithGenerator(fn func() string) Option {
	return func(o *options) {
		if fn != nil {
			o.generator = fn
		}
	}
}

// New returns request id middleware. A valid client-supplied id is reused;
// otherwise a new one is generated. The id is stored in the request context
// and echoed in the response header.
func New(opts ...Option) func(http.Handler) http.Handler {
	o := options{
		header:    Header,
		generator: uuid.NewString,
	}
	for _, opt := range opts {
		opt(&o)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := cleanID(r.Header.Get(o.header))
			if !isValidRequestID(requestID) {
				requestID = o.generator()
			}

			w.Header().Set(o.header, requestID)
			next.ServeHTTP(w, r.WithContext(WithContext(r.Context(), requestID)))
		})
	}
}

// Middleware is New with default options.
func Middleware(next http.Handler) http.Handler {
	return New()(next)
}

func isValidRequestID(id string) bool {
	if len(id) == 0 || len(id) > maxIDLength {
		return false
	}
	return validIDRegex.MatchString(id)
}
