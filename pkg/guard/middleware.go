package guard

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrymomot/reqguard/pkg/logger"
	"github.com/dmitrymomot/reqguard/pkg/sanitizer"
	"github.com/dmitrymomot/reqguard/pkg/validator"
)

// Response bodies for requests that cannot be read.
const (
	MessageInvalidBody  = "Invalid request body"
	MessageBodyTooLarge = "Request body too large"
	MessageInvalidQuery = "Invalid request query"
)

type errorResponse struct {
	Error string `json:"error"`
}

// Sanitize returns middleware that runs p over the request body, query and
// route params, writes the cleaned values back into the request and stores
// the carrier in the context for Validate and handlers.
//
// Route params are only available once chi has matched the route, so mount
// it with chi's With or inside a route group rather than on the root router.
func Sanitize(p *sanitizer.Pipeline, opts ...Option) func(http.Handler) http.Handler {
	if p == nil {
		p = sanitizer.DefaultPipeline()
	}
	o := newOptions(opts)
	log := o.logger.With(logger.Component("guard"))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			c, err := ReadCarrier(r, o.maxBodySize)
			if err != nil {
				rejectUnreadable(w, r, o, err)
				return
			}

			c = Carrier{
				Body:   p.Sanitize(c.Body),
				Query:  p.Sanitize(c.Query),
				Params: p.Sanitize(c.Params),
			}

			applied, err := c.Apply(r)
			if err != nil {
				log.ErrorContext(r.Context(), "apply sanitized request", logger.Error(err))
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				return
			}

			log.DebugContext(applied.Context(), "request sanitized", logger.Steps(p.Names()))
			next.ServeHTTP(w, applied)
		})
	}
}

// Validate returns middleware that dispatches the request carrier through d.
// It uses the carrier stored by Sanitize when present and reads one from the
// request otherwise. Passing requests reach next unchanged; failures are
// logged at warn level and answered by the failure handler.
func Validate(d *validator.Dispatcher, opts ...Option) func(http.Handler) http.Handler {
	if d == nil {
		panic("guard.Validate: nil dispatcher")
	}
	o := newOptions(opts)
	log := o.logger.With(logger.Component("guard"))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			c, ok := FromContext(r.Context())
			if !ok {
				var err error
				c, err = ReadCarrier(r, o.maxBodySize)
				if err != nil {
					rejectUnreadable(w, r, o, err)
					return
				}
			}

			out := d.Dispatch(c.Input())
			if out.Passed() {
				next.ServeHTTP(w, r)
				return
			}

			log.WarnContext(r.Context(), "request validation failed",
				logger.Location(string(out.Location)),
				logger.ErrorCount(len(out.Errors)),
				logger.Fields(out.Errors.Fields()),
			)
			o.onFailure(w, r, out.Failure())
		})
	}
}

// WriteFailure is the default FailureHandler. It answers 400 with the
// failure as JSON.
func WriteFailure(w http.ResponseWriter, _ *http.Request, f *validator.Failure) {
	writeJSON(w, http.StatusBadRequest, f)
}

func rejectUnreadable(w http.ResponseWriter, r *http.Request, o *options, err error) {
	status, msg := http.StatusBadRequest, MessageInvalidBody
	switch {
	case errors.Is(err, ErrBodyTooLarge):
		status, msg = http.StatusRequestEntityTooLarge, MessageBodyTooLarge
	case errors.Is(err, ErrInvalidQuery):
		msg = MessageInvalidQuery
	}

	o.logger.WarnContext(r.Context(), "rejected unreadable request",
		logger.Component("guard"),
		logger.Error(err),
	)
	writeJSON(w, status, errorResponse{Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}
