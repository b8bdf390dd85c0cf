package guard

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/reqguard/pkg/validator"
	"github.com/dmitrymomot/reqguard/pkg/value"
)

// DefaultMaxBodySize is the default limit for JSON request bodies (1 MiB).
const DefaultMaxBodySize = 1 << 20

// Carrier holds the structured views of a request that are sanitized and
// validated: the decoded JSON body, the query string and the route params.
type Carrier struct {
	Body   value.Value
	Query  value.Value
	Params value.Value
}

// Input returns the carrier as dispatcher input.
func (c Carrier) Input() validator.Input {
	return validator.Input{Body: c.Body, Query: c.Query, Params: c.Params}
}

// ReadCarrier builds a Carrier from r.
//
// The body is decoded only for application/json and +json media types; other
// or empty bodies become null. The body is buffered and restored, so handlers
// can still read it. Query keys keep the order of their first appearance and
// repeated keys become sequences. Params are the chi route params in route
// order; both are empty objects when absent.
func ReadCarrier(r *http.Request, maxBody int64) (Carrier, error) {
	if maxBody <= 0 {
		maxBody = DefaultMaxBodySize
	}

	body, err := readBody(r, maxBody)
	if err != nil {
		return Carrier{}, err
	}
	query, err := parseQuery(r.URL.RawQuery)
	if err != nil {
		return Carrier{}, err
	}

	return Carrier{
		Body:   body,
		Query:  query,
		Params: routeParams(r),
	}, nil
}

func isJSON(contentType string) bool {
	if contentType == "" {
		return false
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mediaType == "application/json" || strings.HasSuffix(mediaType, "+json")
}

func readBody(r *http.Request, maxBody int64) (value.Value, error) {
	if r.Body == nil || r.Body == http.NoBody || !isJSON(r.Header.Get("Content-Type")) {
		return value.Null{}, nil
	}
	if r.ContentLength > maxBody {
		return nil, fmt.Errorf("%w: %d bytes exceeds limit of %d", ErrBodyTooLarge, r.ContentLength, maxBody)
	}

	raw, err := io.ReadAll(io.LimitReader(r.Body, maxBody+1))
	_ = r.Body.Close()
	if err != nil {
		return nil, errors.Join(ErrInvalidBody, err)
	}
	if int64(len(raw)) > maxBody {
		return nil, fmt.Errorf("%w: limit is %d bytes", ErrBodyTooLarge, maxBody)
	}
	r.Body = io.NopCloser(bytes.NewReader(raw))

	if len(bytes.TrimSpace(raw)) == 0 {
		return value.Null{}, nil
	}
	v, err := value.Parse(raw)
	if err != nil {
		return nil, errors.Join(ErrInvalidBody, err)
	}
	return v, nil
}

func parseQuery(raw string) (*value.Map, error) {
	m := value.NewMap()
	for part := range strings.SplitSeq(raw, "&") {
		if part == "" {
			continue
		}
		k, v, _ := strings.Cut(part, "=")
		key, err := url.QueryUnescape(k)
		if err != nil {
			return nil, errors.Join(ErrInvalidQuery, err)
		}
		val, err := url.QueryUnescape(v)
		if err != nil {
			return nil, errors.Join(ErrInvalidQuery, err)
		}

		prev, ok := m.Get(key)
		switch {
		case !ok:
			m.Set(key, value.String(val))
		case prev.Kind() == value.KindSequence:
			m.Set(key, append(prev.(value.Sequence), value.String(val)))
		default:
			m.Set(key, value.Sequence{prev, value.String(val)})
		}
	}
	return m, nil
}

func routeParams(r *http.Request) *value.Map {
	m := value.NewMap()
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		return m
	}
	for i, key := range rctx.URLParams.Keys {
		if i < len(rctx.URLParams.Values) {
			m.Set(key, value.String(rctx.URLParams.Values[i]))
		}
	}
	return m
}

// Apply writes the carrier back into r and returns the request to pass on.
//
// A non-null body is re-encoded as JSON and Content-Length updated. The raw
// query is rebuilt in key order and chi route params are replaced in place.
// The returned request carries c in its context, see FromContext.
func (c Carrier) Apply(r *http.Request) (*http.Request, error) {
	if c.Body != nil && c.Body.Kind() != value.KindNull {
		data, err := value.Marshal(c.Body)
		if err != nil {
			return nil, fmt.Errorf("encode body: %w", err)
		}
		r.Body = io.NopCloser(bytes.NewReader(data))
		r.ContentLength = int64(len(data))
		r.Header.Set("Content-Length", strconv.Itoa(len(data)))
		r.GetBody = func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(data)), nil
		}
	}

	if m, ok := c.Query.(*value.Map); ok {
		r.URL.RawQuery = encodeQuery(m)
		r.Form = nil
	}

	if m, ok := c.Params.(*value.Map); ok {
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			for i, key := range rctx.URLParams.Keys {
				if v, ok := m.Get(key); ok && i < len(rctx.URLParams.Values) {
					rctx.URLParams.Values[i] = scalarText(v)
				}
			}
		}
	}

	return r.WithContext(WithCarrier(r.Context(), c)), nil
}

func encodeQuery(m *value.Map) string {
	var b strings.Builder
	write := func(k string, v value.Value) {
		if b.Len() > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(k))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(scalarText(v)))
	}
	m.Range(func(k string, v value.Value) bool {
		if seq, ok := v.(value.Sequence); ok {
			for _, item := range seq {
				write(k, item)
			}
			return true
		}
		write(k, v)
		return true
	})
	return b.String()
}

// scalarText renders a query or param value. Anything that is not a string
// is written as its JSON text.
func scalarText(v value.Value) string {
	if s, ok := v.(value.String); ok {
		return string(s)
	}
	data, err := value.Marshal(v)
	if err != nil {
		return ""
	}
	return string(data)
}

type carrierKey struct{}

// WithCarrier stores c in ctx.
func WithCarrier(ctx context.Context, c Carrier) context.Context {
	return context.WithValue(ctx, carrierKey{}, c)
}

// FromContext returns the carrier stored by Apply or WithCarrier.
func FromContext(ctx context.Context) (Carrier, bool) {
	c, ok := ctx.Value(carrierKey{}).(Carrier)
	return c, ok
}
