package clientip

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/reqguard/pkg/logger"
)

// Middleware stores the address resolved by r in the request context.
func (r *Resolver) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		ctx := SetIPToContext(req.Context(), r.IP(req))
		next.ServeHTTP(w, req.WithContext(ctx))
	})
}

// Middleware stores the RemoteAddr-based client address in the request context.
func Middleware(next http.Handler) http.Handler {
	return NewResolver().Middleware(next)
}

// LoggerExtractor adds the client address to log records as "client_ip".
func LoggerExtractor() logger.ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		ip := GetIPFromContext(ctx)
		if ip == "" {
			return slog.Attr{}, false
		}
		return slog.String("client_ip", ip), true
	}
}
