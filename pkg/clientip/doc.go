// Package clientip resolves the client address of an HTTP request.
//
// By default only the connection's RemoteAddr is used. Deployments behind a
// proxy that overwrites forwarding headers list those headers explicitly:
//
//	ips := clientip.NewResolver(clientip.HeaderXForwardedFor)
//	r.Use(ips.Middleware)
//
//	log := logger.New(logger.WithContextExtractors(clientip.LoggerExtractor()))
//
// Addresses are normalized with net/netip; invalid values are skipped.
package clientip
