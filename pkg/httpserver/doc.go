// Package httpserver runs the reqguard HTTP listener with graceful shutdown.
//
// Server wraps net/http.Server. Run blocks until the context is cancelled or
// the process receives SIGINT or SIGTERM, then calls http.Server.Shutdown with
// the configured deadline. Lifecycle events are logged through the slog.Logger
// passed with WithLogger; by default nothing is logged.
//
// Settings come either from Option helpers or from Config, which carries env
// tags so it can be embedded in a binary's configuration struct and loaded
// with pkg/config:
//
//	type appConfig struct {
//		HTTP httpserver.Config
//	}
//
//	var cfg appConfig
//	config.MustLoad(&cfg)
//	srv := httpserver.NewFromConfig(cfg.HTTP, httpserver.WithLogger(log))
//
//	r := chi.NewRouter()
//	r.Get("/healthz", httpserver.HealthCheckHandler(log))
//	err := srv.Run(ctx, r)
//
// Run joins listen failures with ErrStart; Shutdown joins failures with
// ErrShutdown.
package httpserver
