package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/dmitrymomot/reqguard/pkg/clientip"
	"github.com/dmitrymomot/reqguard/pkg/config"
	"github.com/dmitrymomot/reqguard/pkg/guard"
	"github.com/dmitrymomot/reqguard/pkg/httpserver"
	"github.com/dmitrymomot/reqguard/pkg/logger"
	"github.com/dmitrymomot/reqguard/pkg/requestid"
	"github.com/dmitrymomot/reqguard/pkg/sanitizer"
	"github.com/dmitrymomot/reqguard/pkg/validator"
)

var serveEnvFiles []string

// serveConfig is loaded from the environment.
type serveConfig struct {
	HTTP        httpserver.Config
	Sanitize    sanitizer.Config `envPrefix:"SANITIZE_"`
	SchemasFile string           `env:"SCHEMAS_FILE"`
	MaxBodySize int64            `env:"MAX_BODY_SIZE" envDefault:"1048576"`
	AppEnv      string           `env:"APP_ENV" envDefault:"development"`
	ServiceName string           `env:"SERVICE_NAME" envDefault:"reqguard"`
	LogLevel    string           `env:"LOG_LEVEL"`

	// Proxy headers trusted for the client address, e.g. X-Forwarded-For.
	TrustedIPHeaders []string `env:"TRUSTED_IP_HEADERS" envSeparator:","`
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run an HTTP echo service behind the sanitize and validate middleware",
	Long: `Starts an HTTP server configured from the environment (HTTP_*, SANITIZE_*,
SCHEMAS_FILE, MAX_BODY_SIZE, APP_ENV, LOG_LEVEL, TRUSTED_IP_HEADERS). Requests to /echo/{resource}
are sanitized, validated and answered with the cleaned body, query and params.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(serveEnvFiles) > 0 {
			if err := config.LoadEnv(serveEnvFiles...); err != nil {
				return err
			}
		}

		var cfg serveConfig
		if err := config.Load(&cfg); err != nil {
			return err
		}

		log, err := newServeLogger(cfg, cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		logger.SetAsDefault(log)

		h, err := newServeHandler(cfg, log)
		if err != nil {
			return err
		}

		srv := httpserver.NewFromConfig(cfg.HTTP, httpserver.WithLogger(log))
		return srv.Run(cmd.Context(), h)
	},
}

func init() {
	serveCmd.Flags().StringSliceVar(&serveEnvFiles, "env-file", nil, "Load variables from .env files before reading the environment")
}

func newServeLogger(cfg serveConfig, out io.Writer) (*slog.Logger, error) {
	opts := []logger.Option{
		logger.WithEnvironment(cfg.AppEnv, cfg.ServiceName),
		logger.WithOutput(out),
		logger.WithContextExtractors(requestid.LoggerExtractor(), clientip.LoggerExtractor()),
		logger.WithValueSanitizer(sanitizer.RemoveCRLF),
	}
	if cfg.LogLevel != "" {
		var lvl slog.Level
		if err := lvl.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
			return nil, fmt.Errorf("parse LOG_LEVEL: %w", err)
		}
		opts = append(opts, logger.WithLevel(lvl))
	}
	return logger.New(opts...), nil
}

// newServeHandler builds the router. Schemas are compiled here, so a broken
// schema file stops startup.
func newServeHandler(cfg serveConfig, log *slog.Logger) (http.Handler, error) {
	var schemas validator.Schemas
	if cfg.SchemasFile != "" {
		var err error
		if schemas, err = validator.LoadSchemas(cfg.SchemasFile); err != nil {
			return nil, err
		}
	}
	d, err := validator.NewDispatcher(validator.NewJSONSchemaCompiler(), schemas)
	if err != nil {
		return nil, err
	}
	p := sanitizer.NewPipeline(cfg.Sanitize)

	log.Info("request guard configured",
		logger.Steps(p.Names()),
		slog.Bool("body_schema", d.Bound(validator.LocationBody)),
		slog.Bool("query_schema", d.Bound(validator.LocationQuery)),
		slog.Bool("params_schema", d.Bound(validator.LocationParams)),
	)

	guardOpts := []guard.Option{
		guard.WithLogger(log),
		guard.WithMaxBodySize(cfg.MaxBodySize),
	}

	r := chi.NewRouter()
	r.Use(requestid.Middleware)
	r.Use(clientip.NewResolver(cfg.TrustedIPHeaders...).Middleware)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", httpserver.HealthCheckHandler(log))
	var checks []httpserver.Check
	if cfg.SchemasFile != "" {
		checks = append(checks, httpserver.Check{
			Name: "schemas_file",
			Fn: func(context.Context) error {
				_, err := os.Stat(cfg.SchemasFile)
				return err
			},
		})
	}
	r.Get("/readyz", httpserver.HealthCheckHandler(log, checks...))

	r.With(guard.Sanitize(p, guardOpts...), guard.Validate(d, guardOpts...)).
		HandleFunc("/echo/{resource}", echoHandler)

	return r, nil
}

type echoResponse struct {
	RequestID string `json:"request_id,omitempty"`
	Method    string `json:"method"`
	Body      any    `json:"body"`
	Query     any    `json:"query"`
	Params    any    `json:"params"`
}

func echoHandler(w http.ResponseWriter, r *http.Request) {
	c, ok := guard.FromContext(r.Context())
	if !ok {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(echoResponse{
		RequestID: requestid.FromContext(r.Context()),
		Method:    r.Method,
		Body:      c.Body,
		Query:     c.Query,
		Params:    c.Params,
	})
}
