package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/reqguard/pkg/logger"
	"github.com/dmitrymomot/reqguard/pkg/sanitizer"
)

func decode(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestNew(t *testing.T) {
	t.Run("creates JSON logger", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf))
		require.NotNil(t, log)
		log.Info("hello")

		entry := decode(t, buf)
		assert.Equal(t, "INFO", entry["level"])
		assert.Equal(t, "hello", entry["msg"])
	})

	t.Run("text formatter option", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(
			logger.WithOutput(buf),
			logger.WithTextFormatter(),
		)
		log.Info("hello")
		out := buf.String()
		assert.Contains(t, out, "INFO")
		assert.Contains(t, out, "hello")
	})

	t.Run("json formatter overrides text", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(
			logger.WithOutput(buf),
			logger.WithTextFormatter(),
			logger.WithJSONFormatter(),
		)
		log.Info("hello")
		assert.Equal(t, "hello", decode(t, buf)["msg"])
	})

	t.Run("level filters records", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf), logger.WithLevel(slog.LevelWarn))
		log.Info("dropped")
		assert.Empty(t, buf.String())
		log.Warn("kept")
		assert.Equal(t, "kept", decode(t, buf)["msg"])
	})

	t.Run("includes default attributes", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(
			logger.WithOutput(buf),
			logger.WithAttr(logger.Component("guard")),
		)
		log.Info("msg")
		assert.Equal(t, "guard", decode(t, buf)["component"])
	})

	t.Run("extracts from context", func(t *testing.T) {
		buf := &bytes.Buffer{}
		type key string
		ctxKey := key("id")
		log := logger.New(
			logger.WithOutput(buf),
			logger.WithContextValue("id", ctxKey),
			logger.WithContextExtractors(nil),
		)
		ctx := context.WithValue(context.Background(), ctxKey, "42")
		log.InfoContext(ctx, "context msg")
		assert.Equal(t, "42", decode(t, buf)["id"])
	})

	t.Run("discard logger", func(t *testing.T) {
		log := logger.Discard()
		require.NotNil(t, log)
		log.Error("nothing happens")
	})
}

func TestWithEnvironment(t *testing.T) {
	t.Run("development uses text at debug", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(
			logger.WithEnvironment("anything", "svc"),
			logger.WithOutput(buf),
		)
		log.Debug("msg")
		out := buf.String()
		assert.Contains(t, out, "DEBUG")
		assert.Contains(t, out, "service=svc")
		assert.Contains(t, out, "env=development")
	})

	envs := map[string]string{
		"production": logger.EnvProduction,
		"prod":       logger.EnvProduction,
		"staging":    logger.EnvStaging,
		"stage":      logger.EnvStaging,
	}
	for env, expected := range envs {
		t.Run(env+" uses json at info", func(t *testing.T) {
			buf := &bytes.Buffer{}
			log := logger.New(
				logger.WithEnvironment(env, "svc"),
				logger.WithOutput(buf),
			)
			log.Debug("dropped")
			assert.Empty(t, buf.String())

			log.Info("msg")
			entry := decode(t, buf)
			assert.Equal(t, "svc", entry["service"])
			assert.Equal(t, expected, entry["env"])
		})
	}

	t.Run("later level wins", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(
			logger.WithEnvironment(logger.EnvProduction, ""),
			logger.WithLevel(slog.LevelDebug),
			logger.WithOutput(buf),
		)
		log.Debug("msg")
		entry := decode(t, buf)
		assert.Equal(t, "production", entry["env"])
		assert.NotContains(t, entry, "service")
	})
}

func TestWithValueSanitizer(t *testing.T) {
	buf := &bytes.Buffer{}
	type key string
	ctxKey := key("ua")
	log := logger.New(
		logger.WithOutput(buf),
		logger.WithTextFormatter(),
		logger.WithValueSanitizer(sanitizer.RemoveCRLF),
		logger.WithContextValue("ua", ctxKey),
	)

	ctx := context.WithValue(context.Background(), ctxKey, "agent\r\nlevel=ERROR")
	log.With(slog.String("static", "a\nb")).InfoContext(ctx, "user\nmsg=forged",
		slog.String("input", "x\r\ny"),
		logger.Group("req", slog.String("path", "/a\n/b")),
		logger.Error(errors.New("boom")),
	)

	out := buf.String()
	assert.Equal(t, 1, strings.Count(out, "\n"), "exactly one log line: %q", out)
	assert.Contains(t, out, "input=xy")
	assert.Contains(t, out, "static=ab")
	assert.Contains(t, out, "req.path=/a/b")
	assert.Contains(t, out, "error=boom")
}
