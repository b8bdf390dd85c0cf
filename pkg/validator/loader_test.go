package validator_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/reqguard/pkg/validator"
	"github.com/dmitrymomot/reqguard/pkg/value"
)

func mustParseSchemas(t *testing.T, doc string) validator.Schemas {
	t.Helper()

	s, err := validator.ParseSchemas([]byte(doc))
	require.NoError(t, err)
	return s
}

func TestParseSchemas(t *testing.T) {
	t.Parallel()

	t.Run("yaml document", func(t *testing.T) {
		t.Parallel()

		s := mustParseSchemas(t, `
body:
  type: object
  required: [id]
  properties:
    id: {type: integer}
query:
  type: object
  properties:
    page: {type: string, pattern: "^[0-9]+$"}
`)
		assert.NotNil(t, s.Body)
		assert.NotNil(t, s.Query)
		assert.Nil(t, s.Params)

		d, err := validator.NewDispatcher(validator.NewJSONSchemaCompiler(), s)
		require.NoError(t, err)
		assert.True(t, d.Bound(validator.LocationBody))
		assert.True(t, d.Bound(validator.LocationQuery))
		assert.False(t, d.Bound(validator.LocationParams))

		out := d.Dispatch(validator.Input{
			Body:  value.MustParse(`{"id":7}`),
			Query: value.MustParse(`{"page":"x"}`),
		})
		assert.Equal(t, validator.LocationQuery, out.Location)
		assert.True(t, out.Errors.Has("/page"))
	})

	t.Run("json document", func(t *testing.T) {
		t.Parallel()

		s := mustParseSchemas(t, `{"params":{"type":"object","required":["resource"]}}`)
		assert.Nil(t, s.Body)
		assert.NotNil(t, s.Params)
	})

	t.Run("empty document", func(t *testing.T) {
		t.Parallel()

		s := mustParseSchemas(t, "")
		assert.Equal(t, validator.Schemas{}, s)
	})

	t.Run("unknown key", func(t *testing.T) {
		t.Parallel()

		_, err := validator.ParseSchemas([]byte("headers:\n  type: object\n"))
		assert.ErrorIs(t, err, validator.ErrInvalidSchemaDocument)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		t.Parallel()

		_, err := validator.ParseSchemas([]byte("body: [unclosed\n"))
		assert.ErrorIs(t, err, validator.ErrInvalidSchemaDocument)
	})
}

func TestLoadSchemas(t *testing.T) {
	t.Parallel()

	t.Run("reads file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "schemas.yaml")
		require.NoError(t, os.WriteFile(path, []byte("body:\n  type: object\n"), 0o600))

		s, err := validator.LoadSchemas(path)
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"type": "object"}, s.Body)
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, err := validator.LoadSchemas(filepath.Join(t.TempDir(), "missing.yaml"))
		require.Error(t, err)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}
