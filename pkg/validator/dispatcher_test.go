package validator_test

import (
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/reqguard/pkg/validator"
	"github.com/dmitrymomot/reqguard/pkg/value"
)

// recorder is a stub engine. Schema documents are names: "broken" fails to
// compile, names starting with "fail" reject every value, the rest accept.
type recorder struct {
	mu    sync.Mutex
	calls []string
	data  []any
}

func (r *recorder) compiler() validator.Compiler {
	return validator.CompilerFunc(func(schema any) (validator.Schema, error) {
		name, _ := schema.(string)
		if name == "broken" {
			return nil, errors.New("unknown keyword")
		}

		return validator.SchemaFunc(func(data any) validator.Result {
			r.mu.Lock()
			r.calls = append(r.calls, name)
			r.data = append(r.data, data)
			r.mu.Unlock()

			if strings.HasPrefix(name, "fail") {
				return validator.Result{Errors: []validator.RawError{
					{InstancePath: "", Message: name + " first", Keyword: "required", Params: map[string]any{"property": "id"}},
					{InstancePath: "/b", Message: name + " second", Keyword: "type"},
					{InstancePath: "/a", Message: name + " third"},
				}}
			}
			return validator.Result{Valid: true}
		}), nil
	})
}

func TestDispatcher_Dispatch(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		schemas       validator.Schemas
		wantLocation  validator.Location
		wantCalls     []string
		wantErrFields []string
	}{
		{
			name:      "all locations pass",
			schemas:   validator.Schemas{Body: "body", Query: "query", Params: "params"},
			wantCalls: []string{"body", "query", "params"},
		},
		{
			name:          "stops at first failing location",
			schemas:       validator.Schemas{Body: "body", Query: "fail-query", Params: "fail-params"},
			wantLocation:  validator.LocationQuery,
			wantCalls:     []string{"body", "fail-query"},
			wantErrFields: []string{validator.RootField, "/b", "/a"},
		},
		{
			name:          "body is checked first",
			schemas:       validator.Schemas{Body: "fail-body", Query: "fail-query", Params: "fail-params"},
			wantLocation:  validator.LocationBody,
			wantCalls:     []string{"fail-body"},
			wantErrFields: []string{validator.RootField, "/b", "/a"},
		},
		{
			name:          "params fail after query passes",
			schemas:       validator.Schemas{Query: "query", Params: "fail-params"},
			wantLocation:  validator.LocationParams,
			wantCalls:     []string{"query", "fail-params"},
			wantErrFields: []string{validator.RootField, "/b", "/a"},
		},
		{
			name:      "unbound locations are skipped",
			schemas:   validator.Schemas{Params: "params"},
			wantCalls: []string{"params"},
		},
		{
			name:    "no schemas passes",
			schemas: validator.Schemas{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := &recorder{}
			d, err := validator.NewDispatcher(rec.compiler(), tt.schemas)
			require.NoError(t, err)

			out := d.Dispatch(validator.Input{
				Body:   value.MustParse(`{"a":1}`),
				Query:  value.NewMap(),
				Params: value.NewMap(),
			})

			assert.Equal(t, tt.wantLocation, out.Location)
			assert.Equal(t, tt.wantLocation == "", out.Passed())
			assert.Equal(t, tt.wantCalls, rec.calls)

			if tt.wantErrFields == nil {
				assert.Empty(t, out.Errors)
				assert.NoError(t, out.Err())
				assert.Nil(t, out.Failure())
				return
			}

			var fields []string
			for _, e := range out.Errors {
				fields = append(fields, e.Field)
			}
			assert.Equal(t, tt.wantErrFields, fields)
			assert.Error(t, out.Err())
		})
	}
}

func TestDispatcher_ErrorDetails(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	d := validator.MustNewDispatcher(rec.compiler(), validator.Schemas{Body: "fail-body"})

	out := d.Dispatch(validator.Input{})
	require.False(t, out.Passed())
	require.Len(t, out.Errors, 3)

	first := out.Errors[0]
	assert.Equal(t, validator.RootField, first.Field)
	assert.Equal(t, "fail-body first", first.Message)
	assert.Equal(t, "validation.required", first.TranslationKey)
	assert.Equal(t, map[string]any{"property": "id", "field": validator.RootField}, first.TranslationValues)

	last := out.Errors[2]
	assert.Empty(t, last.TranslationKey)
	assert.Nil(t, last.TranslationValues)

	t.Run("missing values are validated as null", func(t *testing.T) {
		require.Len(t, rec.data, 1)
		assert.Equal(t, value.Null{}, rec.data[0])
	})

	t.Run("error exposes validation errors", func(t *testing.T) {
		err := out.Err()
		var locErr *validator.LocationError
		require.ErrorAs(t, err, &locErr)
		assert.Equal(t, validator.LocationBody, locErr.Location)
		assert.Equal(t, out.Errors, validator.ExtractValidationErrors(err))
	})

	t.Run("failure body", func(t *testing.T) {
		data, err := json.Marshal(out.Failure())
		require.NoError(t, err)
		assert.JSONEq(t, `{
			"error": "Invalid request",
			"location": "body",
			"details": [
				{"field": "(root)", "message": "fail-body first"},
				{"field": "/b", "message": "fail-body second"},
				{"field": "/a", "message": "fail-body third"}
			]
		}`, string(data))
	})
}

func TestDispatcher_FailureWithoutDetails(t *testing.T) {
	t.Parallel()

	c := validator.CompilerFunc(func(any) (validator.Schema, error) {
		return validator.SchemaFunc(func(any) validator.Result {
			return validator.Result{Valid: false}
		}), nil
	})
	d := validator.MustNewDispatcher(c, validator.Schemas{Query: true})

	out := d.Dispatch(validator.Input{})
	require.False(t, out.Passed())

	data, err := json.Marshal(out.Failure())
	require.NoError(t, err)
	assert.JSONEq(t, `{"error":"Invalid request","location":"query","details":[]}`, string(data))
}

func TestNewDispatcher(t *testing.T) {
	t.Parallel()

	t.Run("reports every broken location", func(t *testing.T) {
		t.Parallel()

		rec := &recorder{}
		d, err := validator.NewDispatcher(rec.compiler(), validator.Schemas{
			Body:   "body",
			Query:  "broken",
			Params: "broken",
		})
		require.Error(t, err)
		assert.Nil(t, d)
		assert.ErrorIs(t, err, validator.ErrSchemaCompile)
		assert.Contains(t, err.Error(), "query schema: unknown keyword")
		assert.Contains(t, err.Error(), "params schema: unknown keyword")
		assert.NotContains(t, err.Error(), "body schema")
	})

	t.Run("must variant panics", func(t *testing.T) {
		t.Parallel()

		rec := &recorder{}
		assert.Panics(t, func() {
			validator.MustNewDispatcher(rec.compiler(), validator.Schemas{Body: "broken"})
		})
	})

	t.Run("nil compiler with schemas", func(t *testing.T) {
		t.Parallel()

		_, err := validator.NewDispatcher(nil, validator.Schemas{Body: "body"})
		assert.ErrorIs(t, err, validator.ErrNilCompiler)
	})

	t.Run("nil compiler without schemas", func(t *testing.T) {
		t.Parallel()

		d, err := validator.NewDispatcher(nil, validator.Schemas{})
		require.NoError(t, err)
		assert.True(t, d.Dispatch(validator.Input{}).Passed())
	})

	t.Run("bound locations", func(t *testing.T) {
		t.Parallel()

		rec := &recorder{}
		d := validator.MustNewDispatcher(rec.compiler(), validator.Schemas{Body: "body", Params: "params"})
		assert.True(t, d.Bound(validator.LocationBody))
		assert.False(t, d.Bound(validator.LocationQuery))
		assert.True(t, d.Bound(validator.LocationParams))
		assert.False(t, d.Bound("headers"))
	})
}
