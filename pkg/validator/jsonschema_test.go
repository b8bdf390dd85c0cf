package validator_test

import (
	"encoding/json"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/reqguard/pkg/validator"
	"github.com/dmitrymomot/reqguard/pkg/value"
)

func compile(t *testing.T, schema any) validator.Schema {
	t.Helper()

	s, err := validator.NewJSONSchemaCompiler().Compile(schema)
	require.NoError(t, err)
	return s
}

func TestJSONSchemaCompiler_RequiredAtRoot(t *testing.T) {
	t.Parallel()

	d, err := validator.NewDispatcher(validator.NewJSONSchemaCompiler(), validator.Schemas{
		Body: `{"type":"object","required":["id"]}`,
	})
	require.NoError(t, err)

	out := d.Dispatch(validator.Input{Body: value.MustParse(`{}`)})
	require.False(t, out.Passed())
	assert.Equal(t, validator.LocationBody, out.Location)
	require.Len(t, out.Errors, 1)

	e := out.Errors[0]
	assert.Equal(t, validator.RootField, e.Field)
	assert.Equal(t, "must have required property 'id'", e.Message)
	assert.Equal(t, "validation.required", e.TranslationKey)
	assert.Equal(t, "id", e.TranslationValues["property"])
}

func TestJSONSchemaCompiler_CollectsAllErrors(t *testing.T) {
	t.Parallel()

	s := compile(t, map[string]any{
		"type":     "object",
		"required": []any{"id", "name"},
		"properties": map[string]any{
			"age": map[string]any{"type": "integer", "minimum": 0},
		},
	})

	res := s.Validate(value.MustParse(`{"age":-1}`))
	require.False(t, res.Valid)

	errs := validator.FormatErrors(res.Errors)
	require.Len(t, errs, 3)
	assert.ElementsMatch(t, []string{
		"must have required property 'id'",
		"must have required property 'name'",
		"must be >= 0",
	}, []string{errs[0].Message, errs[1].Message, errs[2].Message})
	assert.Equal(t, []string{"must be >= 0"}, errs.Get("/age"))
	assert.Len(t, errs.Get(validator.RootField), 2)
}

func TestJSONSchemaCompiler_NoCoercion(t *testing.T) {
	t.Parallel()

	s := compile(t, `{
		"type": "object",
		"properties": {
			"page": {"type": "integer"},
			"active": {"type": "boolean"}
		}
	}`)

	res := s.Validate(value.MustParse(`{"page":"2","active":"true"}`))
	require.False(t, res.Valid)

	errs := validator.FormatErrors(res.Errors)
	assert.Equal(t, []string{"must be integer"}, errs.Get("/page"))
	assert.Equal(t, []string{"must be boolean"}, errs.Get("/active"))

	assert.True(t, s.Validate(value.MustParse(`{"page":2,"active":true}`)).Valid)
}

func TestJSONSchemaCompiler_InstancePaths(t *testing.T) {
	t.Parallel()

	s := compile(t, `{
		"type": "object",
		"properties": {
			"items": {
				"type": "array",
				"items": {
					"type": "object",
					"required": ["name"],
					"properties": {"name": {"type": "string", "minLength": 2}}
				}
			},
			"a/b": {"type": "string"},
			"m~n": {"type": "string"}
		}
	}`)

	res := s.Validate(value.MustParse(`{
		"items": [{"name": "ok"}, {"name": "x"}, {}],
		"a/b": 1,
		"m~n": 2
	}`))
	require.False(t, res.Valid)

	errs := validator.FormatErrors(res.Errors)
	assert.Equal(t, []string{"must NOT have fewer than 2 characters"}, errs.Get("/items/1/name"))
	assert.Equal(t, []string{"must have required property 'name'"}, errs.Get("/items/2"))
	assert.Equal(t, []string{"must be string"}, errs.Get("/a~1b"))
	assert.Equal(t, []string{"must be string"}, errs.Get("/m~0n"))
}

func TestJSONSchemaCompiler_Messages(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		schema  string
		data    string
		field   string
		message string
		keyword string
	}{
		{
			name:    "additional properties",
			schema:  `{"type":"object","additionalProperties":false}`,
			data:    `{"extra":1}`,
			field:   validator.RootField,
			message: "must NOT have additional properties",
			keyword: "validation.additionalProperties",
		},
		{
			name:    "enum",
			schema:  `{"enum":["a","b"]}`,
			data:    `"c"`,
			field:   validator.RootField,
			message: "must be equal to one of the allowed values",
			keyword: "validation.enum",
		},
		{
			name:    "max length",
			schema:  `{"type":"string","maxLength":3}`,
			data:    `"abcd"`,
			field:   validator.RootField,
			message: "must NOT have more than 3 characters",
			keyword: "validation.maxLength",
		},
		{
			name:    "pattern",
			schema:  `{"type":"string","pattern":"^[0-9]+$"}`,
			data:    `"12a"`,
			field:   validator.RootField,
			message: `must match pattern "^[0-9]+$"`,
			keyword: "validation.pattern",
		},
		{
			name:    "maximum",
			schema:  `{"type":"object","properties":{"limit":{"type":"integer","maximum":100}}}`,
			data:    `{"limit":101}`,
			field:   "/limit",
			message: "must be <= 100",
			keyword: "validation.maximum",
		},
		{
			name:    "min items",
			schema:  `{"type":"array","minItems":2}`,
			data:    `[1]`,
			field:   validator.RootField,
			message: "must NOT have fewer than 2 items",
			keyword: "validation.minItems",
		},
		{
			name:    "null against object",
			schema:  `{"type":"object"}`,
			data:    `null`,
			field:   validator.RootField,
			message: "must be object",
			keyword: "validation.type",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			res := compile(t, tt.schema).Validate(value.MustParse(tt.data))
			require.False(t, res.Valid)

			errs := validator.FormatErrors(res.Errors)
			require.Len(t, errs, 1)
			assert.Equal(t, tt.field, errs[0].Field)
			assert.Equal(t, tt.message, errs[0].Message)
			assert.Equal(t, tt.keyword, errs[0].TranslationKey)
		})
	}
}

func TestJSONSchemaCompiler_SchemaForms(t *testing.T) {
	t.Parallel()

	const doc = `{"type":"object","required":["id"]}`

	forms := map[string]any{
		"string":       doc,
		"bytes":        []byte(doc),
		"raw message":  json.RawMessage(doc),
		"go value":     map[string]any{"type": "object", "required": []string{"id"}},
		"value tree":   value.MustParse(doc),
		"yaml decoded": mustParseSchemas(t, "body:\n  type: object\n  required: [id]\n").Body,
	}

	for name, schema := range forms {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			s := compile(t, schema)
			assert.True(t, s.Validate(value.MustParse(`{"id":1}`)).Valid)
			assert.False(t, s.Validate(value.MustParse(`{}`)).Valid)
		})
	}
}

func TestJSONSchemaCompiler_InstanceForms(t *testing.T) {
	t.Parallel()

	s := compile(t, `{"type":"string","maxLength":5}`)

	assert.True(t, s.Validate("hello").Valid, "go string is a JSON string")
	assert.False(t, s.Validate("hello world").Valid)
	assert.True(t, s.Validate(value.String("hi")).Valid)
	assert.True(t, s.Validate([]byte(`"hi"`)).Valid)
	assert.False(t, s.Validate(json.RawMessage(`42`)).Valid)

	res := s.Validate([]byte(`{broken`))
	require.False(t, res.Valid)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, "internal", res.Errors[0].Keyword)
}

func TestJSONSchemaCompiler_InvalidSchemas(t *testing.T) {
	t.Parallel()

	tests := map[string]any{
		"not json":           `{"type":`,
		"required not array": `{"type":"object","required":"id"}`,
		"unknown type":       `{"type":"strin"}`,
		"negative length":    `{"type":"string","minLength":-1}`,
	}

	for name, schema := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			_, err := validator.NewJSONSchemaCompiler().Compile(schema)
			assert.Error(t, err)
		})
	}

	t.Run("dispatcher wraps compile error", func(t *testing.T) {
		t.Parallel()

		_, err := validator.NewDispatcher(validator.NewJSONSchemaCompiler(), validator.Schemas{
			Params: `{"type":"strin"}`,
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, validator.ErrSchemaCompile)
		assert.Contains(t, err.Error(), "params schema")
	})
}

func TestJSONSchemaCompiler_UnknownKeywords(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		schema  string
		pointer string
	}{
		{"root typo", `{"type":"object","requird":["id"]}`, `"requird" at #`},
		{"inside properties", `{"type":"object","properties":{"id":{"type":"string","minLenght":1}}}`, `"minLenght" at #/properties/id`},
		{"inside items", `{"type":"array","items":{"type":"string","patern":"^a"}}`, `"patern" at #/items`},
		{"inside tuple items", `{"type":"array","items":[{"type":"string"},{"maximun":3}]}`, `"maximun" at #/items/1`},
		{"inside definitions", `{"definitions":{"id":{"tpye":"string"}},"$ref":"#/definitions/id"}`, `"tpye" at #/definitions/id`},
		{"inside anyOf", `{"anyOf":[{"type":"string"},{"type":"integer","minimun":0}]}`, `"minimun" at #/anyOf/1`},
		{"inside not", `{"not":{"enumm":[1]}}`, `"enumm" at #/not`},
		{"draft 4 has no const", `{"$schema":"http://json-schema.org/draft-04/schema#","const":1}`, `"const" at #`},
		{"draft 7 has no $defs", `{"$defs":{"id":{"type":"string"}}}`, `"$defs" at #`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := validator.NewJSONSchemaCompiler().Compile(tt.schema)
			require.Error(t, err)
			assert.ErrorIs(t, err, validator.ErrUnknownKeyword)
			assert.Contains(t, err.Error(), tt.pointer)
		})
	}

	t.Run("dispatcher rejects typo at setup", func(t *testing.T) {
		t.Parallel()

		d, err := validator.NewDispatcher(validator.NewJSONSchemaCompiler(), validator.Schemas{
			Body: `{"type":"object","requird":["id"]}`,
		})
		require.Error(t, err)
		assert.Nil(t, d)
		assert.ErrorIs(t, err, validator.ErrSchemaCompile)
		assert.ErrorIs(t, err, validator.ErrUnknownKeyword)
		assert.Contains(t, err.Error(), "body schema")
	})

	t.Run("draft keywords and property names pass", func(t *testing.T) {
		t.Parallel()

		s := compile(t, `{
			"$comment": "order",
			"title": "Order",
			"type": "object",
			"properties": {
				"requird": {"type": "boolean"},
				"kind": {"enum": ["a", "b"], "default": "a"}
			},
			"if": {"properties": {"kind": {"const": "b"}}},
			"then": {"required": ["requird"]},
			"dependencies": {"kind": ["requird"]},
			"additionalProperties": false
		}`)
		assert.True(t, s.Validate(value.MustParse(`{"kind":"a","requird":true}`)).Valid)
		assert.False(t, s.Validate(value.MustParse(`{"kind":"b"}`)).Valid)
	})
}

func TestJSONSchemaCompiler_Concurrent(t *testing.T) {
	t.Parallel()

	d := validator.MustNewDispatcher(validator.NewJSONSchemaCompiler(), validator.Schemas{
		Body:  `{"type":"object","required":["id"]}`,
		Query: `{"type":"object","properties":{"q":{"type":"string","minLength":1}}}`,
	})

	good := validator.Input{Body: value.MustParse(`{"id":1}`), Query: value.MustParse(`{"q":"x"}`)}
	bad := validator.Input{Body: value.MustParse(`{"id":1}`), Query: value.MustParse(`{"q":""}`)}

	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 50 {
				if i%2 == 0 {
					assert.True(t, d.Dispatch(good).Passed())
				} else {
					out := d.Dispatch(bad)
					assert.Equal(t, validator.LocationQuery, out.Location)
					assert.Equal(t, []string{"/q"}, out.Errors.Fields())
				}
			}
		}()
	}
	wg.Wait()
}
