package validator

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/dmitrymomot/reqguard/pkg/value"
)

// JSONSchemaCompiler compiles JSON Schema documents with gojsonschema.
//
// Compilation is strict: a schema must pass its meta-schema and may only use
// keywords its draft defines, so a misspelled keyword fails at setup instead
// of being ignored. Every error of a validation run is collected and instance
// values are never coerced between types.
type JSONSchemaCompiler struct {
	draft gojsonschema.Draft
}

// CompilerOption configures a JSONSchemaCompiler.
type CompilerOption func(*JSONSchemaCompiler)

// WithDraft selects the draft used for schemas without a $schema keyword.
// The default is draft 7.
func WithDraft(d gojsonschema.Draft) CompilerOption {
	return func(c *JSONSchemaCompiler) {
		c.draft = d
	}
}

// NewJSONSchemaCompiler creates a gojsonschema-backed Compiler.
func NewJSONSchemaCompiler(opts ...CompilerOption) *JSONSchemaCompiler {
	c := &JSONSchemaCompiler{draft: gojsonschema.Draft7}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Compile accepts a schema as []byte, string, json.RawMessage, value.Value or
// any Go value that encodes to a JSON object.
func (c *JSONSchemaCompiler) Compile(schema any) (Schema, error) {
	loader, err := jsonLoader(schema)
	if err != nil {
		return nil, err
	}

	doc, err := loader.LoadJSON()
	if err != nil {
		return nil, err
	}
	known := keywordSet(declaredDraft(doc, c.draft))
	if err := checkKeywords(doc, "", known); err != nil {
		return nil, err
	}

	sl := gojsonschema.NewSchemaLoader()
	sl.Validate = true
	sl.Draft = c.draft

	compiled, err := sl.Compile(loader)
	if err != nil {
		return nil, err
	}
	return &jsonSchema{schema: compiled}, nil
}

type jsonSchema struct {
	schema *gojsonschema.Schema
}

// Validate accepts value.Value trees, encoded JSON as []byte or
// json.RawMessage, or plain Go values. A Go string is validated as a JSON
// string, not parsed.
func (s *jsonSchema) Validate(data any) Result {
	var loader gojsonschema.JSONLoader
	var err error
	if str, ok := data.(string); ok {
		loader = gojsonschema.NewGoLoader(str)
	} else {
		loader, err = jsonLoader(data)
	}
	if err != nil {
		return internalFailure(err)
	}

	res, err := s.schema.Validate(loader)
	if err != nil {
		return internalFailure(err)
	}
	if res.Valid() {
		return Result{Valid: true}
	}

	errs := make([]RawError, 0, len(res.Errors()))
	for _, e := range res.Errors() {
		errs = append(errs, convertError(e))
	}
	return Result{Errors: errs}
}

func jsonLoader(v any) (gojsonschema.JSONLoader, error) {
	switch t := v.(type) {
	case []byte:
		return gojsonschema.NewBytesLoader(t), nil
	case json.RawMessage:
		return gojsonschema.NewBytesLoader(t), nil
	case string:
		return gojsonschema.NewStringLoader(t), nil
	case value.Value:
		data, err := value.Marshal(t)
		if err != nil {
			return nil, err
		}
		return gojsonschema.NewBytesLoader(data), nil
	default:
		return gojsonschema.NewGoLoader(v), nil
	}
}

func internalFailure(err error) Result {
	return Result{
		Errors: []RawError{{
			Message: err.Error(),
			Keyword: "internal",
		}},
	}
}

func convertError(e gojsonschema.ResultError) RawError {
	keyword := keywordOf(e.Type())

	params := make(map[string]any, len(e.Details()))
	for k, v := range e.Details() {
		if k == "field" || k == "context" {
			continue
		}
		params[k] = v
	}

	return RawError{
		InstancePath: instancePath(e.Context()),
		Message:      message(keyword, e),
		Keyword:      keyword,
		Params:       params,
	}
}

// instancePath renders a gojsonschema context ("(root)" -> "", "(root).a.0"
// -> "/a/0") as a JSON pointer.
func instancePath(ctx *gojsonschema.JsonContext) string {
	if ctx == nil {
		return ""
	}

	const sep = "\x00"
	segments := strings.Split(ctx.String(sep), sep)
	if len(segments) <= 1 {
		return ""
	}

	var b strings.Builder
	for _, seg := range segments[1:] {
		b.WriteByte('/')
		b.WriteString(pointerEscaper.Replace(seg))
	}
	return b.String()
}

var pointerEscaper = strings.NewReplacer("~", "~0", "/", "~1")

// keywords maps gojsonschema error types to JSON Schema keywords.
var keywords = map[string]string{
	"false":                           "false",
	"required":                        "required",
	"invalid_type":                    "type",
	"number_any_of":                   "anyOf",
	"number_one_of":                   "oneOf",
	"number_all_of":                   "allOf",
	"number_not":                      "not",
	"missing_dependency":              "dependencies",
	"internal":                        "internal",
	"const":                           "const",
	"enum":                            "enum",
	"array_no_additional_items":       "additionalItems",
	"array_min_items":                 "minItems",
	"array_max_items":                 "maxItems",
	"unique":                          "uniqueItems",
	"contains":                        "contains",
	"array_min_properties":            "minProperties",
	"array_max_properties":            "maxProperties",
	"additional_property_not_allowed": "additionalProperties",
	"invalid_property_pattern":        "patternProperties",
	"invalid_property_name":           "propertyNames",
	"string_gte":                      "minLength",
	"string_lte":                      "maxLength",
	"pattern":                         "pattern",
	"format":                          "format",
	"multiple_of":                     "multipleOf",
	"number_gte":                      "minimum",
	"number_gt":                       "exclusiveMinimum",
	"number_lte":                      "maximum",
	"number_lt":                       "exclusiveMaximum",
	"condition_then":                  "if",
	"condition_else":                  "if",
}

func keywordOf(errType string) string {
	if k, ok := keywords[errType]; ok {
		return k
	}
	return errType
}

func message(keyword string, e gojsonschema.ResultError) string {
	d := e.Details()
	switch keyword {
	case "required":
		return fmt.Sprintf("must have required property '%v'", d["property"])
	case "type":
		return fmt.Sprintf("must be %v", d["expected"])
	case "additionalProperties":
		return "must NOT have additional properties"
	case "enum":
		return "must be equal to one of the allowed values"
	case "const":
		return "must be equal to constant"
	case "minLength":
		return fmt.Sprintf("must NOT have fewer than %v characters", d["min"])
	case "maxLength":
		return fmt.Sprintf("must NOT have more than %v characters", d["max"])
	case "minItems":
		return fmt.Sprintf("must NOT have fewer than %v items", d["min"])
	case "maxItems":
		return fmt.Sprintf("must NOT have more than %v items", d["max"])
	case "minProperties":
		return fmt.Sprintf("must NOT have fewer than %v properties", d["min"])
	case "maxProperties":
		return fmt.Sprintf("must NOT have more than %v properties", d["max"])
	case "uniqueItems":
		return fmt.Sprintf("must NOT have duplicate items (items ## %v and %v are identical)", d["j"], d["i"])
	case "pattern":
		return fmt.Sprintf("must match pattern \"%v\"", d["pattern"])
	case "format":
		return fmt.Sprintf("must match format \"%v\"", d["format"])
	case "minimum":
		return fmt.Sprintf("must be >= %v", d["min"])
	case "exclusiveMinimum":
		return fmt.Sprintf("must be > %v", d["min"])
	case "maximum":
		return fmt.Sprintf("must be <= %v", d["max"])
	case "exclusiveMaximum":
		return fmt.Sprintf("must be < %v", d["max"])
	case "multipleOf":
		return fmt.Sprintf("must be multiple of %v", d["multiple"])
	default:
		return e.Description()
	}
}
