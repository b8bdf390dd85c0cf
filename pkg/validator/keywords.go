package validator

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

var draft4Keywords = []string{
	"$schema", "$ref", "id", "title", "description", "default",
	"multipleOf", "maximum", "exclusiveMaximum", "minimum", "exclusiveMinimum",
	"maxLength", "minLength", "pattern",
	"additionalItems", "items", "maxItems", "minItems", "uniqueItems",
	"maxProperties", "minProperties", "required", "additionalProperties",
	"definitions", "properties", "patternProperties", "dependencies",
	"enum", "type", "format", "allOf", "anyOf", "oneOf", "not",
}

var draft6Keywords = []string{
	"$schema", "$ref", "$id", "title", "description", "default", "examples",
	"multipleOf", "maximum", "exclusiveMaximum", "minimum", "exclusiveMinimum",
	"maxLength", "minLength", "pattern",
	"additionalItems", "items", "maxItems", "minItems", "uniqueItems", "contains",
	"maxProperties", "minProperties", "required", "additionalProperties",
	"definitions", "properties", "patternProperties", "dependencies", "propertyNames",
	"const", "enum", "type", "format", "allOf", "anyOf", "oneOf", "not",
}

var draft7Keywords = append(slices.Clone(draft6Keywords),
	"$comment", "readOnly", "writeOnly", "contentMediaType", "contentEncoding",
	"if", "then", "else",
)

var hybridKeywords = append(slices.Clone(draft7Keywords), "id")

func keywordSet(d gojsonschema.Draft) map[string]struct{} {
	var list []string
	switch d {
	case gojsonschema.Draft4:
		list = draft4Keywords
	case gojsonschema.Draft6:
		list = draft6Keywords
	case gojsonschema.Draft7:
		list = draft7Keywords
	default:
		list = hybridKeywords
	}

	set := make(map[string]struct{}, len(list))
	for _, k := range list {
		set[k] = struct{}{}
	}
	return set
}

// declaredDraft resolves the draft named by a root $schema keyword.
func declaredDraft(root any, fallback gojsonschema.Draft) gojsonschema.Draft {
	obj, ok := root.(map[string]any)
	if !ok {
		return fallback
	}
	uri, _ := obj["$schema"].(string)
	switch {
	case strings.Contains(uri, "draft-04"):
		return gojsonschema.Draft4
	case strings.Contains(uri, "draft-06"):
		return gojsonschema.Draft6
	case strings.Contains(uri, "draft-07"):
		return gojsonschema.Draft7
	}
	return fallback
}

// Subschema positions by shape.
var (
	schemaKeywords      = []string{"additionalItems", "additionalProperties", "not", "contains", "propertyNames", "if", "then", "else"}
	schemaMapKeywords   = []string{"properties", "patternProperties", "definitions", "dependencies"}
	schemaArrayKeywords = []string{"allOf", "anyOf", "oneOf"}
)

// checkKeywords rejects any keyword the draft does not define, at the root
// and in every nested subschema. Boolean schemas and property-list
// dependencies are skipped.
func checkKeywords(node any, pointer string, known map[string]struct{}) error {
	obj, ok := node.(map[string]any)
	if !ok {
		return nil
	}

	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	for _, k := range keys {
		if _, ok := known[k]; !ok {
			return fmt.Errorf("%w %q at %s", ErrUnknownKeyword, k, "#"+pointer)
		}
	}

	for _, k := range schemaKeywords {
		if sub, ok := obj[k]; ok {
			if err := checkKeywords(sub, pointer+"/"+k, known); err != nil {
				return err
			}
		}
	}

	for _, k := range schemaMapKeywords {
		m, ok := obj[k].(map[string]any)
		if !ok {
			continue
		}
		names := make([]string, 0, len(m))
		for name := range m {
			names = append(names, name)
		}
		slices.Sort(names)
		for _, name := range names {
			p := pointer + "/" + k + "/" + pointerEscaper.Replace(name)
			if err := checkKeywords(m[name], p, known); err != nil {
				return err
			}
		}
	}

	for _, k := range schemaArrayKeywords {
		if err := checkSchemaList(obj[k], pointer+"/"+k, known); err != nil {
			return err
		}
	}

	switch items := obj["items"].(type) {
	case map[string]any:
		return checkKeywords(items, pointer+"/items", known)
	case []any:
		return checkSchemaList(items, pointer+"/items", known)
	}
	return nil
}

func checkSchemaList(v any, pointer string, known map[string]struct{}) error {
	list, ok := v.([]any)
	if !ok {
		return nil
	}
	for i, sub := range list {
		if err := checkKeywords(sub, pointer+"/"+strconv.Itoa(i), known); err != nil {
			return err
		}
	}
	return nil
}
