package validator

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// ParseSchemas decodes a YAML or JSON document of the form
//
//	body:   <JSON Schema>
//	query:  <JSON Schema>
//	params: <JSON Schema>
//
// Every key is optional. Unknown top-level keys are rejected. An empty
// document yields empty Schemas.
func ParseSchemas(data []byte) (Schemas, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var s Schemas
	if err := dec.Decode(&s); err != nil {
		if errors.Is(err, io.EOF) {
			return Schemas{}, nil
		}
		return Schemas{}, errors.Join(ErrInvalidSchemaDocument, err)
	}
	return s, nil
}

// LoadSchemas reads and parses a schemas file.
func LoadSchemas(path string) (Schemas, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Schemas{}, fmt.Errorf("read schemas file: %w", err)
	}
	return ParseSchemas(data)
}
