package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrymomot/reqguard/pkg/value"
)

// openInput returns the named file, or r when path is empty or "-".
func openInput(path string, r io.Reader) (io.ReadCloser, error) {
	if path == "" || path == "-" {
		return io.NopCloser(r), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	return f, nil
}

func isYAMLPath(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// decodeDocument reads a JSON document, or YAML when asYAML is set.
func decodeDocument(r io.Reader, asYAML bool) (value.Value, error) {
	if asYAML {
		return value.DecodeYAML(r)
	}
	return value.Decode(r)
}

// readDocumentFile decodes path as YAML or JSON depending on its extension.
// An empty path yields nil.
func readDocumentFile(path string) (value.Value, error) {
	if path == "" {
		return nil, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	v, err := decodeDocument(f, isYAMLPath(path))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return v, nil
}
