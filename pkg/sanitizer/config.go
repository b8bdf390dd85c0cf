package sanitizer

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"

	"gopkg.in/yaml.v3"
)

// Config selects which transforms a Pipeline runs.
//
// Field tags allow loading from JSON/YAML documents and, through pkg/config,
// from environment variables (use envPrefix:"SANITIZE_" on the parent field).
// Keys that are not recognised are kept in Extra and otherwise ignored.
type Config struct {
	Trim               bool `json:"trim" yaml:"trim" env:"TRIM" envDefault:"true"`
	EscapeHTML         bool `json:"escape" yaml:"escape" env:"ESCAPE_HTML" envDefault:"true"`
	StripTags          bool `json:"stripTags" yaml:"stripTags" env:"STRIP_TAGS" envDefault:"false"`
	RemoveDangerous    bool `json:"removeDangerous" yaml:"removeDangerous" env:"REMOVE_DANGEROUS" envDefault:"true"`
	EscapeSQL          bool `json:"escapeSql" yaml:"escapeSql" env:"ESCAPE_SQL" envDefault:"false"`
	BlockPathTraversal bool `json:"blockPathTraversal" yaml:"blockPathTraversal" env:"BLOCK_PATH_TRAVERSAL" envDefault:"false"`
	RemoveCRLF         bool `json:"removeCrlf" yaml:"removeCrlf" env:"REMOVE_CRLF" envDefault:"false"`
	EscapeShell        bool `json:"escapeShell" yaml:"escapeShell" env:"ESCAPE_SHELL" envDefault:"false"`

	// Extra holds unrecognised keys for forward compatibility.
	Extra map[string]any `json:"-" yaml:"-"`
}

// DefaultConfig trims, removes dangerous patterns and escapes HTML.
func DefaultConfig() Config {
	return Config{
		Trim:            true,
		EscapeHTML:      true,
		RemoveDangerous: true,
	}
}

// ConfigFromMap builds a Config from a decoded configuration document.
// Missing keys keep their defaults. "escapeHtml" is accepted as an alias of
// "escape"; when both are present "escapeHtml" wins.
func ConfigFromMap(raw map[string]any) (Config, error) {
	cfg := DefaultConfig()

	for _, key := range slices.Sorted(maps.Keys(raw)) {
		v := raw[key]
		toggle := cfg.toggle(key)
		if toggle == nil {
			if cfg.Extra == nil {
				cfg.Extra = make(map[string]any)
			}
			cfg.Extra[key] = v
			continue
		}

		b, ok := v.(bool)
		if !ok {
			return Config{}, fmt.Errorf("%w: %q must be a boolean, got %T", ErrInvalidConfig, key, v)
		}
		*toggle = b
	}

	return cfg, nil
}

func (c *Config) toggle(key string) *bool {
	switch key {
	case "trim":
		return &c.Trim
	case "escape", "escapeHtml":
		return &c.EscapeHTML
	case "stripTags":
		return &c.StripTags
	case "removeDangerous":
		return &c.RemoveDangerous
	case "escapeSql":
		return &c.EscapeSQL
	case "blockPathTraversal":
		return &c.BlockPathTraversal
	case "removeCrlf":
		return &c.RemoveCRLF
	case "escapeShell":
		return &c.EscapeShell
	default:
		return nil
	}
}

// Extension returns an unrecognised key captured while decoding.
func (c Config) Extension(key string) (any, bool) {
	v, ok := c.Extra[key]
	return v, ok
}

// UnmarshalJSON decodes a configuration object on top of DefaultConfig.
func (c *Config) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	cfg, err := ConfigFromMap(raw)
	if err != nil {
		return err
	}
	*c = cfg
	return nil
}

// UnmarshalYAML decodes a configuration mapping on top of DefaultConfig.
func (c *Config) UnmarshalYAML(node *yaml.Node) error {
	var raw map[string]any
	if err := node.Decode(&raw); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	cfg, err := ConfigFromMap(raw)
	if err != nil {
		return err
	}
	*c = cfg
	return nil
}
