package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/reqguard/pkg/sanitizer"
	"github.com/dmitrymomot/reqguard/pkg/value"
)

var (
	sanitizeYAML   bool
	sanitizePretty bool
	sanitizeConfig string
)

// toggleFlags maps flag names to the Config field they override.
var toggleFlags = []struct {
	name  string
	usage string
	field func(*sanitizer.Config) *bool
}{
	{"trim", "Trim surrounding whitespace", func(c *sanitizer.Config) *bool { return &c.Trim }},
	{"escape-html", "Escape HTML special characters", func(c *sanitizer.Config) *bool { return &c.EscapeHTML }},
	{"strip-tags", "Remove HTML tags", func(c *sanitizer.Config) *bool { return &c.StripTags }},
	{"remove-dangerous", "Remove script blocks and on* event handler attributes", func(c *sanitizer.Config) *bool { return &c.RemoveDangerous }},
	{"escape-sql", "Escape SQL string metacharacters", func(c *sanitizer.Config) *bool { return &c.EscapeSQL }},
	{"block-path-traversal", "Remove ../ sequences", func(c *sanitizer.Config) *bool { return &c.BlockPathTraversal }},
	{"remove-crlf", "Remove CR and LF characters", func(c *sanitizer.Config) *bool { return &c.RemoveCRLF }},
	{"escape-shell", "Escape shell metacharacters", func(c *sanitizer.Config) *bool { return &c.EscapeShell }},
}

var sanitizeCmd = &cobra.Command{
	Use:   "sanitize [file]",
	Short: "Sanitize every string in a JSON or YAML document",
	Long: `Reads a document from file or stdin, runs the sanitization pipeline over
every string value and prints the result as JSON. Object key order is kept.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadSanitizeConfig(sanitizeConfig)
		if err != nil {
			return err
		}
		for _, tf := range toggleFlags {
			if cmd.Flags().Changed(tf.name) {
				v, err := cmd.Flags().GetBool(tf.name)
				if err != nil {
					return err
				}
				*tf.field(&cfg) = v
			}
		}

		path := ""
		if len(args) == 1 {
			path = args[0]
		}
		in, err := openInput(path, cmd.InOrStdin())
		if err != nil {
			return err
		}
		defer in.Close()

		return runSanitize(in, cmd.OutOrStdout(), sanitizer.NewPipeline(cfg), sanitizeYAML || isYAMLPath(path), sanitizePretty)
	},
}

func init() {
	def := sanitizer.DefaultConfig()
	for _, tf := range toggleFlags {
		sanitizeCmd.Flags().Bool(tf.name, *tf.field(&def), tf.usage)
	}
	sanitizeCmd.Flags().BoolVar(&sanitizeYAML, "yaml", false, "Read the input as YAML")
	sanitizeCmd.Flags().BoolVar(&sanitizePretty, "pretty", false, "Indent the output")
	sanitizeCmd.Flags().StringVar(&sanitizeConfig, "config", "", "Sanitization config file (JSON or YAML)")
}

// loadSanitizeConfig reads a config document; an empty path yields the defaults.
func loadSanitizeConfig(path string) (sanitizer.Config, error) {
	if path == "" {
		return sanitizer.DefaultConfig(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return sanitizer.Config{}, fmt.Errorf("read sanitize config: %w", err)
	}
	cfg := sanitizer.DefaultConfig()
	if len(bytes.TrimSpace(data)) == 0 {
		return cfg, nil
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return sanitizer.Config{}, fmt.Errorf("parse sanitize config: %w", err)
	}
	return cfg, nil
}

func runSanitize(in io.Reader, out io.Writer, p *sanitizer.Pipeline, asYAML, pretty bool) error {
	doc, err := decodeDocument(in, asYAML)
	if err != nil {
		return fmt.Errorf("decode input: %w", err)
	}

	data, err := value.Marshal(p.Sanitize(doc))
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	if pretty {
		var buf bytes.Buffer
		if err := json.Indent(&buf, data, "", "  "); err != nil {
			return fmt.Errorf("indent output: %w", err)
		}
		data = buf.Bytes()
	}

	_, err = fmt.Fprintf(out, "%s\n", data)
	return err
}
