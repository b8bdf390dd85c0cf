package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/reqguard/pkg/sanitizer"
	"github.com/dmitrymomot/reqguard/pkg/validator"
	"github.com/dmitrymomot/reqguard/pkg/value"
)

var (
	validateSchemas  string
	validateBody     string
	validateQuery    string
	validateParams   string
	validateSanitize bool
)

var errValidationFailed = errors.New("validation failed")

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate body, query and params documents against a schemas file",
	Long: `Loads a schemas document with optional body, query and params JSON Schemas,
validates the given documents in that order and prints PASS or the failure
response. Exits non-zero when a location fails.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		schemas, err := validator.LoadSchemas(validateSchemas)
		if err != nil {
			return err
		}
		d, err := validator.NewDispatcher(validator.NewJSONSchemaCompiler(), schemas)
		if err != nil {
			return err
		}

		var in validator.Input
		for _, f := range []struct {
			path string
			dst  *value.Value
		}{
			{validateBody, &in.Body},
			{validateQuery, &in.Query},
			{validateParams, &in.Params},
		} {
			v, err := readDocumentFile(f.path)
			if err != nil {
				return err
			}
			*f.dst = v
		}

		if validateSanitize {
			p := sanitizer.DefaultPipeline()
			in = validator.Input{
				Body:   sanitizeOptional(p, in.Body),
				Query:  sanitizeOptional(p, in.Query),
				Params: sanitizeOptional(p, in.Params),
			}
		}

		return runValidate(cmd.OutOrStdout(), d, in)
	},
}

func init() {
	validateCmd.Flags().StringVar(&validateSchemas, "schemas", "", "Schemas document (YAML or JSON) with body, query and params keys")
	validateCmd.Flags().StringVar(&validateBody, "body", "", "Body document")
	validateCmd.Flags().StringVar(&validateQuery, "query", "", "Query document")
	validateCmd.Flags().StringVar(&validateParams, "params", "", "Params document")
	validateCmd.Flags().BoolVar(&validateSanitize, "sanitize", false, "Run the default sanitization pipeline before validating")
	_ = validateCmd.MarkFlagRequired("schemas")
}

func sanitizeOptional(p *sanitizer.Pipeline, v value.Value) value.Value {
	if v == nil {
		return nil
	}
	return p.Sanitize(v)
}

// runValidate prints PASS, or the failure body followed by errValidationFailed.
func runValidate(out io.Writer, d *validator.Dispatcher, in validator.Input) error {
	res := d.Dispatch(in)
	if res.Passed() {
		_, err := fmt.Fprintln(out, "PASS")
		return err
	}

	enc := json.NewEncoder(out)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(res.Failure()); err != nil {
		return err
	}
	return fmt.Errorf("%w: %s", errValidationFailed, res.Location)
}
