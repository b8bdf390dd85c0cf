// Package sanitizer neutralises injection-prone substrings in untrusted request
// data before it reaches HTML templates, SQL literals, file paths, HTTP headers
// or shell invocations.
//
// The package is built from three layers:
//
//   - Transforms – small, total, pure string functions: Trim, RemoveCRLF,
//     BlockPathTraversal, RemoveDangerousPatterns, StripTags, EscapeSQL,
//     EscapeShell and EscapeHTML. None of them can fail.
//
//   - Pipeline – NewPipeline turns a Config (a set of boolean toggles) into the
//     ordered subsequence of enabled transforms. The order is fixed:
//
//     trim → removeCrlf → blockPathTraversal → removeDangerous → stripTags →
//     escapeSql → escapeShell → escapeHtml
//
//     HTML escaping always runs last, so text produced by earlier steps is
//     escaped exactly once.
//
//   - Walk – applies a transform to every string leaf of a value.Value tree,
//     leaving nulls, numbers and booleans alone and preserving sequence length,
//     map key sets and key order.
//
// # Usage
//
//	p := sanitizer.NewPipeline(sanitizer.Config{
//	    Trim:       true,
//	    StripTags:  true,
//	    EscapeHTML: true,
//	})
//
//	body, _ := value.Parse(payload)
//	clean := p.Sanitize(body)
//
// The pipeline is immutable once built and can be shared across goroutines.
// The generic Apply and Compose helpers remain available for ad-hoc chains:
//
//	header := sanitizer.Compose(sanitizer.Trim, sanitizer.RemoveCRLF)
//
// # Configuration
//
// DefaultConfig enables Trim, RemoveDangerous and EscapeHTML. Config can be
// decoded from JSON or YAML (keys trim, escape, stripTags, removeDangerous,
// escapeSql, blockPathTraversal, removeCrlf, escapeShell) or parsed from the
// environment. Unrecognised keys are preserved in Config.Extra.
//
// # Limitations
//
// This is not an HTML sanitizer: StripTags and RemoveDangerousPatterns are
// regular expressions and do not parse markup. EscapeSQL does not replace
// parameterised queries. BlockPathTraversal decodes percent-encoding once, so
// double-encoded sequences pass through; see its documentation.
//
// # Error handling
//
// Transforms never return errors. Only configuration decoding can fail, with
// errors wrapping ErrInvalidConfig.
package sanitizer
