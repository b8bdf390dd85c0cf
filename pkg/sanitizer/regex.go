package sanitizer

import "regexp"

// Pre-compiled regular expressions. Go's regexp engine (RE2) matches in time
// linear in the input, so none of these can be driven into catastrophic
// backtracking by attacker-controlled strings.
var (
	// HTML stripping
	htmlTagRegex = regexp.MustCompile(`<[^>]*>`)

	// Script blocks, shortest match up to the first closing tag
	scriptBlockRegex = regexp.MustCompile(`(?is)<script\b[^>]*>.*?</script\s*>`)

	// on<word>= handlers with double-quoted, single-quoted or bare values
	eventHandlerRegex = regexp.MustCompile(`(?i)\s*\bon\w+\s*=\s*(?:"[^"]*"|'[^']*'|[^\s>]+)`)

	// Single-encoded traversal tokens; `\` is already normalised to `/`
	encodedTraversalRegex = regexp.MustCompile(`(?i)%2e%2e%2f|%2e%2e/|\.\.%2f|%2e%2e%5c`)
)
