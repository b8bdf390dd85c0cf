package sanitizer

import "strings"

var (
	htmlEscaper = strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&#x27;",
		"/", "&#x2F;",
	)

	// MySQL string literal escapes.
	sqlEscaper = strings.NewReplacer(
		"\x00", `\0`,
		"\n", `\n`,
		"\r", `\r`,
		"\x1a", `\Z`,
		`\`, `\\`,
		"'", `\'`,
		`"`, `\"`,
	)

	shellEscaper = strings.NewReplacer(
		";", `\;`,
		"&", `\&`,
		"|", `\|`,
		"$", `\$`,
		"`", "\\`",
		`\`, `\\`,
		"<", `\<`,
		">", `\>`,
		"(", `\(`,
		")", `\)`,
		"!", `\!`,
		"#", `\#`,
		"*", `\*`,
		"?", `\?`,
		"[", `\[`,
		"]", `\]`,
		"{", `\{`,
		"}", `\}`,
		"~", `\~`,
		"\n", "\\\n",
		"\r", "\\\r",
	)
)

// EscapeHTML replaces & < > " ' / with HTML entities.
// It is not idempotent: escaping already escaped text encodes the ampersands again.
func EscapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}

// StripTags removes anything that looks like a tag (`<...>`).
// Malformed or nested markup is not understood; text between tags is kept.
func StripTags(s string) string {
	return htmlTagRegex.ReplaceAllString(s, "")
}

// RemoveDangerousPatterns removes <script> blocks together with their content
// and on* event handler attributes such as onclick="..." or onerror=alert(1).
func RemoveDangerousPatterns(s string) string {
	result := scriptBlockRegex.ReplaceAllString(s, "")
	return eventHandlerRegex.ReplaceAllString(result, "")
}

// EscapeSQL backslash-escapes NUL, \n, \r, Ctrl-Z, backslash and both quote
// characters for use inside a MySQL-style string literal.
// Use parameterised queries; this is an additional layer only.
func EscapeSQL(s string) string {
	return sqlEscaper.Replace(s)
}

// EscapeShell backslash-escapes shell metacharacters, newline and carriage return.
// Whitespace and quotes are left untouched.
func EscapeShell(s string) string {
	return shellEscaper.Replace(s)
}

// BlockPathTraversal strips `../` and `..\` sequences.
//
// Backslashes are normalised to forward slashes, then `../` is removed
// repeatedly (along with a trailing `/..` or a lone `..`) until the string stops
// changing. A single case-insensitive pass finally removes the percent-encoded
// forms %2e%2e%2f, %2e%2e\, ..%2f and %2e%2e%5c.
//
// Because the encoded pass runs once, double-encoded input (%252e%252e%252f) and
// tokens that overlap (%2e%2e%2e%2e%2f%2f, ..%2e%2e%2f/) still yield a traversal
// sequence after one application.
func BlockPathTraversal(path string) string {
	result := strings.ReplaceAll(path, `\`, "/")

	for {
		next := strings.ReplaceAll(result, "../", "")
		next = strings.TrimSuffix(next, "/..")
		if next == ".." {
			next = ""
		}
		if next == result {
			break
		}
		result = next
	}

	return encodedTraversalRegex.ReplaceAllString(result, "")
}
