package sanitizer

import "strings"

// Trim removes leading and trailing whitespace from a string.
func Trim(s string) string {
	return strings.TrimSpace(s)
}

// RemoveCRLF removes every carriage return and line feed, including the
// `\r\n` and `\n\r` pairs, so the value cannot split an HTTP header or forge a
// log line.
func RemoveCRLF(s string) string {
	if !strings.ContainsAny(s, "\r\n") {
		return s
	}
	return strings.Map(func(r rune) rune {
		if r == '\r' || r == '\n' {
			return -1
		}
		return r
	}, s)
}
