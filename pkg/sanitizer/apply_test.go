package sanitizer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/reqguard/pkg/sanitizer"
)

func TestApply(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		input      string
		transforms []func(string) string
		expected   string
	}{
		{
			name:       "applies single transform",
			input:      "  hello  ",
			transforms: []func(string) string{sanitizer.Trim},
			expected:   "hello",
		},
		{
			name:  "applies transforms left to right",
			input: "  <b>O'Brien</b>  ",
			transforms: []func(string) string{
				sanitizer.Trim,
				sanitizer.StripTags,
				sanitizer.EscapeSQL,
			},
			expected: "O\\'Brien",
		},
		{
			name:  "order changes the result",
			input: "<b>x</b>",
			transforms: []func(string) string{
				sanitizer.EscapeHTML,
				sanitizer.StripTags,
			},
			expected: "&lt;b&gt;x&lt;&#x2F;b&gt;",
		},
		{
			name:       "handles empty transforms slice",
			input:      "hello world",
			transforms: []func(string) string{},
			expected:   "hello world",
		},
		{
			name:  "handles empty input",
			input: "",
			transforms: []func(string) string{
				sanitizer.Trim,
				sanitizer.EscapeHTML,
			},
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			result := sanitizer.Apply(tt.input, tt.transforms...)
			assert.Equal(t, tt.expected, result)
		})
	}

	t.Run("works with non-string types", func(t *testing.T) {
		t.Parallel()

		double := func(n int) int { return n * 2 }
		inc := func(n int) int { return n + 1 }
		assert.Equal(t, 7, sanitizer.Apply(3, double, inc))
	})
}

func TestCompose(t *testing.T) {
	t.Parallel()

	header := sanitizer.Compose(sanitizer.Trim, sanitizer.RemoveCRLF)

	assert.Equal(t, "valueInjected: 1", header("  value\r\nInjected: 1 "))
	assert.Equal(t, "plain", header("plain"))

	identity := sanitizer.Compose[string]()
	assert.Equal(t, " keep ", identity(" keep "))
}

func TestApplyAny(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    any
		expected any
	}{
		{name: "string is transformed", input: "  hi ", expected: "hi"},
		{name: "number is unchanged", input: 5, expected: 5},
		{name: "float is unchanged", input: 1.5, expected: 1.5},
		{name: "bool is unchanged", input: true, expected: true},
		{name: "nil is unchanged", input: nil, expected: nil},
		{name: "slice is unchanged", input: []string{" a "}, expected: []string{" a "}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, sanitizer.ApplyAny(sanitizer.Trim, tt.input))
		})
	}
}

func TestLookup(t *testing.T) {
	t.Parallel()

	for _, name := range sanitizer.Transforms() {
		fn, ok := sanitizer.Lookup(name)
		assert.True(t, ok, name)
		assert.NotNil(t, fn, name)
	}

	trim, ok := sanitizer.Lookup(sanitizer.StepTrim)
	assert.True(t, ok)
	assert.Equal(t, "x", trim(" x "))

	_, ok = sanitizer.Lookup("toUpper")
	assert.False(t, ok)
}

func TestTransforms(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{
		"trim",
		"removeCrlf",
		"blockPathTraversal",
		"removeDangerous",
		"stripTags",
		"escapeSql",
		"escapeShell",
		"escapeHtml",
	}, sanitizer.Transforms())
}
