package sanitizer

// Step names, as used in configuration documents and Pipeline.Names.
const (
	StepTrim               = "trim"
	StepRemoveCRLF         = "removeCrlf"
	StepBlockPathTraversal = "blockPathTraversal"
	StepRemoveDangerous    = "removeDangerous"
	StepStripTags          = "stripTags"
	StepEscapeSQL          = "escapeSql"
	StepEscapeShell        = "escapeShell"
	StepEscapeHTML         = "escapeHtml"
)

type registryEntry struct {
	name      string
	enabled   func(Config) bool
	transform func(string) string
}

// registry lists every transform in the only order a pipeline may run them.
// HTML escaping stays last so no earlier rewrite can reintroduce raw markup.
var registry = [...]registryEntry{
	{StepTrim, func(c Config) bool { return c.Trim }, Trim},
	{StepRemoveCRLF, func(c Config) bool { return c.RemoveCRLF }, RemoveCRLF},
	{StepBlockPathTraversal, func(c Config) bool { return c.BlockPathTraversal }, BlockPathTraversal},
	{StepRemoveDangerous, func(c Config) bool { return c.RemoveDangerous }, RemoveDangerousPatterns},
	{StepStripTags, func(c Config) bool { return c.StripTags }, StripTags},
	{StepEscapeSQL, func(c Config) bool { return c.EscapeSQL }, EscapeSQL},
	{StepEscapeShell, func(c Config) bool { return c.EscapeShell }, EscapeShell},
	{StepEscapeHTML, func(c Config) bool { return c.EscapeHTML }, EscapeHTML},
}

// Transforms returns the names of all registered transforms in pipeline order.
func Transforms() []string {
	names := make([]string, len(registry))
	for i, e := range registry {
		names[i] = e.name
	}
	return names
}

// Lookup returns the transform registered under name.
func Lookup(name string) (func(string) string, bool) {
	for _, e := range registry {
		if e.name == name {
			return e.transform, true
		}
	}
	return nil, false
}
