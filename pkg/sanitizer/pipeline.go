package sanitizer

import (
	"maps"

	"github.com/dmitrymomot/reqguard/pkg/value"
)

// Step is one named transform of a Pipeline.
type Step struct {
	Name      string
	Transform func(string) string
}

// Pipeline is the ordered set of transforms enabled by a Config.
// It is immutable after NewPipeline and safe for concurrent use.
type Pipeline struct {
	cfg   Config
	steps []Step
	run   func(string) string
}

// NewPipeline composes the transforms enabled in cfg. Steps always run in the
// registry order (trim, removeCrlf, blockPathTraversal, removeDangerous,
// stripTags, escapeSql, escapeShell, escapeHtml) no matter how cfg was built.
func NewPipeline(cfg Config) *Pipeline {
	cfg.Extra = maps.Clone(cfg.Extra)

	steps := make([]Step, 0, len(registry))
	transforms := make([]func(string) string, 0, len(registry))
	for _, e := range registry {
		if !e.enabled(cfg) {
			continue
		}
		steps = append(steps, Step{Name: e.name, Transform: e.transform})
		transforms = append(transforms, e.transform)
	}

	return &Pipeline{
		cfg:   cfg,
		steps: steps,
		run:   Compose(transforms...),
	}
}

// DefaultPipeline returns NewPipeline(DefaultConfig()).
func DefaultPipeline() *Pipeline {
	return NewPipeline(DefaultConfig())
}

// Config returns a copy of the configuration the pipeline was built from.
func (p *Pipeline) Config() Config {
	cfg := p.cfg
	cfg.Extra = maps.Clone(p.cfg.Extra)
	return cfg
}

// Steps returns the enabled steps in execution order.
func (p *Pipeline) Steps() []Step {
	out := make([]Step, len(p.steps))
	copy(out, p.steps)
	return out
}

// Names returns the names of the enabled steps in execution order.
func (p *Pipeline) Names() []string {
	names := make([]string, len(p.steps))
	for i, s := range p.steps {
		names[i] = s.Name
	}
	return names
}

// Clean runs the pipeline over a single string.
func (p *Pipeline) Clean(s string) string {
	return p.run(s)
}

// Sanitize returns a copy of v with the pipeline applied to every string leaf.
func (p *Pipeline) Sanitize(v value.Value) value.Value {
	return Walk(v, p.run)
}

// SanitizeAny is Sanitize for plain Go data such as the result of decoding JSON
// into `any`. Values other than strings, []any and map[string]any are returned
// unchanged.
func (p *Pipeline) SanitizeAny(v any) any {
	return WalkAny(v, p.run)
}
