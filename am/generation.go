package am

import "github.com/teranos/crunch/engine"

// Permuting reports whether the generate section selects permutation mode.
func (g GenerateConfig) Permuting() bool {
	return len(g.Permute) > 0
}

// GenerationConfig builds the engine input for pattern-based runs.
func (c *Config) GenerationConfig() engine.GenerationConfig {
	g := c.Generate
	return engine.GenerationConfig{
		MinLength: g.MinLength,
		MaxLength: g.MaxLength,
		Pattern:   g.Pattern,
		Charsets:  g.Charset,
		Limits:    g.Limits,
		Start:     g.Start,
		End:       g.End,
	}
}

// Mode returns the engine mode the configuration selects.
func (c *Config) Mode() engine.Mode {
	if c.Generate.Permuting() {
		words := make([]string, len(c.Generate.Permute))
		copy(words, c.Generate.Permute)
		return engine.Permutation{Words: words}
	}
	return engine.PatternBased{Config: c.GenerationConfig()}
}
