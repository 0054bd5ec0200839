package engine

import (
	"iter"

	"github.com/teranos/crunch/charset"
	"github.com/teranos/crunch/errors"
	"github.com/teranos/crunch/runlimit"
)

// MaxWordLength bounds the length range. Anything longer has more
// candidates per length than could ever be written out.
const MaxWordLength = 1024

// GenerationConfig is the immutable input of a pattern-based run.
type GenerationConfig struct {
	MinLength int
	MaxLength int
	// Pattern enables pattern mode when non-empty.
	Pattern  string
	Charsets charset.Overrides
	Limits   runlimit.Limits
	Start    string
	End      string
}

// UsesPattern reports whether the run is in pattern mode.
func (c GenerationConfig) UsesPattern() bool { return c.Pattern != "" }

// Validate checks the length range and limits.
func (c GenerationConfig) Validate() error {
	if c.MinLength < 0 {
		return errors.NewInvalidConfigError("min length must be >= 0, got %d", c.MinLength)
	}
	if c.MaxLength < c.MinLength {
		return errors.WithHint(
			errors.NewInvalidConfigError("max length %d is below min length %d", c.MaxLength, c.MinLength),
			"swap the values or raise the max length")
	}
	if c.MaxLength > MaxWordLength {
		return errors.WithHintf(
			errors.NewInvalidConfigError("max length must be <= %d, got %d", MaxWordLength, c.MaxLength),
			"lower the max length to %d or less", MaxWordLength)
	}
	for _, class := range charset.Classes {
		if n := c.Limits.Get(class); n < 0 {
			return errors.NewInvalidConfigError("%s limit must be >= 0, got %d", class, n)
		}
	}
	return nil
}

// Lengths yields the configured lengths, shortest first.
func (c GenerationConfig) Lengths() iter.Seq[int] {
	return func(yield func(int) bool) {
		if c.MaxLength < c.MinLength {
			return
		}
		for n := c.MinLength; ; n++ {
			if !yield(n) || n == c.MaxLength {
				return
			}
		}
	}
}
