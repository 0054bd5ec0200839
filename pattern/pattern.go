// Package pattern compiles crunch pattern strings into per-position
// candidate sets.
//
// Each rune of a pattern is either a class marker (@ lower, , upper,
// % digit, ^ symbol) or a literal. A marker whose bound charset is empty
// compiles to a literal of the marker rune itself, but still remembers the
// class it was declared as; the duplicate-run filter counts on that.
package pattern

import (
	"github.com/teranos/crunch/charset"
	"github.com/teranos/crunch/errors"
)

// Position is a single compiled pattern position.
type Position struct {
	// Declared is the class the position was written as, or charset.None
	// for plain literals.
	Declared charset.Class
	// Candidates are the characters the position can take, in order.
	Candidates charset.Charset

	literal bool
}

// IsLiteral reports whether the position is fixed to one character.
func (p Position) IsLiteral() bool { return p.literal }

// Pattern is an ordered sequence of compiled positions.
type Pattern []Position

// Compile turns s into one Position per rune, binding class markers to the
// charsets in set.
func Compile(s string, set charset.Set) Pattern {
	runes := []rune(s)
	compiled := make(Pattern, 0, len(runes))
	for _, r := range runes {
		class, isMarker := charset.FromMarker(r)
		if isMarker {
			if cs := set.Get(class); len(cs) > 0 {
				compiled = append(compiled, Position{Declared: class, Candidates: cs})
				continue
			}
		}
		compiled = append(compiled, Position{
			Declared:   class,
			Candidates: charset.Charset{r},
			literal:    true,
		})
	}
	return compiled
}

// Len returns the number of positions.
func (p Pattern) Len() int { return len(p) }

// Wheels returns the candidate set of every position, for enumeration.
func (p Pattern) Wheels() [][]rune {
	wheels := make([][]rune, len(p))
	for i, pos := range p {
		wheels[i] = pos.Candidates
	}
	return wheels
}

// Declared returns the declared class of every position.
func (p Pattern) Declared() []charset.Class {
	declared := make([]charset.Class, len(p))
	for i, pos := range p {
		declared[i] = pos.Declared
	}
	return declared
}

// CheckLength validates the pattern against the word length being
// generated. Both failures are recoverable for the run as a whole.
func (p Pattern) CheckLength(length int) error {
	if len(p) != length {
		return errors.WithHintf(
			errors.Wrapf(errors.ErrConfigMismatch, "pattern has %d positions, word length is %d", len(p), length),
			"a pattern only produces words of its own length (%d)", len(p))
	}
	if len(p) == 0 {
		return errors.ErrEmptyCandidateSet
	}
	return nil
}
