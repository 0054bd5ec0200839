// Package runlimit rejects words with too many identical consecutive
// characters within a single character class.
package runlimit

import "github.com/teranos/crunch/charset"

// Limits caps the run length per class. Zero means unlimited.
type Limits struct {
	Lower  int `mapstructure:"lower" toml:"lower" yaml:"lower" json:"lower"`
	Upper  int `mapstructure:"upper" toml:"upper" yaml:"upper" json:"upper"`
	Digit  int `mapstructure:"digit" toml:"digit" yaml:"digit" json:"digit"`
	Symbol int `mapstructure:"symbol" toml:"symbol" yaml:"symbol" json:"symbol"`
}

// Get returns the limit for c.
func (l Limits) Get(c charset.Class) int {
	switch c {
	case charset.Lower:
		return l.Lower
	case charset.Upper:
		return l.Upper
	case charset.Digit:
		return l.Digit
	case charset.Symbol:
		return l.Symbol
	default:
		return 0
	}
}

// Enabled reports whether any class has a positive limit.
func (l Limits) Enabled() bool {
	return l.Lower > 0 || l.Upper > 0 || l.Digit > 0 || l.Symbol > 0
}

// Accepts reports whether word stays within every positive limit.
//
// declared holds the class each position was written as in the pattern.
// A run grows while adjacent positions are both declared as the class
// being checked and hold the same character; the first run longer than the
// limit rejects the word.
func (l Limits) Accepts(word []rune, declared []charset.Class) bool {
	n := min(len(word), len(declared))
	for _, c := range charset.Classes {
		limit := l.Get(c)
		if limit <= 0 {
			continue
		}
		count := 1
		for i := 1; i < n; i++ {
			if declared[i] == c && declared[i-1] == c && word[i] == word[i-1] {
				count++
				if count > limit {
					return false
				}
			} else {
				count = 1
			}
		}
	}
	return true
}
