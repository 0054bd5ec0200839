package engine

// Mode selects what a run generates. It is either Permutation or
// PatternBased; Run is the single place that tells them apart.
type Mode interface {
	modeName() string
}

// Permutation orders whole words. It bypasses lengths, pattern, limits
// and bounds, and materializes every result.
type Permutation struct {
	Words []string
}

// PatternBased enumerates every length in the configured range.
type PatternBased struct {
	Config GenerationConfig
}

func (Permutation) modeName() string  { return "permutation" }
func (PatternBased) modeName() string { return "pattern" }

// ModeName returns "permutation" or "pattern", or "" for a nil mode.
func ModeName(m Mode) string {
	switch v := m.(type) {
	case nil:
		return ""
	case *Permutation:
		if v == nil {
			return ""
		}
	case *PatternBased:
		if v == nil {
			return ""
		}
	}
	return m.modeName()
}
