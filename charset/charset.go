// Package charset resolves the four character classes used by crunch
// patterns into concrete, ordered character sequences.
package charset

// Class identifies one of the four character classes.
// The numeric order is the merge order of the full alphabet.
type Class int

const (
	Lower Class = iota
	Upper
	Digit
	Symbol
)

// None marks a pattern position that was not compiled from a class marker.
const None Class = -1

// Classes lists every class in merge order.
var Classes = [...]Class{Lower, Upper, Digit, Symbol}

// Built-in defaults, used when no override is given.
const (
	DefaultLower  = "abcdefghijklmnopqrstuvwxyz"
	DefaultUpper  = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	DefaultDigit  = "0123456789"
	DefaultSymbol = "!@#$%^&*()-_+=~`[]{}|\\:;\"'<>,.?/ "
)

// Pattern markers for each class.
const (
	MarkerLower  = '@'
	MarkerUpper  = ','
	MarkerDigit  = '%'
	MarkerSymbol = '^'
)

// String returns the lowercase class name used in config keys.
func (c Class) String() string {
	switch c {
	case Lower:
		return "lower"
	case Upper:
		return "upper"
	case Digit:
		return "digit"
	case Symbol:
		return "symbol"
	default:
		return "none"
	}
}

// Marker returns the pattern marker for c, or 0 for None.
func (c Class) Marker() rune {
	switch c {
	case Lower:
		return MarkerLower
	case Upper:
		return MarkerUpper
	case Digit:
		return MarkerDigit
	case Symbol:
		return MarkerSymbol
	default:
		return 0
	}
}

// FromMarker maps a pattern rune to its class.
func FromMarker(r rune) (Class, bool) {
	switch r {
	case MarkerLower:
		return Lower, true
	case MarkerUpper:
		return Upper, true
	case MarkerDigit:
		return Digit, true
	case MarkerSymbol:
		return Symbol, true
	default:
		return None, false
	}
}

// Default returns the built-in sequence for c.
func Default(c Class) string {
	switch c {
	case Lower:
		return DefaultLower
	case Upper:
		return DefaultUpper
	case Digit:
		return DefaultDigit
	case Symbol:
		return DefaultSymbol
	default:
		return ""
	}
}

// Charset is an ordered character sequence for one class.
// Duplicates are kept as given.
type Charset []rune

// String returns the charset as a string.
func (cs Charset) String() string { return string(cs) }

// Resolve returns override verbatim when it is non-empty, and the class
// default otherwise. It never fails.
func Resolve(c Class, override string) Charset {
	if override != "" {
		return Charset(override)
	}
	return Charset(Default(c))
}

// Overrides carries caller-supplied charsets; empty fields mean "default".
type Overrides struct {
	Lower  string `mapstructure:"lower" toml:"lower" yaml:"lower" json:"lower"`
	Upper  string `mapstructure:"upper" toml:"upper" yaml:"upper" json:"upper"`
	Digit  string `mapstructure:"digit" toml:"digit" yaml:"digit" json:"digit"`
	Symbol string `mapstructure:"symbol" toml:"symbol" yaml:"symbol" json:"symbol"`
}

// Get returns the override for c.
func (o Overrides) Get(c Class) string {
	switch c {
	case Lower:
		return o.Lower
	case Upper:
		return o.Upper
	case Digit:
		return o.Digit
	case Symbol:
		return o.Symbol
	default:
		return ""
	}
}

// Set is the resolved charset of every class, indexed by Class.
type Set [4]Charset

// ResolveAll resolves every class against o.
func ResolveAll(o Overrides) Set {
	var s Set
	for _, c := range Classes {
		s[c] = Resolve(c, o.Get(c))
	}
	return s
}

// Get returns the charset bound to c, or nil for None.
func (s Set) Get(c Class) Charset {
	if c < Lower || c > Symbol {
		return nil
	}
	return s[c]
}

// Merged concatenates all classes in order: lower, upper, digit, symbol.
func (s Set) Merged() Charset {
	n := 0
	for _, cs := range s {
		n += len(cs)
	}
	merged := make(Charset, 0, n)
	for _, c := range Classes {
		merged = append(merged, s[c]...)
	}
	return merged
}
