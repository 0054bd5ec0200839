package charset

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name     string
		class    Class
		override string
		want     string
	}{
		{"default lower", Lower, "", DefaultLower},
		{"default symbol keeps trailing space", Symbol, "", DefaultSymbol},
		{"override verbatim", Digit, "9876", "9876"},
		{"duplicates kept", Upper, "AAB", "AAB"},
		{"multibyte override", Lower, "äöü", "äöü"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Resolve(tt.class, tt.override).String())
		})
	}
}

func TestResolveAllAndMerged(t *testing.T) {
	set := ResolveAll(Overrides{Lower: "ab", Digit: "01", Upper: "X", Symbol: "!"})

	assert.Equal(t, "ab", set.Get(Lower).String())
	assert.Equal(t, "X", set.Get(Upper).String())
	assert.Equal(t, "abX01!", set.Merged().String())
	assert.Nil(t, set.Get(None))
}

func TestMarkers(t *testing.T) {
	for _, c := range Classes {
		got, ok := FromMarker(c.Marker())
		assert.True(t, ok)
		assert.Equal(t, c, got)
	}

	_, ok := FromMarker('x')
	assert.False(t, ok)
	assert.Equal(t, rune(0), None.Marker())
	assert.Equal(t, "digit", Digit.String())
}

func TestDefaultSymbolLength(t *testing.T) {
	assert.Len(t, []rune(DefaultSymbol), 33)
}
