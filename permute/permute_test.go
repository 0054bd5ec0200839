package permute

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllTwoWords(t *testing.T) {
	assert.Equal(t, []string{"xy", "yx"}, All([]string{"x", "y"}))
}

func TestAllOrder(t *testing.T) {
	got := All([]string{"a", "b", "c"})
	assert.Equal(t, []string{"abc", "acb", "bac", "bca", "cab", "cba"}, got)
}

func TestAllCountsFactorial(t *testing.T) {
	for n := 1; n <= 6; n++ {
		words := make([]string, n)
		for i := range words {
			words[i] = string(rune('a' + i))
		}
		got := All(words)
		assert.Len(t, got, int(Count(n).Int64()), "n=%d", n)
	}
	assert.Equal(t, int64(720), Count(6).Int64())
}

func TestAllKeepsRepeatedInputs(t *testing.T) {
	got := All([]string{"ab", "ab"})
	assert.Equal(t, []string{"abab", "abab"}, got)
}

func TestAllMultiCharacterWords(t *testing.T) {
	got := All([]string{"pass", "2024", "!"})
	require.Len(t, got, 6)
	assert.Equal(t, "pass2024!", got[0])
	assert.Equal(t, "!2024pass", got[5])
}

func TestAllEdgeCases(t *testing.T) {
	assert.Equal(t, []string{""}, All(nil), "the empty ordering")
	assert.Equal(t, []string{"solo"}, All([]string{"solo"}))
}

func TestSplit(t *testing.T) {
	tests := []struct {
		name string
		line string
		want []string
	}{
		{"plain", "alpha beta", []string{"alpha", "beta"}},
		{"double quotes", `alpha "two words"`, []string{"alpha", "two words"}},
		{"single quotes", `'x y' z`, []string{"x y", "z"}},
		{"extra spaces", "  a   b  ", []string{"a", "b"}},
		{"empty", "", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Split(tt.line)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSplitUnterminatedQuote(t *testing.T) {
	_, err := Split(`alpha "beta`)
	assert.Error(t, err)
}
