package odometer

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPatternProduct(t *testing.T) {
	lower, digit := []rune("ab"), []rune("01")
	o := New([][]rune{lower, lower, digit, digit})

	words := slices.Collect(o.All())
	require.Len(t, words, 16)
	assert.Equal(t, "aa00", words[0])
	assert.Equal(t, "aa01", words[1])
	assert.Equal(t, "aa10", words[2])
	assert.Equal(t, "bb11", words[15])
	assert.Equal(t, int64(16), o.Size().Int64())
}

func TestRepeatOrder(t *testing.T) {
	o := Repeat([]rune("ab01"), 2)

	words := slices.Collect(o.All())
	require.Len(t, words, 16)
	assert.Equal(t, []string{"aa", "ab", "a0", "a1", "ba"}, words[:5])
	assert.Equal(t, "11", words[15])
}

func TestDeterministic(t *testing.T) {
	o := Repeat([]rune("xyz"), 3)

	first := slices.Collect(o.All())
	second := slices.Collect(o.All())
	assert.Equal(t, first, second)
	assert.Len(t, first, 27)
}

func TestEdgeCases(t *testing.T) {
	t.Run("zero wheels yield one empty word", func(t *testing.T) {
		words := slices.Collect(New(nil).All())
		assert.Equal(t, []string{""}, words)
	})

	t.Run("empty wheel yields nothing", func(t *testing.T) {
		words := slices.Collect(New([][]rune{[]rune("ab"), {}}).All())
		assert.Empty(t, words)
	})

	t.Run("next after exhaustion stays false", func(t *testing.T) {
		o := New([][]rune{[]rune("a")})
		assert.True(t, o.Next())
		assert.False(t, o.Next())
		assert.False(t, o.Next())
	})

	t.Run("multibyte runes", func(t *testing.T) {
		words := slices.Collect(Repeat([]rune("äß"), 2).All())
		assert.Equal(t, []string{"ää", "äß", "ßä", "ßß"}, words)
	})
}

func TestWordBufferIsReused(t *testing.T) {
	o := Repeat([]rune("ab"), 1)

	require.True(t, o.Next())
	first := o.Word()
	copied := o.String()
	require.True(t, o.Next())

	assert.Equal(t, "b", string(first), "Word is borrowed and changes on Next")
	assert.Equal(t, "a", copied)
}

func TestEarlyBreak(t *testing.T) {
	o := Repeat([]rune("abc"), 4)

	var got []string
	for w := range o.All() {
		got = append(got, w)
		if len(got) == 3 {
			break
		}
	}
	assert.Equal(t, []string{"aaaa", "aaab", "aaac"}, got)
	assert.Equal(t, int64(81), o.Size().Int64())
}

func BenchmarkRepeat(b *testing.B) {
	o := Repeat([]rune("abcdefghijklmnopqrstuvwxyz"), 4)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		o.Reset()
		for o.Next() {
			_ = o.Word()
		}
	}
}
