package estimate

import (
	"context"
	"math"
	"math/big"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/crunch/charset"
	"github.com/teranos/crunch/engine"
	"github.com/teranos/crunch/errors"
)

// generate counts what the engine actually produces.
func generate(t *testing.T, mode engine.Mode) (words, bytes int64) {
	t.Helper()
	_, err := engine.Run(context.Background(), mode, engine.SinkFunc(func(w string) error {
		words++
		bytes += int64(len(w)) + 1
		return nil
	}))
	require.NoError(t, err)
	return words, bytes
}

func TestConfigMatchesEngine(t *testing.T) {
	modes := map[string]engine.GenerationConfig{
		"pattern": {
			MinLength: 4, MaxLength: 4, Pattern: "@@%%",
			Charsets: charset.Overrides{Lower: "ab", Digit: "01"},
		},
		"no pattern": {
			MinLength: 1, MaxLength: 3,
			Charsets: charset.Overrides{Lower: "ab", Upper: "C", Digit: "1", Symbol: "é"},
		},
		"multibyte literals": {
			MinLength: 3, MaxLength: 3, Pattern: "ü@%",
			Charsets: charset.Overrides{Lower: "aβ", Digit: "12"},
		},
	}

	for name, cfg := range modes {
		t.Run(name, func(t *testing.T) {
			est, err := Config(cfg)
			require.NoError(t, err)

			words, bytes := generate(t, engine.PatternBased{Config: cfg})
			assert.Equal(t, big.NewInt(words), est.Words)
			assert.Equal(t, big.NewInt(bytes), est.Bytes)
		})
	}
}

func TestConfigSkipsMismatchedLengths(t *testing.T) {
	est, err := Config(engine.GenerationConfig{
		MinLength: 1, MaxLength: 3, Pattern: "@@",
		Charsets: charset.Overrides{Lower: "abc"},
	})
	require.NoError(t, err)

	require.Len(t, est.Lengths, 3)
	assert.True(t, est.Lengths[0].Skipped)
	assert.False(t, est.Lengths[1].Skipped)
	assert.True(t, est.Lengths[2].Skipped)
	assert.Equal(t, int64(9), est.Words.Int64())
	assert.Equal(t, int64(27), est.Bytes.Int64())
}

func TestConfigLargeSpace(t *testing.T) {
	est, err := Config(engine.GenerationConfig{MinLength: 20, MaxLength: 20})
	require.NoError(t, err)

	// 95 characters, 20 positions: far beyond int64
	want := new(big.Int).Exp(big.NewInt(95), big.NewInt(20), nil)
	assert.Equal(t, want, est.Words)
	assert.False(t, est.Words.IsInt64())
}

func TestConfigInvalid(t *testing.T) {
	_, err := Config(engine.GenerationConfig{MinLength: 5, MaxLength: 2})
	assert.True(t, errors.Is(err, errors.ErrInvalidConfig))

	_, err = Config(engine.GenerationConfig{MinLength: 0, MaxLength: math.MaxInt})
	assert.True(t, errors.Is(err, errors.ErrInvalidConfig))
}

func TestPermutation(t *testing.T) {
	est := Permutation([]string{"ab", "c", "def"})
	assert.Equal(t, int64(6), est.Words.Int64())
	assert.Equal(t, int64(6*7), est.Bytes.Int64())

	words, bytes := generate(t, engine.Permutation{Words: []string{"ab", "c", "def"}})
	assert.Equal(t, words, est.Words.Int64())
	assert.Equal(t, bytes, est.Bytes.Int64())
}

func TestFor(t *testing.T) {
	est, err := For(engine.Permutation{Words: []string{"x", "y"}})
	require.NoError(t, err)
	assert.Equal(t, int64(2), est.Words.Int64())

	_, err = For(nil)
	assert.Error(t, err)
}

func TestWheelsEmpty(t *testing.T) {
	words, bytes := Wheels([][]rune{[]rune("ab"), {}})
	assert.Zero(t, words.Sign())
	assert.Zero(t, bytes.Sign())

	words, bytes = Wheels(nil)
	assert.Equal(t, int64(1), words.Int64())
	assert.Equal(t, int64(1), bytes.Int64(), "one empty word plus newline")
}

func TestCheckDisk(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "not", "yet", "created")

	d, err := CheckDisk(context.Background(), dir, big.NewInt(1))
	require.NoError(t, err)
	assert.Positive(t, d.Free)

	huge := new(big.Int).Exp(big.NewInt(10), big.NewInt(30), nil)
	d, err = CheckDisk(context.Background(), dir, huge)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInsufficientSpace))
	assert.NotNil(t, d)
}
