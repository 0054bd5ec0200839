// Package estimate sizes a run before it starts: how many words it can
// produce, how many bytes they take, and whether the disk can hold them.
//
// Figures are upper bounds. Start and end words and the duplicate-run
// filter only ever remove words.
package estimate

import (
	"context"
	"math/big"
	"os"
	"path/filepath"

	"github.com/shirou/gopsutil/v3/disk"

	"github.com/teranos/crunch/charset"
	"github.com/teranos/crunch/engine"
	"github.com/teranos/crunch/errors"
	"github.com/teranos/crunch/pattern"
	"github.com/teranos/crunch/permute"
)

// Length is the estimate for one word length.
type Length struct {
	Length int      `json:"length"`
	Words  *big.Int `json:"words"`
	Bytes  *big.Int `json:"bytes"`
	// Skipped is set when the pattern does not fit this length.
	Skipped bool `json:"skipped,omitempty"`
}

// Estimate totals a run.
type Estimate struct {
	Lengths []Length `json:"lengths,omitempty"`
	Words   *big.Int `json:"words"`
	Bytes   *big.Int `json:"bytes"`
}

func newEstimate() *Estimate {
	return &Estimate{Words: new(big.Int), Bytes: new(big.Int)}
}

// For sizes any generation mode.
func For(mode engine.Mode) (*Estimate, error) {
	switch m := mode.(type) {
	case engine.Permutation:
		return Permutation(m.Words), nil
	case *engine.Permutation:
		return Permutation(m.Words), nil
	case engine.PatternBased:
		return Config(m.Config)
	case *engine.PatternBased:
		return Config(m.Config)
	default:
		return nil, errors.NewInvalidConfigError("unsupported generation mode %T", mode)
	}
}

// Config sizes a pattern-based run.
func Config(cfg engine.GenerationConfig) (*Estimate, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	set := charset.ResolveAll(cfg.Charsets)

	est := newEstimate()
	for n := range cfg.Lengths() {
		var wheels [][]rune
		if cfg.UsesPattern() {
			p := pattern.Compile(cfg.Pattern, set)
			if p.CheckLength(n) != nil {
				est.Lengths = append(est.Lengths, Length{Length: n, Words: new(big.Int), Bytes: new(big.Int), Skipped: true})
				continue
			}
			wheels = p.Wheels()
		} else {
			merged := set.Merged()
			wheels = make([][]rune, n)
			for i := range wheels {
				wheels[i] = merged
			}
		}

		words, bytes := Wheels(wheels)
		est.Lengths = append(est.Lengths, Length{Length: n, Words: words, Bytes: bytes})
		est.Words.Add(est.Words, words)
		est.Bytes.Add(est.Bytes, bytes)
	}
	return est, nil
}

// Wheels returns the word count of the cartesian product of wheels and the
// bytes those words take, one newline each.
func Wheels(wheels [][]rune) (words, bytes *big.Int) {
	words = big.NewInt(1)
	for _, w := range wheels {
		words.Mul(words, big.NewInt(int64(len(w))))
	}
	bytes = new(big.Int).Set(words)
	if words.Sign() == 0 {
		return words, bytes
	}

	// Each candidate of a wheel appears words/len(wheel) times.
	for _, w := range wheels {
		var sum int64
		for _, r := range w {
			sum += int64(len(string(r)))
		}
		share := new(big.Int).Quo(words, big.NewInt(int64(len(w))))
		bytes.Add(bytes, share.Mul(share, big.NewInt(sum)))
	}
	return words, bytes
}

// Permutation sizes a permutation run.
func Permutation(words []string) *Estimate {
	est := newEstimate()
	count := permute.Count(len(words))
	var per int64 = 1
	for _, w := range words {
		per += int64(len(w))
	}
	est.Words.Set(count)
	est.Bytes.Mul(count, big.NewInt(per))
	return est
}

// Disk reports free space where output will be written.
type Disk struct {
	Path string `json:"path"`
	Free uint64 `json:"free"`
}

// CheckDisk compares need with the free space of the filesystem holding
// dir. The directory does not have to exist yet. When need exceeds the free
// space the returned error wraps ErrInsufficientSpace; Disk is still set.
func CheckDisk(ctx context.Context, dir string, need *big.Int) (*Disk, error) {
	path, err := existingAncestor(dir)
	if err != nil {
		return nil, err
	}
	usage, err := disk.UsageWithContext(ctx, path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read disk usage of %s", path)
	}

	d := &Disk{Path: path, Free: usage.Free}
	if need != nil && need.Cmp(new(big.Int).SetUint64(usage.Free)) > 0 {
		return d, errors.WithHint(
			errors.Wrapf(errors.ErrInsufficientSpace, "need %s bytes, %d free on %s", need, usage.Free, path),
			"enable compression with --compress, narrow the length range, or write elsewhere with --dir")
	}
	return d, nil
}

func existingAncestor(dir string) (string, error) {
	if dir == "" {
		dir = "."
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", errors.Wrapf(err, "failed to resolve %s", dir)
	}
	for {
		if _, err := os.Stat(abs); err == nil {
			return abs, nil
		}
		parent := filepath.Dir(abs)
		if parent == abs {
			return abs, nil
		}
		abs = parent
	}
}
