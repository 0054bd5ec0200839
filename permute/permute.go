// Package permute produces every ordering of a list of whole words.
package permute

import (
	"math/big"
	"strings"

	"github.com/kballard/go-shellquote"

	"github.com/teranos/crunch/errors"
)

// All returns every ordering of words, each concatenated into one string.
//
// Results follow the lexicographic order of input positions: the first
// input varies slowest. Repeated inputs are not deduplicated, so n words
// always yield n! results. The full result set is materialized.
func All(words []string) []string {
	n := len(words)
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}

	out := make([]string, 0, capacity(n))
	var b strings.Builder
	for {
		b.Reset()
		for _, i := range idx {
			b.WriteString(words[i])
		}
		out = append(out, b.String())
		if !nextPermutation(idx) {
			return out
		}
	}
}

// Count returns n! for n input words.
func Count(n int) *big.Int {
	return new(big.Int).MulRange(1, int64(max(n, 1)))
}

// capacity bounds the preallocation; larger sets grow on demand.
func capacity(n int) int {
	c := Count(n)
	if !c.IsInt64() || c.Int64() > 1<<16 {
		return 1 << 16
	}
	return int(c.Int64())
}

// nextPermutation advances idx to its lexicographic successor in place.
func nextPermutation(idx []int) bool {
	i := len(idx) - 2
	for i >= 0 && idx[i] >= idx[i+1] {
		i--
	}
	if i < 0 {
		return false
	}
	j := len(idx) - 1
	for idx[j] <= idx[i] {
		j--
	}
	idx[i], idx[j] = idx[j], idx[i]
	for l, r := i+1, len(idx)-1; l < r; l, r = l+1, r-1 {
		idx[l], idx[r] = idx[r], idx[l]
	}
	return true
}

// Split parses a line of words using shell quoting rules, so a quoted word
// may contain spaces: `alpha "two words" 'x y'`.
func Split(line string) ([]string, error) {
	words, err := shellquote.Split(line)
	if err != nil {
		return nil, errors.WithHint(
			errors.Wrap(err, "failed to parse word list"),
			"close every quote, or escape literal quotes with a backslash")
	}
	return words, nil
}
