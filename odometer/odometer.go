// Package odometer enumerates the cartesian product of per-position
// candidate sets lazily, in odometer order: the last position turns
// fastest and carries into the one before it.
//
// The enumeration order is a contract. Start/end bounds and output
// partition names both rely on it being stable across runs.
package odometer

import (
	"iter"
	"math/big"
)

type state int

const (
	fresh state = iota
	running
	done
)

// Odometer walks the product of its wheels one word at a time.
// A single rune buffer is reused between steps: callers that keep a word
// past the next call to Next must copy it (String does).
type Odometer struct {
	wheels [][]rune
	idx    []int
	buf    []rune
	state  state
}

// New returns an odometer over wheels. Any empty wheel makes the product
// empty; zero wheels yield exactly one empty word.
func New(wheels [][]rune) *Odometer {
	return &Odometer{
		wheels: wheels,
		idx:    make([]int, len(wheels)),
		buf:    make([]rune, len(wheels)),
	}
}

// Repeat returns an odometer over length copies of alphabet.
func Repeat(alphabet []rune, length int) *Odometer {
	wheels := make([][]rune, length)
	for i := range wheels {
		wheels[i] = alphabet
	}
	return New(wheels)
}

// Next advances to the next word and reports whether there is one.
func (o *Odometer) Next() bool {
	switch o.state {
	case done:
		return false
	case fresh:
		for _, w := range o.wheels {
			if len(w) == 0 {
				o.state = done
				return false
			}
		}
		for i, w := range o.wheels {
			o.idx[i] = 0
			o.buf[i] = w[0]
		}
		o.state = running
		return true
	}

	for i := len(o.wheels) - 1; i >= 0; i-- {
		o.idx[i]++
		if o.idx[i] < len(o.wheels[i]) {
			o.buf[i] = o.wheels[i][o.idx[i]]
			return true
		}
		o.idx[i] = 0
		o.buf[i] = o.wheels[i][0]
	}
	o.state = done
	return false
}

// Word returns the current word. The slice is only valid until the next
// call to Next or Reset.
func (o *Odometer) Word() []rune { return o.buf }

// String returns a copy of the current word.
func (o *Odometer) String() string { return string(o.buf) }

// Reset rewinds the odometer to before the first word.
func (o *Odometer) Reset() {
	o.state = fresh
}

// Len returns the word length.
func (o *Odometer) Len() int { return len(o.wheels) }

// Size returns the number of words in the product.
func (o *Odometer) Size() *big.Int {
	size := big.NewInt(1)
	for _, w := range o.wheels {
		size.Mul(size, big.NewInt(int64(len(w))))
	}
	return size
}

// All rewinds the odometer and yields every word as a string.
func (o *Odometer) All() iter.Seq[string] {
	return func(yield func(string) bool) {
		o.Reset()
		for o.Next() {
			if !yield(o.String()) {
				return
			}
		}
	}
}
