// Package bounds gates an enumeration stream between a start word and an
// end word. A Gate covers a single length pass; build a new one per length.
package bounds

// Decision is the gate's verdict on one word.
type Decision int

const (
	// Suppress drops the word.
	Suppress Decision = iota
	// Emit forwards the word.
	Emit
	// EmitLast forwards the word; the current length ends after it.
	EmitLast
)

// Gate is a stateful filter over one length's word stream.
type Gate struct {
	start       string
	end         string
	passthrough bool
}

// New returns a gate. An empty start word opens the gate immediately;
// an empty end word never closes it.
func New(start, end string) *Gate {
	return &Gate{
		start:       start,
		end:         end,
		passthrough: start == "",
	}
}

// Check returns the decision for word.
//
// The start word itself is consumed: it opens the gate but is not
// forwarded.
func (g *Gate) Check(word string) Decision {
	if !g.passthrough {
		if word == g.start {
			g.passthrough = true
		}
		return Suppress
	}
	if g.end != "" && word == g.end {
		return EmitLast
	}
	return Emit
}

// Open reports whether the start word has been seen.
func (g *Gate) Open() bool { return g.passthrough }
