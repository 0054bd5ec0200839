package bounds

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// run feeds words through a gate and returns what a consumer would
// receive, stopping after EmitLast.
func run(g *Gate, words []string) []string {
	var out []string
	for _, w := range words {
		switch g.Check(w) {
		case Emit:
			out = append(out, w)
		case EmitLast:
			return append(out, w)
		}
	}
	return out
}

func TestGate(t *testing.T) {
	stream := []string{"aa", "ab", "ac", "ad", "ae"}

	tests := []struct {
		name       string
		start, end string
		want       []string
	}{
		{"start and end", "ab", "ad", []string{"ac", "ad"}},
		{"no bounds", "", "", stream},
		{"start only", "ac", "", []string{"ad", "ae"}},
		{"end only", "", "ab", []string{"aa", "ab"}},
		{"start never seen", "zz", "", nil},
		{"end before start is ignored", "ac", "ab", []string{"ad", "ae"}},
		{"start is last word", "ae", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, run(New(tt.start, tt.end), stream))
		})
	}
}

func TestOpen(t *testing.T) {
	g := New("b", "")
	assert.False(t, g.Open())
	g.Check("a")
	assert.False(t, g.Open())
	g.Check("b")
	assert.True(t, g.Open())

	assert.True(t, New("", "x").Open())
}
