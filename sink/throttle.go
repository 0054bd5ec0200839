package sink

import (
	"context"

	"golang.org/x/time/rate"

	"github.com/teranos/crunch/errors"
)

// Throttle caps the rate at which words reach the wrapped sink.
type Throttle struct {
	ctx     context.Context
	next    Sink
	limiter *rate.Limiter
}

// NewThrottle forwards at most perSecond words per second to next.
// Waiting stops when ctx is done.
func NewThrottle(ctx context.Context, next Sink, perSecond float64) *Throttle {
	burst := max(int(perSecond), 1)
	return &Throttle{
		ctx:     ctx,
		next:    next,
		limiter: rate.NewLimiter(rate.Limit(perSecond), burst),
	}
}

// Accept waits for a token, then forwards word.
func (t *Throttle) Accept(word string) error {
	if err := t.limiter.Wait(t.ctx); err != nil {
		return errors.Wrap(err, "throttle")
	}
	return t.next.Accept(word)
}

// Close closes the wrapped sink.
func (t *Throttle) Close(ctx context.Context) error { return t.next.Close(ctx) }

// Artifacts reports the wrapped sink's artifacts, if it has any.
func (t *Throttle) Artifacts() []Artifact {
	if r, ok := t.next.(Reporter); ok {
		return r.Artifacts()
	}
	return nil
}
