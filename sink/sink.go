// Package sink consumes the word stream of a run: it previews words on the
// terminal, streams them to a writer, or writes them to files partitioned by
// size, and hands every finished file to a chain of finalizers.
package sink

import (
	"context"

	"github.com/teranos/crunch/errors"
)

// Sink accepts words in order and is closed once the run ends.
type Sink interface {
	Accept(word string) error
	Close(ctx context.Context) error
}

// Artifact describes one finished output file.
type Artifact struct {
	Path  string `json:"path"`
	First string `json:"first"`
	Last  string `json:"last"`
	Words int64  `json:"words"`
	// Bytes is the size on disk, after compression if any.
	Bytes  int64  `json:"bytes"`
	Codec  string `json:"codec,omitempty"`
	Remote string `json:"remote,omitempty"`
}

// Finalizer post-processes a finished artifact. Finalizers may rewrite the
// artifact in place, e.g. after compressing or uploading it.
type Finalizer interface {
	Finalize(ctx context.Context, a *Artifact) error
}

// FinalizerFunc adapts a function to Finalizer.
type FinalizerFunc func(ctx context.Context, a *Artifact) error

// Finalize calls f(ctx, a).
func (f FinalizerFunc) Finalize(ctx context.Context, a *Artifact) error { return f(ctx, a) }

// Chain runs finalizers in order and stops at the first error.
type Chain []Finalizer

// Finalize implements Finalizer.
func (c Chain) Finalize(ctx context.Context, a *Artifact) error {
	for _, f := range c {
		if f == nil {
			continue
		}
		if err := f.Finalize(ctx, a); err != nil {
			return errors.Wrapf(err, "failed to finalize %s", a.Path)
		}
	}
	return nil
}

// Reporter is implemented by sinks that produce files.
type Reporter interface {
	Artifacts() []Artifact
}
