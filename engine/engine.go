// Package engine drives a generation run: it dispatches on the run mode,
// walks each length through compile, enumerate, bound and filter, and hands
// accepted words to a Sink in order.
package engine

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/teranos/crunch/bounds"
	"github.com/teranos/crunch/charset"
	"github.com/teranos/crunch/errors"
	"github.com/teranos/crunch/logger"
	"github.com/teranos/crunch/odometer"
	"github.com/teranos/crunch/pattern"
	"github.com/teranos/crunch/permute"
)

// DefaultCheckInterval is how many enumerated words pass between context
// checks.
const DefaultCheckInterval = 1024

// Sink receives accepted words, once each, in enumeration order.
type Sink interface {
	Accept(word string) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(word string) error

// Accept calls f(word).
func (f SinkFunc) Accept(word string) error { return f(word) }

// ProgressEmitter receives coarse progress events, one per length.
type ProgressEmitter interface {
	EmitStage(stage string, message string)
	EmitProgress(count int, metadata map[string]interface{})
	EmitError(stage string, err error)
}

// Stats summarizes a finished run.
type Stats struct {
	Mode      string
	Words     int64
	PerLength map[int]int64
	// Warnings holds the per-length errors that skipped a length.
	Warnings []error
	Duration time.Duration
}

// Option configures Run.
type Option func(*runner)

// WithLogger sets the logger used for per-length warnings.
func WithLogger(l *zap.SugaredLogger) Option {
	return func(r *runner) { r.log = l }
}

// WithProgress reports each length to e.
func WithProgress(e ProgressEmitter) Option {
	return func(r *runner) { r.progress = e }
}

// WithCheckInterval overrides DefaultCheckInterval.
func WithCheckInterval(n int) Option {
	return func(r *runner) {
		if n > 0 {
			r.checkEvery = n
		}
	}
}

type runner struct {
	sink       Sink
	log        *zap.SugaredLogger
	progress   ProgressEmitter
	checkEvery int
	stats      *Stats
}

// Run generates every word of mode into sink.
//
// Configuration errors are returned before the first word is produced.
// Per-length problems are recorded in Stats.Warnings and the run moves on.
// A sink error or a cancelled ctx stops the run; the partial Stats are
// returned with the error.
func Run(ctx context.Context, mode Mode, sink Sink, opts ...Option) (*Stats, error) {
	r := &runner{
		sink:       sink,
		log:        logger.ComponentLogger("engine"),
		checkEvery: DefaultCheckInterval,
		stats: &Stats{
			Mode:      ModeName(mode),
			PerLength: make(map[int]int64),
		},
	}
	for _, opt := range opts {
		opt(r)
	}

	began := time.Now()
	defer func() { r.stats.Duration = time.Since(began) }()

	var err error
	switch m := mode.(type) {
	case Permutation:
		err = r.permutation(ctx, m)
	case *Permutation:
		if m == nil {
			err = errors.NewInvalidConfigError("nil permutation mode")
			break
		}
		err = r.permutation(ctx, *m)
	case PatternBased:
		err = r.patternBased(ctx, m.Config)
	case *PatternBased:
		if m == nil {
			err = errors.NewInvalidConfigError("nil pattern mode")
			break
		}
		err = r.patternBased(ctx, m.Config)
	default:
		err = errors.NewInvalidConfigError("unsupported generation mode %T", mode)
	}
	return r.stats, err
}

func (r *runner) permutation(ctx context.Context, m Permutation) error {
	r.log.Infow("Permuting words", logger.FieldWords, len(m.Words))
	r.stage("permute", fmt.Sprintf("%d words, %s orderings", len(m.Words), permute.Count(len(m.Words))))

	for i, word := range permute.All(m.Words) {
		if i%r.checkEvery == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		if err := r.accept(word, len([]rune(word))); err != nil {
			return err
		}
	}
	return nil
}

func (r *runner) patternBased(ctx context.Context, cfg GenerationConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	set := charset.ResolveAll(cfg.Charsets)

	for length := range cfg.Lengths() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := r.length(ctx, cfg, set, length); err != nil {
			if errors.IsRecoverable(err) {
				r.warn(length, err)
				continue
			}
			return err
		}
	}
	return nil
}

// length runs one pass: compile, enumerate, gate, filter, accept.
func (r *runner) length(ctx context.Context, cfg GenerationConfig, set charset.Set, length int) error {
	var (
		odo      *odometer.Odometer
		declared []charset.Class
	)
	if cfg.UsesPattern() {
		p := pattern.Compile(cfg.Pattern, set)
		if err := p.CheckLength(length); err != nil {
			return err
		}
		odo = odometer.New(p.Wheels())
		if cfg.Limits.Enabled() {
			declared = p.Declared()
		}
	} else {
		odo = odometer.Repeat(set.Merged(), length)
	}

	r.stage(fmt.Sprintf("length %d", length), fmt.Sprintf("%s candidates", odo.Size()))
	r.log.Debugw("Enumerating length", logger.FieldLength, length, "candidates", odo.Size().String())

	gate := bounds.New(cfg.Start, cfg.End)
	before := r.stats.Words
	for n := 0; odo.Next(); n++ {
		if n%r.checkEvery == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}

		word := odo.String()
		decision := gate.Check(word)
		if decision == bounds.Suppress {
			continue
		}
		if declared != nil && !cfg.Limits.Accepts(odo.Word(), declared) {
			continue
		}
		if err := r.accept(word, length); err != nil {
			return err
		}
		if decision == bounds.EmitLast {
			break
		}
	}

	accepted := r.stats.Words - before
	if r.progress != nil {
		r.progress.EmitProgress(int(accepted), map[string]interface{}{
			"type":   "words",
			"length": length,
		})
	}
	r.log.Infow("Length complete", logger.FieldLength, length, logger.FieldWords, accepted)
	return nil
}

func (r *runner) accept(word string, length int) error {
	if err := r.sink.Accept(word); err != nil {
		return errors.Wrapf(err, "sink rejected word %q", word)
	}
	r.stats.Words++
	r.stats.PerLength[length]++
	return nil
}

func (r *runner) stage(stage, message string) {
	if r.progress != nil {
		r.progress.EmitStage(stage, message)
	}
}

// warn records a skipped length. Empty patterns are skipped silently.
func (r *runner) warn(length int, err error) {
	if errors.Is(err, errors.ErrEmptyCandidateSet) {
		r.log.Debugw("Skipping length with empty pattern", logger.FieldLength, length)
		return
	}
	r.stats.Warnings = append(r.stats.Warnings, errors.Wrapf(err, "length %d", length))
	r.log.Warnw("Skipping length", logger.FieldLength, length, logger.FieldError, err.Error())
	if r.progress != nil {
		r.progress.EmitError(fmt.Sprintf("length %d", length), err)
	}
}
