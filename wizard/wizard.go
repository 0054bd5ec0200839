// Package wizard asks the interactive question flow and turns the answers
// into the same am.Config the command-line flags produce.
package wizard

import (
	"strconv"
	"strings"

	"github.com/pterm/pterm"

	"github.com/teranos/crunch/am"
	"github.com/teranos/crunch/codec"
	"github.com/teranos/crunch/errors"
	"github.com/teranos/crunch/permute"
	"github.com/teranos/crunch/runlimit"
	"github.com/teranos/crunch/sink"
)

// maxAttempts bounds re-asking after an unparseable answer
const maxAttempts = 3

// Prompter asks single questions.
type Prompter interface {
	Confirm(question string, def bool) (bool, error)
	Text(question string, def string) (string, error)
	Select(question string, options []string, def string) (string, error)
}

// Terminal prompts with pterm interactive printers.
type Terminal struct{}

// Confirm asks a yes/no question
func (Terminal) Confirm(question string, def bool) (bool, error) {
	return pterm.DefaultInteractiveConfirm.WithDefaultValue(def).Show(question)
}

// Text asks for free-form input
func (Terminal) Text(question string, def string) (string, error) {
	return pterm.DefaultInteractiveTextInput.WithDefaultValue(def).Show(question)
}

// Select asks to pick one of options
func (Terminal) Select(question string, options []string, def string) (string, error) {
	return pterm.DefaultInteractiveSelect.WithOptions(options).WithDefaultOption(def).Show(question)
}

// Collect runs the question flow, starting from base (usually the loaded
// configuration) so every question defaults to the current value.
func Collect(p Prompter, base *am.Config) (*am.Config, error) {
	cfg := *base
	cfg.Generate.Permute = nil
	w := &asker{p: p}

	permuting := w.confirm("Generate permutations of specific words?", len(base.Generate.Permute) > 0)
	if permuting {
		cfg.Generate.Permute = w.words("Words (space separated, quote words with spaces)", strings.Join(base.Generate.Permute, " "))
	} else {
		w.generation(&cfg.Generate)
	}
	w.output(&cfg.Output)

	if w.err != nil {
		return nil, w.err
	}
	return &cfg, nil
}

// asker keeps the first error so the flow reads top to bottom
type asker struct {
	p   Prompter
	err error
}

func (w *asker) generation(g *am.GenerateConfig) {
	g.MinLength = w.integer("Minimum word length", g.MinLength)
	g.MaxLength = w.integer("Maximum word length", g.MaxLength)

	g.Charset.Lower = w.text("Lowercase charset (empty for default)", g.Charset.Lower)
	g.Charset.Upper = w.text("Uppercase charset (empty for default)", g.Charset.Upper)
	g.Charset.Digit = w.text("Digit charset (empty for default)", g.Charset.Digit)
	g.Charset.Symbol = w.text("Symbol charset (empty for default)", g.Charset.Symbol)

	if w.confirm("Use a pattern? (@ lower, , upper, % digit, ^ symbol)", g.Pattern != "") {
		g.Pattern = w.text("Pattern", g.Pattern)
	} else {
		g.Pattern = ""
	}

	if w.confirm("Limit consecutive repeats?", g.Limits.Enabled()) {
		g.Limits.Lower = w.integer("Max consecutive lowercase (0 = no limit)", g.Limits.Lower)
		g.Limits.Upper = w.integer("Max consecutive uppercase (0 = no limit)", g.Limits.Upper)
		g.Limits.Digit = w.integer("Max consecutive digits (0 = no limit)", g.Limits.Digit)
		g.Limits.Symbol = w.integer("Max consecutive symbols (0 = no limit)", g.Limits.Symbol)
	} else {
		g.Limits = runlimit.Limits{}
	}

	g.Start = w.optional("Start from a specific word?", "Start word", g.Start)
	g.End = w.optional("Stop at a specific word?", "End word", g.End)
}

func (w *asker) output(o *am.OutputConfig) {
	if !w.confirm("Save output to a file?", o.Path != "" || o.SplitSize != "") {
		o.Path, o.SplitSize, o.Compression = "", "", ""
		return
	}

	if w.confirm("Split output into size-bounded files?", o.SplitSize != "") {
		o.Path = ""
		o.Dir = w.text("Directory for the parts", o.Dir)
		o.SplitSize = w.size("Part size (e.g. 10mb or 20kib)", o.SplitSize)
	} else {
		o.SplitSize = ""
		o.Path = w.text("Output file", o.Path)
	}

	if w.confirm("Compress the output?", codec.Enabled(o.Compression)) {
		def := codec.Names()[0]
		if c, err := codec.Lookup(o.Compression); err == nil {
			def = c.Name
		}
		o.Compression = w.choose("Compression", codec.Names(), def)
	} else {
		o.Compression = ""
	}
}

func (w *asker) confirm(question string, def bool) bool {
	if w.err != nil {
		return false
	}
	ok, err := w.p.Confirm(question, def)
	w.err = err
	return ok
}

func (w *asker) text(question, def string) string {
	if w.err != nil {
		return def
	}
	answer, err := w.p.Text(question, def)
	w.err = err
	return answer
}

func (w *asker) choose(question string, options []string, def string) string {
	if w.err != nil {
		return def
	}
	answer, err := w.p.Select(question, options, def)
	w.err = err
	return answer
}

func (w *asker) optional(gate, question, def string) string {
	if !w.confirm(gate, def != "") {
		return ""
	}
	return w.text(question, def)
}

// retry re-asks until parse accepts the answer
func (w *asker) retry(question, def string, parse func(string) error) string {
	var lastErr error
	for range maxAttempts {
		answer := w.text(question, def)
		if w.err != nil {
			return def
		}
		if lastErr = parse(answer); lastErr == nil {
			return answer
		}
		pterm.Warning.Println(lastErr.Error())
	}
	w.err = errors.Wrapf(lastErr, "no valid answer to %q", question)
	return def
}

func (w *asker) integer(question string, def int) int {
	var n int
	w.retry(question, strconv.Itoa(def), func(s string) error {
		v, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return errors.NewInvalidConfigError("%q is not a whole number", s)
		}
		if v < 0 {
			return errors.NewInvalidConfigError("%d is negative", v)
		}
		n = v
		return nil
	})
	if w.err != nil {
		return def
	}
	return n
}

func (w *asker) size(question, def string) string {
	return w.retry(question, def, func(s string) error {
		_, err := sink.ParseSize(s)
		return err
	})
}

func (w *asker) words(question, def string) []string {
	var words []string
	w.retry(question, def, func(s string) error {
		parsed, err := permute.Split(s)
		if err != nil {
			return err
		}
		if len(parsed) == 0 {
			return errors.NewInvalidConfigError("at least one word is required")
		}
		words = parsed
		return nil
	})
	return words
}
