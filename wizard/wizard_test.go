package wizard

import (
	"os"
	"testing"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/crunch/am"
	"github.com/teranos/crunch/engine"
	"github.com/teranos/crunch/errors"
)

func TestMain(m *testing.M) {
	pterm.DisableStyling()
	pterm.DisableOutput()
	os.Exit(m.Run())
}

// scripted answers questions in order and records what was asked
type scripted struct {
	t       *testing.T
	answers []interface{}
	asked   []string
}

func (s *scripted) next(question string) interface{} {
	s.t.Helper()
	s.asked = append(s.asked, question)
	require.NotEmpty(s.t, s.answers, "unexpected question %q", question)
	answer := s.answers[0]
	s.answers = s.answers[1:]
	if err, ok := answer.(error); ok {
		return err
	}
	return answer
}

func (s *scripted) Confirm(question string, def bool) (bool, error) {
	switch v := s.next(question).(type) {
	case error:
		return false, v
	case bool:
		return v, nil
	default:
		return def, nil
	}
}

func (s *scripted) Text(question string, def string) (string, error) {
	switch v := s.next(question).(type) {
	case error:
		return "", v
	case string:
		return v, nil
	default:
		return def, nil
	}
}

func (s *scripted) Select(question string, options []string, def string) (string, error) {
	switch v := s.next(question).(type) {
	case error:
		return "", v
	case string:
		require.Contains(s.t, options, v)
		return v, nil
	default:
		return def, nil
	}
}

// keep answers with the current default
type keep struct{}

func base() *am.Config {
	return &am.Config{
		Generate: am.GenerateConfig{MinLength: 1, MaxLength: 3},
		Output:   am.OutputConfig{Dir: ".", PreviewLimit: 100},
	}
}

func TestPatternFlow(t *testing.T) {
	p := &scripted{t: t, answers: []interface{}{
		false,                    // permutations?
		"4", "4",                 // min, max
		"ab", keep{},             // lower, upper
		"01", keep{},             // digit, symbol
		true, "@@%%",             // pattern
		true, "0", "0", "1", "0", // limits
		true, "aa00",             // start
		false,                    // end
		true,                     // save to file
		false,                    // split
		"pins.txt",               // file
		true, "lzma",             // compression
	}}

	cfg, err := Collect(p, base())
	require.NoError(t, err)
	assert.Empty(t, p.answers)

	g := cfg.Generate
	assert.Equal(t, 4, g.MinLength)
	assert.Equal(t, 4, g.MaxLength)
	assert.Equal(t, "ab", g.Charset.Lower)
	assert.Equal(t, "", g.Charset.Upper)
	assert.Equal(t, "01", g.Charset.Digit)
	assert.Equal(t, "@@%%", g.Pattern)
	assert.Equal(t, 1, g.Limits.Digit)
	assert.Equal(t, "aa00", g.Start)
	assert.Equal(t, "", g.End)

	assert.Equal(t, "pins.txt", cfg.Output.Path)
	assert.Equal(t, "lzma", cfg.Output.Compression)
	assert.Equal(t, am.OutputFile, cfg.Output.OutputMode())
	require.NoError(t, cfg.Validate())

	_, ok := cfg.Mode().(engine.PatternBased)
	assert.True(t, ok)
}

func TestPermutationFlow(t *testing.T) {
	p := &scripted{t: t, answers: []interface{}{
		true,                 // permutations?
		`dog "big cat" bird`, // words
		false,                // save to file
	}}

	cfg, err := Collect(p, base())
	require.NoError(t, err)

	assert.Equal(t, []string{"dog", "big cat", "bird"}, cfg.Generate.Permute)
	assert.Equal(t, am.OutputDisplay, cfg.Output.OutputMode())
	perm, ok := cfg.Mode().(engine.Permutation)
	require.True(t, ok)
	assert.Len(t, perm.Words, 3)
}

func TestSplitFlow(t *testing.T) {
	p := &scripted{t: t, answers: []interface{}{
		true, "a b", // permutation
		true,        // save
		true,        // split
		"out",       // dir
		"10qb",      // bad size, asked again
		"1mb",       // size
		false,       // compression
	}}

	cfg, err := Collect(p, base())
	require.NoError(t, err)
	assert.Equal(t, "out", cfg.Output.Dir)
	assert.Equal(t, "1mb", cfg.Output.SplitSize)
	assert.Equal(t, am.OutputSplit, cfg.Output.OutputMode())
	assert.Equal(t, "", cfg.Output.Compression)
}

func TestInvalidNumberReasked(t *testing.T) {
	p := &scripted{t: t, answers: []interface{}{
		false,
		"two", "-1", "2", // min: two bad answers then a good one
		"3",
		keep{}, keep{}, keep{}, keep{},
		false, false, false, false,
		false,
	}}

	cfg, err := Collect(p, base())
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Generate.MinLength)
	assert.Equal(t, 3, cfg.Generate.MaxLength)
}

func TestGivesUpAfterRepeatedBadAnswers(t *testing.T) {
	p := &scripted{t: t, answers: []interface{}{
		false,
		"x", "y", "z",
	}}

	_, err := Collect(p, base())
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInvalidConfig))
}

func TestPrompterErrorStopsFlow(t *testing.T) {
	interrupted := errors.New("interrupted")
	p := &scripted{t: t, answers: []interface{}{false, interrupted}}

	_, err := Collect(p, base())
	assert.ErrorIs(t, err, interrupted)
	assert.Len(t, p.asked, 2, "no questions after the error")
}

func TestDefaultsComeFromBase(t *testing.T) {
	b := base()
	b.Generate.Pattern = "%%"
	b.Output.Path = "old.txt"
	b.Output.Compression = "gz"

	p := &scripted{t: t, answers: []interface{}{
		keep{},                         // permutations? default false
		keep{}, keep{},                 // lengths
		keep{}, keep{}, keep{}, keep{}, // charsets
		keep{}, keep{},                 // pattern: default yes, keep value
		keep{},                         // limits: default no
		keep{}, keep{},                 // start, end: default no
		keep{},                         // save: default yes
		keep{},                         // split: default no
		keep{},                         // file
		keep{}, keep{},                 // compression: default yes, gzip
	}}

	cfg, err := Collect(p, b)
	require.NoError(t, err)
	assert.Equal(t, "%%", cfg.Generate.Pattern)
	assert.Equal(t, "old.txt", cfg.Output.Path)
	assert.Equal(t, "gzip", cfg.Output.Compression)
	assert.Equal(t, "%%", b.Generate.Pattern, "base is not modified")
}
