package display

import (
	"bytes"
	"encoding/json"
	"math/big"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/crunch/catalog"
	"github.com/teranos/crunch/engine"
	"github.com/teranos/crunch/errors"
	"github.com/teranos/crunch/estimate"
	"github.com/teranos/crunch/sink"
)

func TestMain(m *testing.M) {
	pterm.DisableStyling()
	os.Exit(m.Run())
}

func TestCount(t *testing.T) {
	assert.Equal(t, "0", Count(0))
	assert.Equal(t, "999", Count(999))
	assert.Equal(t, "1,234,567", Count(1234567))
}

func TestBigCount(t *testing.T) {
	huge, ok := new(big.Int).SetString("3584859224085422343574104404449", 10)
	require.True(t, ok)

	assert.Equal(t, "0", BigCount(nil))
	assert.Equal(t, "17,576", BigCount(big.NewInt(17576)))
	assert.Equal(t, "3,584,859,224,085,422,343,574,104,404,449", BigCount(huge))
	assert.Equal(t, "-3,584,859,224,085,422,343,574,104,404,449", BigCount(new(big.Int).Neg(huge)))
}

func TestBytes(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{1536, "1.5 KiB"},
		{10 << 20, "10.0 MiB"},
		{3 << 30, "3.0 GiB"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, Int64Bytes(tt.in))
		})
	}
}

func TestCLIEmitterVerbosity(t *testing.T) {
	var quiet, verbose bytes.Buffer

	for _, e := range []*CLIEmitter{NewCLIEmitter(&quiet, 0), NewCLIEmitter(&verbose, 1)} {
		e.EmitStage("length 3", "17,576 candidates")
		e.EmitProgress(17576, map[string]interface{}{"type": "words", "length": 3})
		e.EmitError("length 4", errors.ErrConfigMismatch)
	}

	assert.NotContains(t, quiet.String(), "candidates")
	assert.Contains(t, quiet.String(), "length 4: pattern length does not match word length")

	assert.Contains(t, verbose.String(), "length 3: 17,576 candidates")
	assert.Contains(t, verbose.String(), "✓ length 3: 17,576 words")
}

func TestJSONEmitter(t *testing.T) {
	var buf bytes.Buffer
	e := NewJSONEmitter(&buf)
	e.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }

	e.EmitStage("length 2", "676 candidates")
	e.EmitProgress(676, map[string]interface{}{"type": "words", "length": 2})
	e.EmitError("length 3", errors.ErrConfigMismatch)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)

	var events []ProgressEvent
	for _, line := range lines {
		var ev ProgressEvent
		require.NoError(t, json.Unmarshal([]byte(line), &ev))
		events = append(events, ev)
	}

	assert.Equal(t, "stage", events[0].Type)
	assert.Equal(t, "676 candidates", events[0].Data["message"])
	assert.Equal(t, "progress", events[1].Type)
	assert.EqualValues(t, 676, events[1].Data["count"])
	assert.EqualValues(t, 2, events[1].Data["length"])
	assert.Equal(t, "error", events[2].Type)
	assert.Equal(t, 2026, events[2].Timestamp.Year())
}

func TestRunSummary(t *testing.T) {
	var buf bytes.Buffer
	stats := &engine.Stats{
		Words:     1352,
		PerLength: map[int]int64{2: 676, 1: 26, 3: 650},
		Warnings:  []error{errors.Wrap(errors.ErrConfigMismatch, "length 4")},
		Duration:  1500 * time.Millisecond,
	}
	artifacts := []sink.Artifact{{Path: "aa-zz.txt.gz", First: "aa", Last: "zz", Words: 676, Bytes: 2048}}

	require.NoError(t, RunSummary(&buf, stats, artifacts))
	out := buf.String()

	assert.Less(t, strings.Index(out, "26"), strings.Index(out, "676"), "lengths are sorted")
	assert.Contains(t, out, "skipped: length 4")
	assert.Contains(t, out, "aa-zz.txt.gz")
	assert.Contains(t, out, "2.0 KiB")
	assert.Contains(t, out, "1,352 words in 1.5s")
}

func TestEstimateTable(t *testing.T) {
	var buf bytes.Buffer
	est := &estimate.Estimate{
		Lengths: []estimate.Length{
			{Length: 2, Words: big.NewInt(676), Bytes: big.NewInt(2028)},
			{Length: 3, Skipped: true},
		},
		Words: big.NewInt(676),
		Bytes: big.NewInt(2028),
	}

	require.NoError(t, EstimateTable(&buf, est, &estimate.Disk{Path: "/data", Free: 1 << 30}))
	out := buf.String()
	assert.Contains(t, out, "skipped")
	assert.Contains(t, out, "2.0 KiB")
	assert.Contains(t, out, "Free space on /data: 1.0 GiB")
}

func TestRunsTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RunsTable(&buf, nil))
	assert.Contains(t, buf.String(), "No runs recorded")

	buf.Reset()
	runs := []catalog.Run{{
		ID: "0f8fad5b-d9cb-469f-a165-70867728950e", Mode: "pattern", Status: catalog.StatusCompleted,
		Words: 17576, StartedAt: time.Now(),
	}}
	require.NoError(t, RunsTable(&buf, runs))
	assert.Contains(t, buf.String(), "0f8fad5b")
	assert.NotContains(t, buf.String(), "d9cb")
	assert.Contains(t, buf.String(), "17,576")
}

func TestRunDetail(t *testing.T) {
	var buf bytes.Buffer
	started := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	finished := started.Add(2 * time.Second)
	run := &catalog.Run{
		ID: "abc", Mode: "permutation", Status: catalog.StatusFailed, Words: 3,
		Error: "disk full", StartedAt: started, FinishedAt: &finished, Config: `{"permute":["a"]}`,
		Artifacts: []sink.Artifact{{Path: "out.txt", First: "a", Last: "c", Words: 3, Bytes: 6}},
	}

	require.NoError(t, RunDetail(&buf, run))
	out := buf.String()
	assert.Contains(t, out, "permutation")
	assert.Contains(t, out, "disk full")
	assert.Contains(t, out, "2s")
	assert.Contains(t, out, "out.txt")
}

func TestOutputJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, OutputJSON(&buf, map[string]int{"words": 3}))
	assert.Equal(t, "{\n  \"words\": 3\n}\n", buf.String())
}

func TestShouldOutputJSON(t *testing.T) {
	root := &cobra.Command{Use: "crunch"}
	root.PersistentFlags().Bool("json", false, "")
	child := &cobra.Command{Use: "runs"}
	root.AddCommand(child)

	assert.False(t, ShouldOutputJSON(nil))
	assert.False(t, ShouldOutputJSON(child))

	require.NoError(t, root.PersistentFlags().Set("json", "true"))
	assert.True(t, ShouldOutputJSON(child))
}
