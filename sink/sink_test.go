package sink

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/crunch/errors"
)

func TestMain(m *testing.M) {
	pterm.DisableStyling()
	os.Exit(m.Run())
}

func feed(t *testing.T, s Sink, words ...string) {
	t.Helper()
	for _, w := range words {
		require.NoError(t, s.Accept(w))
	}
	require.NoError(t, s.Close(context.Background()))
}

func TestParseSize(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{"100", 100},
		{"100b", 100},
		{"10kb", 10_000},
		{"10KB", 10_000},
		{"2mb", 2_000_000},
		{"1gb", 1_000_000_000},
		{"1kib", 1024},
		{"3MiB", 3 << 20},
		{"1gib", 1 << 30},
		{"1.5kb", 1500},
		{"1.5kib", 1536},
		{"0.0015kb", 1},
		{" 20 kib ", 20 << 10},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseSize(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseSizeMalformed(t *testing.T) {
	for _, in := range []string{"", "kb", "ten", "10qb", "-5mb", "0", "0.0001kb", "nan", "inf", "1e300gb"} {
		t.Run(in, func(t *testing.T) {
			_, err := ParseSize(in)
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrMalformedSizeSpec))
			assert.NotEmpty(t, errors.GetAllHints(err))
		})
	}
}

func TestDisplay(t *testing.T) {
	var buf bytes.Buffer
	d := NewDisplay(&buf, 2)
	feed(t, d, "aa", "ab", "ac")

	assert.Equal(t, "Generated words:\naa\nab\n... (only first 2 words displayed)\nTotal words: 3\n", buf.String())
	assert.EqualValues(t, 3, d.Total())
}

func TestDisplayUnderLimit(t *testing.T) {
	var buf bytes.Buffer
	feed(t, NewDisplay(&buf, 0), "x")

	assert.Equal(t, "Generated words:\nx\nTotal words: 1\n", buf.String())
}

func TestStream(t *testing.T) {
	var buf bytes.Buffer
	s := NewStream(&buf)
	feed(t, s, "a", "b", "")

	assert.Equal(t, "a\nb\n\n", buf.String())
	assert.EqualValues(t, 3, s.Words())
}

func TestFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.txt")
	var finalized []string

	f, err := NewFile(path, FinalizerFunc(func(_ context.Context, a *Artifact) error {
		finalized = append(finalized, a.Path)
		return nil
	}))
	require.NoError(t, err)
	feed(t, f, "aa", "ab", "ac")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "aa\nab\nac\n", string(data))

	require.Len(t, f.Artifacts(), 1)
	a := f.Artifacts()[0]
	assert.Equal(t, "aa", a.First)
	assert.Equal(t, "ac", a.Last)
	assert.EqualValues(t, 3, a.Words)
	assert.EqualValues(t, 9, a.Bytes)
	assert.Equal(t, []string{path}, finalized)
}

func TestSplit(t *testing.T) {
	dir := t.TempDir()
	s, err := NewSplit(context.Background(), dir, 7, nil)
	require.NoError(t, err)

	// Each word is 3 bytes with its newline, so two fit per partition.
	feed(t, s, "aa", "ab", "ac", "ad", "ae")

	names := make([]string, 0)
	for _, a := range s.Artifacts() {
		names = append(names, filepath.Base(a.Path))
	}
	assert.Equal(t, []string{"aa-ab.txt", "ac-ad.txt", "ae-ae.txt"}, names)

	data, err := os.ReadFile(filepath.Join(dir, "ac-ad.txt"))
	require.NoError(t, err)
	assert.Equal(t, "ac\nad\n", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 3, "no temporary partitions left behind")
}

func TestSplitOversizedWord(t *testing.T) {
	s, err := NewSplit(context.Background(), t.TempDir(), 2, nil)
	require.NoError(t, err)
	feed(t, s, "long", "x", "y")

	require.Len(t, s.Artifacts(), 3)
	assert.Equal(t, "long", s.Artifacts()[0].First)
	assert.EqualValues(t, 5, s.Artifacts()[0].Bytes)
}

func TestSplitCountsUTF8Bytes(t *testing.T) {
	s, err := NewSplit(context.Background(), t.TempDir(), 6, nil)
	require.NoError(t, err)
	// "éé" is 4 bytes + newline; a second one does not fit in 6.
	feed(t, s, "éé", "éé")

	assert.Len(t, s.Artifacts(), 2)
}

func TestSplitEmpty(t *testing.T) {
	dir := t.TempDir()
	s, err := NewSplit(context.Background(), dir, 10, nil)
	require.NoError(t, err)
	require.NoError(t, s.Close(context.Background()))

	assert.Empty(t, s.Artifacts())
	entries, _ := os.ReadDir(dir)
	assert.Empty(t, entries)
}

func TestSplitFinalizerChain(t *testing.T) {
	var order []string
	step := func(name string) Finalizer {
		return FinalizerFunc(func(_ context.Context, a *Artifact) error {
			order = append(order, name+":"+filepath.Base(a.Path))
			a.Codec = name
			return nil
		})
	}

	s, err := NewSplit(context.Background(), t.TempDir(), 100, Chain{step("first"), nil, step("second")})
	require.NoError(t, err)
	feed(t, s, "a", "b")

	assert.Equal(t, []string{"first:a-b.txt", "second:a-b.txt"}, order)
	assert.Equal(t, "second", s.Artifacts()[0].Codec)
}

func TestSplitRepeatedNamesKeepEveryWord(t *testing.T) {
	dir := t.TempDir()
	s, err := NewSplit(context.Background(), dir, 2, nil)
	require.NoError(t, err)
	feed(t, s, "a", "a", "a")

	var names []string
	for _, a := range s.Artifacts() {
		names = append(names, filepath.Base(a.Path))
	}
	assert.Equal(t, []string{"a-a.txt", "a-a.1.txt", "a-a.2.txt"}, names)

	for _, name := range names {
		data, err := os.ReadFile(filepath.Join(dir, name))
		require.NoError(t, err)
		assert.Equal(t, "a\n", string(data))
	}
}

func TestSplitSanitizedCollision(t *testing.T) {
	dir := t.TempDir()
	s, err := NewSplit(context.Background(), dir, 4, nil)
	require.NoError(t, err)
	feed(t, s, "a/b", "a_b")

	require.Len(t, s.Artifacts(), 2)
	assert.Equal(t, "a_b-a_b.txt", filepath.Base(s.Artifacts()[0].Path))
	assert.Equal(t, "a_b-a_b.1.txt", filepath.Base(s.Artifacts()[1].Path))
}

func TestSplitKeepsExistingFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "aa-ab.txt"), []byte("keep\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ac-ad.txt.gz"), []byte("keep"), 0o644))

	s, err := NewSplit(context.Background(), dir, 7, nil)
	require.NoError(t, err)
	feed(t, s, "aa", "ab", "ac", "ad")

	require.Len(t, s.Artifacts(), 2)
	assert.Equal(t, "aa-ab.1.txt", filepath.Base(s.Artifacts()[0].Path))
	assert.Equal(t, "ac-ad.1.txt", filepath.Base(s.Artifacts()[1].Path))

	data, err := os.ReadFile(filepath.Join(dir, "aa-ab.txt"))
	require.NoError(t, err)
	assert.Equal(t, "keep\n", string(data))
}

func TestSplitFinalizerErrorStillReportsArtifact(t *testing.T) {
	dir := t.TempDir()
	boom := errors.New("upload failed")
	s, err := NewSplit(context.Background(), dir, 100, FinalizerFunc(func(context.Context, *Artifact) error {
		return boom
	}))
	require.NoError(t, err)
	require.NoError(t, s.Accept("a"))

	err = s.Close(context.Background())
	assert.True(t, errors.Is(err, boom))
	require.Len(t, s.Artifacts(), 1)
	assert.FileExists(t, filepath.Join(dir, "a-a.txt"))
}

func TestFileFinalizerErrorStillReportsArtifact(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.txt")
	boom := errors.New("compress failed")
	f, err := NewFile(path, FinalizerFunc(func(context.Context, *Artifact) error { return boom }))
	require.NoError(t, err)
	require.NoError(t, f.Accept("a"))

	assert.True(t, errors.Is(f.Close(context.Background()), boom))
	require.Len(t, f.Artifacts(), 1)
	assert.Equal(t, path, f.Artifacts()[0].Path)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("pipe closed") }

func TestStreamWrapsWriteErrors(t *testing.T) {
	s := NewStream(failingWriter{})
	// Fills the buffer exactly, so the newline forces the failing flush.
	word := strings.Repeat("x", 4096)

	err := s.Accept(word)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to write word")
	assert.Zero(t, s.Words())
}

func TestChainStopsOnError(t *testing.T) {
	boom := errors.New("boom")
	called := false
	chain := Chain{
		FinalizerFunc(func(context.Context, *Artifact) error { return boom }),
		FinalizerFunc(func(context.Context, *Artifact) error { called = true; return nil }),
	}

	err := chain.Finalize(context.Background(), &Artifact{Path: "x.txt"})
	assert.True(t, errors.Is(err, boom))
	assert.False(t, called)
}

func TestNewSplitRejectsBadBudget(t *testing.T) {
	_, err := NewSplit(context.Background(), t.TempDir(), 0, nil)
	assert.True(t, errors.Is(err, errors.ErrMalformedSizeSpec))
}

func TestPartitionName(t *testing.T) {
	assert.Equal(t, "aa-zz.txt", PartitionName("aa", "zz"))
	assert.Equal(t, "a_b-c_d.txt", PartitionName("a/b", `c\d`))
	assert.Equal(t, "x_-y.txt", PartitionName("x\x00", "y"))
	assert.False(t, strings.ContainsAny(PartitionName("/..", "../"), "/\\"))
}

func TestThrottle(t *testing.T) {
	var buf bytes.Buffer
	th := NewThrottle(context.Background(), NewStream(&buf), 1000)
	feed(t, th, "a", "b")
	assert.Equal(t, "a\nb\n", buf.String())
	assert.Nil(t, th.Artifacts())
}

func TestThrottleCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	th := NewThrottle(ctx, NewStream(&bytes.Buffer{}), 1)
	assert.Error(t, th.Accept("a"))
}
