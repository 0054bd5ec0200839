package sink

import (
	"bufio"
	"context"
	"io"

	"github.com/teranos/crunch/errors"
)

// Stream writes every word, newline-terminated, to a writer it does not
// own. Used for `-o -`.
type Stream struct {
	buf   *bufio.Writer
	words int64
}

// NewStream returns a sink writing to w.
func NewStream(w io.Writer) *Stream {
	return &Stream{buf: bufio.NewWriter(w)}
}

// Accept implements Sink.
func (s *Stream) Accept(word string) error {
	if _, err := s.buf.WriteString(word); err != nil {
		return errors.Wrap(err, "failed to write word")
	}
	if err := s.buf.WriteByte('\n'); err != nil {
		return errors.Wrap(err, "failed to write word")
	}
	s.words++
	return nil
}

// Close flushes buffered words.
func (s *Stream) Close(context.Context) error {
	return errors.Wrap(s.buf.Flush(), "failed to flush output")
}

// Words returns the number of words written.
func (s *Stream) Words() int64 { return s.words }

// File writes every word to a single file. The finished file is passed to
// the finalizer on Close.
type File struct {
	part      *partition
	finalizer Finalizer
	artifacts []Artifact
}

// NewFile creates path, truncating any existing file.
func NewFile(path string, finalizer Finalizer) (*File, error) {
	part, err := createPartition(path)
	if err != nil {
		return nil, err
	}
	return &File{part: part, finalizer: finalizer}, nil
}

// Accept implements Sink.
func (f *File) Accept(word string) error {
	return f.part.write(word)
}

// Close closes the file and finalizes it.
func (f *File) Close(ctx context.Context) error {
	if err := f.part.close(); err != nil {
		return err
	}
	a := f.part.artifact()
	var err error
	if f.finalizer != nil {
		err = f.finalizer.Finalize(ctx, &a)
	}
	f.artifacts = append(f.artifacts, a)
	return err
}

// Artifacts implements Reporter.
func (f *File) Artifacts() []Artifact { return f.artifacts }
