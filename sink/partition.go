package sink

import (
	"bufio"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/teranos/crunch/errors"
)

// partition is one open output file and the range of words it holds.
type partition struct {
	path  string
	file  *os.File
	buf   *bufio.Writer
	first string
	last  string
	words int64
	bytes int64
}

func createPartition(path string) (*partition, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to create %s", path)
	}
	return &partition{path: path, file: f, buf: bufio.NewWriter(f)}, nil
}

func (p *partition) write(word string) error {
	if _, err := p.buf.WriteString(word); err != nil {
		return errors.Wrapf(err, "failed to write %s", p.path)
	}
	if err := p.buf.WriteByte('\n'); err != nil {
		return errors.Wrapf(err, "failed to write %s", p.path)
	}
	if p.words == 0 {
		p.first = word
	}
	p.last = word
	p.words++
	p.bytes += encodedSize(word)
	return nil
}

func (p *partition) close() error {
	flushErr := p.buf.Flush()
	closeErr := p.file.Close()
	if err := errors.CombineErrors(flushErr, closeErr); err != nil {
		return errors.Wrapf(err, "failed to close %s", p.path)
	}
	return nil
}

func (p *partition) artifact() Artifact {
	return Artifact{
		Path:  p.path,
		First: p.first,
		Last:  p.last,
		Words: p.words,
		Bytes: p.bytes,
	}
}

// encodedSize is a word's UTF-8 length plus its newline.
func encodedSize(word string) int64 {
	return int64(len(word)) + 1
}

var nameReplacer = strings.NewReplacer("/", "_", "\\", "_", "\x00", "_")

// PartitionName names a partition by its first and last word. Characters
// that cannot appear in a file name are replaced with '_'.
func PartitionName(first, last string) string {
	return sanitize(first) + "-" + sanitize(last) + ".txt"
}

func sanitize(word string) string {
	if !utf8.ValidString(word) {
		word = strings.ToValidUTF8(word, "_")
	}
	return nameReplacer.Replace(word)
}
