// Package codec compresses finished output files.
package codec

import (
	"io"
	"sort"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/dsnet/compress/bzip2"
	"github.com/golang/snappy"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/xz"

	"github.com/teranos/crunch/errors"
)

// None disables compression.
const None = "none"

// Codec is a named stream compression format.
type Codec struct {
	Name string
	// Ext is appended to the compressed file name, dot included.
	Ext       string
	NewWriter func(w io.Writer) (io.WriteCloser, error)
	NewReader func(r io.Reader) (io.ReadCloser, error)
}

var registry = map[string]Codec{
	"gzip": {
		Name: "gzip",
		Ext:  ".gz",
		NewWriter: func(w io.Writer) (io.WriteCloser, error) {
			return gzip.NewWriter(w), nil
		},
		NewReader: func(r io.Reader) (io.ReadCloser, error) {
			return gzip.NewReader(r)
		},
	},
	"bzip2": {
		Name: "bzip2",
		Ext:  ".bz2",
		NewWriter: func(w io.Writer) (io.WriteCloser, error) {
			return bzip2.NewWriter(w, &bzip2.WriterConfig{Level: bzip2.DefaultCompression})
		},
		NewReader: func(r io.Reader) (io.ReadCloser, error) {
			return bzip2.NewReader(r, nil)
		},
	},
	// lzma writes the xz container, matching the .xz extension.
	"lzma": {
		Name: "lzma",
		Ext:  ".xz",
		NewWriter: func(w io.Writer) (io.WriteCloser, error) {
			return xz.NewWriter(w)
		},
		NewReader: func(r io.Reader) (io.ReadCloser, error) {
			zr, err := xz.NewReader(r)
			if err != nil {
				return nil, err
			}
			return io.NopCloser(zr), nil
		},
	},
	"zstd": {
		Name: "zstd",
		Ext:  ".zst",
		NewWriter: func(w io.Writer) (io.WriteCloser, error) {
			return zstd.NewWriter(w)
		},
		NewReader: func(r io.Reader) (io.ReadCloser, error) {
			zr, err := zstd.NewReader(r)
			if err != nil {
				return nil, err
			}
			return zr.IOReadCloser(), nil
		},
	},
	"brotli": {
		Name: "brotli",
		Ext:  ".br",
		NewWriter: func(w io.Writer) (io.WriteCloser, error) {
			return brotli.NewWriter(w), nil
		},
		NewReader: func(r io.Reader) (io.ReadCloser, error) {
			return io.NopCloser(brotli.NewReader(r)), nil
		},
	},
	"snappy": {
		Name: "snappy",
		Ext:  ".sz",
		NewWriter: func(w io.Writer) (io.WriteCloser, error) {
			return snappy.NewBufferedWriter(w), nil
		},
		NewReader: func(r io.Reader) (io.ReadCloser, error) {
			return io.NopCloser(snappy.NewReader(r)), nil
		},
	},
}

var aliases = map[string]string{
	"gz":  "gzip",
	"bz2": "bzip2",
	"xz":  "lzma",
	"zst": "zstd",
	"br":  "brotli",
	"sz":  "snappy",
}

// Lookup resolves a codec by name or file-extension alias, case-insensitively.
func Lookup(name string) (Codec, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if alias, ok := aliases[key]; ok {
		key = alias
	}
	c, ok := registry[key]
	if !ok {
		return Codec{}, errors.WithHintf(
			errors.Wrapf(errors.ErrUnknownCodec, "%q", name),
			"supported: %s", strings.Join(Names(), ", "))
	}
	return c, nil
}

// Enabled reports whether name selects a codec rather than no compression.
func Enabled(name string) bool {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", None, "no", "off", "false":
		return false
	}
	return true
}

// Validate accepts any codec name, alias, or a value that disables
// compression.
func Validate(name string) error {
	if !Enabled(name) {
		return nil
	}
	_, err := Lookup(name)
	return err
}

// Names lists the canonical codec names.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
