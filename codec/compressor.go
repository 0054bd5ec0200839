package codec

import (
	"context"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/teranos/crunch/errors"
	"github.com/teranos/crunch/logger"
	"github.com/teranos/crunch/sink"
)

// Compressor is a sink.Finalizer that replaces each artifact with its
// compressed form.
type Compressor struct {
	codec Codec
	log   *zap.SugaredLogger
}

// NewCompressor returns a finalizer for the named codec.
func NewCompressor(name string) (*Compressor, error) {
	c, err := Lookup(name)
	if err != nil {
		return nil, err
	}
	return &Compressor{codec: c, log: logger.ComponentLogger("codec")}, nil
}

// Codec returns the codec in use.
func (c *Compressor) Codec() Codec { return c.codec }

// Finalize compresses a.Path to a.Path+ext, removes the original and points
// a at the compressed file.
func (c *Compressor) Finalize(ctx context.Context, a *sink.Artifact) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	dst := a.Path + c.codec.Ext
	size, err := CompressFile(c.codec, a.Path, dst)
	if err != nil {
		return err
	}
	if err := os.Remove(a.Path); err != nil {
		return errors.Wrapf(err, "failed to remove %s", a.Path)
	}

	c.log.Infow("Compressed",
		logger.FieldPath, dst,
		logger.FieldCodec, c.codec.Name,
		logger.FieldBytes, size,
		"ratio", ratio(size, a.Bytes))

	a.Path = dst
	a.Bytes = size
	a.Codec = c.codec.Name
	return nil
}

// CompressFile writes src compressed with codec to dst and returns the
// compressed size. A partial dst is removed on failure.
func CompressFile(codec Codec, src, dst string) (size int64, err error) {
	in, err := os.Open(src)
	if err != nil {
		return 0, errors.Wrapf(err, "failed to open %s", src)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return 0, errors.Wrapf(err, "failed to create %s", dst)
	}
	defer func() {
		if err != nil {
			_ = os.Remove(dst)
		}
	}()

	zw, err := codec.NewWriter(out)
	if err != nil {
		out.Close()
		return 0, errors.Wrapf(err, "failed to start %s writer", codec.Name)
	}
	if _, err = io.Copy(zw, in); err != nil {
		zw.Close()
		out.Close()
		return 0, errors.Wrapf(err, "failed to compress %s", src)
	}
	if err = errors.CombineErrors(zw.Close(), out.Close()); err != nil {
		return 0, errors.Wrapf(err, "failed to finish %s", dst)
	}

	info, err := os.Stat(dst)
	if err != nil {
		return 0, errors.Wrapf(err, "failed to stat %s", dst)
	}
	return info.Size(), nil
}

func ratio(compressed, original int64) float64 {
	if original == 0 {
		return 0
	}
	return float64(compressed) / float64(original)
}
