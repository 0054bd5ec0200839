package am

import (
	"github.com/teranos/crunch/codec"
	"github.com/teranos/crunch/errors"
	"github.com/teranos/crunch/logger"
	"github.com/teranos/crunch/sink"
)

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	// Length range and limits only matter when enumerating
	if !c.Generate.Permuting() {
		if err := c.GenerationConfig().Validate(); err != nil {
			return errors.Wrap(err, "generate")
		}
	}

	if c.Output.SplitSize != "" {
		if _, err := sink.ParseSize(c.Output.SplitSize); err != nil {
			return errors.Wrap(err, "output.split_size")
		}
		if c.Output.Path == "-" {
			return errors.WithHint(
				errors.NewInvalidConfigError("output.split_size cannot be combined with streaming to stdout"),
				"set output.dir for the partitions instead")
		}
	}

	if err := codec.Validate(c.Output.Compression); err != nil {
		return errors.Wrap(err, "output.compression")
	}
	if codec.Enabled(c.Output.Compression) && c.Output.OutputMode() != OutputFile && c.Output.OutputMode() != OutputSplit {
		return errors.WithHint(
			errors.NewInvalidConfigError("output.compression needs a file or split output"),
			"set --output or --split")
	}

	// 0 falls back to the default preview size
	if c.Output.PreviewLimit < 0 {
		return errors.NewInvalidConfigError("output.preview_limit must be >= 0, got %d", c.Output.PreviewLimit)
	}

	// 0 = unthrottled
	if c.Output.RateLimit < 0 {
		return errors.NewInvalidConfigError("output.rate_limit must be >= 0, got %g", c.Output.RateLimit)
	}

	if c.Upload.S3.Enabled() && c.Output.OutputMode() != OutputFile && c.Output.OutputMode() != OutputSplit {
		return errors.WithHint(
			errors.NewInvalidConfigError("upload.s3.bucket is set but nothing is written to disk"),
			"set --output or --split, or clear upload.s3.bucket")
	}

	if c.Log.Theme != "" && !logger.KnownTheme(c.Log.Theme) {
		return errors.NewInvalidConfigError("log.theme %q is not a known theme", c.Log.Theme)
	}

	return nil
}
