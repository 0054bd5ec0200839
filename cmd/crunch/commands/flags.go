package commands

import (
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/teranos/crunch/am"
	"github.com/teranos/crunch/errors"
)

// generateBindings maps generation keys to flag names
var generateBindings = map[string]string{
	"generate.min_length":     "min",
	"generate.max_length":     "max",
	"generate.pattern":        "pattern",
	"generate.charset.lower":  "lower",
	"generate.charset.upper":  "upper",
	"generate.charset.digit":  "digits",
	"generate.charset.symbol": "symbols",
	"generate.limits.lower":   "limit-lower",
	"generate.limits.upper":   "limit-upper",
	"generate.limits.digit":   "limit-digits",
	"generate.limits.symbol":  "limit-symbols",
	"generate.start":          "start",
	"generate.end":            "end",
}

// outputBindings maps output keys to flag names
var outputBindings = map[string]string{
	"output.path":          "output",
	"output.dir":           "dir",
	"output.split_size":    "split",
	"output.compression":   "compress",
	"output.preview_limit": "preview",
	"output.rate_limit":    "rate",
}

func addGenerateFlags(fs *pflag.FlagSet) {
	fs.Int("min", 0, "Minimum word length")
	fs.Int("max", 0, "Maximum word length")
	fs.StringP("pattern", "t", "", "Pattern: @ lower, , upper, % digit, ^ symbol, anything else literal")
	fs.String("lower", "", "Lowercase charset (default a-z)")
	fs.String("upper", "", "Uppercase charset (default A-Z)")
	fs.String("digits", "", "Digit charset (default 0-9)")
	fs.String("symbols", "", "Symbol charset (default printable ASCII symbols and space)")
	fs.Int("limit-lower", 0, "Max consecutive identical lowercase characters (0 = no limit)")
	fs.Int("limit-upper", 0, "Max consecutive identical uppercase characters (0 = no limit)")
	fs.Int("limit-digits", 0, "Max consecutive identical digits (0 = no limit)")
	fs.Int("limit-symbols", 0, "Max consecutive identical symbols (0 = no limit)")
	fs.StringP("start", "s", "", "Start after this word (per length)")
	fs.StringP("end", "e", "", "Stop after this word (per length)")
}

func addOutputFlags(fs *pflag.FlagSet) {
	fs.StringP("output", "o", "", "Write to file (- for stdout, empty to preview)")
	fs.String("dir", ".", "Directory for split parts")
	fs.StringP("split", "b", "", "Split output into parts of this size (e.g. 10mb, 20kib)")
	fs.StringP("compress", "z", "", "Compress files: gzip, bzip2, lzma, zstd, brotli, snappy")
	fs.Int("preview", 100, "Words shown when previewing")
	fs.Float64("rate", 0, "Max words per second (0 = unlimited)")
}

func merge(maps ...map[string]string) map[string]string {
	out := make(map[string]string)
	for _, m := range maps {
		for k, v := range m {
			out[k] = v
		}
	}
	return out
}

// loadConfig binds cmd's flags and loads the layered configuration
func loadConfig(cmd *cobra.Command, bindings map[string]string) (*am.Config, error) {
	if err := am.BindFlags(cmd.Flags(), bindings); err != nil {
		return nil, err
	}
	cfg, err := am.Load()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load config")
	}
	return cfg, nil
}

// applyLengthArgs accepts the positional "min max" form
func applyLengthArgs(args []string, cfg *am.Config) error {
	switch len(args) {
	case 0:
		return nil
	case 2:
	default:
		return errors.WithHint(
			errors.NewInvalidConfigError("expected min and max lengths, got %d arguments", len(args)),
			"use `crunch gen 1 4` or --min/--max")
	}

	lengths := make([]int, 2)
	for i, arg := range args {
		n, err := strconv.Atoi(arg)
		if err != nil {
			return errors.NewInvalidConfigError("length %q is not a number", arg)
		}
		lengths[i] = n
	}
	cfg.Generate.MinLength, cfg.Generate.MaxLength = lengths[0], lengths[1]
	return nil
}

func verbosity(cmd *cobra.Command) int {
	v, _ := cmd.Root().PersistentFlags().GetCount("verbose")
	return v
}
