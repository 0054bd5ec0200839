package commands

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/teranos/crunch/am"
	"github.com/teranos/crunch/display"
	"github.com/teranos/crunch/errors"
	"github.com/teranos/crunch/estimate"
)

// EstimateCmd sizes a run without generating it
var EstimateCmd = &cobra.Command{
	Use:   "estimate [min max]",
	Short: "Count the words and bytes a run would produce",
	Long: `Count the words and bytes the configured run would produce and compare
the total with the free space where it would be written.

The figures are an upper bound: start/end bounds and repeat limits only
shrink the output.

Examples:
  crunch estimate 1 8
  crunch estimate 8 8 -t @@@@%%%% -b 100mb --dir /data`,
	Args: cobra.RangeArgs(0, 2),
	RunE: runEstimate,
}

// estimateResult is the JSON form of an estimate
type estimateResult struct {
	*estimate.Estimate
	Disk *estimate.Disk `json:"disk,omitempty"`
	Fits *bool          `json:"fits,omitempty"`
}

func init() {
	addGenerateFlags(EstimateCmd.Flags())
	addOutputFlags(EstimateCmd.Flags())
	EstimateCmd.Flags().StringSlice("words", nil, "Estimate a permutation of these words instead")
}

func runEstimate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, merge(generateBindings, outputBindings))
	if err != nil {
		return err
	}
	if err := applyLengthArgs(args, cfg); err != nil {
		return err
	}
	if words, _ := cmd.Flags().GetStringSlice("words"); len(words) > 0 {
		cfg.Generate.Permute = words
	}

	est, err := estimate.For(cfg.Mode())
	if err != nil {
		return err
	}

	result := estimateResult{Estimate: est}
	if dir, ok := outputDir(cfg); ok {
		disk, err := estimate.CheckDisk(cmd.Context(), dir, est.Bytes)
		switch {
		case err == nil:
			fits := true
			result.Fits = &fits
		case errors.Is(err, errors.ErrInsufficientSpace):
			fits := false
			result.Fits = &fits
		default:
			return err
		}
		result.Disk = disk
	}

	if display.ShouldOutputJSON(cmd) {
		return display.OutputJSON(cmd.OutOrStdout(), result)
	}
	if err := display.EstimateTable(cmd.OutOrStdout(), est, result.Disk); err != nil {
		return err
	}
	if result.Fits != nil && !*result.Fits {
		return errors.WithHint(errors.ErrInsufficientSpace, "split the run, compress with -z, or write elsewhere")
	}
	return nil
}

// outputDir returns where the run would write, if it writes files
func outputDir(cfg *am.Config) (string, bool) {
	switch cfg.Output.OutputMode() {
	case am.OutputSplit:
		return cfg.Output.Dir, true
	case am.OutputFile:
		return filepath.Dir(cfg.Output.Path), true
	}
	return "", false
}
