package commands

import (
	"github.com/spf13/cobra"

	"github.com/teranos/crunch/display"
)

// GenCmd enumerates words from charsets or a pattern
var GenCmd = &cobra.Command{
	Use:   "gen [min max]",
	Short: "Generate every word between two lengths",
	Long: `Generate every word between min and max length, shortest first.

Without a pattern each position draws from the lowercase, uppercase, digit and
symbol charsets combined. With -t each position takes its class from the
pattern:

  @  lowercase     ,  uppercase     %  digit     ^  symbol

Any other pattern character is a literal. The pattern length must equal the
word length; other lengths are skipped with a warning.

Examples:
  crunch gen 1 3                          # a .. zzz previewed on the terminal
  crunch gen 4 4 -t @@%% --digits 01      # aa00 .. zz11
  crunch gen 6 6 -t pass%% -o pins.txt    # pass00 .. pass99 into a file
  crunch gen 8 8 -b 10mb -z gzip --dir out  # 10 MB gzip parts
  crunch gen 3 3 -o - | head              # stream to stdout`,
	Args: cobra.RangeArgs(0, 2),
	RunE: runGen,
}

func init() {
	addGenerateFlags(GenCmd.Flags())
	addOutputFlags(GenCmd.Flags())
}

func runGen(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, merge(generateBindings, outputBindings))
	if err != nil {
		return err
	}
	if err := applyLengthArgs(args, cfg); err != nil {
		return err
	}
	// gen never permutes, even when a config file lists words
	cfg.Generate.Permute = nil

	p := newPipeline(cmd.OutOrStdout(), cmd.ErrOrStderr(), verbosity(cmd), display.ShouldOutputJSON(cmd))
	_, err = p.run(cmd.Context(), cfg)
	return err
}
