package commands

import (
	"github.com/spf13/cobra"

	"github.com/teranos/crunch/display"
	"github.com/teranos/crunch/errors"
	"github.com/teranos/crunch/permute"
)

// PermuteCmd prints every ordering of a list of words
var PermuteCmd = &cobra.Command{
	Use:   "permute <words...>",
	Short: "Generate every ordering of the given words",
	Long: `Concatenate the given words in every order. Duplicates are kept.

Words come from the arguments or from --words, which is split like a shell
command line so words may contain spaces.

Examples:
  crunch permute dog cat bird             # 6 orderings
  crunch permute --words "big 'red dog'"  # bigred dog, red dogbig
  crunch permute a b c d -o perms.txt`,
	RunE: runPermute,
}

func init() {
	PermuteCmd.Flags().String("words", "", "Words as one shell-quoted string")
	addOutputFlags(PermuteCmd.Flags())
}

func runPermute(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, outputBindings)
	if err != nil {
		return err
	}

	words := args
	if line, _ := cmd.Flags().GetString("words"); line != "" {
		parsed, err := permute.Split(line)
		if err != nil {
			return err
		}
		words = append(words, parsed...)
	}
	if len(words) == 0 {
		words = cfg.Generate.Permute
	}
	if len(words) == 0 {
		return errors.WithHint(
			errors.NewInvalidConfigError("no words to permute"),
			"pass words as arguments or with --words")
	}
	cfg.Generate.Permute = words

	p := newPipeline(cmd.OutOrStdout(), cmd.ErrOrStderr(), verbosity(cmd), display.ShouldOutputJSON(cmd))
	_, err = p.run(cmd.Context(), cfg)
	return err
}
