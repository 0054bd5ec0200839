package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/teranos/crunch/am"
	"github.com/teranos/crunch/cmd/crunch/commands"
	"github.com/teranos/crunch/errors"
	"github.com/teranos/crunch/logger"
)

var rootCmd = &cobra.Command{
	Use:   "crunch",
	Short: "crunch - combinatorial wordlist generator",
	Long: `crunch - combinatorial wordlist generator.

Enumerates every word over configurable charsets or a per-position pattern,
or every ordering of a list of words, and writes them to the terminal,
stdout, a file or size-bounded compressed parts.

Available commands:
  gen       - Generate words between two lengths
  permute   - Generate every ordering of some words
  wizard    - Build a run interactively
  estimate  - Count words and bytes before generating
  runs      - List recorded runs and their files
  config    - Inspect and manage configuration
  version   - Show version information

Examples:
  crunch gen 1 4                        # preview a .. zzzz
  crunch gen 4 4 -t @@%% -o list.txt    # aa00 .. zz99 into list.txt
  crunch permute dog cat bird           # six orderings
  crunch estimate 8 8 -b 100mb          # size up before running`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if path, _ := cmd.Flags().GetString("config"); path != "" {
			am.SetConfigFile(path)
		}

		cfg, err := am.Load()
		if err != nil {
			return err
		}

		jsonOutput, _ := cmd.Flags().GetBool("json")
		verbosity, _ := cmd.Flags().GetCount("verbose")
		if err := logger.Initialize(jsonOutput || cfg.Log.JSON, verbosity); err != nil {
			return errors.Wrap(err, "failed to initialize logger")
		}
		logger.SetTheme(cfg.Log.Theme)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().CountP("verbose", "v", "Increase output verbosity (repeat for more detail: -v, -vv)")
	rootCmd.PersistentFlags().Bool("json", false, "Output JSON (logs, progress and results)")
	rootCmd.PersistentFlags().String("config", "", "Read configuration from this file only")

	rootCmd.AddCommand(commands.GenCmd)
	rootCmd.AddCommand(commands.PermuteCmd)
	rootCmd.AddCommand(commands.WizardCmd)
	rootCmd.AddCommand(commands.EstimateCmd)
	rootCmd.AddCommand(commands.RunsCmd)
	rootCmd.AddCommand(commands.ConfigCmd)
	rootCmd.AddCommand(commands.VersionCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	logger.Cleanup()

	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		for _, hint := range errors.GetAllHints(err) {
			fmt.Fprintln(os.Stderr, "Hint:", hint)
		}
		os.Exit(1)
	}
}
