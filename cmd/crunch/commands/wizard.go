package commands

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/crunch/am"
	"github.com/teranos/crunch/display"
	"github.com/teranos/crunch/wizard"
)

// WizardCmd asks for every setting interactively
var WizardCmd = &cobra.Command{
	Use:   "wizard",
	Short: "Build a run interactively",
	Long: `Ask for the generation mode, lengths, charsets, pattern, limits, bounds
and output step by step, then run it.

Every question defaults to the current configuration. Use --save to keep the
answers as a preset for ` + "`crunch --config <preset> gen`" + `.`,
	Args: cobra.NoArgs,
	RunE: runWizard,
}

func init() {
	WizardCmd.Flags().String("save", "", "Save the answers as a TOML preset at this path")
	WizardCmd.Flags().Bool("dry-run", false, "Only collect (and save) the answers")
}

func runWizard(cmd *cobra.Command, args []string) error {
	cfg, err := am.Load()
	if err != nil {
		return err
	}

	display.Banner(cmd.ErrOrStderr())

	answers, err := wizard.Collect(wizard.Terminal{}, cfg)
	if err != nil {
		return err
	}
	if err := answers.Validate(); err != nil {
		return err
	}

	if path, _ := cmd.Flags().GetString("save"); path != "" {
		if err := am.SavePreset(path, answers); err != nil {
			return err
		}
		pterm.Success.Printfln("Preset saved to %s", path)
	}

	if dryRun, _ := cmd.Flags().GetBool("dry-run"); dryRun {
		return nil
	}

	p := newPipeline(cmd.OutOrStdout(), cmd.ErrOrStderr(), verbosity(cmd), display.ShouldOutputJSON(cmd))
	_, err = p.run(cmd.Context(), answers)
	return err
}
