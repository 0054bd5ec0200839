package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/teranos/crunch/display"
	"github.com/teranos/crunch/version"
)

// VersionCmd represents the version command
var VersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show crunch version information",
	Long:  `Display version, build time, commit hash, and platform information for the crunch binary.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		info := version.Get()

		if display.ShouldOutputJSON(cmd) {
			return display.OutputJSON(cmd.OutOrStdout(), info)
		}
		fmt.Fprintln(cmd.OutOrStdout(), info.String())
		return nil
	},
}
