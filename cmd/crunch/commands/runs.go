package commands

import (
	"database/sql"

	"github.com/spf13/cobra"

	"github.com/teranos/crunch/am"
	"github.com/teranos/crunch/catalog"
	"github.com/teranos/crunch/display"
	"github.com/teranos/crunch/errors"
	"github.com/teranos/crunch/logger"
)

// RunsCmd browses the run catalog
var RunsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recorded runs and their files",
	Long: `Every run and every file it produced is recorded in the catalog
(~/.crunch/catalog.db unless catalog.path is set).

Examples:
  crunch runs ls
  crunch runs ls --limit 5 --json
  crunch runs show 0f8fad5b`,
}

var runsLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List runs, newest first",
	Args:  cobra.NoArgs,
	RunE:  runRunsLs,
}

var runsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one run and its artifacts",
	Long:  "Show one run. Any unique prefix of the run ID is accepted.",
	Args:  cobra.ExactArgs(1),
	RunE:  runRunsShow,
}

func init() {
	runsLsCmd.Flags().Int("limit", 20, "Maximum number of runs to list (0 = all)")

	RunsCmd.AddCommand(runsLsCmd)
	RunsCmd.AddCommand(runsShowCmd)
}

// openCatalog opens and migrates the configured catalog
func openCatalog() (*sql.DB, error) {
	cfg, err := am.Load()
	if err != nil {
		return nil, err
	}
	path := cfg.CatalogPath()

	db, err := catalog.OpenWithMigrations(path, logger.ComponentLogger("catalog"))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open catalog at %s", path)
	}
	return db, nil
}

func runRunsLs(cmd *cobra.Command, args []string) error {
	db, err := openCatalog()
	if err != nil {
		return err
	}
	defer closeQuietly(db)

	limit, _ := cmd.Flags().GetInt("limit")
	runs, err := catalog.NewStore(db).ListRuns(cmd.Context(), limit)
	if err != nil {
		return err
	}

	if display.ShouldOutputJSON(cmd) {
		return display.OutputJSON(cmd.OutOrStdout(), runs)
	}
	return display.RunsTable(cmd.OutOrStdout(), runs)
}

func runRunsShow(cmd *cobra.Command, args []string) error {
	db, err := openCatalog()
	if err != nil {
		return err
	}
	defer closeQuietly(db)

	run, err := catalog.NewStore(db).GetRun(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	if display.ShouldOutputJSON(cmd) {
		return display.OutputJSON(cmd.OutOrStdout(), run)
	}
	return display.RunDetail(cmd.OutOrStdout(), run)
}
