package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/crunch/am"
	"github.com/teranos/crunch/display"
	"github.com/teranos/crunch/errors"
)

// ConfigCmd inspects and manages configuration
var ConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and manage crunch configuration",
	Long: `Display and manage crunch configuration.

Configuration sources (later overrides earlier):
1. Default values
2. System config (/etc/crunch/crunch.toml)
3. User config (~/.crunch/crunch.toml)
4. Project config (crunch.toml, searched upward from the working directory)
5. Environment variables (CRUNCH_* prefix, e.g. CRUNCH_OUTPUT_COMPRESSION)
6. Command line flags

--config <file> replaces 2-4 with a single file.

Examples:
  crunch config show                   # Show effective configuration
  crunch config show --format yaml
  crunch config get generate.pattern
  crunch config where                  # Which source set each key
  crunch config lint crunch.toml       # Find misspelled keys
  crunch config save ~/.crunch/pins.toml`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get one configuration value",
	Long:  "Get one configuration value using dot notation (e.g. output.split_size)",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigGet,
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the effective configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfigValidate,
}

var configWhereCmd = &cobra.Command{
	Use:   "where",
	Short: "Show which source set each value",
	Args:  cobra.NoArgs,
	RunE:  runConfigWhere,
}

var configLintCmd = &cobra.Command{
	Use:   "lint <file>",
	Short: "Check a config file for unknown keys",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigLint,
}

var configSaveCmd = &cobra.Command{
	Use:   "save <file>",
	Short: "Save the effective configuration as a preset",
	Long: `Save the effective configuration as a TOML preset. An existing file is
kept as .back1 (up to three backups). Credentials are never written.`,
	Args: cobra.ExactArgs(1),
	RunE: runConfigSave,
}

func init() {
	configShowCmd.Flags().String("format", am.FormatTOML, "Output format: toml, json, yaml")

	ConfigCmd.AddCommand(configShowCmd)
	ConfigCmd.AddCommand(configGetCmd)
	ConfigCmd.AddCommand(configValidateCmd)
	ConfigCmd.AddCommand(configWhereCmd)
	ConfigCmd.AddCommand(configLintCmd)
	ConfigCmd.AddCommand(configSaveCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := am.Load()
	if err != nil {
		return err
	}

	format, _ := cmd.Flags().GetString("format")
	if display.ShouldOutputJSON(cmd) {
		format = am.FormatJSON
	}
	data, err := am.Render(cfg, format)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	key := args[0]
	if isSecret(key) {
		return errors.WithHint(
			errors.NewInvalidConfigError("%s is a credential and is not printed", key),
			"check the environment or config file directly")
	}

	value, err := am.Get(key)
	if err != nil {
		return err
	}

	if display.ShouldOutputJSON(cmd) {
		return display.OutputJSON(cmd.OutOrStdout(), map[string]interface{}{key: value})
	}
	fmt.Fprintln(cmd.OutOrStdout(), value)
	return nil
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	cfg, err := am.Load()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return errors.Wrap(err, "configuration validation failed")
	}
	pterm.Fprintln(cmd.OutOrStdout(), pterm.Green("✓"), "Configuration is valid")
	return nil
}

func runConfigWhere(cmd *cobra.Command, args []string) error {
	intro, err := am.Introspect()
	if err != nil {
		return err
	}
	for i := range intro.Settings {
		if isSecret(intro.Settings[i].Key) && intro.Settings[i].Value != "" {
			intro.Settings[i].Value = "********"
		}
	}

	if display.ShouldOutputJSON(cmd) {
		return display.OutputJSON(cmd.OutOrStdout(), intro)
	}
	printWhere(cmd.OutOrStdout(), intro)
	return nil
}

// printWhere groups settings by the source that set them, lowest
// precedence first
func printWhere(w io.Writer, intro *am.ConfigIntrospection) {
	order := []am.ConfigSource{
		am.SourceDefault,
		am.SourceSystem,
		am.SourceUser,
		am.SourceProject,
		am.SourceExplicit,
		am.SourceEnvironment,
		am.SourceFlag,
	}

	if intro.ConfigFile != "" {
		fmt.Fprintf(w, "Config file: %s\n", intro.ConfigFile)
	}

	for _, source := range order {
		var settings []am.SettingInfo
		for _, s := range intro.Settings {
			if s.Source == source {
				settings = append(settings, s)
			}
		}
		if len(settings) == 0 {
			continue
		}

		fmt.Fprintf(w, "\n%s: %d settings\n", pterm.LightCyan(string(source)), len(settings))
		for _, s := range settings {
			value := fmt.Sprintf("%v", s.Value)
			if len(value) > 50 {
				value = value[:47] + "..."
			}
			origin := ""
			if source != am.SourceDefault {
				origin = pterm.Gray("  (" + s.SourcePath + ")")
			}
			fmt.Fprintf(w, "  %s = %s%s\n", s.Key, value, origin)
		}
	}
}

func runConfigLint(cmd *cobra.Command, args []string) error {
	result, err := am.Lint(args[0])
	if err != nil {
		return err
	}

	if display.ShouldOutputJSON(cmd) {
		if err := display.OutputJSON(cmd.OutOrStdout(), result); err != nil {
			return err
		}
	} else if result.OK() {
		pterm.Fprintln(cmd.OutOrStdout(), pterm.Green("✓"), result.Path, "has no unknown keys")
	} else {
		for _, key := range result.Unknown {
			pterm.Fprintln(cmd.OutOrStdout(), pterm.Yellow("unknown key:"), key)
		}
	}

	if !result.OK() {
		return errors.NewInvalidConfigError("%s has %d unknown keys", result.Path, len(result.Unknown))
	}
	return nil
}

func runConfigSave(cmd *cobra.Command, args []string) error {
	cfg, err := am.Load()
	if err != nil {
		return err
	}
	if err := am.SavePreset(args[0], cfg); err != nil {
		return err
	}
	pterm.Fprintln(cmd.OutOrStdout(), pterm.Green("✓"), "Saved", args[0])
	return nil
}

func isSecret(key string) bool {
	return strings.HasSuffix(key, "secret_key") || strings.HasSuffix(key, "access_key_id")
}
