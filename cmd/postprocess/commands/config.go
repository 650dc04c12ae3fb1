package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tsonic/express-postprocess/config"
	"github.com/tsonic/express-postprocess/display"
	"github.com/tsonic/express-postprocess/errors"
)

// ConfigCmd groups the configuration subcommands
var ConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect postprocess configuration",
	Long: `Inspect postprocess configuration.

Configuration sources (in order of precedence):
1. Command line flags (--root, --json-log, -v)
2. Environment variables (POSTPROCESS_* prefix, e.g. POSTPROCESS_MAJOR)
3. Project config (postprocess.toml, searched upward from the working directory)
4. Default values

Examples:
  postprocess config show                # Show effective configuration
  postprocess config show --format json  # Same, as JSON
  postprocess config validate            # Check values and unknown keys
  postprocess config where               # Show which sources were used`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the effective configuration",
	Long: `Validate the effective configuration. When a project config file is in
use, also fail on keys that no setting reads.`,
	Args: cobra.NoArgs,
	RunE: runConfigValidate,
}

var configWhereCmd = &cobra.Command{
	Use:   "where",
	Short: "Show where configuration is loaded from",
	Args:  cobra.NoArgs,
	RunE:  runConfigWhere,
}

var configFormat string

func init() {
	configShowCmd.Flags().StringVar(&configFormat, "format", "toml",
		"Output format: "+strings.Join(config.Formats, ", "))

	ConfigCmd.AddCommand(configShowCmd)
	ConfigCmd.AddCommand(configValidateCmd)
	ConfigCmd.AddCommand(configWhereCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	data, err := config.Encode(cfg, configFormat)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if configFormat != "json" {
		fmt.Fprintf(out, "# postprocess configuration (%s)\n", configFormat)
	}
	_, err = out.Write(data)
	return err
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	if err := cfg.Validate(); err != nil {
		return errors.Wrap(err, "configuration validation failed")
	}

	if used := settings.ConfigFileUsed(); used != "" {
		unknown, err := config.CheckKeys(used)
		if err != nil {
			return err
		}
		if len(unknown) > 0 {
			err := errors.Newf("unknown configuration keys in %s: %s", used, strings.Join(unknown, ", "))
			return errors.WithHint(err, "run 'postprocess config show' to list the supported keys")
		}
	}

	display.Success("Configuration is valid")
	return nil
}

func runConfigWhere(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, "Configuration sources (lowest to highest precedence):")
	fmt.Fprintln(out, "  defaults")
	if used := settings.ConfigFileUsed(); used != "" {
		fmt.Fprintf(out, "  file:  %s\n", used)
	} else {
		fmt.Fprintf(out, "  file:  none (no %s found)\n", config.FileName)
	}
	for _, name := range config.EnvOverrides() {
		fmt.Fprintf(out, "  env:   %s\n", name)
	}
	pf := cmd.Root().PersistentFlags()
	for _, fk := range flagKeys {
		if pf.Changed(fk.flag) {
			fmt.Fprintf(out, "  flag:  --%s (%s)\n", fk.flag, fk.key)
		}
	}
	return nil
}
