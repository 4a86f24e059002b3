package cli

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/ariel-frischer/autochangelog/internal/config"
	clierrors "github.com/ariel-frischer/autochangelog/internal/errors"
	"github.com/ariel-frischer/autochangelog/internal/output"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var configInitForce bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and initialize autochangelog configuration",
	Long: `Inspect and initialize autochangelog configuration.

Configuration is loaded with the following priority (highest to lowest):
  1. AUTOCHANGELOG_* environment variables (nested keys joined with __)
  2. CI variables (CHANGELOG_PATH, LATEST_TAG, ANTHROPIC_API_KEY, ...)
  3. Project config (.autochangelog.yml)
  4. User config (~/.config/autochangelog/config.yml)
  5. Built-in defaults`,
	Example: `  # List every key
  autochangelog config keys

  # Show the effective configuration
  autochangelog config show

  # Write a commented .autochangelog.yml
  autochangelog config init`,
}

var configKeysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List configuration keys with defaults and environment variables",
	Args:  noArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "KEY\tTYPE\tDEFAULT\tENVIRONMENT")
		for _, schema := range config.SortedKeys() {
			envVars := []string{config.EnvVarName(schema.Path)}
			if schema.EnvVar != "" {
				envVars = append([]string{schema.EnvVar}, envVars...)
			}
			def := ""
			if schema.Default != nil {
				def = fmt.Sprint(schema.Default)
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", schema.Path, schema.Type, def, strings.Join(envVars, ", "))
		}
		return w.Flush()
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration as YAML (secrets masked)",
	Args:  noArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		data, err := yaml.Marshal(cfg.Redacted())
		if err != nil {
			return fmt.Errorf("encoding configuration: %w", err)
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a commented project config file",
	Args:  noArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configPath
		if path == "" {
			path = config.ProjectConfigPath()
		}

		if _, err := os.Stat(path); err == nil && !configInitForce {
			return clierrors.New(clierrors.Argument,
				fmt.Sprintf("%s already exists", path),
				"Use --force to overwrite it",
			)
		}

		if err := os.WriteFile(path, []byte(config.GetDefaultConfigTemplate()), 0o644); err != nil {
			return clierrors.WrapWithMessage(err, clierrors.Runtime, "writing "+path)
		}
		output.PrintSuccess(cmd.OutOrStdout(), "Wrote "+path)
		return nil
	},
}

func init() {
	configCmd.GroupID = GroupSetup
	configInitCmd.Flags().BoolVarP(&configInitForce, "force", "f", false, "Overwrite an existing config file")

	configCmd.AddCommand(configKeysCmd, configShowCmd, configInitCmd)
	rootCmd.AddCommand(configCmd)
}
