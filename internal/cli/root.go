// Package cli implements the autochangelog command line.
package cli

import (
	"context"
	"os"

	"github.com/ariel-frischer/autochangelog/internal/config"
	clierrors "github.com/ariel-frischer/autochangelog/internal/errors"
	"github.com/ariel-frischer/autochangelog/internal/lifecycle"
	"github.com/fatih/color"
	"github.com/maxbolgarin/logze/v2"
	"github.com/spf13/cobra"
)

// Command groups shown in help output.
const (
	GroupPipeline = "pipeline"
	GroupSetup    = "setup"
)

var (
	configPath string
	debugFlag  bool
	plainFlag  bool
)

var rootCmd = &cobra.Command{
	Use:   "autochangelog",
	Short: "Draft changelog entries and semantic version bumps in CI",
	Long: `autochangelog drafts a changelog entry and a semantic version bump from a
batch of git commits. Commits are categorized with conventional-commit
heuristics, the increment is derived from the categories, and a
text-generation service writes the entry, which is spliced into the
changelog above the <!-- AI_APPEND_HERE --> marker.

Running without a subcommand is the same as 'autochangelog draft'.

Configuration priority (highest to lowest):
  1. AUTOCHANGELOG_* environment variables
  2. CI variables (CHANGELOG_PATH, LATEST_TAG, ANTHROPIC_API_KEY, ...)
  3. Project config (.autochangelog.yml)
  4. User config (~/.config/autochangelog/config.yml)
  5. Built-in defaults`,
	Example: `  # Draft an entry from recent_commits.txt and update CHANGELOG.md
  autochangelog

  # Write the commit inputs from the local repository first
  autochangelog collect && autochangelog draft

  # Show the prompt and computed version without calling the API
  autochangelog preview

  # Print only the version bump
  autochangelog bump`,
	Args:          noArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		initLogging(debugFlag)
		if plainFlag {
			color.NoColor = true
		}
	},
	RunE: tracked("draft", runDraft),
}

func init() {
	rootCmd.AddGroup(
		&cobra.Group{ID: GroupPipeline, Title: "Pipeline Commands:"},
		&cobra.Group{ID: GroupSetup, Title: "Setup Commands:"},
	)

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return clierrors.NewArgumentErrorWithUsage(err.Error(), cmd.UseLine(),
			"Run '"+cmd.CommandPath()+" --help' for the accepted flags")
	})

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Project config file (default .autochangelog.yml)")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&plainFlag, "plain", false, "Plain output (no colors or icons)")
}

// initLogging configures the global logger.
func initLogging(debug bool) {
	level := logze.LevelInfo
	if debug {
		level = logze.LevelDebug
	}
	logze.Init(logze.C().WithConsole().WithLevel(level))
}

// Execute runs the root command. Errors are printed to stderr; the returned
// error selects the exit code.
func Execute() error {
	return ExecuteContext(context.Background())
}

// ExecuteContext runs the root command with ctx.
func ExecuteContext(ctx context.Context) error {
	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		clierrors.FprintError(os.Stderr, err, plainFlag)
	}
	return err
}

// tracked reports the duration and outcome of a command run.
func tracked(name string, run func(*cobra.Command, []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		return lifecycle.Run(lifecycle.NewLogHandler(), name, func() error {
			return run(cmd, args)
		})
	}
}

// noArgs rejects positional arguments as an argument error.
func noArgs(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		return clierrors.NewArgumentErrorWithUsage(
			"unexpected argument "+args[0], cmd.UseLine(),
			cmd.CommandPath()+" takes no arguments")
	}
	return nil
}

// loadConfig loads the configuration selected by --config.
func loadConfig() (*config.Configuration, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, clierrors.InvalidConfig(err)
	}
	return cfg, nil
}
