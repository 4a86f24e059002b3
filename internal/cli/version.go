package cli

import (
	"fmt"

	"github.com/ariel-frischer/autochangelog/internal/build"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:     "version",
	Aliases: []string{"v"},
	Short:   "Display version information (v)",
	Long:    "Display version, commit, build date, and Go version information for autochangelog",
	Example: `  # Show version info
  autochangelog version

  # Plain output (for scripts)
  autochangelog version --plain`,
	Args: noArgs,
	Run: func(cmd *cobra.Command, args []string) {
		info := build.Current()
		out := cmd.OutOrStdout()

		if plainFlag {
			fmt.Fprintf(out, "autochangelog %s\n", info.Version)
			fmt.Fprintf(out, "commit: %s\n", info.Commit)
			fmt.Fprintf(out, "built: %s\n", info.BuildDate)
			fmt.Fprintf(out, "go: %s\n", info.GoVersion)
			fmt.Fprintf(out, "platform: %s\n", info.Platform)
			return
		}

		bold := color.New(color.Bold).SprintFunc()
		cyan := color.New(color.FgCyan).SprintFunc()
		fmt.Fprintf(out, "%s %s\n", bold("autochangelog"), cyan(info.Version))
		fmt.Fprintf(out, "  %-9s %s\n", "Commit:", info.Commit)
		fmt.Fprintf(out, "  %-9s %s\n", "Built:", info.BuildDate)
		fmt.Fprintf(out, "  %-9s %s\n", "Go:", info.GoVersion)
		fmt.Fprintf(out, "  %-9s %s\n", "Platform:", info.Platform)
		fmt.Fprintf(out, "  %-9s %s\n", "Source:", build.SourceURL)
	},
}

func init() {
	versionCmd.GroupID = GroupSetup
	rootCmd.AddCommand(versionCmd)
}
