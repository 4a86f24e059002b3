package cli

import (
	"fmt"

	"github.com/ariel-frischer/autochangelog/internal/artifacts"
	"github.com/ariel-frischer/autochangelog/internal/bump"
	"github.com/ariel-frischer/autochangelog/internal/commits"
	clierrors "github.com/ariel-frischer/autochangelog/internal/errors"
	"github.com/spf13/cobra"
)

var (
	bumpIncrementFlag string
	bumpWriteFlag     bool
)

var bumpCmd = &cobra.Command{
	Use:   "bump",
	Short: "Compute the next version from the commits file",
	Long: `Categorize the commits file and print the version record as JSON:
  {"version":"1.5.0","increment":"minor","previousVersion":"v1.4.0"}

A breaking change selects major, a feature selects minor, anything else
patch. VERSION_INCREMENT (or --increment) overrides the derived increment.
An unparseable LATEST_TAG yields 0.1.0.`,
	Example: `  # Next version after v1.4.0
  LATEST_TAG=v1.4.0 autochangelog bump

  # Force a major bump and write version_info.txt
  autochangelog bump --increment major --write`,
	Args: noArgs,
	RunE: tracked("bump", runBump),
}

func init() {
	bumpCmd.GroupID = GroupPipeline
	bumpCmd.Flags().StringVar(&bumpIncrementFlag, "increment", "", "Override the increment (auto, major, minor, patch)")
	bumpCmd.Flags().BoolVar(&bumpWriteFlag, "write", false, "Also write the version info file")
	rootCmd.AddCommand(bumpCmd)
}

func runBump(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	manual := cfg.Increment()
	if bumpIncrementFlag != "" {
		manual, err = bump.ParseIncrement(bumpIncrementFlag)
		if err != nil {
			return clierrors.NewArgumentErrorWithUsage(err.Error(),
				"autochangelog bump --increment <auto|major|minor|patch>")
		}
	}

	text, err := readCommits(cfg)
	if err != nil {
		return err
	}

	set := commits.Categorize(commits.Parse(text))
	inc := bump.DetermineIncrement(set, cfg.LatestTag, manual)
	info := artifacts.VersionInfo{
		Version:         bump.NextVersion(cfg.LatestTag, inc),
		Increment:       string(inc),
		PreviousVersion: cfg.LatestTag,
	}

	data, err := info.Encode()
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))

	if bumpWriteFlag {
		return newArtifactWriter(cfg).WriteVersionInfo(info)
	}
	return nil
}
