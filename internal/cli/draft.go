package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/ariel-frischer/autochangelog/internal/artifacts"
	"github.com/ariel-frischer/autochangelog/internal/changelog"
	"github.com/ariel-frischer/autochangelog/internal/drafter"
	"github.com/ariel-frischer/autochangelog/internal/output"
	"github.com/ariel-frischer/autochangelog/internal/progress"
	"github.com/maxbolgarin/logze/v2"
	"github.com/spf13/cobra"
)

var draftCmd = &cobra.Command{
	Use:   "draft",
	Short: "Draft a changelog entry and update the changelog",
	Long: `Run the full pipeline: categorize the commits file, compute the next
version, load the changelog and the git diff, request an entry from the
configured agent and splice it into the changelog.

Result files for later CI steps:
  changelog_status.txt   NO_UPDATE, UPDATED or ERROR
  new_content.txt        the new entry (on UPDATED)
  version_info.txt       {"version","increment","previousVersion"} (on UPDATED)

A run with no commits, or where the agent answers NO_UPDATE_NEEDED, leaves
the changelog untouched and exits 0.`,
	Example: `  # Typical CI step
  LATEST_TAG=v1.4.0 ANTHROPIC_API_KEY=... autochangelog draft

  # Force a major bump with OpenAI
  VERSION_INCREMENT=major AUTOCHANGELOG_AGENT__TYPE=openai autochangelog draft`,
	Args: noArgs,
	RunE: tracked("draft", runDraft),
}

func init() {
	draftCmd.GroupID = GroupPipeline
	rootCmd.AddCommand(draftCmd)
}

func runDraft(cmd *cobra.Command, _ []string) error {
	log := logze.With("component", "cli")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	writer := newArtifactWriter(cfg)

	// Failures before the drafter starts still leave an ERROR status behind.
	recordFailure := func(err error) error {
		if werr := writer.WriteStatus(artifacts.StatusError); werr != nil {
			log.Err(werr, "cannot record error status")
		}
		return err
	}

	in, err := readInputs(cfg)
	if err != nil {
		return recordFailure(err)
	}
	loader, err := newLoader(cfg)
	if err != nil {
		return recordFailure(err)
	}

	caps := progress.DetectTerminalCapabilities(os.Stderr)
	d := drafter.New(drafterOptions(cfg), drafter.Deps{
		Loader:    loader,
		Diff:      newDiffSource(cfg),
		Generator: &trackedGenerator{cfg: cfg, indicator: progress.NewIndicator(cmd.ErrOrStderr(), caps)},
		Artifacts: writer,
	})

	res, err := d.Run(cmd.Context(), in)
	if err != nil {
		return err
	}

	return printResult(cmd.OutOrStdout(), res)
}

// printResult reports the outcome of a run.
func printResult(out io.Writer, res *drafter.Result) error {
	switch res.State {
	case drafter.StateNoCommits:
		output.PrintNotice(out, "No commits found; changelog unchanged")
		return nil
	case drafter.StateNoUpdateNeeded:
		output.PrintNotice(out, "No changelog update needed")
		return nil
	}

	output.PrintSeparator(out, "new entry")
	if err := changelog.FormatEntry(res.Entry, out, changelog.FormatOptions{Plain: plainFlag}); err != nil {
		return err
	}
	fmt.Fprintln(out)

	plan := res.Plan
	output.PrintVersionSummary(out, output.VersionSummary{
		PreviousVersion: plan.PreviousVersion,
		Version:         plan.Version,
		Increment:       string(plan.Increment),
		Tally:           plan.Categories.Tally(),
	})
	output.PrintSuccess(out, fmt.Sprintf("Updated %s (%s)", res.Document.Path, changelog.Summarize(res.Entry)))
	return nil
}
