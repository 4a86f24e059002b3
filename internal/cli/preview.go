package cli

import (
	"fmt"

	"github.com/ariel-frischer/autochangelog/internal/drafter"
	"github.com/ariel-frischer/autochangelog/internal/output"
	"github.com/spf13/cobra"
)

var previewSystemFlag bool

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Show the prompt and computed version without calling the agent",
	Long: `Run everything up to the generation request and print the computed
version and the prompt that would be sent. Nothing is written and no API
key is needed.`,
	Example: `  # Inspect the prompt for the current commits file
  autochangelog preview

  # Include the system prompt
  autochangelog preview --system`,
	Args: noArgs,
	RunE: tracked("preview", runPreview),
}

func init() {
	previewCmd.GroupID = GroupPipeline
	previewCmd.Flags().BoolVar(&previewSystemFlag, "system", false, "Also print the system prompt")
	rootCmd.AddCommand(previewCmd)
}

func runPreview(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	in, err := readInputs(cfg)
	if err != nil {
		return err
	}
	loader, err := newLoader(cfg)
	if err != nil {
		return err
	}
	loader.ReadOnly = true

	d := drafter.New(drafterOptions(cfg), drafter.Deps{
		Loader: loader,
		Diff:   newDiffSource(cfg),
	})
	plan, err := d.Prepare(cmd.Context(), in)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if !plan.HasCommits() {
		output.PrintNotice(out, "No commits found; nothing would be generated")
		return nil
	}

	output.PrintVersionSummary(out, output.VersionSummary{
		PreviousVersion: plan.PreviousVersion,
		Version:         plan.Version,
		Increment:       string(plan.Increment),
		Tally:           plan.Categories.Tally(),
	})
	fmt.Fprintf(out, "Changelog: %s (%s, %d lines)\n", plan.Document.Path, plan.Document.Origin, plan.Document.LineCount())

	if previewSystemFlag {
		output.PrintSeparator(out, "system prompt")
		fmt.Fprintln(out, plan.Prompt.System)
	}
	output.PrintSeparator(out, "prompt")
	fmt.Fprintln(out, plan.Prompt.User)
	return nil
}
