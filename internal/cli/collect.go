package cli

import (
	"fmt"
	"os"
	"strings"

	clierrors "github.com/ariel-frischer/autochangelog/internal/errors"
	"github.com/ariel-frischer/autochangelog/internal/git"
	"github.com/ariel-frischer/autochangelog/internal/output"
	"github.com/maxbolgarin/logze/v2"
	"github.com/spf13/cobra"
)

var collectCmd = &cobra.Command{
	Use:   "collect",
	Short: "Write the commits and changed-files inputs from the local repository",
	Long: `Read commits from the repository at repo_path and write the input files
used by draft, preview and bump:
  recent_commits.txt   one hash|subject|author|date line per commit
  changed_files.txt    sorted paths touched by those commits

On a pull_request event with PR_BASE_SHA and PR_HEAD_SHA set, the commits
in base..head are used; otherwise the last commit_count commits.`,
	Example: `  # Last 10 commits of the current checkout
  autochangelog collect

  # Commits of a pull request
  GITHUB_EVENT_NAME=pull_request PR_BASE_SHA=abc PR_HEAD_SHA=def autochangelog collect`,
	Args: noArgs,
	RunE: tracked("collect", runCollect),
}

func init() {
	collectCmd.GroupID = GroupPipeline
	rootCmd.AddCommand(collectCmd)
}

func runCollect(cmd *cobra.Command, _ []string) error {
	log := logze.With("component", "cli")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	root, err := git.RepositoryRoot(cfg.RepoPath)
	if err != nil {
		return clierrors.NotARepository(cfg.RepoPath)
	}

	opts := cfg.LogOptions()
	infos, err := git.Commits(cmd.Context(), cfg.RepoPath, opts)
	if err != nil {
		return clierrors.WrapWithMessage(err, clierrors.Input, "reading commits")
	}

	lines := make([]string, len(infos))
	for i, c := range infos {
		lines[i] = c.Listing()
	}
	files := git.ChangedFiles(infos)

	if err := writeLines(cfg.Files.Commits, lines); err != nil {
		return err
	}
	if cfg.Files.ChangedFiles != "" {
		if err := writeLines(cfg.Files.ChangedFiles, files); err != nil {
			return err
		}
	}

	log.Debug("commits collected", "repository", root, "range", opts.IsRange(), "commits", len(infos), "files", len(files))
	output.PrintSuccess(cmd.OutOrStdout(),
		fmt.Sprintf("Wrote %d commits to %s and %d files to %s",
			len(infos), cfg.Files.Commits, len(files), cfg.Files.ChangedFiles))
	return nil
}

// writeLines writes one entry per line; an empty list yields an empty file.
func writeLines(path string, lines []string) error {
	content := strings.Join(lines, "\n")
	if content != "" {
		content += "\n"
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return clierrors.WrapWithMessage(err, clierrors.Runtime, "writing "+path)
	}
	return nil
}
