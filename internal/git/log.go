package git

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"
)

// LogOptions selects the commits to read.
// When both Base and Head are set the range Base..Head is used (commits
// reachable from Head but not from Base). Otherwise the last Count commits
// reachable from Head (or HEAD) are used; Count <= 0 means no limit.
type LogOptions struct {
	Base  string
	Head  string
	Count int
}

// IsRange reports whether the options describe a Base..Head range.
func (o LogOptions) IsRange() bool {
	return o.Base != "" && o.Head != ""
}

// CommitInfo summarizes one commit.
type CommitInfo struct {
	Hash    string
	Subject string
	Author  string
	When    time.Time
	Files   []string
}

// ShortHash returns the abbreviated hash used in listings.
func (c CommitInfo) ShortHash() string {
	if len(c.Hash) > 7 {
		return c.Hash[:7]
	}
	return c.Hash
}

// Listing renders the commit as hash|subject|author|date.
func (c CommitInfo) Listing() string {
	return strings.Join([]string{c.ShortHash(), c.Subject, c.Author, c.When.Format("2006-01-02")}, "|")
}

// selectCommits returns the commits chosen by opts, newest first.
func selectCommits(repo *git.Repository, opts LogOptions) ([]*object.Commit, error) {
	if opts.IsRange() {
		return commitRange(repo, opts.Base, opts.Head)
	}

	from, err := headHash(repo, opts.Head)
	if err != nil {
		return nil, err
	}

	iter, err := repo.Log(&git.LogOptions{From: from, Order: git.LogOrderCommitterTime})
	if err != nil {
		return nil, fmt.Errorf("reading log: %w", err)
	}
	defer iter.Close()

	var out []*object.Commit
	err = iter.ForEach(func(c *object.Commit) error {
		if opts.Count > 0 && len(out) >= opts.Count {
			return storer.ErrStop
		}
		out = append(out, c)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("iterating log: %w", err)
	}

	return out, nil
}

func headHash(repo *git.Repository, head string) (plumbing.Hash, error) {
	if head != "" {
		return resolve(repo, head)
	}
	ref, err := repo.Head()
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("getting HEAD reference: %w", err)
	}
	return ref.Hash(), nil
}

// commitRange returns commits reachable from head but not from base.
func commitRange(repo *git.Repository, base, head string) ([]*object.Commit, error) {
	baseHash, err := resolve(repo, base)
	if err != nil {
		return nil, err
	}
	headHash, err := resolve(repo, head)
	if err != nil {
		return nil, err
	}

	excluded := make(map[plumbing.Hash]bool)
	baseIter, err := repo.Log(&git.LogOptions{From: baseHash})
	if err != nil {
		return nil, fmt.Errorf("reading log from %s: %w", base, err)
	}
	err = baseIter.ForEach(func(c *object.Commit) error {
		excluded[c.Hash] = true
		return nil
	})
	baseIter.Close()
	if err != nil {
		return nil, fmt.Errorf("iterating log from %s: %w", base, err)
	}

	headIter, err := repo.Log(&git.LogOptions{From: headHash})
	if err != nil {
		return nil, fmt.Errorf("reading log from %s: %w", head, err)
	}
	defer headIter.Close()

	var out []*object.Commit
	err = headIter.ForEach(func(c *object.Commit) error {
		if excluded[c.Hash] {
			return nil
		}
		out = append(out, c)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("iterating log from %s: %w", head, err)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Committer.When.After(out[j].Committer.When)
	})
	return out, nil
}

func subject(message string) string {
	first, _, _ := strings.Cut(message, "\n")
	return strings.TrimSpace(first)
}

// LogWithStats renders the selected commits the way
// `git log --pretty=format:"%h %s" --stat` does: one "hash subject" line per
// commit followed by its per-file change stats.
func LogWithStats(ctx context.Context, repoPath string, opts LogOptions) (string, error) {
	repo, err := openRepo(repoPath)
	if err != nil {
		return "", err
	}

	selected, err := selectCommits(repo, opts)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for i, c := range selected {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		if i > 0 {
			b.WriteString("\n")
		}

		fmt.Fprintf(&b, "%s %s\n", c.Hash.String()[:7], subject(c.Message))

		stats, err := c.StatsContext(ctx)
		if err != nil {
			return "", fmt.Errorf("computing stats for %s: %w", c.Hash, err)
		}
		b.WriteString(stats.String())
	}

	return b.String(), nil
}

// Commits returns the selected commits with the files each one touched, newest first.
func Commits(ctx context.Context, repoPath string, opts LogOptions) ([]CommitInfo, error) {
	repo, err := openRepo(repoPath)
	if err != nil {
		return nil, err
	}

	selected, err := selectCommits(repo, opts)
	if err != nil {
		return nil, err
	}

	infos := make([]CommitInfo, 0, len(selected))
	for _, c := range selected {
		stats, err := c.StatsContext(ctx)
		if err != nil {
			return nil, fmt.Errorf("computing stats for %s: %w", c.Hash, err)
		}

		files := make([]string, 0, len(stats))
		for _, s := range stats {
			files = append(files, s.Name)
		}

		infos = append(infos, CommitInfo{
			Hash:    c.Hash.String(),
			Subject: subject(c.Message),
			Author:  c.Author.Name,
			When:    c.Author.When,
			Files:   files,
		})
	}

	return infos, nil
}

// ChangedFiles returns the sorted, de-duplicated set of files touched by commits.
func ChangedFiles(commits []CommitInfo) []string {
	seen := make(map[string]bool)
	var files []string
	for _, c := range commits {
		for _, f := range c.Files {
			if !seen[f] {
				seen[f] = true
				files = append(files, f)
			}
		}
	}
	sort.Strings(files)
	return files
}
