package drafter

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ariel-frischer/autochangelog/internal/artifacts"
	"github.com/ariel-frischer/autochangelog/internal/bump"
	"github.com/ariel-frischer/autochangelog/internal/changelog"
	"github.com/ariel-frischer/autochangelog/internal/commits"
	"github.com/ariel-frischer/autochangelog/internal/prompt"
	"github.com/maxbolgarin/logze/v2"
	"golang.org/x/sync/errgroup"
)

// Options configures a run.
type Options struct {
	// Target is a free-text label included in the prompt.
	Target string
	// LatestTag is the current version, "v"-prefixed or bare.
	LatestTag string
	// Increment overrides the derived increment unless it is bump.Auto.
	Increment bump.Increment
	// ExcerptLines bounds the changelog history sent for context.
	ExcerptLines int
	Prompt       prompt.Options
	// Now returns the entry date; defaults to time.Now.
	Now func() time.Time
}

// Deps are the collaborators of a run. Diff may be nil.
type Deps struct {
	Loader    ChangelogLoader
	Diff      DiffSource
	Generator Generator
	Artifacts *artifacts.Writer
}

// Plan is everything computed before the generation request.
type Plan struct {
	Commits         []commits.Commit
	Categories      commits.CategorySet
	Increment       bump.Increment
	PreviousVersion string
	Version         string
	// Document is the full changelog the entry will be spliced into.
	Document *changelog.Document
	Diff     string
	Prompt   prompt.Prompt
}

// HasCommits reports whether there is anything to describe.
func (p *Plan) HasCommits() bool {
	return len(p.Commits) > 0
}

// Result is the outcome of a run.
type Result struct {
	State State
	// Plan is nil when the run failed before planning completed.
	Plan *Plan
	// Entry is the spliced entry, set only in StateUpdated.
	Entry string
	// Document is the saved changelog, set only in StateUpdated.
	Document *changelog.Document
}

// Drafter runs changelog updates.
type Drafter struct {
	opts  Options
	deps  Deps
	state State
	log   logze.Logger
}

// New creates a Drafter.
func New(opts Options, deps Deps) *Drafter {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Increment == "" {
		opts.Increment = bump.Auto
	}
	return &Drafter{
		opts:  opts,
		deps:  deps,
		state: StateNotStarted,
		log:   logze.With("component", "drafter"),
	}
}

// State returns the current state of the run.
func (d *Drafter) State() State {
	return d.state
}

func (d *Drafter) transition(to State) {
	d.log.Debug("state transition", "from", string(d.state), "to", string(to))
	d.state = to
}

// Prepare analyzes the commits and assembles the prompt without calling the
// generator or writing anything. With no commits the returned plan is empty.
func (d *Drafter) Prepare(ctx context.Context, in Inputs) (*Plan, error) {
	parsed := commits.Parse(in.Commits)
	if len(parsed) == 0 {
		d.log.Info("no commits found to analyze")
		return &Plan{}, nil
	}

	set := commits.Categorize(parsed)
	inc := bump.DetermineIncrement(set, d.opts.LatestTag, d.opts.Increment)
	version := bump.NextVersion(d.opts.LatestTag, inc)

	d.log.Info("commits analyzed",
		"commits", len(parsed),
		"categories", set.Summary(),
		"counts", set.Counts(),
		"increment", string(inc),
		"previous_version", d.opts.LatestTag,
		"version", version,
	)

	doc, diff, err := d.loadContext(ctx)
	if err != nil {
		return nil, err
	}

	if doc.HasVersion(version) {
		d.log.Warn("changelog already has an entry for this version", "version", version)
	}

	excerpt := doc.Excerpt(d.opts.ExcerptLines)
	d.log.Debug("changelog context", "origin", string(doc.Origin), "lines", strings.Count(excerpt, "\n")+1)

	p, err := prompt.Build(prompt.Context{
		Target:       d.opts.Target,
		LatestTag:    d.opts.LatestTag,
		CommitCount:  len(parsed),
		Commits:      in.Commits,
		ChangedFiles: in.ChangedFiles,
		Diff:         diff,
		Changelog:    excerpt,
		NewVersion:   version,
		Categories:   set,
		Date:         d.opts.Now(),
	}, d.opts.Prompt)
	if err != nil {
		return nil, fmt.Errorf("building prompt: %w", err)
	}

	return &Plan{
		Commits:         parsed,
		Categories:      set,
		Increment:       inc,
		PreviousVersion: d.opts.LatestTag,
		Version:         version,
		Document:        doc,
		Diff:            diff,
		Prompt:          p,
	}, nil
}

// loadContext loads the changelog and the diff concurrently. A diff failure
// is logged and yields an empty diff.
func (d *Drafter) loadContext(ctx context.Context) (*changelog.Document, string, error) {
	var (
		doc  *changelog.Document
		diff string
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		doc, err = d.deps.Loader.Load(gctx)
		if err != nil {
			return fmt.Errorf("loading changelog: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		if d.deps.Diff == nil {
			return nil
		}
		var err error
		diff, err = d.deps.Diff.Diff(gctx)
		if err != nil {
			d.log.Warn("cannot get git diff, continuing without it", "error", err.Error())
			diff = ""
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, "", err
	}
	return doc, diff, nil
}

// Run executes the whole update. On failure the ERROR status is recorded
// (best effort) and the error is returned.
func (d *Drafter) Run(ctx context.Context, in Inputs) (*Result, error) {
	res, err := d.run(ctx, in)
	if err != nil {
		d.transition(StateError)
		d.log.Err(err, "changelog update failed")
		if werr := d.deps.Artifacts.WriteStatus(StateError.Status()); werr != nil {
			d.log.Err(werr, "cannot record error status")
		}
		if res == nil {
			res = &Result{}
		}
		res.State = StateError
		return res, err
	}
	return res, nil
}

func (d *Drafter) run(ctx context.Context, in Inputs) (*Result, error) {
	plan, err := d.Prepare(ctx, in)
	if err != nil {
		return nil, err
	}
	res := &Result{Plan: plan}

	if !plan.HasCommits() {
		return d.finishNoUpdate(res, StateNoCommits)
	}
	d.transition(StateAnalyzed)

	d.log.Info("requesting changelog entry", "version", plan.Version, "prompt_bytes", len(plan.Prompt.User))
	d.transition(StateRequested)
	raw, err := d.deps.Generator.Generate(ctx, plan.Prompt.System, plan.Prompt.User)
	if err != nil {
		return res, fmt.Errorf("generating changelog entry: %w", err)
	}

	resp, err := changelog.ParseResponse(raw)
	if err != nil {
		return res, err
	}
	if resp.NoUpdate {
		d.log.Info("generator determined no changelog update is needed")
		return d.finishNoUpdate(res, StateNoUpdateNeeded)
	}
	if resp.Discarded != "" {
		d.log.Warn("discarded text before the entry header", "discarded", resp.Discarded)
	}
	if !resp.HasHeader() {
		d.log.Warn("generated entry has no version header", "version", plan.Version)
	}

	doc := plan.Document.Splice(resp.Entry)
	if err := changelog.Save(doc.Path, doc); err != nil {
		return res, err
	}
	if err := d.deps.Artifacts.WriteNewContent(resp.Entry); err != nil {
		return res, err
	}
	if err := d.deps.Artifacts.WriteStatus(StateUpdated.Status()); err != nil {
		return res, err
	}
	if err := d.deps.Artifacts.WriteVersionInfo(artifacts.VersionInfo{
		Version:         plan.Version,
		Increment:       string(plan.Increment),
		PreviousVersion: plan.PreviousVersion,
	}); err != nil {
		return res, err
	}

	d.transition(StateUpdated)
	d.log.Info("changelog updated", "path", doc.Path, "version", plan.Version)

	res.State = StateUpdated
	res.Entry = resp.Entry
	res.Document = doc
	return res, nil
}

func (d *Drafter) finishNoUpdate(res *Result, state State) (*Result, error) {
	if err := d.deps.Artifacts.WriteStatus(state.Status()); err != nil {
		return res, err
	}
	d.transition(state)
	res.State = state
	return res, nil
}
