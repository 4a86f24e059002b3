package commits

import (
	"fmt"
	"strings"
)

// Category is a conventional-commit bucket.
type Category string

const (
	Feat     Category = "feat"
	Fix      Category = "fix"
	Docs     Category = "docs"
	Style    Category = "style"
	Refactor Category = "refactor"
	Test     Category = "test"
	Chore    Category = "chore"
	Breaking Category = "breaking"
	Other    Category = "other"
)

// Categories returns every bucket in reporting order.
func Categories() []Category {
	return []Category{Feat, Fix, Docs, Style, Refactor, Test, Chore, Breaking, Other}
}

// rule pairs a predicate over the lower-cased message with the bucket it selects.
type rule struct {
	match    func(msg string) bool
	category Category
}

// rules are evaluated in order and the first match wins. Breaking-change
// detection comes first so it dominates every prefix check.
var rules = []rule{
	{containsAny("breaking", "!:"), Breaking},
	{hasAnyPrefix("feat:", "feature:"), Feat},
	{hasAnyPrefix("fix:", "bugfix:"), Fix},
	{hasAnyPrefix("docs:", "doc:"), Docs},
	{hasAnyPrefix("style:"), Style},
	{hasAnyPrefix("refactor:"), Refactor},
	{hasAnyPrefix("test:"), Test},
	{hasAnyPrefix("chore:"), Chore},
}

func containsAny(needles ...string) func(string) bool {
	return func(msg string) bool {
		for _, n := range needles {
			if strings.Contains(msg, n) {
				return true
			}
		}
		return false
	}
}

func hasAnyPrefix(prefixes ...string) func(string) bool {
	return func(msg string) bool {
		for _, p := range prefixes {
			if strings.HasPrefix(msg, p) {
				return true
			}
		}
		return false
	}
}

// Classify returns the bucket for a single commit message.
func Classify(message string) Category {
	msg := strings.ToLower(message)
	for _, r := range rules {
		if r.match(msg) {
			return r.category
		}
	}
	return Other
}

// CategorySet maps each bucket to its commits in input order.
type CategorySet map[Category][]Commit

// Categorize places every commit in exactly one bucket. All buckets are
// present in the result, empty ones as nil slices.
func Categorize(commits []Commit) CategorySet {
	set := make(CategorySet, len(Categories()))
	for _, c := range Categories() {
		set[c] = nil
	}

	for _, c := range commits {
		cat := Classify(c.Message)
		set[cat] = append(set[cat], c)
	}

	return set
}

// Count returns the number of commits in a bucket.
func (s CategorySet) Count(c Category) int {
	return len(s[c])
}

// Total returns the number of categorized commits.
func (s CategorySet) Total() int {
	total := 0
	for _, commits := range s {
		total += len(commits)
	}
	return total
}

// TallyItem is the commit count of one non-empty bucket.
type TallyItem struct {
	Category Category
	Count    int
}

// Tally returns the non-empty buckets in reporting order.
func (s CategorySet) Tally() []TallyItem {
	var items []TallyItem
	for _, c := range Categories() {
		if n := s.Count(c); n > 0 {
			items = append(items, TallyItem{Category: c, Count: n})
		}
	}
	return items
}

// Summary renders the tally for humans, e.g. "feat: 2 commits, fix: 1 commits".
func (s CategorySet) Summary() string {
	tally := s.Tally()
	parts := make([]string, len(tally))
	for i, item := range tally {
		parts[i] = fmt.Sprintf("%s: %d commits", item.Category, item.Count)
	}
	return strings.Join(parts, ", ")
}

// Counts returns the count of every bucket, including empty ones, keyed by name.
// Used for structured log fields.
func (s CategorySet) Counts() map[string]int {
	counts := make(map[string]int, len(Categories()))
	for _, c := range Categories() {
		counts[string(c)] = s.Count(c)
	}
	return counts
}
