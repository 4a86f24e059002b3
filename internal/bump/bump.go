// Package bump resolves the semantic-version increment for a batch of
// categorized commits and applies it to the current release tag.
package bump

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/ariel-frischer/autochangelog/internal/commits"
	"github.com/maxbolgarin/logze/v2"
)

// Increment is a semantic-version bump.
type Increment string

const (
	Major Increment = "major"
	Minor Increment = "minor"
	Patch Increment = "patch"

	// Auto asks DetermineIncrement to derive the bump from the commits.
	Auto Increment = "auto"
)

// FallbackVersion is returned by NextVersion when the current version cannot be bumped.
const FallbackVersion = "0.1.0"

// ParseIncrement validates a manual override. The empty string is treated as Auto.
func ParseIncrement(s string) (Increment, error) {
	inc := Increment(strings.ToLower(strings.TrimSpace(s)))
	switch inc {
	case "":
		return Auto, nil
	case Auto, Major, Minor, Patch:
		return inc, nil
	default:
		return "", fmt.Errorf("invalid version increment %q (expected: auto, major, minor, patch)", s)
	}
}

// DetermineIncrement returns manual unchanged when it is set to anything other
// than "auto". Otherwise a breaking commit forces major, a feature forces
// minor, and everything else (including no commits at all) is a patch.
// currentVersion does not influence the result.
func DetermineIncrement(set commits.CategorySet, currentVersion string, manual Increment) Increment {
	if manual != "" && manual != Auto {
		return manual
	}

	if set.Count(commits.Breaking) > 0 {
		return Major
	}
	if set.Count(commits.Feat) > 0 {
		return Minor
	}

	return Patch
}

// NextVersion strips an optional "v" prefix from current and applies inc.
// An invalid version or an unknown increment is logged and yields FallbackVersion.
func NextVersion(current string, inc Increment) string {
	clean := strings.TrimPrefix(strings.TrimSpace(current), "v")

	v, err := semver.StrictNewVersion(clean)
	if err != nil {
		logze.Warn("invalid semver, using fallback version", "version", clean, "fallback", FallbackVersion, "error", err.Error())
		return FallbackVersion
	}

	next, err := apply(*v, inc)
	if err != nil {
		logze.Warn("cannot bump version, using fallback version", "version", clean, "increment", string(inc), "fallback", FallbackVersion, "error", err.Error())
		return FallbackVersion
	}

	return next.String()
}

func apply(v semver.Version, inc Increment) (semver.Version, error) {
	switch inc {
	case Major:
		return v.IncMajor(), nil
	case Minor:
		return v.IncMinor(), nil
	case Patch:
		return v.IncPatch(), nil
	default:
		return v, fmt.Errorf("unknown increment %q", inc)
	}
}
