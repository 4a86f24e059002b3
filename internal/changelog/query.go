package changelog

import "regexp"

var versionHeaderPattern = regexp.MustCompile(`(?m)^## \[([^\]]+)\]`)

// Versions returns the versions of all "## [x.y.z]" entry headers in document
// order.
func (d *Document) Versions() []string {
	matches := versionHeaderPattern.FindAllStringSubmatch(d.Text, -1)
	versions := make([]string, 0, len(matches))
	for _, m := range matches {
		versions = append(versions, m[1])
	}
	return versions
}

// HasVersion reports whether the document already has an entry for version.
// Accepts both "v1.2.0" and "1.2.0".
func (d *Document) HasVersion(version string) bool {
	normalized := NormalizeVersion(version)
	for _, v := range d.Versions() {
		if NormalizeVersion(v) == normalized {
			return true
		}
	}
	return false
}
