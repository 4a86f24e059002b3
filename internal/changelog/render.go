package changelog

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// entryDateLayout renders dates as "October 2026".
const entryDateLayout = "January 2006"

// EntryHeader returns the first line of a changelog entry, e.g.
// "## [1.5.0] - October 2026".
func EntryHeader(version string, date time.Time) string {
	return fmt.Sprintf("## [%s] - %s", NormalizeVersion(version), date.Format(entryDateLayout))
}

// Save writes the full document to path, creating parent directories.
func Save(path string, doc *Document) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating changelog directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(doc.Text), 0o644); err != nil {
		return fmt.Errorf("writing changelog %s: %w", path, err)
	}

	return nil
}
