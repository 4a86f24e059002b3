// Package artifacts writes the small result files that later CI steps read:
// the run status, the new entry and the version record.
package artifacts

import (
	"fmt"
	"os"
	"path/filepath"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Status is the outcome of a run as recorded in the status file.
type Status string

const (
	StatusNoUpdate Status = "NO_UPDATE"
	StatusUpdated  Status = "UPDATED"
	StatusError    Status = "ERROR"
)

// VersionInfo is the version record written after a successful update.
type VersionInfo struct {
	Version         string `json:"version"`
	Increment       string `json:"increment"`
	PreviousVersion string `json:"previousVersion"`
}

// Paths are the output file locations.
type Paths struct {
	Status      string `koanf:"status" yaml:"status"`
	NewContent  string `koanf:"new_content" yaml:"new_content"`
	VersionInfo string `koanf:"version_info" yaml:"version_info"`
}

// DefaultPaths returns the file names later pipeline steps expect.
func DefaultPaths() Paths {
	return Paths{
		Status:      "changelog_status.txt",
		NewContent:  "new_content.txt",
		VersionInfo: "version_info.txt",
	}
}

// Writer writes run artifacts relative to a base directory.
type Writer struct {
	dir   string
	paths Paths
}

// NewWriter creates a Writer. Relative paths are resolved against dir.
func NewWriter(dir string, paths Paths) *Writer {
	return &Writer{dir: dir, paths: paths}
}

// WriteStatus records the run outcome.
func (w *Writer) WriteStatus(status Status) error {
	return w.write(w.paths.Status, []byte(status))
}

// WriteNewContent records the spliced entry without the insertion marker.
func (w *Writer) WriteNewContent(entry string) error {
	return w.write(w.paths.NewContent, []byte(entry))
}

// Encode returns the JSON form of the record.
func (v VersionInfo) Encode() ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encoding version info: %w", err)
	}
	return data, nil
}

// WriteVersionInfo records the computed version as JSON.
func (w *Writer) WriteVersionInfo(info VersionInfo) error {
	data, err := info.Encode()
	if err != nil {
		return err
	}
	return w.write(w.paths.VersionInfo, data)
}

func (w *Writer) path(name string) string {
	if filepath.IsAbs(name) || w.dir == "" {
		return name
	}
	return filepath.Join(w.dir, name)
}

func (w *Writer) write(name string, data []byte) error {
	if name == "" {
		return nil
	}
	path := w.path(name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
