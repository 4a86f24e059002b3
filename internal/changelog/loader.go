package changelog

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/maxbolgarin/logze/v2"
)

// Loader reads the changelog that a run amends.
//
// The remote source is preferred so that a run in a stale checkout amends
// the latest published history; failures there fall back to the local file,
// and a missing local file starts a new document.
type Loader struct {
	Path   string
	Remote Source
	// ReadOnly skips creating the parent directory of a missing changelog.
	ReadOnly bool

	log logze.Logger
}

// NewLoader creates a Loader for the changelog at path. remote may be nil.
func NewLoader(path string, remote Source) *Loader {
	return &Loader{
		Path:   path,
		Remote: remote,
		log:    logze.With("component", "changelog"),
	}
}

// Load returns the full changelog. Only a local read failure other than a
// missing file is returned as an error.
func (l *Loader) Load(ctx context.Context) (*Document, error) {
	if l.Remote != nil {
		text, err := l.Remote.Fetch(ctx)
		if err == nil {
			l.log.Info("using changelog from remote source", "source", l.Remote.Name(), "path", l.Path)
			doc := NewDocument(l.Path, text, OriginRemote)
			doc.Source = l.Remote.Name()
			return doc, nil
		}
		l.log.Warn("cannot read changelog from remote source, falling back to local file",
			"source", l.Remote.Name(), "error", err.Error())
	}

	data, err := os.ReadFile(l.Path)
	if err == nil {
		l.log.Debug("using local changelog", "path", l.Path)
		return NewDocument(l.Path, string(data), OriginLocal), nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("reading changelog %s: %w", l.Path, err)
	}

	l.log.Info("no changelog found, starting a new one", "path", l.Path)
	if !l.ReadOnly {
		if err := os.MkdirAll(filepath.Dir(l.Path), 0o755); err != nil {
			return nil, fmt.Errorf("creating changelog directory: %w", err)
		}
	}

	return NewDocument(l.Path, "", OriginNew), nil
}
