// Package plan decides whether a component needs updating and builds
// the ordered download plan for a revision.
package plan

import (
	"fmt"
	"path"

	"github.com/seralvarez/compup/internal/config"
	"github.com/seralvarez/compup/internal/source"
	"github.com/seralvarez/compup/internal/store"
)

// Step is one file download: where it comes from upstream, where it
// lands relative to the component directory, and the resolved URL.
type Step struct {
	Source      string
	Destination string
	URL         string
}

// Plan is the ordered set of downloads for one update attempt.
// Plans are ephemeral and never persisted.
type Plan struct {
	Revision *source.Revision
	Steps    []Step
}

// NeedsUpdate compares the stored identifier against the latest
// revision. Identifiers are opaque strings; an absent record never
// equals any latest value, forcing an initial download.
func NeedsUpdate(current *store.Record, latest *source.Revision) bool {
	if current == nil {
		return true
	}
	return current.Identifier != latest.ID
}

// Build constructs the download plan for latest, preserving the
// configured file order.
//
// For a release revision, each file first looks for a release asset
// whose name matches the source path's basename; without a match the
// raw-content URL at the release tag is used. Commit revisions always
// use the raw-content URL at the full SHA — commits have no assets.
func Build(repoRef string, latest *source.Revision, files []config.File) (*Plan, error) {
	p := &Plan{Revision: latest, Steps: make([]Step, 0, len(files))}

	for _, f := range files {
		url, err := resolveURL(repoRef, latest, f.Source)
		if err != nil {
			return nil, err
		}
		p.Steps = append(p.Steps, Step{
			Source:      f.Source,
			Destination: f.Destination,
			URL:         url,
		})
	}

	return p, nil
}

func resolveURL(repoRef string, latest *source.Revision, srcPath string) (string, error) {
	switch latest.Kind {
	case source.KindRelease:
		base := path.Base(srcPath)
		for _, asset := range latest.Release.Assets {
			if asset.Name == base {
				return asset.BrowserDownloadURL, nil
			}
		}
		return source.RawURL(repoRef, latest.Release.TagName, srcPath)
	case source.KindCommit:
		return source.RawURL(repoRef, latest.Commit.SHA, srcPath)
	default:
		return "", fmt.Errorf("unknown revision kind '%s'", latest.Kind)
	}
}
