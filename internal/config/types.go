package config

import "sort"

// Config maps component names to their tracking configuration.
// It is loaded once at startup and read-only for the rest of the run.
type Config struct {
	Components map[string]Component
}

// Component describes one tracked upstream component.
type Component struct {
	// SourceURL is the upstream repository reference,
	// e.g. "https://github.com/owner/repo" or "owner/repo".
	SourceURL string `yaml:"source_url"`

	// Files lists the files to download, in order. The order determines
	// both download order and the abort point on failure.
	Files []File `yaml:"files"`

	// UseReleases selects release tracking (default true). When no
	// releases exist the resolver downgrades to commit tracking for
	// that run.
	UseReleases *bool `yaml:"use_releases"`

	// BranchName overrides the branch used for commit resolution.
	BranchName string `yaml:"branch"`
}

// File maps an upstream source path to a destination path relative to
// the component's directory.
type File struct {
	Source      string `yaml:"source"`
	Destination string `yaml:"destination"`
}

// ReleasePreferred reports whether release tracking is enabled.
// Unset means true.
func (c Component) ReleasePreferred() bool {
	return c.UseReleases == nil || *c.UseReleases
}

// Branch returns the configured branch name, defaulting to "master".
func (c Component) Branch() string {
	if c.BranchName == "" {
		return "master"
	}
	return c.BranchName
}

// Names returns all component names in sorted order, so batch
// operations process components deterministically.
func (c *Config) Names() []string {
	names := make([]string, 0, len(c.Components))
	for name := range c.Components {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
