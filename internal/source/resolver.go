// Package source resolves the latest upstream revision of a tracked
// repository through the GitHub REST API.
package source

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// DefaultAPIBase is the GitHub REST API endpoint.
const DefaultAPIBase = "https://api.github.com"

// shortSHALen is the length of the truncated commit identifier.
const shortSHALen = 8

// Kind distinguishes release-tracked from commit-tracked revisions.
type Kind string

const (
	KindRelease Kind = "release"
	KindCommit  Kind = "commit"
)

// Revision is the canonical "latest revision" of a repository.
// Exactly one of Release or Commit is set, matching Kind.
type Revision struct {
	Kind    Kind
	ID      string // release tag, or first 8 hex chars of the commit SHA
	Release *Release
	Commit  *Commit
}

// HTTPClient abstracts HTTP operations for testing.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Resolver queries the upstream provider for the latest revision.
type Resolver struct {
	Client  HTTPClient
	APIBase string        // defaults to DefaultAPIBase
	Timeout time.Duration // per-request timeout (0 = rely on the client)
}

// ResolveError represents a failure resolving a repository revision.
type ResolveError struct {
	Repo      string
	Operation string
	Err       error
	Hint      string
}

func (e *ResolveError) Error() string {
	msg := fmt.Sprintf("%s: %s failed: %s", e.Repo, e.Operation, e.Err)
	if e.Hint != "" {
		msg += " — " + e.Hint
	}
	return msg
}

func (e *ResolveError) Unwrap() error {
	return e.Err
}

// ParseRepoRef decomposes a repository reference into owner and repo.
// Accepts full GitHub URLs, scheme-less host/owner/repo forms and bare
// "owner/repo" references. A trailing ".git" suffix is tolerated.
func ParseRepoRef(ref string) (owner, repo string, err error) {
	trimmed := strings.TrimPrefix(ref, "https://")
	trimmed = strings.TrimPrefix(trimmed, "http://")
	trimmed = strings.TrimPrefix(trimmed, "github.com/")
	trimmed = strings.Trim(trimmed, "/")

	parts := strings.Split(trimmed, "/")
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid repository reference '%s' — expected owner/repo", ref)
	}
	return parts[0], strings.TrimSuffix(parts[1], ".git"), nil
}

// RawURL builds the raw-content download URL for a file at a revision.
// ref is a release tag or a full commit SHA.
func RawURL(repoRef, ref, srcPath string) (string, error) {
	owner, repo, err := ParseRepoRef(repoRef)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("https://github.com/%s/%s/raw/%s/%s", owner, repo, ref, srcPath), nil
}

// Resolve produces the latest revision descriptor for repoRef.
//
// When preferReleases is set, the latest release is tried first; any
// failure there (no releases, network error, non-2xx) downgrades to
// commit resolution for this attempt. Commit resolution walks a fixed
// candidate branch list: the configured branch, plus "main" when the
// configured branch is "master". There are no other retries.
func (r *Resolver) Resolve(ctx context.Context, repoRef string, preferReleases bool, branchHint string) (*Revision, error) {
	owner, repo, err := ParseRepoRef(repoRef)
	if err != nil {
		return nil, &ResolveError{Repo: repoRef, Operation: "resolve", Err: err}
	}

	if preferReleases {
		rel, relErr := r.latestRelease(ctx, owner, repo)
		if relErr == nil {
			return &Revision{Kind: KindRelease, ID: rel.TagName, Release: rel}, nil
		}
	}

	var lastErr error
	for _, branch := range branchCandidates(branchHint) {
		commit, commitErr := r.latestCommit(ctx, owner, repo, branch)
		if commitErr == nil {
			return &Revision{Kind: KindCommit, ID: shortSHA(commit.SHA), Commit: commit}, nil
		}
		lastErr = commitErr
	}

	return nil, &ResolveError{
		Repo:      repoRef,
		Operation: "resolve",
		Err:       lastErr,
		Hint:      "check that the repository exists and has the expected branch",
	}
}

// branchCandidates returns the ordered branch names to try for commit
// resolution. The list is at most two entries long: "main" is appended
// only when the hint is the historical default "master".
func branchCandidates(hint string) []string {
	switch hint {
	case "", "master":
		return []string{"master", "main"}
	default:
		return []string{hint}
	}
}

func shortSHA(sha string) string {
	if len(sha) <= shortSHALen {
		return sha
	}
	return sha[:shortSHALen]
}
