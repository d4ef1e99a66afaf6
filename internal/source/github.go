package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// Release is the GitHub "latest release" payload, reduced to the fields
// the planner needs.
type Release struct {
	TagName string  `json:"tag_name"`
	Name    string  `json:"name"`
	Assets  []Asset `json:"assets"`
}

// Asset is a downloadable release artifact.
type Asset struct {
	Name               string `json:"name"`
	BrowserDownloadURL string `json:"browser_download_url"`
	Size               int64  `json:"size"`
}

// Commit is the GitHub "commit by branch" payload.
type Commit struct {
	SHA string `json:"sha"`
}

func (r *Resolver) latestRelease(ctx context.Context, owner, repo string) (*Release, error) {
	url := fmt.Sprintf("%s/repos/%s/%s/releases/latest", r.apiBase(), owner, repo)

	var rel Release
	if err := r.getJSON(ctx, url, &rel); err != nil {
		return nil, fmt.Errorf("fetching latest release: %w", err)
	}
	if rel.TagName == "" {
		return nil, fmt.Errorf("latest release for %s/%s has no tag name", owner, repo)
	}
	return &rel, nil
}

func (r *Resolver) latestCommit(ctx context.Context, owner, repo, branch string) (*Commit, error) {
	url := fmt.Sprintf("%s/repos/%s/%s/commits/%s", r.apiBase(), owner, repo, branch)

	var commit Commit
	if err := r.getJSON(ctx, url, &commit); err != nil {
		return nil, fmt.Errorf("fetching latest commit on %s: %w", branch, err)
	}
	if commit.SHA == "" {
		return nil, fmt.Errorf("commit on %s/%s@%s has no sha", owner, repo, branch)
	}
	return &commit, nil
}

func (r *Resolver) getJSON(ctx context.Context, url string, out any) error {
	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	client := r.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("HTTP %d from %s", resp.StatusCode, url)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response from %s: %w", url, err)
	}
	return nil
}

func (r *Resolver) apiBase() string {
	if r.APIBase != "" {
		return r.APIBase
	}
	return DefaultAPIBase
}
