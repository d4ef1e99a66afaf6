// Package fetch executes download plans.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/seralvarez/compup/internal/plan"
	"github.com/seralvarez/compup/internal/source"
)

// Fetcher downloads plan steps one at a time, in order.
type Fetcher struct {
	Client  source.HTTPClient
	Timeout time.Duration // per-download timeout (0 = rely on the client)
}

// ExecError reports the plan step that failed and its cause.
// Steps before Index were written to disk and are not rolled back.
type ExecError struct {
	Index int
	Step  plan.Step
	Err   error
}

func (e *ExecError) Error() string {
	return fmt.Sprintf("downloading %s (step %d): %s", e.Step.Source, e.Index, e.Err)
}

func (e *ExecError) Unwrap() error {
	return e.Err
}

// Execute downloads every step of p into destDir, strictly in plan
// order. The first failure aborts immediately; the caller must not
// commit a version record when an error is returned. Returns the
// destination paths written, relative to destDir.
func (f *Fetcher) Execute(ctx context.Context, p *plan.Plan, destDir string) ([]string, error) {
	written := make([]string, 0, len(p.Steps))

	for i, step := range p.Steps {
		content, err := f.download(ctx, step.URL)
		if err != nil {
			return written, &ExecError{Index: i, Step: step, Err: err}
		}

		dest, err := destPath(destDir, step.Destination)
		if err != nil {
			return written, &ExecError{Index: i, Step: step, Err: err}
		}
		if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
			return written, &ExecError{Index: i, Step: step, Err: fmt.Errorf("creating directory: %w", err)}
		}
		if err := os.WriteFile(dest, content, 0644); err != nil {
			return written, &ExecError{Index: i, Step: step, Err: fmt.Errorf("writing file: %w", err)}
		}

		written = append(written, step.Destination)
	}

	return written, nil
}

func (f *Fetcher) download(ctx context.Context, url string) ([]byte, error) {
	if f.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.Timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("HTTP %d from %s", resp.StatusCode, url)
	}

	content, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response from %s: %w", url, err)
	}
	return content, nil
}

// destPath joins a relative destination onto destDir and rejects paths
// that would land outside it.
func destPath(destDir, dest string) (string, error) {
	if filepath.IsAbs(dest) {
		return "", fmt.Errorf("destination '%s' must be relative", dest)
	}
	joined := filepath.Join(destDir, dest)
	rel, err := filepath.Rel(destDir, joined)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("destination '%s' escapes the component directory", dest)
	}
	return joined, nil
}
