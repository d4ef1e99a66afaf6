// Package engine orchestrates the update pipeline: read the stored
// version record, resolve the latest upstream revision, plan, download
// and commit a new record. Failures are contained per component.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/seralvarez/compup/internal/config"
	"github.com/seralvarez/compup/internal/fetch"
	"github.com/seralvarez/compup/internal/plan"
	"github.com/seralvarez/compup/internal/source"
	"github.com/seralvarez/compup/internal/store"
)

// Engine runs update pipelines over the configured components.
type Engine struct {
	cfg      *config.Config
	resolver *source.Resolver
	fetcher  *fetch.Fetcher
	store    *store.Store
	logger   *slog.Logger
	now      func() time.Time
}

// New creates an Engine. root is the directory components live under.
func New(cfg *config.Config, resolver *source.Resolver, fetcher *fetch.Fetcher, root string, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		cfg:      cfg,
		resolver: resolver,
		fetcher:  fetcher,
		store:    &store.Store{Root: root},
		logger:   logger,
		now:      time.Now,
	}
}

// UpdateOne runs the full pipeline for a single component. All
// expected failures surface in the Result; the process is never
// aborted for them.
func (e *Engine) UpdateOne(ctx context.Context, name string) Result {
	comp, ok := e.cfg.Components[name]
	if !ok {
		err := fmt.Errorf("component '%s' not found in configuration", name)
		e.logger.Error("update failed", "component", name, "error", err)
		return Result{Name: name, Outcome: OutcomeFailed, Err: err}
	}

	e.logger.Info("updating component", "component", name, "source", comp.SourceURL)

	current, err := e.store.Read(name)
	if err != nil {
		// A corrupt record forces a re-download rather than a hard stop.
		e.logger.Warn("unreadable version record, treating as absent", "component", name, "error", err)
		current = nil
	}

	latest, err := e.resolver.Resolve(ctx, comp.SourceURL, comp.ReleasePreferred(), comp.Branch())
	if err != nil {
		e.logger.Error("resolving latest revision failed", "component", name, "error", err)
		return Result{Name: name, Outcome: OutcomeFailed, From: identifier(current), Err: err}
	}

	if !plan.NeedsUpdate(current, latest) {
		e.logger.Info("already up to date", "component", name, "identifier", latest.ID)
		return Result{Name: name, Outcome: OutcomeUpToDate, From: current.Identifier, To: latest.ID}
	}

	e.logger.Info("update available",
		"component", name,
		"from", identifierOr(current, "n/a"),
		"to", latest.ID,
		"kind", string(latest.Kind))

	p, err := plan.Build(comp.SourceURL, latest, comp.Files)
	if err != nil {
		e.logger.Error("building download plan failed", "component", name, "error", err)
		return Result{Name: name, Outcome: OutcomeFailed, From: identifier(current), To: latest.ID, Err: err}
	}

	written, err := e.fetcher.Execute(ctx, p, filepath.Join(e.store.Root, name))
	if err != nil {
		// Files written before the failure stay on disk, but no record
		// is committed, so the next run retries the whole plan.
		e.logger.Error("download failed", "component", name, "error", err)
		return Result{Name: name, Outcome: OutcomeFailed, From: identifier(current), To: latest.ID, Err: err}
	}

	rec := &store.Record{
		IdentifierKind: string(latest.Kind),
		Identifier:     latest.ID,
		SourceURL:      comp.SourceURL,
		LastUpdated:    e.now().UTC().Format(time.RFC3339),
		Files:          prefixed(name, written),
	}
	if err := e.store.Write(name, rec); err != nil {
		e.logger.Error("writing version record failed", "component", name, "error", err)
		return Result{Name: name, Outcome: OutcomeFailed, From: identifier(current), To: latest.ID, Err: err}
	}

	e.logger.Info("component updated", "component", name, "identifier", latest.ID, "files", len(written))
	return Result{Name: name, Outcome: OutcomeUpdated, From: identifier(current), To: latest.ID}
}

// UpdateAll runs UpdateOne for every configured component in sorted
// order. One component's failure never blocks the others.
func (e *Engine) UpdateAll(ctx context.Context) []Result {
	names := e.cfg.Names()
	results := make([]Result, 0, len(names))
	for _, name := range names {
		results = append(results, e.UpdateOne(ctx, name))
	}
	return results
}

// prefixed returns written paths relative to the store root, matching
// how record file lists have always been stored (component dir first).
func prefixed(name string, written []string) []string {
	out := make([]string, len(written))
	for i, w := range written {
		out[i] = filepath.Join(name, w)
	}
	return out
}

func identifier(rec *store.Record) string {
	if rec == nil {
		return ""
	}
	return rec.Identifier
}

func identifierOr(rec *store.Record, fallback string) string {
	if id := identifier(rec); id != "" {
		return id
	}
	return fallback
}
