package engine

import "context"

// Check resolves the latest revision for every component and compares
// it against the stored record, without downloading anything or
// touching version records. Components with no stored record are
// always reported as pending.
func (e *Engine) Check(ctx context.Context) *CheckReport {
	report := &CheckReport{}

	for _, name := range e.cfg.Names() {
		comp := e.cfg.Components[name]

		current, err := e.store.Read(name)
		if err != nil {
			e.logger.Warn("unreadable version record, treating as absent", "component", name, "error", err)
			current = nil
		}

		latest, err := e.resolver.Resolve(ctx, comp.SourceURL, comp.ReleasePreferred(), comp.Branch())
		if err != nil {
			e.logger.Error("resolving latest revision failed", "component", name, "error", err)
			report.Errors = append(report.Errors, ComponentError{Name: name, Err: err})
			continue
		}

		if current != nil && current.Identifier == latest.ID {
			continue
		}

		report.Pending = append(report.Pending, PendingUpdate{
			Name:      name,
			Current:   identifier(current),
			Latest:    latest.ID,
			SourceURL: comp.SourceURL,
		})
	}

	return report
}
