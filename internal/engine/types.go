package engine

// Outcome classifies the result of one component's update attempt.
type Outcome string

const (
	OutcomeUpdated  Outcome = "updated"
	OutcomeUpToDate Outcome = "up-to-date"
	OutcomeFailed   Outcome = "failed"
)

// Result is the outcome of updating one component. Expected failures
// (missing configuration, unresolvable revision, failed download) are
// carried here rather than aborting the run.
type Result struct {
	Name    string
	Outcome Outcome
	From    string // previous identifier, empty for a first install
	To      string // identifier after the attempt (resolved latest)
	Err     error
}

// OK reports whether the component ended the run in a good state.
func (r Result) OK() bool {
	return r.Outcome != OutcomeFailed
}

// PendingUpdate describes a component whose stored identifier differs
// from the resolved latest revision.
type PendingUpdate struct {
	Name      string
	Current   string // empty when no record is stored
	Latest    string
	SourceURL string
}

// ComponentError associates a failure with a component during a batch
// operation.
type ComponentError struct {
	Name string
	Err  error
}

func (e ComponentError) Error() string {
	return e.Name + ": " + e.Err.Error()
}

func (e ComponentError) Unwrap() error {
	return e.Err
}

// CheckReport is the outcome of a read-only update check.
type CheckReport struct {
	Pending []PendingUpdate
	Errors  []ComponentError
}
