package domain

import "sync"

// Severity grades a diagnostic. Boundary violations are warnings: classification
// always completes and returns usable evidence even when it flags one.
type Severity string

const (
	SeverityWarning Severity = "warning"
)

// Diagnostic codes are stable identifiers for detected modeling violations.
const (
	// CodeDirectAggregateReference flags a full-object reference to another
	// aggregate root where DDD discipline requires an ID-only reference.
	CodeDirectAggregateReference = "DDD-W001"
)

// Diagnostic is a single reported modeling violation.
type Diagnostic struct {
	Code       string
	Severity   Severity
	Message    string
	OwnerType  string // qualified name of the type holding the property
	Property   string
	TargetType string
}

// Reporter receives diagnostics as a fire-and-forget side channel. A nil reporter
// is always permitted; violations then go unreported but classification results
// are unaffected.
type Reporter interface {
	Report(d Diagnostic)
}

// CollectingReporter accumulates diagnostics in memory. Safe for concurrent use.
type CollectingReporter struct {
	mu    sync.Mutex
	diags []Diagnostic
}

// NewCollectingReporter creates an empty collecting reporter.
func NewCollectingReporter() *CollectingReporter {
	return &CollectingReporter{}
}

func (r *CollectingReporter) Report(d Diagnostic) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.diags = append(r.diags, d)
}

// Diagnostics returns a copy of everything reported so far.
func (r *CollectingReporter) Diagnostics() []Diagnostic {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Diagnostic, len(r.diags))
	copy(out, r.diags)
	return out
}
