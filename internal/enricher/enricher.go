package enricher

import (
	"context"
	"runtime"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dshills/domainlens-mcp/internal/classifier"
	"github.com/dshills/domainlens-mcp/internal/config"
	"github.com/dshills/domainlens-mcp/pkg/domain"
)

// Stats summarizes one enrichment pass.
type Stats struct {
	TypesExamined  int
	AggregateRoots int
	Relationships  int
	Diagnostics    int
	Duration       time.Duration
}

// Report carries the full outcome of one pass: statistics, the evidence behind
// every classification, and the diagnostics raised along the way.
type Report struct {
	Stats Stats

	// AggregateEvidence maps type qualified names to aggregate-root evidence.
	AggregateEvidence map[string]domain.AggregateRootEvidence

	// RelationshipEvidence maps type qualified name, then property name, to
	// relationship evidence. Negative evidence is included so callers can see
	// why a property was not classified.
	RelationshipEvidence map[string]map[string]domain.RelationshipEvidence

	// Diagnostics lists every violation raised during the pass.
	Diagnostics []domain.Diagnostic
}

// Enricher applies both classifiers to a domain model.
type Enricher struct {
	aggregates    *classifier.AggregateRootClassifier
	relationships *classifier.RelationshipClassifier
	collector     *forwardingReporter
}

// New creates an enricher. Config and reporter may both be nil.
func New(cfg *config.Config, reporter domain.Reporter) *Enricher {
	collector := &forwardingReporter{next: reporter}
	return &Enricher{
		aggregates:    classifier.NewAggregateRootClassifier(cfg),
		relationships: classifier.NewRelationshipClassifier(cfg, collector),
		collector:     collector,
	}
}

// Enrich upgrades type kinds and populates relationship metadata in place.
// Aggregate-root classification runs first so relationship classification sees
// finalized kinds; relationships are then classified in parallel across types.
func (e *Enricher) Enrich(ctx context.Context, model *domain.Model, ports []domain.Port) (*Report, error) {
	start := time.Now()
	report := &Report{
		Stats:                Stats{TypesExamined: model.Len()},
		AggregateEvidence:    make(map[string]domain.AggregateRootEvidence),
		RelationshipEvidence: make(map[string]map[string]domain.RelationshipEvidence),
	}
	e.collector.reset()

	for _, t := range model.Types() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		ev := e.aggregates.Classify(t, ports)
		report.AggregateEvidence[t.QualifiedName] = ev
		if ev.IsAggregateRoot() {
			t.Kind = domain.TypeKindAggregateRoot
		}
		if t.Kind == domain.TypeKindAggregateRoot {
			report.Stats.AggregateRoots++
		}
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for _, t := range model.Types() {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			evidence := make(map[string]domain.RelationshipEvidence, len(t.Properties))
			found := 0
			for _, prop := range t.Properties {
				ev := e.relationships.Classify(t, prop, model)
				evidence[prop.Name] = ev
				if ev.HasRelationship() {
					meta := ev.Metadata()
					prop.Relationship = &meta
					found++
				}
			}

			mu.Lock()
			report.RelationshipEvidence[t.QualifiedName] = evidence
			report.Stats.Relationships += found
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report.Diagnostics = e.collector.collected()
	report.Stats.Diagnostics = len(report.Diagnostics)
	report.Stats.Duration = time.Since(start)
	return report, nil
}

// forwardingReporter collects diagnostics for the report and forwards them to
// the wrapped reporter, which may be nil.
type forwardingReporter struct {
	next domain.Reporter

	mu    sync.Mutex
	diags []domain.Diagnostic
}

func (r *forwardingReporter) Report(d domain.Diagnostic) {
	r.mu.Lock()
	r.diags = append(r.diags, d)
	r.mu.Unlock()

	if r.next != nil {
		r.next.Report(d)
	}
}

func (r *forwardingReporter) reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.diags = nil
}

func (r *forwardingReporter) collected() []domain.Diagnostic {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Diagnostic, len(r.diags))
	copy(out, r.diags)
	return out
}
