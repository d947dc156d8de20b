// Package classifier infers DDD roles and relationships from annotations, naming
// conventions, package layout, and structural signals.
//
// Two classifiers are provided, each a priority-ordered chain of guarded rules.
// Every rule either returns conclusive evidence or passes to the next rule, so
// the precedence order stays explicit and each rule is testable in isolation.
//
// The AggregateRootClassifier decides whether a domain type is an aggregate
// root. Signals, strongest first: a pre-existing aggregate-root classification,
// an explicit aggregate marker annotation, a declaration in the analysis
// configuration, a persistence-entity marker backed by a matching repository
// port, an aggregate package segment, and an Aggregate/AggregateRoot name
// suffix.
//
// The RelationshipClassifier decides whether a property references another
// domain type and, if so, the relationship's cardinality and whether it crosses
// an aggregate boundary. Direct full-object references to aggregate roots are
// flagged as warnings through the injected reporter but still classified.
//
// Both classifiers are pure and stateless: no side effects beyond the
// fire-and-forget reporter, no shared mutable state, safe for unrestricted
// concurrent use.
package classifier
