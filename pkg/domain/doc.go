// Package domain holds the domain model that the classification engine reads and
// enriches: types and their properties, ports, annotation indexes, relationship
// metadata, and the evidence records that explain every classification outcome.
//
// # Evidence
//
// Classification never returns a bare boolean. An evidence value carries the
// outcome plus the reasoning behind it: which signal produced it (explicit
// annotation, configuration, repository port, convention, heuristic) and an
// optional human-readable detail. Illegal evidence states are unrepresentable
// through the constructors: positive aggregate evidence always names a signal,
// positive relationship evidence never claims "not a relationship", and reading
// relationship metadata off negative evidence fails fast.
//
// # Lifecycle
//
// Everything here is an immutable value object created once per classification
// call. There is no caching and no identity beyond value equality.
package domain
