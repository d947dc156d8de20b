// Package enricher orchestrates semantic enrichment of a domain model.
//
// Enrichment runs in two phases. Phase one walks every type sequentially and
// upgrades eligible entities to aggregate roots, so that phase two sees
// finalized type kinds. Phase two classifies every property's relationship, in
// parallel across types: classification of one property never depends on the
// classification outcome of another property, only on the already-finalized
// kinds of other types.
package enricher
