package domain

import "fmt"

// AggregateEvidenceKind names the signal that established (or failed to
// establish) aggregate-root status.
type AggregateEvidenceKind string

const (
	AggregateEvidenceExplicitAnnotation AggregateEvidenceKind = "explicit_annotation"
	AggregateEvidenceRepositoryPort     AggregateEvidenceKind = "repository_port"
	AggregateEvidencePackageConvention  AggregateEvidenceKind = "package_convention"
	AggregateEvidenceNamingConvention   AggregateEvidenceKind = "naming_convention"
	AggregateEvidenceConfiguration      AggregateEvidenceKind = "configuration"
	AggregateEvidenceNone               AggregateEvidenceKind = "none"
)

// AggregateRootEvidence is the immutable outcome of aggregate-root classification.
// Positive evidence always names a non-none signal; the constructors enforce this.
type AggregateRootEvidence struct {
	isAggregateRoot bool
	kind            AggregateEvidenceKind
	detail          string
}

// AggregateRootFound creates positive evidence. Passing AggregateEvidenceNone is a
// logic error and fails fast.
func AggregateRootFound(kind AggregateEvidenceKind, detail string) AggregateRootEvidence {
	if kind == AggregateEvidenceNone {
		panic("domain: positive aggregate-root evidence requires a non-none kind")
	}
	return AggregateRootEvidence{isAggregateRoot: true, kind: kind, detail: detail}
}

// NoAggregateRoot creates negative evidence with kind none and no detail.
func NoAggregateRoot() AggregateRootEvidence {
	return AggregateRootEvidence{kind: AggregateEvidenceNone}
}

func (e AggregateRootEvidence) IsAggregateRoot() bool       { return e.isAggregateRoot }
func (e AggregateRootEvidence) Kind() AggregateEvidenceKind { return e.kind }
func (e AggregateRootEvidence) Detail() string              { return e.detail }

// RelationshipSource names the signal behind a relationship classification.
type RelationshipSource string

const (
	// RelationshipSourceAnnotation is an explicit DDD marker on the property.
	RelationshipSourceAnnotation RelationshipSource = "jmolecules_annotation"
	// RelationshipSourceConfig is a declared override from the analysis config.
	RelationshipSourceConfig RelationshipSource = "yaml_config"
	// RelationshipSourceHeuristic is a structural or naming inference.
	RelationshipSourceHeuristic RelationshipSource = "heuristic"
	// RelationshipSourceNone marks negative evidence.
	RelationshipSourceNone RelationshipSource = "not_a_relationship"
)

// RelationshipEvidence is the immutable outcome of relationship classification.
type RelationshipEvidence struct {
	hasRelationship bool
	source          RelationshipSource
	metadata        RelationshipMetadata
	detail          string
}

// RelationshipFound creates positive evidence. Passing RelationshipSourceNone is a
// programming error and fails fast.
func RelationshipFound(source RelationshipSource, metadata RelationshipMetadata, detail string) RelationshipEvidence {
	if source == RelationshipSourceNone {
		panic("domain: positive relationship evidence cannot have source not_a_relationship")
	}
	return RelationshipEvidence{
		hasRelationship: true,
		source:          source,
		metadata:        metadata,
		detail:          detail,
	}
}

// NoRelationship creates negative evidence with a diagnostic detail string.
func NoRelationship(detail string) RelationshipEvidence {
	return RelationshipEvidence{source: RelationshipSourceNone, detail: detail}
}

func (e RelationshipEvidence) HasRelationship() bool      { return e.hasRelationship }
func (e RelationshipEvidence) Source() RelationshipSource { return e.source }
func (e RelationshipEvidence) Detail() string             { return e.detail }

// Metadata returns the relationship metadata. Calling it on negative evidence is a
// misuse error and fails fast rather than returning a default.
func (e RelationshipEvidence) Metadata() RelationshipMetadata {
	if !e.hasRelationship {
		panic(fmt.Sprintf("domain: metadata requested on negative relationship evidence (%s)", e.detail))
	}
	return e.metadata
}
