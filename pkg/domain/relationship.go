package domain

// RelationshipKind is the cardinality of a classified relationship.
type RelationshipKind string

const (
	RelationshipOneToOne  RelationshipKind = "one_to_one"
	RelationshipOneToMany RelationshipKind = "one_to_many"
	RelationshipManyToOne RelationshipKind = "many_to_one"
)

// RelationshipMetadata describes a classified property relationship.
// InterAggregate=true means the reference crosses an aggregate boundary and per
// DDD discipline should be ID-only; false means the reference is embedded or
// internal to the same aggregate.
type RelationshipMetadata struct {
	Kind                RelationshipKind
	TargetQualifiedName string
	InterAggregate      bool
}
