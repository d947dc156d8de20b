package domain

import (
	"strings"

	"github.com/dshills/domainlens-mcp/pkg/typeref"
)

// TypeKind classifies a domain type's DDD role.
type TypeKind string

const (
	TypeKindUnspecified   TypeKind = "unspecified"
	TypeKindEntity        TypeKind = "entity"
	TypeKindAggregateRoot TypeKind = "aggregate_root"
	TypeKindValueObject   TypeKind = "value_object"
	TypeKindIdentifier    TypeKind = "identifier"
)

// DomainProperty is a single property of a domain type. Relationship is nil until
// the enricher populates it.
type DomainProperty struct {
	Name         string
	Type         typeref.TypeRef
	Annotations  AnnotationSet
	Relationship *RelationshipMetadata
}

// DomainType is a named type in the analyzed model.
type DomainType struct {
	QualifiedName string
	Kind          TypeKind
	Annotations   AnnotationSet
	Properties    []*DomainProperty
}

// NewDomainType creates a domain type with an unspecified kind.
func NewDomainType(qualifiedName string) (*DomainType, error) {
	if strings.TrimSpace(qualifiedName) == "" {
		return nil, ErrBlankQualifiedName
	}
	return &DomainType{
		QualifiedName: qualifiedName,
		Kind:          TypeKindUnspecified,
		Annotations:   NewAnnotationSet(),
	}, nil
}

// SimpleName returns the last dot-separated segment of the qualified name.
func (t *DomainType) SimpleName() string {
	if idx := strings.LastIndex(t.QualifiedName, "."); idx >= 0 {
		return t.QualifiedName[idx+1:]
	}
	return t.QualifiedName
}

// PackagePath returns the package portion of the qualified name, or "".
func (t *DomainType) PackagePath() string {
	if idx := strings.LastIndex(t.QualifiedName, "."); idx >= 0 {
		return t.QualifiedName[:idx]
	}
	return ""
}

// HasPackageSegment reports whether any exact dot-separated package segment
// matches one of the given names. Matching is case-sensitive and never matches a
// substring of an unrelated segment.
func (t *DomainType) HasPackageSegment(segments ...string) bool {
	for _, part := range strings.Split(t.PackagePath(), ".") {
		for _, want := range segments {
			if part == want {
				return true
			}
		}
	}
	return false
}

// Model is the read-only view of the (possibly partially built) domain model that
// classifiers consult for target-type lookups.
type Model struct {
	order []string
	types map[string]*DomainType
}

// NewModel creates an empty model.
func NewModel() *Model {
	return &Model{types: make(map[string]*DomainType)}
}

// AddType registers a type under its qualified name.
func (m *Model) AddType(t *DomainType) error {
	if _, exists := m.types[t.QualifiedName]; exists {
		return ErrDuplicateType
	}
	m.types[t.QualifiedName] = t
	m.order = append(m.order, t.QualifiedName)
	return nil
}

// FindType looks up a type by qualified name. When no exact match exists the
// lookup falls back to a unique simple-name match, since property type references
// may be recorded unqualified by the frontend.
func (m *Model) FindType(name string) (*DomainType, bool) {
	if t, ok := m.types[name]; ok {
		return t, true
	}

	var found *DomainType
	for _, qualified := range m.order {
		t := m.types[qualified]
		if t.SimpleName() == name {
			if found != nil {
				// Ambiguous simple name; treat as a miss.
				return nil, false
			}
			found = t
		}
	}
	if found == nil {
		return nil, false
	}
	return found, true
}

// Types returns all types in registration order.
func (m *Model) Types() []*DomainType {
	out := make([]*DomainType, 0, len(m.order))
	for _, name := range m.order {
		out = append(out, m.types[name])
	}
	return out
}

// Len returns the number of registered types.
func (m *Model) Len() int { return len(m.types) }
