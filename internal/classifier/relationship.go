package classifier

import (
	"fmt"
	"strings"

	"github.com/dshills/domainlens-mcp/internal/config"
	"github.com/dshills/domainlens-mcp/pkg/domain"
	"github.com/dshills/domainlens-mcp/pkg/typeref"
)

// relationshipRule evaluates one signal for a property. It returns conclusive
// evidence and true, or passes with false.
type relationshipRule func(owner *domain.DomainType, prop *domain.DomainProperty, model *domain.Model) (domain.RelationshipEvidence, bool)

// RelationshipClassifier decides whether a property is a relationship to another
// domain type, and of what kind and boundary. Detected boundary violations go to
// the reporter; classification completes regardless.
type RelationshipClassifier struct {
	cfg      *config.Config
	reporter domain.Reporter
	rules    []relationshipRule
}

// NewRelationshipClassifier creates a classifier. Both the config and the
// reporter may be nil.
func NewRelationshipClassifier(cfg *config.Config, reporter domain.Reporter) *RelationshipClassifier {
	c := &RelationshipClassifier{cfg: cfg, reporter: reporter}
	c.rules = []relationshipRule{
		c.associationAnnotation,
		c.configured,
		c.knownTarget,
		c.idNameHeuristic,
		c.bareCollection,
	}
	return c
}

// Classify evaluates the rule chain for one property. The model may be partially
// built; target lookups that miss are not errors.
func (c *RelationshipClassifier) Classify(owner *domain.DomainType, prop *domain.DomainProperty, model *domain.Model) domain.RelationshipEvidence {
	for _, rule := range c.rules {
		if ev, ok := rule(owner, prop, model); ok {
			return ev
		}
	}
	return domain.NoRelationship(fmt.Sprintf("Simple property type: %s", prop.Type.Render()))
}

// associationAnnotation handles an explicit inter-aggregate association marker.
// The target is derived from the declared type name, stripping an ID suffix when
// the type itself is ID-shaped.
func (c *RelationshipClassifier) associationAnnotation(_ *domain.DomainType, prop *domain.DomainProperty, model *domain.Model) (domain.RelationshipEvidence, bool) {
	if !prop.Annotations.Has(AnnotationAssociation) {
		return domain.RelationshipEvidence{}, false
	}

	candidate := associationTargetName(prop.Type)
	target := resolveTarget(model, candidate)

	meta := domain.RelationshipMetadata{
		Kind:                determineRelationshipKind(prop.Type),
		TargetQualifiedName: target,
		InterAggregate:      true,
	}
	detail := fmt.Sprintf("Explicit association to %s", target)
	return domain.RelationshipFound(domain.RelationshipSourceAnnotation, meta, detail), true
}

func (c *RelationshipClassifier) configured(owner *domain.DomainType, prop *domain.DomainProperty, _ *domain.Model) (domain.RelationshipEvidence, bool) {
	override, ok := c.cfg.RelationshipFor(owner.QualifiedName, prop.Name)
	if !ok {
		return domain.RelationshipEvidence{}, false
	}
	detail := fmt.Sprintf("Declared in analysis configuration: %s.%s", owner.SimpleName(), prop.Name)
	return domain.RelationshipFound(domain.RelationshipSourceConfig, override.Metadata(), detail), true
}

// knownTarget inspects the classification of a property type found in the domain
// model. A direct full-object reference to an aggregate root is a boundary
// violation: it is reported as a warning but still classified.
func (c *RelationshipClassifier) knownTarget(owner *domain.DomainType, prop *domain.DomainProperty, model *domain.Model) (domain.RelationshipEvidence, bool) {
	name, ok := typeref.DeclaredName(prop.Type)
	if !ok || typeref.IsCollectionName(name) {
		return domain.RelationshipEvidence{}, false
	}
	target, found := model.FindType(name.String())
	if !found {
		return domain.RelationshipEvidence{}, false
	}

	switch {
	case target.Kind == domain.TypeKindAggregateRoot || target.Annotations.HasAny(strongAggregateAnnotations...):
		c.reportDirectAggregateReference(owner, prop, target)
		meta := domain.RelationshipMetadata{
			Kind:                determineRelationshipKind(prop.Type),
			TargetQualifiedName: target.QualifiedName,
			InterAggregate:      true,
		}
		detail := fmt.Sprintf("Direct reference to aggregate root %s", target.SimpleName())
		return domain.RelationshipFound(domain.RelationshipSourceHeuristic, meta, detail), true

	case target.Kind == domain.TypeKindValueObject || target.Annotations.Has(AnnotationValueObject):
		meta := domain.RelationshipMetadata{
			Kind:                domain.RelationshipOneToOne,
			TargetQualifiedName: target.QualifiedName,
			InterAggregate:      false,
		}
		detail := fmt.Sprintf("Embedded value object %s", target.SimpleName())
		return domain.RelationshipFound(domain.RelationshipSourceAnnotation, meta, detail), true

	case target.Kind == domain.TypeKindEntity || target.Annotations.Has(AnnotationEntity):
		meta := domain.RelationshipMetadata{
			Kind:                determineRelationshipKind(prop.Type),
			TargetQualifiedName: target.QualifiedName,
			InterAggregate:      false,
		}
		detail := fmt.Sprintf("Intra-aggregate entity %s", target.SimpleName())
		return domain.RelationshipFound(domain.RelationshipSourceAnnotation, meta, detail), true

	default:
		// Unclassified domain type: default to intra-aggregate.
		meta := domain.RelationshipMetadata{
			Kind:                determineRelationshipKind(prop.Type),
			TargetQualifiedName: target.QualifiedName,
			InterAggregate:      false,
		}
		detail := fmt.Sprintf("Unclassified domain type %s", target.SimpleName())
		return domain.RelationshipFound(domain.RelationshipSourceHeuristic, meta, detail), true
	}
}

// idNameHeuristic treats a type named *Id or *ID as an identifier reference to
// the entity named by the remaining prefix. The model lookup is best-effort;
// absence does not block the evidence.
func (c *RelationshipClassifier) idNameHeuristic(_ *domain.DomainType, prop *domain.DomainProperty, model *domain.Model) (domain.RelationshipEvidence, bool) {
	name, ok := typeref.DeclaredName(prop.Type)
	if !ok || !hasIDSuffix(name.Simple()) {
		return domain.RelationshipEvidence{}, false
	}

	candidate := stripIDSuffix(name.String())
	target := resolveTarget(model, candidate)

	meta := domain.RelationshipMetadata{
		Kind:                determineRelationshipKind(prop.Type),
		TargetQualifiedName: target,
		InterAggregate:      true,
	}
	detail := fmt.Sprintf("ID-type reference to %s", target)
	return domain.RelationshipFound(domain.RelationshipSourceHeuristic, meta, detail), true
}

// bareCollection recognizes collection-typed properties with no other signal.
// Element-type classification is not performed, so these yield negative evidence
// rather than a guessed relationship.
// TODO: classify collection element types once the frontend exports per-element
// annotations alongside the generic signature.
func (c *RelationshipClassifier) bareCollection(_ *domain.DomainType, prop *domain.DomainProperty, _ *domain.Model) (domain.RelationshipEvidence, bool) {
	if !typeref.IsCollection(prop.Type) {
		return domain.RelationshipEvidence{}, false
	}
	return domain.NoRelationship(fmt.Sprintf("Collection property type: %s", prop.Type.Render())), true
}

func (c *RelationshipClassifier) reportDirectAggregateReference(owner *domain.DomainType, prop *domain.DomainProperty, target *domain.DomainType) {
	if c.reporter == nil {
		return
	}
	c.reporter.Report(domain.Diagnostic{
		Code:     domain.CodeDirectAggregateReference,
		Severity: domain.SeverityWarning,
		Message: fmt.Sprintf("property %q holds a direct reference to aggregate root %s; cross-aggregate references should be ID-only",
			prop.Name, target.QualifiedName),
		OwnerType:  owner.QualifiedName,
		Property:   prop.Name,
		TargetType: target.QualifiedName,
	})
}

// determineRelationshipKind maps a declared type to a cardinality: recognized
// collections are one-to-many, everything else many-to-one. One-to-one is
// reserved for embedded value objects and never produced here.
func determineRelationshipKind(t typeref.TypeRef) domain.RelationshipKind {
	if typeref.IsCollection(t) {
		return domain.RelationshipOneToMany
	}
	return domain.RelationshipManyToOne
}

// associationTargetName derives the association target candidate from a declared
// type: collections contribute their element type, and an ID-shaped name loses
// its suffix.
func associationTargetName(t typeref.TypeRef) string {
	if meta, ok := typeref.CollectionOf(t); ok && meta.Element != nil {
		t = meta.Element
	}
	name, ok := typeref.DeclaredName(t)
	if !ok {
		return t.Render()
	}
	if hasIDSuffix(name.Simple()) {
		return stripIDSuffix(name.String())
	}
	return name.String()
}

// resolveTarget upgrades a candidate name to the model's qualified name when the
// lookup hits; a miss keeps the candidate as-is.
func resolveTarget(model *domain.Model, candidate string) string {
	if t, ok := model.FindType(candidate); ok {
		return t.QualifiedName
	}
	return candidate
}

func hasIDSuffix(simple string) bool {
	if len(simple) <= 2 {
		return false
	}
	return strings.HasSuffix(simple, "Id") || strings.HasSuffix(simple, "ID")
}

func stripIDSuffix(name string) string {
	return name[:len(name)-2]
}
