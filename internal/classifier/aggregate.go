package classifier

import (
	"fmt"
	"strings"

	"github.com/dshills/domainlens-mcp/internal/config"
	"github.com/dshills/domainlens-mcp/pkg/domain"
	"github.com/dshills/domainlens-mcp/pkg/typeref"
)

// aggregateRule evaluates one signal. It returns conclusive evidence and true,
// or passes with false.
type aggregateRule func(t *domain.DomainType, ports []domain.Port) (domain.AggregateRootEvidence, bool)

// AggregateRootClassifier decides whether a domain type is an aggregate root by
// walking a fixed chain of rules, strongest signal first.
type AggregateRootClassifier struct {
	cfg   *config.Config
	rules []aggregateRule
}

// NewAggregateRootClassifier creates a classifier. The config may be nil; the
// configuration rule then never matches.
func NewAggregateRootClassifier(cfg *config.Config) *AggregateRootClassifier {
	c := &AggregateRootClassifier{cfg: cfg}
	c.rules = []aggregateRule{
		c.preClassified,
		c.explicitAnnotation,
		c.configured,
		c.repositoryPort,
		c.packageConvention,
		c.namingConvention,
	}
	return c
}

// Classify evaluates the rule chain for a type. It is total: every input yields
// evidence, negative when no signal applies.
func (c *AggregateRootClassifier) Classify(t *domain.DomainType, ports []domain.Port) domain.AggregateRootEvidence {
	for _, rule := range c.rules {
		if ev, ok := rule(t, ports); ok {
			return ev
		}
	}
	return domain.NoAggregateRoot()
}

// preClassified honors a classification already settled upstream. Only entities
// and unclassified types remain eligible for the later rules; value objects and
// identifiers are rejected outright.
func (c *AggregateRootClassifier) preClassified(t *domain.DomainType, _ []domain.Port) (domain.AggregateRootEvidence, bool) {
	switch t.Kind {
	case domain.TypeKindAggregateRoot:
		return domain.AggregateRootFound(domain.AggregateEvidenceExplicitAnnotation, "Strong aggregate marker present"), true
	case domain.TypeKindValueObject, domain.TypeKindIdentifier:
		return domain.NoAggregateRoot(), true
	default:
		return domain.AggregateRootEvidence{}, false
	}
}

func (c *AggregateRootClassifier) explicitAnnotation(t *domain.DomainType, _ []domain.Port) (domain.AggregateRootEvidence, bool) {
	for _, name := range strongAggregateAnnotations {
		if t.Annotations.Has(name) {
			detail := fmt.Sprintf("Strong aggregate marker present: @%s", shortAnnotationName(name))
			return domain.AggregateRootFound(domain.AggregateEvidenceExplicitAnnotation, detail), true
		}
	}
	return domain.AggregateRootEvidence{}, false
}

func (c *AggregateRootClassifier) configured(t *domain.DomainType, _ []domain.Port) (domain.AggregateRootEvidence, bool) {
	if c.cfg.IsAggregateRoot(t.QualifiedName) {
		return domain.AggregateRootFound(domain.AggregateEvidenceConfiguration, "Declared as aggregate root in analysis configuration"), true
	}
	return domain.AggregateRootEvidence{}, false
}

// repositoryPort requires a weak persistence marker together with a port whose
// method signatures reference the type. The weak marker alone is insufficient.
func (c *AggregateRootClassifier) repositoryPort(t *domain.DomainType, ports []domain.Port) (domain.AggregateRootEvidence, bool) {
	if !t.Annotations.HasAny(weakEntityAnnotations...) {
		return domain.AggregateRootEvidence{}, false
	}
	for _, port := range ports {
		if portReferences(port, t) {
			return domain.AggregateRootFound(domain.AggregateEvidenceRepositoryPort, "JPA @Entity + repository port"), true
		}
	}
	return domain.AggregateRootEvidence{}, false
}

func (c *AggregateRootClassifier) packageConvention(t *domain.DomainType, _ []domain.Port) (domain.AggregateRootEvidence, bool) {
	if t.HasPackageSegment("aggregate", "aggregates") {
		detail := fmt.Sprintf("Package segment convention: %s", t.PackagePath())
		return domain.AggregateRootFound(domain.AggregateEvidencePackageConvention, detail), true
	}
	return domain.AggregateRootEvidence{}, false
}

func (c *AggregateRootClassifier) namingConvention(t *domain.DomainType, _ []domain.Port) (domain.AggregateRootEvidence, bool) {
	simple := t.SimpleName()
	if strings.HasSuffix(simple, "AggregateRoot") || strings.HasSuffix(simple, "Aggregate") {
		detail := fmt.Sprintf("Type name suffix convention: %s", simple)
		return domain.AggregateRootFound(domain.AggregateEvidenceNamingConvention, detail), true
	}
	return domain.AggregateRootEvidence{}, false
}

// portReferences reports whether any method on the port mentions the type in a
// parameter or return position. Matching is deliberately loose and structural:
// wrappers such as Optional<T> or List<T> around the type still count.
func portReferences(port domain.Port, t *domain.DomainType) bool {
	for _, method := range port.Methods {
		if refMentions(method.Returns, t) {
			return true
		}
		for _, param := range method.Parameters {
			if refMentions(param, t) {
				return true
			}
		}
	}
	return false
}

func refMentions(ref typeref.TypeRef, t *domain.DomainType) bool {
	if ref == nil {
		return false
	}
	if name, ok := typeref.DeclaredName(ref); ok {
		if name.String() == t.QualifiedName || name.Simple() == t.SimpleName() {
			return true
		}
	}
	switch r := ref.(type) {
	case typeref.Array:
		return refMentions(r.Component(), t)
	case typeref.Parameterized:
		for _, arg := range r.TypeArguments() {
			if refMentions(arg, t) {
				return true
			}
		}
	}
	return false
}

func shortAnnotationName(qualified string) string {
	if idx := strings.LastIndex(qualified, "."); idx >= 0 {
		return qualified[idx+1:]
	}
	return qualified
}
