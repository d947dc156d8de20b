package resolver

import (
	"github.com/dshills/domainlens-mcp/pkg/domain"
	"github.com/dshills/domainlens-mcp/pkg/typeref"
)

// NullabilityPolicy decides which annotation sets signal nonnull or nullable. The
// policy is replaceable without touching the resolver.
type NullabilityPolicy interface {
	IsNonnull(annotations domain.AnnotationIndex) bool
	IsNullable(annotations domain.AnnotationIndex) bool
}

// Fully-qualified nonnull annotation names, one per recognized ecosystem.
var defaultNonnullAnnotations = []string{
	"javax.annotation.Nonnull",                          // JSR-305
	"jakarta.annotation.Nonnull",                        // Jakarta
	"org.jetbrains.annotations.NotNull",                 // JetBrains
	"org.jspecify.annotations.NonNull",                  // JSpecify
	"org.checkerframework.checker.nullness.qual.NonNull", // Checker Framework
	"org.eclipse.jdt.annotation.NonNull",                // Eclipse JDT
	"androidx.annotation.NonNull",                       // AndroidX
	"org.springframework.lang.NonNull",                  // Spring
	"lombok.NonNull",                                    // Lombok
}

// Fully-qualified nullable annotation names for the same ecosystems. Lombok has no
// nullable counterpart.
var defaultNullableAnnotations = []string{
	"javax.annotation.Nullable",
	"jakarta.annotation.Nullable",
	"org.jetbrains.annotations.Nullable",
	"org.jspecify.annotations.Nullable",
	"org.checkerframework.checker.nullness.qual.Nullable",
	"org.eclipse.jdt.annotation.Nullable",
	"androidx.annotation.Nullable",
	"org.springframework.lang.Nullable",
}

// DefaultNullabilityPolicy recognizes the nonnull/nullable annotation families of
// the mainstream JVM nullability ecosystems.
type DefaultNullabilityPolicy struct{}

func (DefaultNullabilityPolicy) IsNonnull(annotations domain.AnnotationIndex) bool {
	return annotations.HasAny(defaultNonnullAnnotations...)
}

func (DefaultNullabilityPolicy) IsNullable(annotations domain.AnnotationIndex) bool {
	return annotations.HasAny(defaultNullableAnnotations...)
}

// NullabilityResolver maps an annotation index to a Nullability marker through a
// policy. Resolution order is fixed: nonnull signals win over nullable signals;
// with neither, the result is unspecified.
type NullabilityResolver struct {
	policy NullabilityPolicy
}

// NewNullabilityResolver creates a resolver with the default policy.
func NewNullabilityResolver() *NullabilityResolver {
	return &NullabilityResolver{policy: DefaultNullabilityPolicy{}}
}

// NewNullabilityResolverWithPolicy creates a resolver with a custom policy.
func NewNullabilityResolverWithPolicy(policy NullabilityPolicy) *NullabilityResolver {
	return &NullabilityResolver{policy: policy}
}

// Resolve picks exactly one marker for the given annotations. A nil index yields
// unspecified.
func (r *NullabilityResolver) Resolve(annotations domain.AnnotationIndex) typeref.Nullability {
	if annotations == nil {
		return typeref.NullabilityUnspecified
	}
	if r.policy.IsNonnull(annotations) {
		return typeref.NullabilityNonNull
	}
	if r.policy.IsNullable(annotations) {
		return typeref.NullabilityNullable
	}
	return typeref.NullabilityUnspecified
}
