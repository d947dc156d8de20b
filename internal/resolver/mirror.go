package resolver

import "github.com/dshills/domainlens-mcp/pkg/domain"

// MirrorKind is the native kind of a type descriptor, mirroring what a compiler
// frontend reports for a type use.
type MirrorKind string

const (
	MirrorKindVoid         MirrorKind = "void"
	MirrorKindPrimitive    MirrorKind = "primitive"
	MirrorKindDeclared     MirrorKind = "declared"
	MirrorKindArray        MirrorKind = "array"
	MirrorKindTypeVariable MirrorKind = "type_variable"
	MirrorKindWildcard     MirrorKind = "wildcard"
)

// Mirror is the compiler-independent equivalent of a type mirror: the raw
// descriptor handed over by the frontend before resolution.
type Mirror struct {
	Kind MirrorKind

	// Name holds the primitive keyword, the declared qualified name, or the type
	// variable's display name, depending on Kind.
	Name string

	// Component is the array component descriptor.
	Component *Mirror

	// TypeArgs are the type arguments of a declared type; empty for raw types.
	TypeArgs []*Mirror

	// UpperBound is a type variable's declared bound or a wildcard's
	// extends-bound. LowerBound is a wildcard's super-bound.
	UpperBound *Mirror
	LowerBound *Mirror

	// Annotations are the use-site annotations consulted for nullability.
	Annotations domain.AnnotationSet
}
