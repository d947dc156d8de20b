package resolver

import (
	"github.com/dshills/domainlens-mcp/pkg/typeref"
)

// Resolver converts mirrors into TypeRefs.
type Resolver struct {
	nullability *NullabilityResolver
}

// New creates a resolver with the default nullability policy.
func New() *Resolver {
	return &Resolver{nullability: NewNullabilityResolver()}
}

// NewWithPolicy creates a resolver using a custom nullability policy.
func NewWithPolicy(policy NullabilityPolicy) *Resolver {
	return &Resolver{nullability: NewNullabilityResolverWithPolicy(policy)}
}

// Resolve converts a mirror into a TypeRef, recursively. It never fails: nil or
// unrecognized mirrors resolve to java.lang.Object so the caller always receives
// a usable type. Nullability is resolved from the mirror's use-site annotations
// and attached to the produced ref.
func (r *Resolver) Resolve(m *Mirror) typeref.TypeRef {
	if m == nil {
		return typeref.ObjectClass()
	}
	return r.resolve(m).WithNullability(r.nullability.Resolve(m.Annotations))
}

func (r *Resolver) resolve(m *Mirror) typeref.TypeRef {
	switch m.Kind {
	case MirrorKindVoid:
		ref, err := typeref.NewPrimitive("void")
		if err != nil {
			return typeref.ObjectClass()
		}
		return ref

	case MirrorKindPrimitive:
		ref, err := typeref.NewPrimitive(m.Name)
		if err != nil {
			return typeref.ObjectClass()
		}
		return ref

	case MirrorKindDeclared:
		return r.resolveDeclared(m)

	case MirrorKindArray:
		ref, err := typeref.NewArray(r.Resolve(m.Component))
		if err != nil {
			return typeref.ObjectClass()
		}
		return ref

	case MirrorKindTypeVariable:
		return r.resolveTypeVariable(m)

	case MirrorKindWildcard:
		return r.resolveWildcard(m)

	default:
		// Unrecognized native kinds degrade to Object rather than failing.
		return typeref.ObjectClass()
	}
}

func (r *Resolver) resolveDeclared(m *Mirror) typeref.TypeRef {
	raw, err := typeref.NewClass(m.Name)
	if err != nil {
		return typeref.ObjectClass()
	}
	if len(m.TypeArgs) == 0 {
		return raw
	}

	args := make([]typeref.TypeRef, len(m.TypeArgs))
	for i, arg := range m.TypeArgs {
		args[i] = r.Resolve(arg)
	}
	ref, err := typeref.NewParameterized(raw, args...)
	if err != nil {
		return raw
	}
	return ref
}

func (r *Resolver) resolveTypeVariable(m *Mirror) typeref.TypeRef {
	// The implicit Object bound stays implicit: an upper bound of exactly
	// java.lang.Object produces an unbounded variable.
	var bounds []typeref.TypeRef
	if m.UpperBound != nil && !(m.UpperBound.Kind == MirrorKindDeclared && m.UpperBound.Name == typeref.ObjectName) {
		bounds = append(bounds, r.Resolve(m.UpperBound))
	}

	ref, err := typeref.NewTypeVariable(m.Name, bounds...)
	if err != nil {
		return typeref.ObjectClass()
	}
	return ref
}

func (r *Resolver) resolveWildcard(m *Mirror) typeref.TypeRef {
	var upper, lower typeref.TypeRef
	if m.UpperBound != nil {
		upper = r.Resolve(m.UpperBound)
	}
	if m.LowerBound != nil {
		lower = r.Resolve(m.LowerBound)
	}

	ref, err := typeref.NewWildcard(upper, lower)
	if err != nil {
		return typeref.ObjectClass()
	}
	return ref
}
