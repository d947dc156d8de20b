package typeref

import "strings"

// StructuralEqual reports whether a and b have the same shape and recursively equal
// children, ignoring nullability at every level. Refs of different shapes are never
// structurally equal.
func StructuralEqual(a, b TypeRef) bool {
	return equal(a, b, false)
}

// DeepEqual reports whether a and b are structurally equal and carry the same
// nullability at every level.
func DeepEqual(a, b TypeRef) bool {
	return equal(a, b, true)
}

func equal(a, b TypeRef, withNullability bool) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if withNullability && a.Nullability() != b.Nullability() {
		return false
	}

	switch at := a.(type) {
	case Primitive:
		bt, ok := b.(Primitive)
		return ok && at.name == bt.name
	case Class:
		bt, ok := b.(Class)
		return ok && at.name == bt.name
	case Array:
		bt, ok := b.(Array)
		return ok && equal(at.component, bt.component, withNullability)
	case Parameterized:
		bt, ok := b.(Parameterized)
		if !ok || at.raw.name != bt.raw.name || len(at.args) != len(bt.args) {
			return false
		}
		if withNullability && at.raw.nullability != bt.raw.nullability {
			return false
		}
		for i := range at.args {
			if !equal(at.args[i], bt.args[i], withNullability) {
				return false
			}
		}
		return true
	case Wildcard:
		bt, ok := b.(Wildcard)
		return ok &&
			equal(at.upper, bt.upper, withNullability) &&
			equal(at.lower, bt.lower, withNullability)
	case TypeVariable:
		bt, ok := b.(TypeVariable)
		if !ok || at.name != bt.name || len(at.bounds) != len(bt.bounds) {
			return false
		}
		for i := range at.bounds {
			if !equal(at.bounds[i], bt.bounds[i], withNullability) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// shapeRank defines the total ordering between shapes.
func shapeRank(t TypeRef) int {
	switch t.(type) {
	case Primitive:
		return 0
	case Class:
		return 1
	case Array:
		return 2
	case Parameterized:
		return 3
	case Wildcard:
		return 4
	case TypeVariable:
		return 5
	default:
		return 6
	}
}

// Compare imposes a deterministic total order over refs: first by shape, then by
// rendered text. It is consistent with StructuralEqual for refs of equal shape and
// identical rendering.
func Compare(a, b TypeRef) int {
	if a == nil || b == nil {
		switch {
		case a == nil && b == nil:
			return 0
		case a == nil:
			return -1
		default:
			return 1
		}
	}
	if ra, rb := shapeRank(a), shapeRank(b); ra != rb {
		return ra - rb
	}
	return strings.Compare(a.Render(), b.Render())
}

// IsPrimitive reports whether t is a Primitive ref.
func IsPrimitive(t TypeRef) bool {
	_, ok := t.(Primitive)
	return ok
}

// IsClass reports whether t is a plain Class ref.
func IsClass(t TypeRef) bool {
	_, ok := t.(Class)
	return ok
}

// IsArray reports whether t is an Array ref.
func IsArray(t TypeRef) bool {
	_, ok := t.(Array)
	return ok
}

// IsParameterized reports whether t is a Parameterized ref.
func IsParameterized(t TypeRef) bool {
	_, ok := t.(Parameterized)
	return ok
}

// IsVoid reports whether t is the void primitive.
func IsVoid(t TypeRef) bool {
	p, ok := t.(Primitive)
	return ok && p.name == "void"
}

// DeclaredName returns the qualified-or-simple declared name behind t: the class
// name for Class refs and the raw class name for Parameterized refs. The second
// return is false for every other shape.
func DeclaredName(t TypeRef) (TypeName, bool) {
	switch tt := t.(type) {
	case Class:
		return tt.name, true
	case Parameterized:
		return tt.raw.name, true
	default:
		return "", false
	}
}
