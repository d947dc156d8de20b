package typeref

// Erasure computes the erased form of a ref: primitives and classes are returned
// unchanged, arrays erase their component recursively, a parameterized type erases
// to its raw type, and wildcards and type variables erase to java.lang.Object.
// Nullability is preserved on the erased ref. Erasure is idempotent.
func Erasure(t TypeRef) TypeRef {
	switch tt := t.(type) {
	case Primitive, Class:
		return t
	case Array:
		return Array{component: Erasure(tt.component), nullability: tt.nullability}
	case Parameterized:
		return tt.raw.WithNullability(tt.nullability)
	case Wildcard:
		return ObjectClass().WithNullability(tt.nullability)
	case TypeVariable:
		return ObjectClass().WithNullability(tt.nullability)
	default:
		return t
	}
}
