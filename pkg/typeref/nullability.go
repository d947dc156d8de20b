package typeref

// Nullability is the tri-state nullability marker attached to a TypeRef.
type Nullability string

const (
	NullabilityUnspecified Nullability = "unspecified"
	NullabilityNonNull     Nullability = "nonnull"
	NullabilityNullable    Nullability = "nullable"
)

// Valid reports whether n is one of the three recognized markers.
func (n Nullability) Valid() bool {
	switch n {
	case NullabilityUnspecified, NullabilityNonNull, NullabilityNullable:
		return true
	default:
		return false
	}
}
