// Package typeref provides the structural, compiler-independent representation of
// types used throughout the semantic model.
//
// A TypeRef is a closed sum over six shapes: Primitive, Class, Array, Parameterized,
// Wildcard, and TypeVariable. Every shape-dependent operation (rendering, equality,
// erasure, nullability rewriting) is expressed over that closed set, so adding a new
// shape is a compile-time-checked exercise rather than a runtime type-switch hunt.
//
// # Basic Usage
//
//	str, _ := typeref.NewClass("java.lang.String")
//	list, _ := typeref.NewClass("java.util.List")
//	ref, _ := typeref.NewParameterized(list, str)
//
//	ref.Render() // "java.util.List<java.lang.String>"
//
// # Equality
//
// Two refs are structurally equal iff they have the same shape and recursively equal
// children, ignoring nullability. They are deeply equal iff they are structurally
// equal and carry the same nullability at every level. DeepEqual implies
// StructuralEqual; the converse does not hold.
//
// # Nullability
//
// Nullability is attached to a ref, not part of its structure. WithNullability is a
// pure transform and returns the receiver unchanged when the target nullability
// already matches, so unchanged refs never churn.
//
// All types in this package are immutable value objects; they are safe for
// unrestricted concurrent use.
package typeref
