// Package resolver converts compiler-native type descriptors (mirrors) into the
// structural TypeRef representation, attaching nullability resolved from use-site
// annotations through a pluggable policy.
//
// Resolution is total: an unrecognized or malformed mirror resolves to
// java.lang.Object rather than failing, so downstream classification always has a
// usable type to work with.
package resolver
