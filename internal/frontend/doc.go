// Package frontend loads model descriptors into the domain model.
//
// A descriptor is a YAML document exported by the compiler-side extractor. It
// lists domain types with their annotations and properties, and driven ports
// with their method signatures. Property and signature types are written as
// source-level type expressions ("java.util.List<com.example.Order>",
// "OrderId[]", "? extends Number"); a recursive-descent parser turns each
// expression into a type mirror, which the resolver then converts into the
// structural type representation used by the classifiers.
package frontend
