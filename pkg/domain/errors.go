package domain

import "errors"

var (
	// ErrBlankQualifiedName is returned when a domain type is created without a name.
	ErrBlankQualifiedName = errors.New("qualified name cannot be blank")
	// ErrDuplicateType is returned when a model already holds the qualified name.
	ErrDuplicateType = errors.New("type already registered in model")
)
