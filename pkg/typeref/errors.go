package typeref

import "errors"

// Construction invariant errors. These indicate frontend or programmer mistakes and
// are never produced by well-formed input.
var (
	ErrBlankName          = errors.New("type name cannot be blank")
	ErrQualifiedPrimitive = errors.New("primitive name cannot be qualified")
	ErrUnknownPrimitive   = errors.New("unknown primitive name")
	ErrQualifiedVariable  = errors.New("type variable name cannot be qualified")
	ErrNoTypeArguments    = errors.New("parameterized type requires at least one type argument")
	ErrNilTypeArgument    = errors.New("type argument cannot be nil")
	ErrNilComponent       = errors.New("array component type cannot be nil")
	ErrBothWildcardBounds = errors.New("wildcard cannot have both an upper and a lower bound")
)
