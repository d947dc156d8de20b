package typeref

import (
	"fmt"
	"strings"
)

// ObjectName is the qualified name every unbounded shape erases to.
const ObjectName = "java.lang.Object"

// primitiveNames is the closed set of primitive type keywords.
var primitiveNames = map[string]struct{}{
	"void": {}, "boolean": {}, "byte": {}, "short": {},
	"int": {}, "long": {}, "float": {}, "double": {}, "char": {},
}

// TypeRef is the structural representation of a type reference. It is a closed sum;
// the only implementations live in this package.
type TypeRef interface {
	// Render produces syntactically valid type-declaration text for this ref.
	Render() string
	// Nullability returns the marker attached to this ref.
	Nullability() Nullability
	// WithNullability returns a copy carrying the given marker. The receiver is
	// returned unchanged when the marker already matches.
	WithNullability(n Nullability) TypeRef

	isTypeRef()
}

// Primitive is a language primitive such as int or boolean.
type Primitive struct {
	name        string
	nullability Nullability
}

// NewPrimitive creates a Primitive ref. The name must be one of the nine primitive
// keywords and must not be qualified.
func NewPrimitive(name string) (Primitive, error) {
	if strings.TrimSpace(name) == "" {
		return Primitive{}, ErrBlankName
	}
	if strings.Contains(name, ".") {
		return Primitive{}, fmt.Errorf("%w: %q", ErrQualifiedPrimitive, name)
	}
	if _, ok := primitiveNames[name]; !ok {
		return Primitive{}, fmt.Errorf("%w: %q", ErrUnknownPrimitive, name)
	}
	return Primitive{name: name, nullability: NullabilityUnspecified}, nil
}

func (p Primitive) Name() string             { return p.name }
func (p Primitive) Render() string           { return p.name }
func (p Primitive) Nullability() Nullability { return p.nullability }

func (p Primitive) WithNullability(n Nullability) TypeRef {
	if p.nullability == n {
		return p
	}
	p.nullability = n
	return p
}

func (Primitive) isTypeRef() {}

// Class is a declared type without structural children. The name may be qualified
// or simple.
type Class struct {
	name        TypeName
	nullability Nullability
}

// NewClass creates a Class ref from a qualified or simple name.
func NewClass(name string) (Class, error) {
	tn, err := NewTypeName(name)
	if err != nil {
		return Class{}, err
	}
	return Class{name: tn, nullability: NullabilityUnspecified}, nil
}

// ObjectClass returns the java.lang.Object class ref.
func ObjectClass() Class {
	return Class{name: TypeName(ObjectName), nullability: NullabilityUnspecified}
}

func (c Class) Name() TypeName           { return c.name }
func (c Class) Render() string           { return c.name.String() }
func (c Class) Nullability() Nullability { return c.nullability }

func (c Class) WithNullability(n Nullability) TypeRef {
	if c.nullability == n {
		return c
	}
	c.nullability = n
	return c
}

func (Class) isTypeRef() {}

// Array is an array reference. Nullability applies to the array reference itself,
// not to its elements.
type Array struct {
	component   TypeRef
	nullability Nullability
}

// NewArray creates an Array ref over the given component type.
func NewArray(component TypeRef) (Array, error) {
	if component == nil {
		return Array{}, ErrNilComponent
	}
	return Array{component: component, nullability: NullabilityUnspecified}, nil
}

func (a Array) Component() TypeRef       { return a.component }
func (a Array) Render() string           { return a.component.Render() + "[]" }
func (a Array) Nullability() Nullability { return a.nullability }

func (a Array) WithNullability(n Nullability) TypeRef {
	if a.nullability == n {
		return a
	}
	a.nullability = n
	return a
}

func (Array) isTypeRef() {}

// Parameterized is a generic type application: a raw class plus an ordered,
// non-empty list of type arguments.
type Parameterized struct {
	raw         Class
	args        []TypeRef
	nullability Nullability
}

// NewParameterized creates a Parameterized ref. At least one type argument is
// required and none may be nil.
func NewParameterized(raw Class, args ...TypeRef) (Parameterized, error) {
	if len(args) == 0 {
		return Parameterized{}, ErrNoTypeArguments
	}
	copied := make([]TypeRef, len(args))
	for i, arg := range args {
		if arg == nil {
			return Parameterized{}, ErrNilTypeArgument
		}
		copied[i] = arg
	}
	return Parameterized{raw: raw, args: copied, nullability: NullabilityUnspecified}, nil
}

func (p Parameterized) Raw() Class { return p.raw }

// TypeArguments returns a copy of the ordered argument list.
func (p Parameterized) TypeArguments() []TypeRef {
	out := make([]TypeRef, len(p.args))
	copy(out, p.args)
	return out
}

func (p Parameterized) Render() string {
	rendered := make([]string, len(p.args))
	for i, arg := range p.args {
		rendered[i] = arg.Render()
	}
	return p.raw.Render() + "<" + strings.Join(rendered, ", ") + ">"
}

func (p Parameterized) Nullability() Nullability { return p.nullability }

func (p Parameterized) WithNullability(n Nullability) TypeRef {
	if p.nullability == n {
		return p
	}
	p.nullability = n
	return p
}

func (Parameterized) isTypeRef() {}

// Wildcard is a bounded or unbounded wildcard. At most one of the two bounds may be
// present; both absent means the unbounded "?".
type Wildcard struct {
	upper       TypeRef
	lower       TypeRef
	nullability Nullability
}

// NewWildcard creates a Wildcard ref. Passing both bounds is a construction error.
func NewWildcard(upper, lower TypeRef) (Wildcard, error) {
	if upper != nil && lower != nil {
		return Wildcard{}, ErrBothWildcardBounds
	}
	return Wildcard{upper: upper, lower: lower, nullability: NullabilityUnspecified}, nil
}

// UnboundedWildcard returns the bare "?" wildcard.
func UnboundedWildcard() Wildcard {
	return Wildcard{nullability: NullabilityUnspecified}
}

// UpperBound returns the extends-bound, or nil.
func (w Wildcard) UpperBound() TypeRef { return w.upper }

// LowerBound returns the super-bound, or nil.
func (w Wildcard) LowerBound() TypeRef { return w.lower }

func (w Wildcard) Render() string {
	switch {
	case w.upper != nil:
		return "? extends " + w.upper.Render()
	case w.lower != nil:
		return "? super " + w.lower.Render()
	default:
		return "?"
	}
}

func (w Wildcard) Nullability() Nullability { return w.nullability }

func (w Wildcard) WithNullability(n Nullability) TypeRef {
	if w.nullability == n {
		return w
	}
	w.nullability = n
	return w
}

func (Wildcard) isTypeRef() {}

// TypeVariable is a declared type parameter. Zero bounds means the implicit
// Object bound.
type TypeVariable struct {
	name        string
	bounds      []TypeRef
	nullability Nullability
}

// NewTypeVariable creates a TypeVariable ref. The name must not be qualified.
func NewTypeVariable(name string, bounds ...TypeRef) (TypeVariable, error) {
	if strings.TrimSpace(name) == "" {
		return TypeVariable{}, ErrBlankName
	}
	if strings.Contains(name, ".") {
		return TypeVariable{}, fmt.Errorf("%w: %q", ErrQualifiedVariable, name)
	}
	copied := make([]TypeRef, len(bounds))
	copy(copied, bounds)
	return TypeVariable{name: name, bounds: copied, nullability: NullabilityUnspecified}, nil
}

func (v TypeVariable) Name() string { return v.name }

// Bounds returns a copy of the ordered bound list.
func (v TypeVariable) Bounds() []TypeRef {
	out := make([]TypeRef, len(v.bounds))
	copy(out, v.bounds)
	return out
}

// Render returns the bare variable name; bounds are metadata, not part of the
// rendered reference.
func (v TypeVariable) Render() string { return v.name }

func (v TypeVariable) Nullability() Nullability { return v.nullability }

func (v TypeVariable) WithNullability(n Nullability) TypeRef {
	if v.nullability == n {
		return v
	}
	v.nullability = n
	return v
}

func (TypeVariable) isTypeRef() {}
