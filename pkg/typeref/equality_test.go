package typeref

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustClass(t *testing.T, name string) Class {
	t.Helper()
	c, err := NewClass(name)
	require.NoError(t, err)
	return c
}

func mustParameterized(t *testing.T, raw Class, args ...TypeRef) Parameterized {
	t.Helper()
	p, err := NewParameterized(raw, args...)
	require.NoError(t, err)
	return p
}

func TestStructuralEqual_SameShape(t *testing.T) {
	a := mustParameterized(t, mustClass(t, "java.util.List"), mustClass(t, "String"))
	b := mustParameterized(t, mustClass(t, "java.util.List"), mustClass(t, "String"))
	c := mustParameterized(t, mustClass(t, "java.util.List"), mustClass(t, "Integer"))

	assert.True(t, StructuralEqual(a, b))
	assert.False(t, StructuralEqual(a, c))
}

func TestStructuralEqual_DifferentShapesNeverEqual(t *testing.T) {
	intPrim, err := NewPrimitive("int")
	require.NoError(t, err)
	intClass := mustClass(t, "int")

	assert.False(t, StructuralEqual(intPrim, intClass))

	arr, err := NewArray(intClass)
	require.NoError(t, err)
	assert.False(t, StructuralEqual(intClass, arr))
}

func TestStructuralEqual_IgnoresNullability(t *testing.T) {
	a := mustClass(t, "com.example.Order")
	b := a.WithNullability(NullabilityNullable)

	assert.True(t, StructuralEqual(a, b))
	assert.False(t, DeepEqual(a, b))
}

func TestDeepEqual_ImpliesStructuralEqual(t *testing.T) {
	refs := []TypeRef{
		mustClass(t, "com.example.Order"),
		mustClass(t, "com.example.Order").WithNullability(NullabilityNonNull),
		mustParameterized(t, mustClass(t, "java.util.Set"), mustClass(t, "Long")),
		UnboundedWildcard(),
	}

	for _, a := range refs {
		for _, b := range refs {
			if DeepEqual(a, b) {
				assert.True(t, StructuralEqual(a, b),
					"deep equality must imply structural equality: %s vs %s", a.Render(), b.Render())
			}
		}
	}
}

func TestDeepEqual_NestedNullability(t *testing.T) {
	elem := mustClass(t, "String")
	a := mustParameterized(t, mustClass(t, "java.util.List"), elem)
	b := mustParameterized(t, mustClass(t, "java.util.List"), elem.WithNullability(NullabilityNullable))

	assert.True(t, StructuralEqual(a, b))
	assert.False(t, DeepEqual(a, b))
}

func TestCompare_TotalOrder(t *testing.T) {
	intPrim, err := NewPrimitive("int")
	require.NoError(t, err)
	order := mustClass(t, "com.example.Order")
	user := mustClass(t, "com.example.User")

	// Shapes order before rendered text.
	assert.Negative(t, Compare(intPrim, order))
	assert.Negative(t, Compare(order, user))
	assert.Positive(t, Compare(user, order))
	assert.Zero(t, Compare(order, mustClass(t, "com.example.Order")))
}

func TestDeclaredName(t *testing.T) {
	order := mustClass(t, "com.example.Order")
	name, ok := DeclaredName(order)
	require.True(t, ok)
	assert.Equal(t, TypeName("com.example.Order"), name)

	list := mustParameterized(t, mustClass(t, "java.util.List"), order)
	name, ok = DeclaredName(list)
	require.True(t, ok)
	assert.Equal(t, TypeName("java.util.List"), name)

	intPrim, err := NewPrimitive("int")
	require.NoError(t, err)
	_, ok = DeclaredName(intPrim)
	assert.False(t, ok)
}

func TestShapePredicates(t *testing.T) {
	intPrim, err := NewPrimitive("void")
	require.NoError(t, err)
	assert.True(t, IsPrimitive(intPrim))
	assert.True(t, IsVoid(intPrim))

	order := mustClass(t, "Order")
	assert.True(t, IsClass(order))
	assert.False(t, IsVoid(order))

	arr, err := NewArray(order)
	require.NoError(t, err)
	assert.True(t, IsArray(arr))

	list := mustParameterized(t, mustClass(t, "java.util.List"), order)
	assert.True(t, IsParameterized(list))
}
