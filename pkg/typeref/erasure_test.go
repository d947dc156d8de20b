package typeref

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErasure_PrimitiveAndClassUnchanged(t *testing.T) {
	intPrim, err := NewPrimitive("int")
	require.NoError(t, err)
	assert.True(t, DeepEqual(intPrim, Erasure(intPrim)))

	order := mustClass(t, "com.example.Order")
	assert.True(t, DeepEqual(order, Erasure(order)))
}

func TestErasure_ParameterizedToRaw(t *testing.T) {
	ref := mustParameterized(t, mustClass(t, "java.util.List"), mustClass(t, "String"))
	erased := Erasure(ref)

	assert.Equal(t, "java.util.List", erased.Render())
	assert.True(t, IsClass(erased))
}

func TestErasure_PreservesNullability(t *testing.T) {
	ref := mustParameterized(t, mustClass(t, "java.util.List"), mustClass(t, "String"))
	nullable := ref.WithNullability(NullabilityNullable)

	erased := Erasure(nullable)
	assert.Equal(t, NullabilityNullable, erased.Nullability())
}

func TestErasure_ArrayRecursive(t *testing.T) {
	ref := mustParameterized(t, mustClass(t, "java.util.List"), mustClass(t, "String"))
	arr, err := NewArray(ref)
	require.NoError(t, err)

	erased := Erasure(arr)
	assert.Equal(t, "java.util.List[]", erased.Render())
}

func TestErasure_WildcardAndVariableToObject(t *testing.T) {
	assert.Equal(t, ObjectName, Erasure(UnboundedWildcard()).Render())

	v, err := NewTypeVariable("T")
	require.NoError(t, err)
	assert.Equal(t, ObjectName, Erasure(v).Render())
}

func TestErasure_Idempotent(t *testing.T) {
	v, err := NewTypeVariable("T", mustClass(t, "java.lang.Comparable"))
	require.NoError(t, err)
	inner := mustParameterized(t, mustClass(t, "java.util.Map"), mustClass(t, "String"), v)
	arr, err := NewArray(inner)
	require.NoError(t, err)

	for _, ref := range []TypeRef{arr, inner, v, UnboundedWildcard(), mustClass(t, "Order")} {
		once := Erasure(ref)
		twice := Erasure(once)
		assert.True(t, DeepEqual(once, twice), "erasure must be idempotent for %s", ref.Render())
	}
}
