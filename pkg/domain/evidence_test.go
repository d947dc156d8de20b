package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregateRootFound(t *testing.T) {
	ev := AggregateRootFound(AggregateEvidenceExplicitAnnotation, "Strong aggregate marker present")

	assert.True(t, ev.IsAggregateRoot())
	assert.Equal(t, AggregateEvidenceExplicitAnnotation, ev.Kind())
	assert.Equal(t, "Strong aggregate marker present", ev.Detail())
}

func TestAggregateRootFound_NoneKindFailsFast(t *testing.T) {
	assert.Panics(t, func() {
		AggregateRootFound(AggregateEvidenceNone, "broken")
	})
}

func TestNoAggregateRoot(t *testing.T) {
	ev := NoAggregateRoot()

	assert.False(t, ev.IsAggregateRoot())
	assert.Equal(t, AggregateEvidenceNone, ev.Kind())
	assert.Empty(t, ev.Detail())
}

func TestRelationshipFound(t *testing.T) {
	meta := RelationshipMetadata{
		Kind:                RelationshipManyToOne,
		TargetQualifiedName: "com.example.Customer",
		InterAggregate:      true,
	}
	ev := RelationshipFound(RelationshipSourceHeuristic, meta, "ID-type naming")

	assert.True(t, ev.HasRelationship())
	assert.Equal(t, RelationshipSourceHeuristic, ev.Source())
	assert.Equal(t, meta, ev.Metadata())
}

func TestRelationshipFound_NoneSourceFailsFast(t *testing.T) {
	assert.Panics(t, func() {
		RelationshipFound(RelationshipSourceNone, RelationshipMetadata{}, "broken")
	})
}

func TestNoRelationship_MetadataAccessFailsFast(t *testing.T) {
	ev := NoRelationship("Simple property type: java.lang.String")

	require.False(t, ev.HasRelationship())
	assert.Equal(t, RelationshipSourceNone, ev.Source())
	assert.Panics(t, func() {
		_ = ev.Metadata()
	})
}
