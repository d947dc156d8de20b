package classifier

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/domainlens-mcp/internal/config"
	"github.com/dshills/domainlens-mcp/pkg/domain"
	"github.com/dshills/domainlens-mcp/pkg/typeref"
)

func newProperty(t *testing.T, name string, ref typeref.TypeRef, annotations ...string) *domain.DomainProperty {
	t.Helper()
	return &domain.DomainProperty{
		Name:        name,
		Type:        ref,
		Annotations: domain.NewAnnotationSet(annotations...),
	}
}

func newModel(t *testing.T, types ...*domain.DomainType) *domain.Model {
	t.Helper()
	m := domain.NewModel()
	for _, dt := range types {
		require.NoError(t, m.AddType(dt))
	}
	return m
}

func TestRelationship_AssociationBeatsIDHeuristic(t *testing.T) {
	c := NewRelationshipClassifier(nil, nil)
	owner := newType(t, "com.example.order.Order", domain.TypeKindEntity)
	prop := newProperty(t, "customerId", mustClass(t, "com.example.customer.CustomerId"), AnnotationAssociation)

	ev := c.Classify(owner, prop, newModel(t))
	require.True(t, ev.HasRelationship())
	assert.Equal(t, domain.RelationshipSourceAnnotation, ev.Source())
	assert.Contains(t, ev.Detail(), "Customer")
	assert.NotContains(t, ev.Detail(), "CustomerId")

	meta := ev.Metadata()
	assert.Equal(t, domain.RelationshipManyToOne, meta.Kind)
	assert.Equal(t, "com.example.customer.Customer", meta.TargetQualifiedName)
	assert.True(t, meta.InterAggregate)
}

func TestRelationship_AssociationOnCollection(t *testing.T) {
	c := NewRelationshipClassifier(nil, nil)
	owner := newType(t, "com.example.order.Order", domain.TypeKindEntity)
	listOfIDs := mustParameterized(t, "java.util.List", mustClass(t, "com.example.item.ItemId"))
	prop := newProperty(t, "itemIds", listOfIDs, AnnotationAssociation)

	ev := c.Classify(owner, prop, newModel(t))
	require.True(t, ev.HasRelationship())

	meta := ev.Metadata()
	assert.Equal(t, domain.RelationshipOneToMany, meta.Kind)
	assert.Equal(t, "com.example.item.Item", meta.TargetQualifiedName)
	assert.True(t, meta.InterAggregate)
}

func TestRelationship_ConfigOverride(t *testing.T) {
	cfg, err := config.Parse([]byte(`
relationships:
  - type: com.example.order.Order
    property: warehouse
    kind: many_to_one
    target: com.example.warehouse.Warehouse
    interAggregate: true
`))
	require.NoError(t, err)
	c := NewRelationshipClassifier(cfg, nil)

	owner := newType(t, "com.example.order.Order", domain.TypeKindEntity)
	prop := newProperty(t, "warehouse", mustClass(t, "com.example.warehouse.Warehouse"))

	// The override outranks the known-target inspection.
	warehouse := newType(t, "com.example.warehouse.Warehouse", domain.TypeKindValueObject)
	ev := c.Classify(owner, prop, newModel(t, warehouse))

	require.True(t, ev.HasRelationship())
	assert.Equal(t, domain.RelationshipSourceConfig, ev.Source())
	meta := ev.Metadata()
	assert.Equal(t, domain.RelationshipManyToOne, meta.Kind)
	assert.Equal(t, "com.example.warehouse.Warehouse", meta.TargetQualifiedName)
	assert.True(t, meta.InterAggregate)
}

func TestRelationship_DirectAggregateReferenceWarns(t *testing.T) {
	reporter := domain.NewCollectingReporter()
	c := NewRelationshipClassifier(nil, reporter)

	owner := newType(t, "com.example.order.Order", domain.TypeKindEntity)
	customer := newType(t, "com.example.customer.Customer", domain.TypeKindAggregateRoot)
	prop := newProperty(t, "customer", mustClass(t, "com.example.customer.Customer"))

	ev := c.Classify(owner, prop, newModel(t, customer))
	require.True(t, ev.HasRelationship())
	assert.Equal(t, domain.RelationshipSourceHeuristic, ev.Source())

	meta := ev.Metadata()
	assert.True(t, meta.InterAggregate)
	assert.Equal(t, "com.example.customer.Customer", meta.TargetQualifiedName)

	diags := reporter.Diagnostics()
	require.Len(t, diags, 1)
	assert.Equal(t, domain.CodeDirectAggregateReference, diags[0].Code)
	assert.Equal(t, domain.SeverityWarning, diags[0].Severity)
	assert.Equal(t, "com.example.order.Order", diags[0].OwnerType)
	assert.Equal(t, "customer", diags[0].Property)
	assert.Equal(t, "com.example.customer.Customer", diags[0].TargetType)
}

func TestRelationship_DirectAggregateReferenceNilReporter(t *testing.T) {
	c := NewRelationshipClassifier(nil, nil)
	owner := newType(t, "com.example.order.Order", domain.TypeKindEntity)
	customer := newType(t, "com.example.customer.Customer", domain.TypeKindAggregateRoot)
	prop := newProperty(t, "customer", mustClass(t, "com.example.customer.Customer"))

	ev := c.Classify(owner, prop, newModel(t, customer))
	assert.True(t, ev.HasRelationship())
}

func TestRelationship_EmbeddedValueObject(t *testing.T) {
	c := NewRelationshipClassifier(nil, nil)
	owner := newType(t, "com.example.customer.Customer", domain.TypeKindEntity)
	address := newType(t, "com.example.customer.Address", domain.TypeKindValueObject)
	prop := newProperty(t, "address", mustClass(t, "com.example.customer.Address"))

	ev := c.Classify(owner, prop, newModel(t, address))
	require.True(t, ev.HasRelationship())
	assert.Equal(t, domain.RelationshipSourceAnnotation, ev.Source())

	meta := ev.Metadata()
	assert.Equal(t, domain.RelationshipOneToOne, meta.Kind)
	assert.False(t, meta.InterAggregate)
}

func TestRelationship_InternalEntity(t *testing.T) {
	c := NewRelationshipClassifier(nil, nil)
	owner := newType(t, "com.example.order.Order", domain.TypeKindEntity)
	item := newType(t, "com.example.order.OrderItem", domain.TypeKindEntity)
	prop := newProperty(t, "item", mustClass(t, "com.example.order.OrderItem"))

	ev := c.Classify(owner, prop, newModel(t, item))
	require.True(t, ev.HasRelationship())
	assert.Equal(t, domain.RelationshipSourceAnnotation, ev.Source())

	meta := ev.Metadata()
	assert.Equal(t, domain.RelationshipManyToOne, meta.Kind)
	assert.False(t, meta.InterAggregate)
}

func TestRelationship_UnclassifiedTargetDefaultsIntra(t *testing.T) {
	c := NewRelationshipClassifier(nil, nil)
	owner := newType(t, "com.example.order.Order", domain.TypeKindEntity)
	note := newType(t, "com.example.order.Note", domain.TypeKindUnspecified)
	prop := newProperty(t, "note", mustClass(t, "com.example.order.Note"))

	ev := c.Classify(owner, prop, newModel(t, note))
	require.True(t, ev.HasRelationship())
	assert.Equal(t, domain.RelationshipSourceHeuristic, ev.Source())
	assert.False(t, ev.Metadata().InterAggregate)
}

func TestRelationship_SimpleNameLookup(t *testing.T) {
	c := NewRelationshipClassifier(nil, nil)
	owner := newType(t, "com.example.order.Order", domain.TypeKindEntity)
	address := newType(t, "com.example.customer.Address", domain.TypeKindValueObject)
	// Frontend recorded the property type unqualified.
	prop := newProperty(t, "address", mustClass(t, "Address"))

	ev := c.Classify(owner, prop, newModel(t, address))
	require.True(t, ev.HasRelationship())
	assert.Equal(t, "com.example.customer.Address", ev.Metadata().TargetQualifiedName)
}

func TestRelationship_IDHeuristicWithoutModelEntry(t *testing.T) {
	c := NewRelationshipClassifier(nil, nil)
	owner := newType(t, "com.example.order.Order", domain.TypeKindEntity)
	prop := newProperty(t, "customerId", mustClass(t, "com.example.customer.CustomerId"))

	ev := c.Classify(owner, prop, newModel(t))
	require.True(t, ev.HasRelationship())
	assert.Equal(t, domain.RelationshipSourceHeuristic, ev.Source())

	meta := ev.Metadata()
	assert.Equal(t, "com.example.customer.Customer", meta.TargetQualifiedName)
	assert.True(t, meta.InterAggregate)
	assert.Equal(t, domain.RelationshipManyToOne, meta.Kind)
}

func TestRelationship_IDHeuristicUppercaseSuffix(t *testing.T) {
	c := NewRelationshipClassifier(nil, nil)
	owner := newType(t, "com.example.order.Order", domain.TypeKindEntity)
	prop := newProperty(t, "shipmentId", mustClass(t, "ShipmentID"))

	ev := c.Classify(owner, prop, newModel(t))
	require.True(t, ev.HasRelationship())
	assert.Equal(t, "Shipment", ev.Metadata().TargetQualifiedName)
}

func TestRelationship_BareCollectionYieldsNoEvidence(t *testing.T) {
	c := NewRelationshipClassifier(nil, nil)
	owner := newType(t, "com.example.order.Order", domain.TypeKindEntity)
	prop := newProperty(t, "tags", mustParameterized(t, "java.util.Set", mustClass(t, "java.lang.String")))

	ev := c.Classify(owner, prop, newModel(t))
	assert.False(t, ev.HasRelationship())
	assert.Equal(t, domain.RelationshipSourceNone, ev.Source())
	assert.Contains(t, ev.Detail(), "Collection property type")
}

func TestRelationship_SimplePropertyType(t *testing.T) {
	c := NewRelationshipClassifier(nil, nil)
	owner := newType(t, "com.example.customer.Customer", domain.TypeKindEntity)
	prop := newProperty(t, "email", mustClass(t, "java.lang.String"))

	ev := c.Classify(owner, prop, newModel(t))
	assert.False(t, ev.HasRelationship())
	assert.Equal(t, "Simple property type: java.lang.String", ev.Detail())
	assert.Panics(t, func() { ev.Metadata() })
}
