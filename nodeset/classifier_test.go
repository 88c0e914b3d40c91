package nodeset

import (
	"testing"

	"github.com/GoetzGoerisch/open62541-nodeset-loader/ua"
	"github.com/stretchr/testify/assert"
)

func TestReferenceClassifier_SeededWellKnown(t *testing.T) {
	c := NewReferenceClassifier()
	assert.True(t, c.IsHierarchical(ua.NewNodeID(0, "i=47"))) // HasComponent
	assert.False(t, c.IsHierarchical(ua.NewNodeID(0, "i=40"))) // HasTypeDefinition
}

func TestReferenceClassifier_ObservePropagatesSubtype(t *testing.T) {
	c := NewReferenceClassifier()

	refType := &ReferenceTypeNode{NodeHeader: newHeader(ua.NodeClassReferenceType)}
	refType.ID = ua.NewNodeID(1, "i=100")
	refType.AppendRef(ua.Reference{
		RefType:   ua.NewNodeID(0, "i=45"), // HasSubtype
		IsForward: false,
		Target:    ua.NewNodeID(0, "i=44"), // Aggregates
	}, true)

	assert.False(t, c.IsHierarchical(refType.ID))
	c.Observe(refType)
	assert.True(t, c.IsHierarchical(refType.ID))
}

func TestReferenceClassifier_ObserveIgnoresForwardOnly(t *testing.T) {
	c := NewReferenceClassifier()

	refType := &ReferenceTypeNode{NodeHeader: newHeader(ua.NodeClassReferenceType)}
	refType.ID = ua.NewNodeID(1, "i=101")
	refType.AppendRef(ua.Reference{
		RefType:   ua.NewNodeID(0, "i=45"),
		IsForward: true,
		Target:    ua.NewNodeID(0, "i=44"),
	}, true)

	c.Observe(refType)
	assert.False(t, c.IsHierarchical(refType.ID))
}
