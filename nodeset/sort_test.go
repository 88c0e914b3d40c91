package nodeset

import (
	"testing"

	"github.com/GoetzGoerisch/open62541-nodeset-loader/ua"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func addObject(store *Store, id string, invParent string) *ObjectNode {
	n := &ObjectNode{NodeHeader: newHeader(ua.NodeClassObject)}
	n.ID = ua.NewNodeID(0, id)
	n.BrowseName = ua.NewQualifiedName(0, id)
	if invParent != "" {
		n.AppendRef(ua.Reference{
			RefType:             ua.NewNodeID(0, "i=47"), // HasComponent
			IsForward:           false,
			Target:              ua.NewNodeID(0, invParent),
			HierarchicalAtClose: true,
		}, true)
	}
	store.Add(n)
	return n
}

// A child declared before its parent in document order is still emitted
// after it once the Sorter runs.
func TestSorter_OrdersParentBeforeChild(t *testing.T) {
	store := NewStore()
	addObject(store, "i=2", "i=1") // child of i=1, declared first
	addObject(store, "i=1", "")    // parent, declared second

	diags := NewSorter().Sort(store)
	assert.Empty(t, diags)

	values := store.Bucket(ua.NodeClassObject).Values()
	require.Len(t, values, 2)
	assert.Equal(t, "i=1", values[0].(*ObjectNode).ID.ID)
	assert.Equal(t, "i=2", values[1].(*ObjectNode).ID.ID)
}

// A hierarchical reference cycle is reported as a diagnostic, and the
// cyclic nodes are left in the bucket rather than dropped.
func TestSorter_ReportsCycle(t *testing.T) {
	store := NewStore()
	a := addObject(store, "i=1", "i=2")
	b := addObject(store, "i=2", "i=1")

	diags := NewSorter().Sort(store)
	require.Len(t, diags, 1)
	assert.Equal(t, TopologicalCycle, diags[0].Kind)

	values := store.Bucket(ua.NodeClassObject).Values()
	require.Len(t, values, 2)
	ids := []string{values[0].(*ObjectNode).ID.ID, values[1].(*ObjectNode).ID.ID}
	assert.ElementsMatch(t, []string{"i=1", "i=2"}, ids)
	_ = a
	_ = b
}

// Nodes with no hierarchical edges between them keep the fixed
// class-then-document-order tie-break.
func TestSorter_StableWithoutEdges(t *testing.T) {
	store := NewStore()
	addObject(store, "i=10", "")
	addObject(store, "i=11", "")

	diags := NewSorter().Sort(store)
	assert.Empty(t, diags)

	values := store.Bucket(ua.NodeClassObject).Values()
	require.Len(t, values, 2)
	assert.Equal(t, "i=10", values[0].(*ObjectNode).ID.ID)
	assert.Equal(t, "i=11", values[1].(*ObjectNode).ID.ID)
}
