package nodeset

import (
	"testing"

	"github.com/GoetzGoerisch/open62541-nodeset-loader/ua"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_AddAndByID(t *testing.T) {
	store := NewStore()
	n := &ObjectNode{NodeHeader: newHeader(ua.NodeClassObject)}
	n.ID = ua.NewNodeID(2, "i=5")
	store.Add(n)

	got, ok := store.ByID(ua.NewNodeID(2, "i=5"))
	require.True(t, ok)
	assert.Same(t, n, got)

	_, ok = store.ByID(ua.NewNodeID(0, "i=999"))
	assert.False(t, ok)
}

func TestStore_Len(t *testing.T) {
	store := NewStore()
	assert.Equal(t, 0, store.Len())

	obj := &ObjectNode{NodeHeader: newHeader(ua.NodeClassObject)}
	obj.ID = ua.NewNodeID(0, "i=1")
	store.Add(obj)

	dt := &DataTypeNode{NodeHeader: newHeader(ua.NodeClassDataType)}
	dt.ID = ua.NewNodeID(0, "i=2")
	store.Add(dt)

	// Len counts every stored node, including DataType, which the
	// Emitter never walks.
	assert.Equal(t, 2, store.Len())
	assert.Len(t, store.Bucket(ua.NodeClassObject).Values(), 1)
	assert.Len(t, store.Bucket(ua.NodeClassDataType).Values(), 1)
}
