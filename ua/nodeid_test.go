package ua

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeResolver map[uint16]uint16

func (f fakeResolver) Translate(localIndex uint16) uint16 { return f[localIndex] }

func TestParseNodeID_Empty(t *testing.T) {
	id, ok := ParseNodeID("", nil)
	require.True(t, ok)
	assert.True(t, id.IsNull())
	assert.Equal(t, "null", id.Raw)
}

func TestParseNodeID_Bare(t *testing.T) {
	id, ok := ParseNodeID("i=85", nil)
	require.True(t, ok)
	assert.Equal(t, uint16(0), id.NamespaceIndex)
	assert.Equal(t, "i=85", id.ID)
	assert.Equal(t, "i=85", id.Raw)
}

func TestParseNodeID_TranslatesNamespace(t *testing.T) {
	ns := fakeResolver{1: 7, 2: 4}
	id, ok := ParseNodeID("ns=2;i=9", ns)
	require.True(t, ok)
	assert.Equal(t, uint16(4), id.NamespaceIndex)
	assert.Equal(t, "i=9", id.ID)
}

func TestParseNodeID_NamespaceZeroUntranslated(t *testing.T) {
	id, ok := ParseNodeID("ns=0;i=1", fakeResolver{})
	require.True(t, ok)
	assert.Equal(t, uint16(0), id.NamespaceIndex)
}

func TestParseNodeID_MalformedPrefix(t *testing.T) {
	id, ok := ParseNodeID("foo;bar", fakeResolver{})
	assert.False(t, ok)
	assert.Equal(t, uint16(0), id.NamespaceIndex)
	assert.Equal(t, "foo;bar", id.Raw)
}

func TestParseNodeID_NonNumericIndex(t *testing.T) {
	id, ok := ParseNodeID("ns=x;i=1", fakeResolver{})
	assert.True(t, ok)
	assert.Equal(t, uint16(0), id.NamespaceIndex)
	assert.Equal(t, "i=1", id.ID)
}

func TestNodeID_String(t *testing.T) {
	assert.Equal(t, "i=1", NewNodeID(0, "i=1").String())
	assert.Equal(t, "ns=3;i=1", NewNodeID(3, "i=1").String())
}

func TestNodeID_JSONRoundTrip(t *testing.T) {
	want := NewNodeID(2, "s=Demo.Static")
	b, err := json.Marshal(want)
	require.NoError(t, err)

	var got NodeID
	require.NoError(t, json.Unmarshal(b, &got))
	assert.Equal(t, want.NamespaceIndex, got.NamespaceIndex)
	assert.Equal(t, want.ID, got.ID)
}
