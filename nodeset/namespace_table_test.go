package nodeset

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNamespaceTable_ImplicitEntry(t *testing.T) {
	ns := NewNamespaceTable()
	assert.Equal(t, 1, ns.Len())
	assert.Equal(t, "http://opcfoundation.org/UA/", ns.URI(0))
	assert.Equal(t, uint16(0), ns.Translate(0))
}

func TestNamespaceTable_ReserveAndAssign(t *testing.T) {
	ns := NewNamespaceTable()
	local := ns.ReserveLocal("urn:x")
	assert.Equal(t, uint16(1), local)

	ns.AssignGlobal(local, 3)
	assert.Equal(t, uint16(3), ns.Translate(local))
	assert.Equal(t, "urn:x", ns.URI(local))
}

func TestNamespaceTable_TwoNamespaces(t *testing.T) {
	ns := NewNamespaceTable()
	a := ns.ReserveLocal("urn:a")
	b := ns.ReserveLocal("urn:b")
	ns.AssignGlobal(a, 7)
	ns.AssignGlobal(b, 4)

	assert.Equal(t, uint16(7), ns.Translate(a))
	assert.Equal(t, uint16(4), ns.Translate(b))
}

func TestNamespaceTable_OutOfRange(t *testing.T) {
	ns := NewNamespaceTable()
	assert.Equal(t, uint16(0), ns.Translate(99))
	assert.Equal(t, "", ns.URI(99))
}
