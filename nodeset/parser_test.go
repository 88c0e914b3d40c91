package nodeset

import (
	"encoding/xml"
	"strings"
	"testing"

	"github.com/GoetzGoerisch/open62541-nodeset-loader/ua"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestParser(t *testing.T, registerNamespace func(string) uint16) (*Parser, *Store, *NamespaceTable, *AliasTable) {
	t.Helper()
	ns := NewNamespaceTable()
	aliases := NewAliasTable()
	classifier := NewReferenceClassifier()
	store := NewStore()
	logger := log.New()
	logger.SetLevel(log.PanicLevel)
	p := NewParser(ns, aliases, classifier, store, registerNamespace, logger.WithField("test", true))
	return p, store, ns, aliases
}

func runDoc(t *testing.T, p *Parser, doc string) {
	t.Helper()
	require.NoError(t, p.Run(xml.NewDecoder(strings.NewReader(doc))))
}

// Scenario 1: minimal document with one object node and no references.
func TestParser_Minimal(t *testing.T) {
	p, store, ns, _ := newTestParser(t, func(uri string) uint16 {
		assert.Equal(t, "urn:x", uri)
		return 3
	})

	doc := `<UANodeSet>
		<NamespaceUris><Uri>urn:x</Uri></NamespaceUris>
		<UAObject NodeId="ns=1;i=10" BrowseName="1:A"></UAObject>
	</UANodeSet>`
	runDoc(t, p, doc)

	assert.Equal(t, uint16(3), ns.Translate(1))
	values := store.Bucket(ua.NodeClassObject).Values()
	require.Len(t, values, 1)

	obj := values[0].(*ObjectNode)
	assert.Equal(t, uint16(3), obj.ID.NamespaceIndex)
	assert.Equal(t, "i=10", obj.ID.ID)
	assert.Equal(t, "A", obj.BrowseName.Name)
}

// Scenario 2: an alias declared before its use is defined in the alias
// table, and the Variable keeps its raw DataType for the Session's
// reconciliation pass to resolve.
func TestParser_AliasResolution(t *testing.T) {
	p, store, _, aliases := newTestParser(t, func(string) uint16 { return 0 })

	doc := `<UANodeSet>
		<Aliases><Alias Alias="Int32">i=6</Alias></Aliases>
		<UAVariable NodeId="i=20" BrowseName="0:V" DataType="Int32"></UAVariable>
	</UANodeSet>`
	runDoc(t, p, doc)

	id, ok := aliases.Resolve("Int32")
	require.True(t, ok)
	assert.Equal(t, "i=6", id.ID)

	values := store.Bucket(ua.NodeClassVariable).Values()
	require.Len(t, values, 1)
	v := values[0].(*VariableNode)
	assert.Equal(t, "Int32", v.dataTypeRaw)
}

// Scenario 5: a Reference with no IsForward attribute defaults to forward,
// and its target is resolved against the namespace in effect at
// </References> close.
func TestParser_ReferenceDefaultsForward(t *testing.T) {
	p, store, ns, _ := newTestParser(t, func(string) uint16 { return 9 })

	doc := `<UANodeSet>
		<NamespaceUris><Uri>urn:a</Uri></NamespaceUris>
		<UAObject NodeId="i=1" BrowseName="0:A">
			<References>
				<Reference ReferenceType="i=47">ns=1;i=5</Reference>
			</References>
		</UAObject>
	</UANodeSet>`
	runDoc(t, p, doc)

	values := store.Bucket(ua.NodeClassObject).Values()
	require.Len(t, values, 1)
	obj := values[0].(*ObjectNode)

	refs := Refs(obj.HierarchicalRefs)
	require.Len(t, refs, 1)
	assert.True(t, refs[0].IsForward)
	assert.Equal(t, uint16(9), refs[0].Target.NamespaceIndex)
	assert.Equal(t, "i=5", refs[0].Target.ID)
	_ = ns
}

// Scenario: an unknown root-level element is skipped without error, and
// parsing continues afterward.
func TestParser_UnknownElementSkipped(t *testing.T) {
	p, store, _, _ := newTestParser(t, func(string) uint16 { return 0 })

	doc := `<UANodeSet>
		<SomeFutureExtension><Nested/></SomeFutureExtension>
		<UAObject NodeId="i=1" BrowseName="0:A"></UAObject>
	</UANodeSet>`
	runDoc(t, p, doc)

	assert.Len(t, store.Bucket(ua.NodeClassObject).Values(), 1)
}

// A user-defined ReferenceType declared as an inverse subtype of a
// hierarchical type becomes hierarchical itself for subsequent references.
func TestParser_UserHierarchicalReferenceType(t *testing.T) {
	p, store, _, _ := newTestParser(t, func(string) uint16 { return 0 })

	doc := `<UANodeSet>
		<UAReferenceType NodeId="ns=1;i=100" BrowseName="1:CustomHierarchy">
			<References>
				<Reference ReferenceType="i=45" IsForward="false">i=44</Reference>
			</References>
		</UAReferenceType>
		<UAObject NodeId="i=2" BrowseName="0:B">
			<References>
				<Reference ReferenceType="ns=1;i=100" IsForward="false">i=1</Reference>
			</References>
		</UAObject>
	</UANodeSet>`
	runDoc(t, p, doc)

	objects := store.Bucket(ua.NodeClassObject).Values()
	require.Len(t, objects, 1)
	refs := Refs(objects[0].(*ObjectNode).HierarchicalRefs)
	require.Len(t, refs, 1)
	assert.True(t, refs[0].HierarchicalAtClose)
}
