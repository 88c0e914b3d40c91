package nodeset

// Namespace is one entry of the Namespace Table: a URI and the local and
// host-assigned global index it was registered under.
type Namespace struct {
	URI         string
	LocalIndex  uint16
	GlobalIndex uint16
}

// NamespaceTable is an ordered list of Namespace records. The first entry
// is implicit and reserved for namespace 0 (the base/opcfoundation
// namespace); user namespaces declared by the document start at local
// index 1.
type NamespaceTable struct {
	entries []Namespace
}

// NewNamespaceTable returns a table pre-seeded with the implicit
// namespace-0 entry.
func NewNamespaceTable() *NamespaceTable {
	return &NamespaceTable{
		entries: []Namespace{{URI: "http://opcfoundation.org/UA/", LocalIndex: 0, GlobalIndex: 0}},
	}
}

// ReserveLocal appends a new entry for uri with a provisional global index
// of 0 and returns its local index. Called when a <Uri> child of
// <NamespaceUris> closes with character data.
func (t *NamespaceTable) ReserveLocal(uri string) uint16 {
	local := uint16(len(t.entries))
	t.entries = append(t.entries, Namespace{URI: uri, LocalIndex: local})
	return local
}

// AssignGlobal stores the host-assigned global index for the entry at
// localIndex, obtained by invoking the host's namespace-registration
// callback with the entry's URI.
func (t *NamespaceTable) AssignGlobal(localIndex, globalIndex uint16) {
	if int(localIndex) >= len(t.entries) {
		return
	}
	t.entries[localIndex].GlobalIndex = globalIndex
}

// Translate returns the global index registered for localIndex. It is the
// function ua.ParseNodeID uses to resolve a namespace-qualified id.
func (t *NamespaceTable) Translate(localIndex uint16) uint16 {
	if int(localIndex) >= len(t.entries) {
		return 0
	}
	return t.entries[localIndex].GlobalIndex
}

// URI returns the URI registered at localIndex, or "" if out of range.
func (t *NamespaceTable) URI(localIndex uint16) string {
	if int(localIndex) >= len(t.entries) {
		return ""
	}
	return t.entries[localIndex].URI
}

// Len returns the number of entries, including the implicit namespace-0 one.
func (t *NamespaceTable) Len() int {
	return len(t.entries)
}
