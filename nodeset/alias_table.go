package nodeset

import "github.com/GoetzGoerisch/open62541-nodeset-loader/ua"

// AliasTable maps document-local alias names to resolved NodeIds.
//
// An Alias's id is only resolvable once the entire <Alias> element has
// been seen, so the parser resolves the raw id via ua.ParseNodeID at
// </Alias> close and calls Define with the already-resolved id. A
// Variable's DataType attribute may legally name an alias whose
// definition appears later in the document; Session defers that lookup
// to a final reconciliation pass after the whole document has been
// parsed, by which point every alias in the table has been defined.
type AliasTable struct {
	byName map[string]ua.NodeID
}

// NewAliasTable returns an empty AliasTable.
func NewAliasTable() *AliasTable {
	return &AliasTable{byName: map[string]ua.NodeID{}}
}

// Define records name as resolving to id. A later Define for the same
// name overwrites the earlier one, matching the original loader's linear
// append-only alias array semantics (last match wins on lookup).
func (t *AliasTable) Define(name string, id ua.NodeID) {
	t.byName[name] = id
}

// Resolve returns the NodeId registered for name, or ok == false if no
// such alias has been defined.
func (t *AliasTable) Resolve(name string) (id ua.NodeID, ok bool) {
	id, ok = t.byName[name]
	return id, ok
}
