// Copyright 2021 Converter Systems LLC. All rights reserved.

package ua

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/karlseguin/jsonwriter"
	"github.com/tidwall/gjson"
)

// NilID is the null NodeID: namespace zero, empty id.
var NilID = NodeID{}

// NodeID identifies a node within a namespace.
//
// Unlike a live OPC UA stack, this package does not distinguish numeric,
// string, GUID and opaque identifier encodings: NodeSet documents carry
// identifiers as opaque text (e.g. "i=85", "s=Demo.Static"), and parsing
// further into that text is the consumer's responsibility, not this
// loader's (semantic validation of OPC UA data types or values is a
// non-goal here).
type NodeID struct {
	NamespaceIndex uint16 `json:"namespace"`
	ID             string `json:"id"`

	// Raw preserves the original textual form, before namespace
	// translation, for error reporting and as a pre-resolution key.
	Raw string `json:"-"`
}

// NewNodeID constructs a NodeID directly, with Raw equal to id.
func NewNodeID(ns uint16, id string) NodeID {
	return NodeID{NamespaceIndex: ns, ID: id, Raw: id}
}

// IsNull reports whether n is the null NodeID: an empty or "0" id body.
func (n NodeID) IsNull() bool {
	return n.ID == "" || n.ID == "0"
}

// String returns "ns=<n>;<id>", or just "<id>" when the namespace index is 0.
func (n NodeID) String() string {
	if n.NamespaceIndex == 0 {
		return n.ID
	}
	return fmt.Sprintf("ns=%d;%s", n.NamespaceIndex, n.ID)
}

func (n NodeID) MarshalJSON() ([]byte, error) {
	buffer := new(bytes.Buffer)
	writer := jsonwriter.New(buffer)
	writer.RootObject(func() {
		writer.KeyValue("namespace", n.NamespaceIndex)
		writer.KeyString("id", n.ID)
	})
	return buffer.Bytes(), nil
}

func (n *NodeID) UnmarshalJSON(b []byte) error {
	jeNamespace := gjson.GetBytes(b, "namespace")
	var ns uint16
	if jeNamespace.Exists() {
		if err := json.Unmarshal([]byte(jeNamespace.Raw), &ns); err != nil {
			return err
		}
	}

	jeID := gjson.GetBytes(b, "id")
	var id string
	if jeID.Exists() {
		if err := json.Unmarshal([]byte(jeID.Raw), &id); err != nil {
			return err
		}
	}

	n.NamespaceIndex = ns
	n.ID = id
	n.Raw = id
	return nil
}

// NamespaceResolver translates a document-local namespace index to a
// host-assigned global namespace index. *nodeset.NamespaceTable satisfies
// it; kept as an interface here so the ua package has no dependency on
// the nodeset package.
type NamespaceResolver interface {
	Translate(localIndex uint16) uint16
}

// ParseNodeID parses a NodeSet NodeId string of the form "ns=<n>;<id>" or
// bare "<id>" and resolves its namespace index against ns.
//
// An empty raw value yields the null id with Raw == "null", matching the
// original loader's extractNodedId behavior for a missing attribute. A
// non-numeric index after an "ns=" prefix (e.g. "ns=x;i=1") is lenient,
// matching the original loader's atoi-based parsing: it yields namespace
// index 0 with ok == true, not an error. Only a ';'-containing string
// with no "ns=" prefix at all (e.g. "foo;bar") is genuinely ambiguous and
// yields ok == false — the caller is expected to record a soft
// diagnostic in that case.
func ParseNodeID(raw string, ns NamespaceResolver) (id NodeID, ok bool) {
	if raw == "" {
		return NodeID{Raw: "null"}, true
	}

	pos := strings.IndexByte(raw, ';')
	if pos == -1 {
		return NodeID{NamespaceIndex: 0, ID: raw, Raw: raw}, true
	}

	prefix := raw[:pos]
	body := raw[pos+1:]
	if !strings.HasPrefix(prefix, "ns=") {
		return NodeID{NamespaceIndex: 0, ID: raw, Raw: raw}, false
	}

	local, err := strconv.ParseUint(prefix[3:], 10, 16)
	if err != nil {
		return NodeID{NamespaceIndex: 0, ID: body, Raw: raw}, true
	}

	localIdx := uint16(local)
	global := localIdx
	if localIdx > 0 && ns != nil {
		global = ns.Translate(localIdx)
	}
	return NodeID{NamespaceIndex: global, ID: body, Raw: raw}, true
}
