package nodeset

import (
	"github.com/GoetzGoerisch/open62541-nodeset-loader/ua"
	"github.com/emirpasic/gods/lists/arraylist"
	"github.com/google/uuid"
)

// NodeHeader is the set of fields every node class shares.
type NodeHeader struct {
	// InternalID is a process-local unique handle assigned at allocation
	// time, independent of the (possibly still-unresolved) NodeId.
	InternalID uuid.UUID

	ID          ua.NodeID
	BrowseName  ua.QualifiedName
	DisplayName ua.LocalizedText
	Description ua.LocalizedText
	NodeClass   ua.NodeClass

	// HierarchicalRefs and NonHierarchicalRefs hold this node's outgoing
	// references in document order, bucketed by the classification
	// decided when each <Reference> element closed. An arraylist.List
	// gives document-order-preserving append in place of the original
	// loader's singly linked lists, which carried no semantic content.
	HierarchicalRefs    *arraylist.List
	NonHierarchicalRefs *arraylist.List
}

func newHeader(class ua.NodeClass) NodeHeader {
	return NodeHeader{
		InternalID:          uuid.New(),
		NodeClass:           class,
		HierarchicalRefs:    arraylist.New(),
		NonHierarchicalRefs: arraylist.New(),
	}
}

// AppendRef files ref onto the hierarchical or non-hierarchical list
// according to hierarchical, preserving document order.
func (h *NodeHeader) AppendRef(ref ua.Reference, hierarchical bool) {
	if hierarchical {
		h.HierarchicalRefs.Add(ref)
	} else {
		h.NonHierarchicalRefs.Add(ref)
	}
}

// Refs returns the references stored in list, typed as []ua.Reference.
func Refs(list *arraylist.List) []ua.Reference {
	values := list.Values()
	refs := make([]ua.Reference, len(values))
	for i, v := range values {
		refs[i] = v.(ua.Reference)
	}
	return refs
}

// setRef replaces the reference at index i of list — used to rewrite a
// reference's Target once it is resolved at </References> close.
func setRef(list *arraylist.List, i int, ref ua.Reference) {
	list.Set(i, ref)
}

// Node is satisfied by every per-class node record; the Topological
// Sorter and Emitter operate on it without needing to know the concrete
// class.
type Node interface {
	Header() *NodeHeader
}

// ObjectNode is a <UAObject> node.
type ObjectNode struct {
	NodeHeader
	ParentNodeID  ua.NodeID
	EventNotifier string
}

func (n *ObjectNode) Header() *NodeHeader { return &n.NodeHeader }

// ObjectTypeNode is a <UAObjectType> node.
type ObjectTypeNode struct {
	NodeHeader
	IsAbstract bool
}

func (n *ObjectTypeNode) Header() *NodeHeader { return &n.NodeHeader }

// VariableTypeNode is a <UAVariableType> node.
type VariableTypeNode struct {
	NodeHeader
	IsAbstract bool
}

func (n *VariableTypeNode) Header() *NodeHeader { return &n.NodeHeader }

// VariableNode is a <UAVariable> node.
type VariableNode struct {
	NodeHeader
	ParentNodeID ua.NodeID

	// DataType is resolved by the Session's final reconciliation pass:
	// if the raw attribute value names a defined Alias, it is that
	// alias's resolved id, otherwise it is parsed directly as a NodeId.
	// An alias may be declared anywhere in the document, including after
	// this node, so resolution cannot complete until parsing is done.
	DataType    ua.NodeID
	dataTypeRaw string

	ValueRank       string
	ArrayDimensions string
}

func (n *VariableNode) Header() *NodeHeader { return &n.NodeHeader }

// MethodNode is a <UAMethod> node.
type MethodNode struct {
	NodeHeader
	ParentNodeID ua.NodeID
}

func (n *MethodNode) Header() *NodeHeader { return &n.NodeHeader }

// DataTypeNode is a <UADataType> node.
type DataTypeNode struct {
	NodeHeader
}

func (n *DataTypeNode) Header() *NodeHeader { return &n.NodeHeader }

// ReferenceTypeNode is a <UAReferenceType> node.
type ReferenceTypeNode struct {
	NodeHeader
}

func (n *ReferenceTypeNode) Header() *NodeHeader { return &n.NodeHeader }

var (
	_ Node = (*ObjectNode)(nil)
	_ Node = (*ObjectTypeNode)(nil)
	_ Node = (*VariableTypeNode)(nil)
	_ Node = (*VariableNode)(nil)
	_ Node = (*MethodNode)(nil)
	_ Node = (*DataTypeNode)(nil)
	_ Node = (*ReferenceTypeNode)(nil)
)
