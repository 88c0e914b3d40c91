package ua

import "encoding/json"

// NodeClass is the structural category of a node. The numeric values
// match the OPC UA NodeClass enumeration bit positions used on the wire.
type NodeClass int32

const (
	NodeClassObject NodeClass = 1 << iota
	NodeClassVariable
	NodeClassMethod
	NodeClassObjectType
	NodeClassVariableType
	NodeClassReferenceType
	NodeClassDataType
)

// emitOrder is the fixed class order the emitter and topological sorter
// use to break ties between otherwise-equal-rank nodes.
var emitOrder = map[NodeClass]int{
	NodeClassReferenceType: 0,
	NodeClassObjectType:    1,
	NodeClassVariableType:  2,
	NodeClassObject:        3,
	NodeClassMethod:        4,
	NodeClassVariable:      5,
}

// EmitRank returns n's position in the fixed emission class order
// (ReferenceType, ObjectType, VariableType, Object, Method, Variable).
func (n NodeClass) EmitRank() int {
	if r, ok := emitOrder[n]; ok {
		return r
	}
	return len(emitOrder)
}

func (n NodeClass) String() string {
	switch n {
	case NodeClassObject:
		return "Object"
	case NodeClassVariable:
		return "Variable"
	case NodeClassMethod:
		return "Method"
	case NodeClassObjectType:
		return "ObjectType"
	case NodeClassVariableType:
		return "VariableType"
	case NodeClassDataType:
		return "DataType"
	case NodeClassReferenceType:
		return "ReferenceType"
	default:
		return "Unknown"
	}
}

func (n NodeClass) MarshalJSON() ([]byte, error) {
	return json.Marshal(int32(n))
}

func (n *NodeClass) UnmarshalJSON(b []byte) error {
	var nodeClass int32
	err := json.Unmarshal(b, &nodeClass)
	if err != nil {
		return err
	}
	*n = NodeClass(nodeClass)
	return nil
}
