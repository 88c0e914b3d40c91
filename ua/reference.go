package ua

import (
	"bytes"

	"github.com/karlseguin/jsonwriter"
	"github.com/tidwall/gjson"
)

// Reference is a directed, typed edge from one node to another. It
// belongs to exactly one source node and is stored on that node's
// hierarchical or non-hierarchical list, decided by the Reference-Type
// Classifier at the time the <Reference> element closes.
type Reference struct {
	RefType   NodeID `json:"referenceTypeId"`
	IsForward bool   `json:"isForward"`
	Target    NodeID `json:"targetId"`

	// HierarchicalAtClose records the classification decided when this
	// reference's element closed. It does not change afterward even if
	// the classifier later learns that RefType is hierarchical — the
	// classifier is monotonic, but a reference's bucket assignment is
	// fixed at close time per the parser's transition table.
	HierarchicalAtClose bool `json:"-"`
}

// NewReference constructs a Reference.
func NewReference(refType NodeID, isForward bool, target NodeID) Reference {
	return Reference{RefType: refType, IsForward: isForward, Target: target}
}

func (ref Reference) MarshalJSON() ([]byte, error) {
	buffer := new(bytes.Buffer)
	writer := jsonwriter.New(buffer)
	writer.RootObject(func() {
		writer.KeyValue("referenceTypeId", ref.RefType)
		writer.KeyValue("isForward", ref.IsForward)
		writer.KeyValue("targetId", ref.Target)
	})
	return buffer.Bytes(), nil
}

func (ref *Reference) UnmarshalJSON(b []byte) error {
	jeRefType := gjson.GetBytes(b, "referenceTypeId")
	var refType NodeID
	if err := refType.UnmarshalJSON([]byte(jeRefType.Raw)); err != nil {
		return err
	}
	ref.RefType = refType

	jeIsForward := gjson.GetBytes(b, "isForward")
	ref.IsForward = jeIsForward.Bool()

	jeTarget := gjson.GetBytes(b, "targetId")
	var target NodeID
	if err := target.UnmarshalJSON([]byte(jeTarget.Raw)); err != nil {
		return err
	}
	ref.Target = target
	return nil
}
