package nodeset

import (
	"encoding/xml"
	"fmt"

	"github.com/Eun/go-convert"
)

// attrDef describes one XML attribute the parser may need to read off a
// start element: its name, whether it must be present, and the value to
// use when it is absent and not required.
type attrDef struct {
	Name     string
	Required bool
	Default  string
}

var (
	attrNodeID         = attrDef{Name: "NodeId", Required: true}
	attrBrowseName     = attrDef{Name: "BrowseName", Required: true}
	attrParentNodeID   = attrDef{Name: "ParentNodeId"}
	attrIsAbstract     = attrDef{Name: "IsAbstract", Default: "false"}
	attrEventNotifier  = attrDef{Name: "EventNotifier", Default: "0"}
	attrDataType       = attrDef{Name: "DataType", Default: "i=24"} // BaseDataType
	attrValueRank      = attrDef{Name: "ValueRank", Default: "-1"}
	attrArrayDimension = attrDef{Name: "ArrayDimensions"}
	attrIsForward      = attrDef{Name: "IsForward", Default: "true"}
	attrReferenceType  = attrDef{Name: "ReferenceType", Required: true}
	attrAlias          = attrDef{Name: "Alias", Required: true}
)

// getAttr returns the value of def on el: the attribute's literal value
// if present, def.Default if absent and not required, or a
// *MissingRequiredAttributeError if absent and required with no default.
func getAttr(el xml.StartElement, def attrDef) (string, error) {
	for _, a := range el.Attr {
		if a.Name.Local == def.Name {
			return a.Value, nil
		}
	}
	if def.Required && def.Default == "" {
		return "", &MissingRequiredAttributeError{Element: el.Name.Local, Attr: def.Name}
	}
	return def.Default, nil
}

// getAttrBool is getAttr followed by a conversion to bool via go-convert,
// used for the only two attributes the parser itself branches on:
// Reference.IsForward and the *Type nodes' IsAbstract.
func getAttrBool(el xml.StartElement, def attrDef) (bool, error) {
	raw, err := getAttr(el, def)
	if err != nil {
		return false, err
	}
	var result bool
	if err := convert.Convert(raw, &result); err != nil {
		return false, fmt.Errorf("element %s: attribute %s: %w", el.Name.Local, def.Name, err)
	}
	return result, nil
}
