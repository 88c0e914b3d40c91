package nodeset

import "github.com/GoetzGoerisch/open62541-nodeset-loader/ua"

// wellKnownHierarchical seeds the classifier with the seven well-known
// hierarchical reference type ids from the OPC UA base namespace.
var wellKnownHierarchical = []string{
	"i=34", // HasChild
	"i=35", // Organizes
	"i=36", // HasEventSource
	"i=48", // HasNotifier
	"i=44", // Aggregates
	"i=45", // HasSubtype
	"i=47", // HasComponent
}

// ReferenceClassifier is a stateful predicate deciding whether a
// reference's type is hierarchical. It is seeded with the well-known
// hierarchical reference type ids and grows as the document declares new
// ReferenceType nodes whose inverse references transitively declare them
// hierarchical. The set is monotonic: once classified hierarchical, a
// type id stays hierarchical for the rest of the session.
//
// Exposed as an explicit value with Observe/IsHierarchical rather than a
// process-global list, so a session never leaks state into another.
type ReferenceClassifier struct {
	hierarchical []string
}

// NewReferenceClassifier returns a classifier seeded with the well-known
// hierarchical reference types.
func NewReferenceClassifier() *ReferenceClassifier {
	c := &ReferenceClassifier{}
	c.hierarchical = append(c.hierarchical, wellKnownHierarchical...)
	return c
}

// IsHierarchical reports whether refType is currently classified
// hierarchical, by linear scan against the id string — the same
// representation (and the same O(n) scan) the original loader used,
// since the hierarchical set rarely grows past a handful of user-defined
// reference types.
func (c *ReferenceClassifier) IsHierarchical(refType ua.NodeID) bool {
	for _, id := range c.hierarchical {
		if id == refType.ID {
			return true
		}
	}
	return false
}

// Observe is called when a <ReferenceType> node closes. If the node
// declares any inverse (IsForward == false) hierarchical reference — most
// commonly an inverse HasSubtype naming a hierarchical supertype — the
// node's own id is appended to the hierarchical set, so later references
// naming this user-defined reference type are classified hierarchical
// too. This is how subtype relationships propagate: declaring a
// reference type as a subtype of a hierarchical one makes it
// hierarchical itself.
func (c *ReferenceClassifier) Observe(node *ReferenceTypeNode) {
	for _, ref := range Refs(node.HierarchicalRefs) {
		if !ref.IsForward {
			c.hierarchical = append(c.hierarchical, node.ID.ID)
			return
		}
	}
}
