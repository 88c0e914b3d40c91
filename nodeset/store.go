package nodeset

import (
	"github.com/GoetzGoerisch/open62541-nodeset-loader/ua"
	"github.com/emirpasic/gods/lists/arraylist"
)

// emitClasses is the fixed walk order the Emitter uses, and the fixed
// tie-break order the Topological Sorter falls back on for nodes of
// equal dependency rank. DataType is deliberately absent: the original
// loader never emitted DataType nodes either, and this carries that
// quirk forward rather than inventing a new class of observable
// behavior nothing downstream ever relied on.
var emitClasses = []ua.NodeClass{
	ua.NodeClassReferenceType,
	ua.NodeClassObjectType,
	ua.NodeClassVariableType,
	ua.NodeClassObject,
	ua.NodeClassMethod,
	ua.NodeClassVariable,
}

// Store holds every node allocated during a parse, bucketed by class in
// document order. Buckets are arraylist.List values; once the Sorter has
// computed a dependency order it installs a new list per class through
// SetBucket, so a list obtained from Bucket before sorting keeps the
// document order.
type Store struct {
	byClass map[ua.NodeClass]*arraylist.List
	byID    map[string]Node
}

// NewStore returns an empty Store with a bucket pre-created for every
// class in emitClasses plus DataType, so Add never needs to check for a
// missing bucket.
func NewStore() *Store {
	s := &Store{
		byClass: map[ua.NodeClass]*arraylist.List{},
		byID:    map[string]Node{},
	}
	for _, c := range emitClasses {
		s.byClass[c] = arraylist.New()
	}
	s.byClass[ua.NodeClassDataType] = arraylist.New()
	return s
}

// Add files node into its class bucket and indexes it by NodeId string
// for reference resolution.
func (s *Store) Add(node Node) {
	h := node.Header()
	s.byClass[h.NodeClass].Add(node)
	s.byID[h.ID.String()] = node
}

// ByID returns the node registered under id's string form, or ok ==
// false if no such node was ever added.
func (s *Store) ByID(id ua.NodeID) (Node, bool) {
	n, ok := s.byID[id.String()]
	return n, ok
}

// Bucket returns the ordered list of nodes in class c.
func (s *Store) Bucket(c ua.NodeClass) *arraylist.List {
	return s.byClass[c]
}

// SetBucket replaces the ordered list of nodes in class c, used by the
// Topological Sorter to install its dependency-ordered result.
func (s *Store) SetBucket(c ua.NodeClass, list *arraylist.List) {
	s.byClass[c] = list
}

// Len returns the total number of nodes across every bucket, including
// DataType.
func (s *Store) Len() int {
	n := 0
	for _, list := range s.byClass {
		n += list.Size()
	}
	return n
}

// allClasses returns every class the Store buckets nodes by, including
// DataType — used by the Topological Sorter, which must order DataType
// nodes' buckets too even though the Emitter never walks them.
func allClasses() []ua.NodeClass {
	classes := make([]ua.NodeClass, 0, len(emitClasses)+1)
	classes = append(classes, emitClasses...)
	classes = append(classes, ua.NodeClassDataType)
	return classes
}
