package nodeset

import (
	"fmt"
	"sort"

	"github.com/GoetzGoerisch/open62541-nodeset-loader/ua"
	"github.com/emirpasic/gods/lists/arraylist"
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

// Sorter orders a Store's buckets so that every node is emitted after
// the target of each of its inverse hierarchical references.
type Sorter struct{}

// NewSorter returns a Sorter. It carries no state of its own — a value
// would do as well, but a constructor matches the rest of the package.
func NewSorter() *Sorter { return &Sorter{} }

// Sort rewrites every one of store's class buckets, in place, into
// dependency order: for a node N with an inverse hierarchical reference
// to T, T is guaranteed to precede N within the combined ordering, and
// ties between otherwise-unordered nodes are broken by (class emission
// rank, document order). Any hierarchical reference cycle is reported
// as a diagnostic; the nodes in the cycle are left in document order
// rather than aborting the sort.
func (s *Sorter) Sort(store *Store) []Diagnostic {
	g := simple.NewDirectedGraph()

	rank := map[int64]int{}
	byGraphID := map[int64]Node{}
	idToGraphID := map[string]int64{}

	var ordered []Node
	var nextID int64
	for _, class := range allClasses() {
		values := store.Bucket(class).Values()
		for i, v := range values {
			n := v.(Node)
			ordered = append(ordered, n)
			gid := nextID
			nextID++
			idToGraphID[n.Header().ID.String()] = gid
			byGraphID[gid] = n
			rank[gid] = class.EmitRank()*1_000_000 + i
			g.AddNode(simple.Node(gid))
		}
	}

	for _, n := range ordered {
		h := n.Header()
		childID := idToGraphID[h.ID.String()]
		for _, ref := range Refs(h.HierarchicalRefs) {
			if ref.IsForward {
				continue
			}
			parentID, ok := idToGraphID[ref.Target.String()]
			if !ok || parentID == childID {
				continue
			}
			g.SetEdge(simple.Edge{F: simple.Node(parentID), T: simple.Node(childID)})
		}
	}

	sorted, err := topo.SortStabilized(g, func(nodes []graph.Node) {
		sort.Slice(nodes, func(i, j int) bool {
			return rank[nodes[i].ID()] < rank[nodes[j].ID()]
		})
	})

	var diags []Diagnostic
	if unorderable, ok := err.(topo.Unorderable); ok {
		for _, group := range unorderable {
			names := make([]string, len(group))
			for i, gn := range group {
				names[i] = byGraphID[gn.ID()].Header().ID.String()
			}
			diags = append(diags, Diagnostic{
				Kind:    TopologicalCycle,
				Message: fmt.Sprintf("hierarchical reference cycle among %v, emitted in document order", names),
			})
		}
	}

	byClass := map[ua.NodeClass]*arraylist.List{}
	cycles, _ := err.(topo.Unorderable)
	for _, gn := range sorted {
		members := []graph.Node{gn}
		if gn == nil {
			// A nil entry marks the position of the next cyclic
			// component, whose members are already in document order.
			members = nil
			if len(cycles) > 0 {
				members, cycles = cycles[0], cycles[1:]
			}
		}
		for _, m := range members {
			n := byGraphID[m.ID()]
			c := n.Header().NodeClass
			if byClass[c] == nil {
				byClass[c] = arraylist.New()
			}
			byClass[c].Add(n)
		}
	}
	for _, class := range allClasses() {
		if list, ok := byClass[class]; ok {
			store.SetBucket(class, list)
		}
	}

	return diags
}
