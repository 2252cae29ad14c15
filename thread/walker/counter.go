package walker

import (
	"slices"

	"github.com/joshuapare/threadkit/pkg/types"
)

// Stats summarizes one walk of a thread.
type Stats struct {
	Nodes     int // nodes rendered
	Roots     int // top-level nodes
	Orphans   int // nodes whose parent chain never reaches a root
	Levels    int // nested levels opened
	Flattened int // nodes rendered shallower than their structural depth

	MaxDepth          int // deepest structural depth (roots are 0)
	MaxEffectiveDepth int // deepest depth actually rendered
}

// Counter walks a thread and collects Stats instead of producing output.
// This is useful for choosing a depth cap and for spotting orphaned replies.
type Counter[T any, N NodePtr[T]] struct {
	walker *Walker[T, N, *Stats]
	depths map[types.ID]int
}

// NewCounter creates a counter that walks with the given depth cap.
func NewCounter[T any, N NodePtr[T]](maxDepth int) *Counter[T, N] {
	c := &Counter[T, N]{}
	c.walker = New[T, N, *Stats](maxDepth, c.count)
	c.walker.Hooks.StartLevel = func(_ int, s *Stats) error {
		s.Levels++
		return nil
	}
	return c
}

// Count walks nodes and returns the collected statistics.
//
// Example:
//
//	counter := walker.NewCounter[types.Comment](3)
//	stats, err := counter.Count(comments)
//	if err != nil {
//	    return err
//	}
//	fmt.Printf("flattened: %d of %d\n", stats.Flattened, stats.Nodes)
func (c *Counter[T, N]) Count(nodes []N) (*Stats, error) {
	stats := &Stats{}

	roots, _ := BuildIndex(nodes)
	stats.Roots = len(roots)

	var orphans int
	c.depths, orphans = structuralDepths(nodes, roots)
	stats.Orphans = orphans

	if err := c.walker.Walk(nodes, stats); err != nil {
		return nil, err
	}
	return stats, nil
}

func (c *Counter[T, N]) count(n N, depth int, s *Stats) error {
	s.Nodes++
	s.MaxEffectiveDepth = max(s.MaxEffectiveDepth, depth)

	structural := c.depths[n.NodeID()]
	s.MaxDepth = max(s.MaxDepth, structural)
	if depth < structural {
		s.Flattened++
	}
	return nil
}

// structuralDepths computes the true nesting depth of every node, with roots
// at 0. Nodes whose parent chain is broken or loops are counted as orphans
// and measured from the first node of the broken chain.
func structuralDepths[T any, N NodePtr[T]](nodes []N, roots []N) (map[types.ID]int, int) {
	byID := make(map[types.ID]N, len(nodes))
	for _, n := range nodes {
		if n != nil {
			byID[n.NodeID()] = n
		}
	}

	depths := make(map[types.ID]int, len(nodes))
	orphaned := make(map[types.ID]bool)
	for _, r := range roots {
		depths[r.NodeID()] = 0
	}

	var path []N
	for _, n := range nodes {
		if n == nil {
			continue
		}

		path = path[:0]
		base, broken := 0, false
		cur := n
		for {
			if d, ok := depths[cur.NodeID()]; ok {
				if len(path) > 0 {
					base, broken = d+1, orphaned[cur.NodeID()]
				}
				break
			}
			if slices.ContainsFunc(path, func(p N) bool { return p.NodeID() == cur.NodeID() }) {
				broken = true
				break
			}
			path = append(path, cur)

			parent, ok := byID[cur.ParentID()]
			if !ok {
				broken = true
				break
			}
			cur = parent
		}

		for i := len(path) - 1; i >= 0; i-- {
			id := path[i].NodeID()
			depths[id] = base + len(path) - 1 - i
			if broken {
				orphaned[id] = true
			}
		}
	}

	return depths, len(orphaned)
}
