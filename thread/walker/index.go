package walker

import (
	"iter"
	"slices"

	"github.com/joshuapare/threadkit/pkg/types"
)

// Node is anything that can be placed in a thread: it has an id and the id of
// the node it replies to (types.NoParent for top-level nodes).
type Node interface {
	NodeID() types.ID
	ParentID() types.ID
}

// NodePtr constrains walker nodes to pointer types so an absent node is nil.
type NodePtr[T any] interface {
	*T
	Node
}

// ChildIndex groups nodes by parent id. Each parent id maps to exactly one
// ordered child list, and parent ids remember the order in which they were
// first added.
//
// A walk consumes the index: once a node's children have been emitted the
// node's entry is deleted. Use Clone to keep a reusable copy.
type ChildIndex[N any] struct {
	lists map[types.ID][]N
	order []types.ID
	known map[types.ID]struct{}

	consumed bool // set by WalkIndex
}

// NewChildIndex creates an empty index. sizeHint pre-sizes the parent map.
func NewChildIndex[N any](sizeHint int) *ChildIndex[N] {
	return &ChildIndex[N]{
		lists: make(map[types.ID][]N, sizeHint),
		known: make(map[types.ID]struct{}, sizeHint),
	}
}

// Add appends n to the child list of parent.
func (ci *ChildIndex[N]) Add(parent types.ID, n N) {
	if _, ok := ci.known[parent]; !ok {
		ci.known[parent] = struct{}{}
		ci.order = append(ci.order, parent)
	}
	ci.lists[parent] = append(ci.lists[parent], n)
}

// Children returns the child list of id and whether an entry exists.
// The returned slice is owned by the index and must not be modified.
func (ci *ChildIndex[N]) Children(id types.ID) ([]N, bool) {
	children, ok := ci.lists[id]
	return children, ok
}

// Delete removes the entry for id. Deleting a missing entry is a no-op.
func (ci *ChildIndex[N]) Delete(id types.ID) {
	delete(ci.lists, id)
}

// Len returns the number of parent ids that still have an entry.
func (ci *ChildIndex[N]) Len() int {
	return len(ci.lists)
}

// Parents iterates the parent ids that still have an entry, in the order they
// were first added.
func (ci *ChildIndex[N]) Parents() iter.Seq[types.ID] {
	return func(yield func(types.ID) bool) {
		for _, id := range ci.order {
			if _, ok := ci.lists[id]; !ok {
				continue
			}
			if !yield(id) {
				return
			}
		}
	}
}

// Consumed reports whether a WalkIndex already ran over the index.
func (ci *ChildIndex[N]) Consumed() bool {
	return ci.consumed
}

// Clone returns an independent, unconsumed copy of the index. Nodes are
// shared, lists are not.
func (ci *ChildIndex[N]) Clone() *ChildIndex[N] {
	out := NewChildIndex[N](len(ci.lists))
	for _, id := range ci.order {
		out.known[id] = struct{}{}
		out.order = append(out.order, id)
		if children, ok := ci.lists[id]; ok {
			out.lists[id] = slices.Clone(children)
		}
	}
	return out
}

// BuildIndex partitions a flat, caller-ordered node list into top-level nodes
// and a ChildIndex of everything else. Relative order is preserved.
//
// Nodes whose parent is types.NoParent are top-level. When no such node
// exists (a sub-thread was selected), the parent of the first node plays the
// role of the root parent instead. Nil entries are skipped.
func BuildIndex[T any, N NodePtr[T]](nodes []N) ([]N, *ChildIndex[N]) {
	rootParent := types.NoParent
	if !slices.ContainsFunc(nodes, isTopLevel[T, N]) {
		for _, n := range nodes {
			if n != nil {
				rootParent = n.ParentID()
				break
			}
		}
	}

	roots := make([]N, 0, len(nodes))
	idx := NewChildIndex[N](len(nodes) / 2)
	for _, n := range nodes {
		if n == nil {
			continue
		}
		if n.ParentID() == rootParent {
			roots = append(roots, n)
			continue
		}
		idx.Add(n.ParentID(), n)
	}
	return roots, idx
}

func isTopLevel[T any, N NodePtr[T]](n N) bool {
	return n != nil && n.ParentID() == types.NoParent
}
