package walker

import (
	"fmt"

	"github.com/joshuapare/threadkit/pkg/types"
)

const (
	// Unlimited disables the depth cap: nodes nest to their natural depth.
	Unlimited = 0

	// Flat renders every node at depth 0 with no nesting at all.
	Flat = -1

	// initialStackCapacity is the pre-allocated capacity for the traversal stack.
	// Comment threads are rarely more than a few dozen levels deep.
	initialStackCapacity = 64
)

// RenderFunc is invoked exactly once per visited node, in traversal order,
// with the node's effective depth and the caller's opaque context.
type RenderFunc[N any, C any] func(node N, depth int, ctx C) error

// Hooks are optional structural callbacks fired around a render call.
// A nil hook is skipped.
type Hooks[N any, C any] struct {
	// StartLevel runs before the first child of a nested level is visited.
	// depth is the depth of the parent. Flattened children never open a level.
	StartLevel func(depth int, ctx C) error

	// EndLevel runs after the last child of a nested level.
	EndLevel func(depth int, ctx C) error

	// EndElement runs once a node and its nested children are done, before
	// any of its flattened descendants are emitted.
	EndElement func(node N, depth int, ctx C) error
}

// Processing states for a stack frame.
const (
	stateInitial = iota
	stateNested
	stateEndElement
	stateFlatten
	stateDone
)

// frame is one pending node in the iterative traversal.
type frame[N any] struct {
	node     N
	depth    int
	children []N
	next     int
	state    uint8
}

// Walker linearizes a thread under a maximum nesting depth.
//
// Children that would be rendered deeper than MaxDepth are not dropped: they
// are emitted right after their parent at the parent's depth, and so are
// their own descendants. See DisplayElement for the exact rule.
//
// A Walker is not safe for concurrent use, and neither is the ChildIndex it
// consumes.
type Walker[T any, N NodePtr[T], C any] struct {
	// MaxDepth caps nesting: Unlimited (0), Flat (-1), or a positive level count.
	MaxDepth int

	// Render receives every node once. Required.
	Render RenderFunc[N, C]

	// Hooks receive optional level and end-of-element events.
	Hooks Hooks[N, C]

	stack []frame[N]
}

// New creates a walker with the given depth cap and render callback.
func New[T any, N NodePtr[T], C any](maxDepth int, render RenderFunc[N, C]) *Walker[T, N, C] {
	return &Walker[T, N, C]{
		MaxDepth: maxDepth,
		Render:   render,
		stack:    make([]frame[N], 0, initialStackCapacity),
	}
}

// DisplayElement visits node at depth using a one-off walker. It is the
// functional form of (*Walker).DisplayElement.
func DisplayElement[T any, N NodePtr[T], C any](
	node N,
	idx *ChildIndex[N],
	maxDepth int,
	depth int,
	ctx C,
	render RenderFunc[N, C],
) error {
	return New[T, N, C](maxDepth, render).DisplayElement(node, idx, depth, ctx)
}

// DisplayElement renders node at depth, then its children from idx:
//
//   - When MaxDepth is Unlimited or MaxDepth > depth+1, children are visited
//     one level deeper (depth+1), wrapped in StartLevel/EndLevel.
//   - When MaxDepth > 0 and MaxDepth <= depth+1, children are visited at the
//     same depth, after the node's EndElement. This applies recursively, so a
//     whole subtree below the cap collapses into one pre-ordered run.
//
// A child list is deleted from idx exactly once, after all of its
// descendants were emitted. A nil node is a no-op. The first render or hook
// error stops the traversal and is returned.
func (w *Walker[T, N, C]) DisplayElement(node N, idx *ChildIndex[N], depth int, ctx C) error {
	if w.MaxDepth < Flat {
		return types.Wrap(types.ErrInvalidDepth, fmt.Errorf("max depth %d", w.MaxDepth))
	}
	if idx == nil {
		idx = NewChildIndex[N](0)
	}
	maxDepth := w.MaxDepth
	if maxDepth == Flat {
		maxDepth = 1
	}
	return w.display(node, idx, maxDepth, depth, ctx)
}

// Walk renders a flat, caller-ordered node list. The list is partitioned
// with BuildIndex into a private index, so nodes is never modified.
//
// In Flat mode every node is rendered at depth 0 in input order.
func (w *Walker[T, N, C]) Walk(nodes []N, ctx C) error {
	if w.MaxDepth < Flat {
		return types.Wrap(types.ErrInvalidDepth, fmt.Errorf("max depth %d", w.MaxDepth))
	}
	if len(nodes) == 0 {
		return nil
	}

	if w.MaxDepth == Flat {
		empty := NewChildIndex[N](0)
		for _, n := range nodes {
			if err := w.display(n, empty, 1, 0, ctx); err != nil {
				return err
			}
		}
		return nil
	}

	roots, idx := BuildIndex(nodes)
	return w.WalkIndex(roots, idx, ctx)
}

// WalkIndex renders roots at depth 0 and their descendants from idx, which
// is consumed in the process.
//
// With MaxDepth Unlimited or Flat, entries still left in idx afterwards
// belong to nodes whose parent was never reached (filtered out or missing).
// Those nodes are rendered at depth 0 after the roots, in the order their
// parents were first indexed, so nothing is silently lost. Under a positive
// cap they are skipped.
//
// In Flat mode every reachable node is rendered at depth 0 in pre-order.
//
// An index can be walked once; a second WalkIndex over it returns
// types.ErrIndexConsumed without rendering anything.
func (w *Walker[T, N, C]) WalkIndex(roots []N, idx *ChildIndex[N], ctx C) error {
	if w.MaxDepth < Flat {
		return types.Wrap(types.ErrInvalidDepth, fmt.Errorf("max depth %d", w.MaxDepth))
	}
	if idx == nil {
		idx = NewChildIndex[N](0)
	}
	if idx.consumed {
		return types.ErrIndexConsumed
	}
	idx.consumed = true

	maxDepth := w.MaxDepth
	if maxDepth == Flat {
		maxDepth = 1
	}

	for _, root := range roots {
		if err := w.display(root, idx, maxDepth, 0, ctx); err != nil {
			return err
		}
	}

	if (maxDepth != Unlimited && w.MaxDepth != Flat) || idx.Len() == 0 {
		return nil
	}

	empty := NewChildIndex[N](0)
	for parent := range idx.Parents() {
		orphans, _ := idx.Children(parent)
		for _, op := range orphans {
			if err := w.display(op, empty, 1, 0, ctx); err != nil {
				return err
			}
		}
	}
	return nil
}

// display runs the iterative traversal for one starting node. Frames above
// base belong to this call; the stack is left at base on return.
func (w *Walker[T, N, C]) display(node N, idx *ChildIndex[N], maxDepth, depth int, ctx C) error {
	if node == nil {
		return nil
	}

	base := len(w.stack)
	defer func() {
		clear(w.stack[base:])
		w.stack = w.stack[:base]
	}()

	w.stack = append(w.stack, frame[N]{node: node, depth: depth})
	for len(w.stack) > base {
		f := &w.stack[len(w.stack)-1]
		id := f.node.NodeID()

		// Frame state is updated before any callback runs: a callback may
		// re-enter the walker and grow the stack, invalidating f.
		switch f.state {
		case stateInitial:
			n, d := f.node, f.depth
			f.state = stateEndElement
			var children []N
			if maxDepth == Unlimited || maxDepth > d+1 {
				if list, ok := idx.Children(id); ok {
					children = list
					f.children = list
					f.state = stateNested
				}
			}
			if err := w.render(n, d, ctx); err != nil {
				return err
			}
			if len(children) > 0 {
				if err := w.startLevel(d, ctx); err != nil {
					return err
				}
			}

		case stateNested:
			if f.next < len(f.children) {
				child := f.children[f.next]
				f.next++
				if child != nil {
					w.stack = append(w.stack, frame[N]{node: child, depth: f.depth + 1})
				}
				break
			}
			opened := len(f.children) > 0
			f.children, f.next = nil, 0
			f.state = stateEndElement
			idx.Delete(id)
			if opened {
				if err := w.endLevel(f.depth, ctx); err != nil {
					return err
				}
			}

		case stateEndElement:
			n, d := f.node, f.depth
			f.state = stateDone
			// Orphan prevention: at the cap, children stay at this depth.
			if maxDepth > 0 && maxDepth <= d+1 {
				if children, ok := idx.Children(id); ok {
					f.children = children
					f.state = stateFlatten
				}
			}
			if err := w.endElement(n, d, ctx); err != nil {
				return err
			}

		case stateFlatten:
			if f.next < len(f.children) {
				child := f.children[f.next]
				f.next++
				if child != nil {
					w.stack = append(w.stack, frame[N]{node: child, depth: f.depth})
				}
				break
			}
			idx.Delete(id)
			f.state = stateDone

		default:
			w.stack[len(w.stack)-1] = frame[N]{}
			w.stack = w.stack[:len(w.stack)-1]
		}
	}

	return nil
}

func (w *Walker[T, N, C]) render(node N, depth int, ctx C) error {
	if w.Render == nil {
		return nil
	}
	if err := w.Render(node, depth, ctx); err != nil {
		return fmt.Errorf("render node %d at depth %d: %w", node.NodeID(), depth, err)
	}
	return nil
}

func (w *Walker[T, N, C]) startLevel(depth int, ctx C) error {
	if w.Hooks.StartLevel == nil {
		return nil
	}
	if err := w.Hooks.StartLevel(depth, ctx); err != nil {
		return fmt.Errorf("start level %d: %w", depth, err)
	}
	return nil
}

func (w *Walker[T, N, C]) endLevel(depth int, ctx C) error {
	if w.Hooks.EndLevel == nil {
		return nil
	}
	if err := w.Hooks.EndLevel(depth, ctx); err != nil {
		return fmt.Errorf("end level %d: %w", depth, err)
	}
	return nil
}

func (w *Walker[T, N, C]) endElement(node N, depth int, ctx C) error {
	if w.Hooks.EndElement == nil {
		return nil
	}
	if err := w.Hooks.EndElement(node, depth, ctx); err != nil {
		return fmt.Errorf("end node %d at depth %d: %w", node.NodeID(), depth, err)
	}
	return nil
}
