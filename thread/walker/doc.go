// Package walker linearizes comment threads under a maximum nesting depth.
//
// # Overview
//
// A thread is a forest: top-level comments and their replies, linked by
// parent ids. The walker turns it into a flat, depth-first sequence of
// render calls, each carrying the node and its effective depth. Sibling
// order is always the caller's order.
//
// Replies deeper than the cap are not dropped and are not indented further.
// They are emitted right after their parent at the parent's depth, together
// with their own descendants:
//
//	max depth = 2, five levels of replies:
//	  1
//	    1.1
//	    1.1.1
//	    1.1.1.1
//	    1.1.1.1.1
//	    1.1.2
//	    1.1.2.1
//	  2
//	    2.2
//
// # Core Components
//
// ChildIndex: parent id -> ordered child list
//   - Built once with BuildIndex from a flat, ordered node list
//   - Consumed by a walk: an entry is deleted once its children are emitted
//   - Clone before walking if the index is needed again
//
// Walker: the traversal engine
//   - DisplayElement visits one node and everything below it
//   - Walk/WalkIndex drive a whole thread, including orphaned replies
//   - Hooks report level boundaries and element ends
//
// Validate: non-destructive structural check (duplicates, cycles, orphans)
//
// Counter: walks a thread into Stats instead of output
//
// # Quick Start
//
//	w := walker.New[types.Comment](3, func(c *types.Comment, depth int, out io.Writer) error {
//	    _, err := fmt.Fprintf(out, "%s%s\n", strings.Repeat("  ", depth), c.Content)
//	    return err
//	})
//	if err := w.Walk(comments, os.Stdout); err != nil {
//	    return err
//	}
//
// # Depth Rules
//
// For a node rendered at depth d with children in the index:
//
//   - MaxDepth == 0 (Unlimited) or MaxDepth > d+1: children are rendered at
//     d+1, between StartLevel(d) and EndLevel(d).
//   - MaxDepth > 0 and MaxDepth <= d+1: children are rendered at d, after the
//     node's EndElement. The same rule applies to them, so the whole subtree
//     stays at d.
//   - MaxDepth == -1 (Flat): every node is rendered at depth 0.
//
// Note the comparison is against d+1: with MaxDepth 2 a root renders at 0,
// its replies at 1, and everything deeper also at 1.
//
// # Iterative Traversal
//
// The engine keeps an explicit stack of frames instead of recursing, so very
// deep reply chains cannot exhaust the goroutine stack:
//
//	type frame struct {
//	    node     N
//	    depth    int
//	    children []N
//	    next     int
//	    state    uint8
//	}
//
// Processing states:
//   - stateInitial: render, decide whether children nest
//   - stateNested: push children one level deeper, one at a time
//   - stateEndElement: fire EndElement, decide whether children flatten
//   - stateFlatten: push children at the same depth, one at a time
//   - stateDone: pop
//
// # Error Handling
//
// A nil node and a node without an index entry are not errors. The first
// error returned by Render or a hook aborts the walk and is returned wrapped
// with the node id; nothing rendered before it is undone.
//
// Cycles are not detected by the walker. Run Validate on untrusted input:
//
//	roots, idx := walker.BuildIndex(comments)
//	if err := walker.Validate(roots, idx).Err(); err != nil {
//	    if errors.Is(err, types.ErrCycle) {
//	        return fmt.Errorf("broken thread: %w", err)
//	    }
//	    return err
//	}
//
// # Thread Safety
//
// Walkers and ChildIndex values are not thread-safe. Walks over independent
// threads may run in parallel as long as each has its own walker and index.
package walker
