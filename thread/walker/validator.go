package walker

import (
	"errors"
	"slices"

	"github.com/RoaringBitmap/roaring/v2/roaring64"

	"github.com/joshuapare/threadkit/pkg/types"
)

// Report describes the structure of a thread as seen from its roots.
type Report struct {
	Nodes      int        // distinct node ids in roots and index
	Reachable  int        // nodes reachable from the roots
	Duplicates []types.ID // ids carried by more than one node, or reached twice
	Cycles     []types.ID // one id per parent chain that loops back on itself
	Orphans    []types.ID // parent ids referenced by replies but absent from the thread
}

// OK reports whether the thread has neither duplicates nor cycles.
// Orphans are allowed: the walker renders them after the roots.
func (r *Report) OK() bool {
	return len(r.Duplicates) == 0 && len(r.Cycles) == 0
}

// Err returns the structural problems as an error, or nil.
func (r *Report) Err() error {
	var errs []error
	if len(r.Duplicates) > 0 {
		errs = append(errs, types.Wrap(types.ErrDuplicate, idListError(r.Duplicates)))
	}
	if len(r.Cycles) > 0 {
		errs = append(errs, types.Wrap(types.ErrCycle, idListError(r.Cycles)))
	}
	return errors.Join(errs...)
}

// Validate inspects roots and idx without consuming idx. The walker itself
// does not detect cycles, so untrusted threads should be validated first.
func Validate[T any, N NodePtr[T]](roots []N, idx *ChildIndex[N]) *Report {
	report := &Report{}
	if idx == nil {
		idx = NewChildIndex[N](0)
	}

	byID := make(map[types.ID]N, len(roots)+idx.Len())
	seen := roaring64.NewBitmap()
	dups := roaring64.NewBitmap()
	register := func(n N) {
		if n == nil {
			return
		}
		id := uint64(n.NodeID())
		if seen.Contains(id) {
			dups.Add(id)
			return
		}
		seen.Add(id)
		byID[n.NodeID()] = n
	}
	for _, r := range roots {
		register(r)
	}
	for parent := range idx.Parents() {
		children, _ := idx.Children(parent)
		for _, c := range children {
			register(c)
		}
	}
	report.Nodes = int(seen.GetCardinality())

	// Reachability from the roots, iterative so deep threads are fine.
	visited := roaring64.NewBitmap()
	stack := make([]N, 0, initialStackCapacity)
	for i := len(roots) - 1; i >= 0; i-- {
		if roots[i] != nil {
			stack = append(stack, roots[i])
		}
	}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		id := uint64(n.NodeID())
		if visited.Contains(id) {
			dups.Add(id)
			continue
		}
		visited.Add(id)

		children, _ := idx.Children(n.NodeID())
		for i := len(children) - 1; i >= 0; i-- {
			if children[i] != nil {
				stack = append(stack, children[i])
			}
		}
	}
	report.Reachable = int(visited.GetCardinality())

	// Unreached parent ids are either missing from the thread or sit on a
	// parent chain that never reaches a root.
	resolved := roaring64.NewBitmap()
	for parent := range idx.Parents() {
		if visited.Contains(uint64(parent)) || resolved.Contains(uint64(parent)) {
			continue
		}

		chain := roaring64.NewBitmap()
		cur := parent
		for {
			if resolved.Contains(uint64(cur)) || visited.Contains(uint64(cur)) {
				break
			}
			if chain.Contains(uint64(cur)) {
				report.Cycles = append(report.Cycles, cur)
				break
			}
			node, ok := byID[cur]
			if !ok {
				if !slices.Contains(report.Orphans, cur) {
					report.Orphans = append(report.Orphans, cur)
				}
				break
			}
			chain.Add(uint64(cur))
			if node.ParentID() == types.NoParent {
				break
			}
			cur = node.ParentID()
		}
		resolved.Or(chain)
	}

	report.Duplicates = toIDs(dups)
	return report
}

func toIDs(bm *roaring64.Bitmap) []types.ID {
	if bm.IsEmpty() {
		return nil
	}
	out := make([]types.ID, 0, bm.GetCardinality())
	it := bm.Iterator()
	for it.HasNext() {
		out = append(out, types.ID(it.Next()))
	}
	return out
}
