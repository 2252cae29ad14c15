package walker

import (
	"testing"

	"github.com/joshuapare/threadkit/internal/testutil"
	"github.com/joshuapare/threadkit/pkg/types"
)

// wideThread builds roots top-level comments with fanout replies per node,
// depth levels deep.
func wideThread(roots, fanout, depth int) []*types.Comment {
	var out []*types.Comment
	next := types.ID(1)
	var grow func(parent types.ID, level int)
	grow = func(parent types.ID, level int) {
		if level == depth {
			return
		}
		for range fanout {
			id := next
			next++
			out = append(out, testutil.C(id, parent))
			grow(id, level+1)
		}
	}
	for range roots {
		id := next
		next++
		out = append(out, testutil.C(id, types.NoParent))
		grow(id, 1)
	}
	return out
}

func BenchmarkWalk(b *testing.B) {
	benchmarks := []struct {
		name     string
		nodes    []*types.Comment
		maxDepth int
	}{
		{"wide/unlimited", wideThread(50, 4, 5), Unlimited},
		{"wide/cap3", wideThread(50, 4, 5), 3},
		{"wide/flat", wideThread(50, 4, 5), Flat},
		{"chain/cap5", testutil.Chain(10000), 5},
	}

	for _, bm := range benchmarks {
		b.Run(bm.name, func(b *testing.B) {
			w := New[types.Comment](bm.maxDepth, func(*types.Comment, int, struct{}) error {
				return nil
			})
			b.ReportAllocs()
			for b.Loop() {
				if err := w.Walk(bm.nodes, struct{}{}); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
