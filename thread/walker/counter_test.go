package walker

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/threadkit/internal/testutil"
	"github.com/joshuapare/threadkit/pkg/types"
)

func Test_Counter(t *testing.T) {
	thread := testutil.Outline("1", "-2", "--3", "---4", "-5", "6")

	tests := []struct {
		name     string
		maxDepth int
		want     Stats
	}{
		{
			name:     "unlimited",
			maxDepth: Unlimited,
			want:     Stats{Nodes: 6, Roots: 2, Levels: 3, MaxDepth: 3, MaxEffectiveDepth: 3},
		},
		{
			name:     "cap 2",
			maxDepth: 2,
			want:     Stats{Nodes: 6, Roots: 2, Levels: 1, Flattened: 2, MaxDepth: 3, MaxEffectiveDepth: 1},
		},
		{
			name:     "flat",
			maxDepth: Flat,
			want:     Stats{Nodes: 6, Roots: 2, Flattened: 4, MaxDepth: 3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stats, err := NewCounter[types.Comment](tt.maxDepth).Count(thread)
			require.NoError(t, err)
			require.Equal(t, tt.want, *stats)
		})
	}
}

func Test_Counter_Orphans(t *testing.T) {
	thread := []*types.Comment{
		testutil.C(1, 0),
		testutil.C(10, 99),
		testutil.C(11, 10),
		testutil.C(20, 21), // 20 and 21 reply to each other
		testutil.C(21, 20),
	}

	stats, err := NewCounter[types.Comment](Unlimited).Count(thread)
	require.NoError(t, err)
	require.Equal(t, 5, stats.Nodes)
	require.Equal(t, 1, stats.Roots)
	require.Equal(t, 4, stats.Orphans)
}

func Test_Counter_InvalidDepth(t *testing.T) {
	_, err := NewCounter[types.Comment](-5).Count(testutil.Chain(2))
	require.ErrorIs(t, err, types.ErrInvalidDepth)
}
