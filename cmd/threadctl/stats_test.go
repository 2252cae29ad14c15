package main

import (
	"encoding/json"
	"testing"

	"github.com/joshuapare/threadkit/thread/walker"
)

func TestStatsCommand(t *testing.T) {
	tests := []struct {
		name        string
		depth       int
		wantContain []string
	}{
		{
			name:  "unlimited",
			depth: 0,
			wantContain: []string{
				"Comments: 7", "Top-level: 3", "Max Depth: 3",
				"max depth unlimited", "Flattened: 0", "Deepest Rendered: 3",
			},
		},
		{
			name:        "capped",
			depth:       2,
			wantContain: []string{"max depth 2", "Flattened: 2", "Deepest Rendered: 1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetFlags(t)
			statsDepth = tt.depth
			statsDepthSet = true

			output, err := captureOutput(t, func() error {
				return runStats([]string{testThreadPath(t, "simple.json")})
			})
			if err != nil {
				t.Fatalf("runStats() error = %v", err)
			}
			assertContains(t, output, tt.wantContain)
		})
	}
}

func TestStatsCommand_JSON(t *testing.T) {
	resetFlags(t)
	jsonOut = true

	output, err := captureOutput(t, func() error {
		return runStats([]string{testThreadPath(t, "simple.json")})
	})
	if err != nil {
		t.Fatalf("runStats() error = %v", err)
	}

	var stats walker.Stats
	if err := json.Unmarshal([]byte(output), &stats); err != nil {
		t.Fatalf("invalid JSON output: %v\n%s", err, output)
	}
	if stats.Nodes != 7 || stats.Roots != 3 {
		t.Errorf("unexpected stats: %+v", stats)
	}
}

func TestStatsCommand_InvalidDepth(t *testing.T) {
	resetFlags(t)
	statsDepth = -3
	statsDepthSet = true

	_, err := captureOutput(t, func() error {
		return runStats([]string{testThreadPath(t, "simple.json")})
	})
	if err == nil {
		t.Fatal("expected error for depth -3")
	}
}
