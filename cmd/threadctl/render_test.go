package main

import (
	"errors"
	"testing"

	"github.com/joshuapare/threadkit/pkg/types"
)

func TestRenderCommand(t *testing.T) {
	tests := []struct {
		name           string
		depth          int
		depthSet       bool
		style          string
		format         string
		where          string
		shortPing      bool
		wantJSON       bool
		wantErr        bool
		wantContain    []string
		wantNotContain []string
	}{
		{
			name:        "default depth nests fully",
			wantContain: []string{"Alice: First!\n", "      Carol: Deep reply (awaiting moderation)\n"},
		},
		{
			name:           "depth 2 flattens deep replies",
			depth:          2,
			depthSet:       true,
			wantContain:    []string{"  Alice: Thanks Bob\n", "  Carol: Deep reply"},
			wantNotContain: []string{"    Alice: Thanks Bob"},
		},
		{
			name:        "flat",
			depth:       -1,
			depthSet:    true,
			wantContain: []string{"\nErin: Agreed\n", "\nCarol: Deep reply"},
		},
		{
			name:        "numbered short ping",
			depth:       2,
			depthSet:    true,
			style:       "numbered",
			shortPing:   true,
			wantContain: []string{"1. Alice: First!", "  1.3. Carol", "2. Pingback: example.org", "  3.1. Erin: Agreed"},
		},
		{
			name:           "where filter keeps orphans when unlimited",
			where:          `author like "Al*"`,
			depthSet:       true,
			wantContain:    []string{"Alice: First!\n", "\nAlice: Thanks Bob\n"},
			wantNotContain: []string{"Bob: Replying", "Erin"},
		},
		{
			name:        "tree format",
			format:      "tree",
			depth:       2,
			depthSet:    true,
			wantJSON:    true,
			wantContain: []string{`"children"`, `"author": "Carol"`},
		},
		{
			name:     "invalid depth",
			depth:    -2,
			depthSet: true,
			wantErr:  true,
		},
		{
			name:    "bad filter",
			where:   "(id >",
			wantErr: true,
		},
		{
			name:    "unknown format",
			format:  "html",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetFlags(t)
			renderDepth = tt.depth
			renderDepthSet = tt.depthSet
			renderStyle = tt.style
			renderFormat = tt.format
			renderWhere = tt.where
			renderShortPing = tt.shortPing

			output, err := captureOutput(t, func() error {
				return runRender([]string{testThreadPath(t, "simple.json")})
			})

			if (err != nil) != tt.wantErr {
				t.Fatalf("runRender() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}

			if tt.wantJSON {
				assertJSON(t, output)
			}
			assertContains(t, output, tt.wantContain)
			assertNotContains(t, output, tt.wantNotContain)
		})
	}
}

func TestRenderCommand_GlobalJSON(t *testing.T) {
	resetFlags(t)
	jsonOut = true

	output, err := captureOutput(t, func() error {
		return runRender([]string{testThreadPath(t, "simple.json")})
	})
	if err != nil {
		t.Fatalf("runRender() error = %v", err)
	}
	assertJSON(t, output)
	assertContains(t, output, []string{`"depth": 3`, `"type": "pingback"`})
}

func TestRenderCommand_Validate(t *testing.T) {
	resetFlags(t)
	renderValidate = true

	path := writeThreadFile(t, `[
		{"id": 1, "parent": 0, "author": "a", "content": "root"},
		{"id": 2, "parent": 3, "author": "b", "content": "loop"},
		{"id": 3, "parent": 2, "author": "c", "content": "loop"}
	]`)

	_, err := captureOutput(t, func() error {
		return runRender([]string{path})
	})
	if !errors.Is(err, types.ErrCycle) {
		t.Fatalf("runRender() error = %v, want cycle", err)
	}
}

func TestRenderCommand_Args(t *testing.T) {
	resetFlags(t)

	if _, err := captureOutput(t, func() error { return runRender(nil) }); err == nil {
		t.Fatal("expected error without a thread")
	}

	renderThread = "not-a-uuid"
	if _, err := captureOutput(t, func() error { return runRender(nil) }); err == nil {
		t.Fatal("expected error for an invalid thread id")
	}

	renderThread = "6f1c2b1e-0d7a-4c55-9a57-1c4f1e0b1f3a"
	_, err := captureOutput(t, func() error {
		return runRender([]string{testThreadPath(t, "simple.json")})
	})
	if err == nil {
		t.Fatal("expected error when both a file and --thread are given")
	}
}

func TestRenderCommand_WhereOrphansNeedUnlimitedDepth(t *testing.T) {
	resetFlags(t)
	renderWhere = "id != 2"
	path := testThreadPath(t, "simple.json")

	output, err := captureOutput(t, func() error { return runRender([]string{path}) })
	if err != nil {
		t.Fatalf("runRender() error = %v", err)
	}
	assertContains(t, output, []string{"Alice: First!\n"})
	assertNotContains(t, output, []string{"Thanks Bob", "Deep reply"})

	renderDepth = 0
	renderDepthSet = true
	output, err = captureOutput(t, func() error { return runRender([]string{path}) })
	if err != nil {
		t.Fatalf("runRender() error = %v", err)
	}
	assertContains(t, output, []string{"\nAlice: Thanks Bob\n", "\nCarol: Deep reply"})
}
