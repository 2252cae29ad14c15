package main

import (
	"errors"
	"testing"

	"github.com/joshuapare/threadkit/pkg/types"
)

func TestValidateCommand(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		json        bool
		wantErr     error
		wantContain []string
	}{
		{
			name:        "clean",
			body:        `[{"id": 1, "parent": 0}, {"id": 2, "parent": 1}]`,
			wantContain: []string{"Comments: 2 (2 reachable from top level)", "OK"},
		},
		{
			name:        "orphans are allowed",
			body:        `[{"id": 1, "parent": 0}, {"id": 2, "parent": 9}]`,
			wantContain: []string{"Missing parents: [9]", "OK"},
		},
		{
			name:    "duplicate",
			body:    `[{"id": 1, "parent": 0}, {"id": 2, "parent": 1}, {"id": 2, "parent": 1}]`,
			wantErr: types.ErrDuplicate,
		},
		{
			name:        "cycle as JSON",
			body:        `[{"id": 1, "parent": 0}, {"id": 2, "parent": 3}, {"id": 3, "parent": 2}]`,
			json:        true,
			wantErr:     types.ErrCycle,
			wantContain: []string{`"valid": false`, `"cycles"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetFlags(t)
			jsonOut = tt.json

			output, err := captureOutput(t, func() error {
				return runValidate([]string{writeThreadFile(t, tt.body)})
			})

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("runValidate() error = %v, want %v", err, tt.wantErr)
				}
			} else if err != nil {
				t.Fatalf("runValidate() error = %v", err)
			}

			if tt.json {
				assertJSON(t, output)
			}
			assertContains(t, output, tt.wantContain)
		})
	}
}

func TestValidateCommand_SampleThread(t *testing.T) {
	resetFlags(t)

	output, err := captureOutput(t, func() error {
		return runValidate([]string{testThreadPath(t, "simple.json")})
	})
	if err != nil {
		t.Fatalf("runValidate() error = %v", err)
	}
	assertContains(t, output, []string{"Comments: 7 (7 reachable from top level)"})
	assertNotContains(t, output, []string{"Missing parents"})
}
