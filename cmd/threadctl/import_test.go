package main

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/joshuapare/threadkit/pkg/types"
)

// importSimple imports simple.json and returns the new thread id
func importSimple(t *testing.T) string {
	t.Helper()
	output, err := captureOutput(t, func() error {
		return runImport([]string{testThreadPath(t, "simple.json")})
	})
	if err != nil {
		t.Fatalf("runImport() error = %v", err)
	}
	return strings.TrimSpace(output)
}

func TestImportCommand(t *testing.T) {
	resetFlags(t)
	id := importSimple(t)
	if len(id) != 36 {
		t.Fatalf("expected a thread id, got %q", id)
	}

	renderThread = id
	renderDepth = 2
	renderDepthSet = true
	output, err := captureOutput(t, func() error { return runRender(nil) })
	if err != nil {
		t.Fatalf("runRender() error = %v", err)
	}
	assertContains(t, output, []string{"Alice: First!\n", "  Carol: Deep reply", "  Erin: Agreed\n"})

	output, err = captureOutput(t, func() error { return runThreads() })
	if err != nil {
		t.Fatalf("runThreads() error = %v", err)
	}
	assertContains(t, output, []string{id, "simple"})
}

func TestImportCommand_JSON(t *testing.T) {
	resetFlags(t)
	jsonOut = true
	importTitle = "Release notes"

	output, err := captureOutput(t, func() error {
		return runImport([]string{testThreadPath(t, "simple.json")})
	})
	if err != nil {
		t.Fatalf("runImport() error = %v", err)
	}

	var res importResult
	if err := json.Unmarshal([]byte(output), &res); err != nil {
		t.Fatalf("invalid JSON output: %v\n%s", err, output)
	}
	if res.Title != "Release notes" || res.Comments != 7 {
		t.Errorf("unexpected import result: %+v", res)
	}
}

func TestImportCommand_AssignsIDs(t *testing.T) {
	resetFlags(t)
	path := writeThreadFile(t, `[
		{"author": "a", "content": "no id yet"},
		{"author": "b", "content": "me neither"}
	]`)

	output, err := captureOutput(t, func() error { return runImport([]string{path}) })
	if err != nil {
		t.Fatalf("runImport() error = %v", err)
	}

	renderThread = strings.TrimSpace(output)
	renderFormat = "json"
	output, err = captureOutput(t, func() error { return runRender(nil) })
	if err != nil {
		t.Fatalf("runRender() error = %v", err)
	}
	assertNotContains(t, output, []string{`"id": 0`})
	assertContains(t, output, []string{"no id yet", "me neither"})
}

func TestDeleteCommand(t *testing.T) {
	resetFlags(t)
	id := importSimple(t)

	if _, err := captureOutput(t, func() error { return runDelete([]string{id}) }); err != nil {
		t.Fatalf("runDelete() error = %v", err)
	}

	_, err := captureOutput(t, func() error { return runDelete([]string{id}) })
	if !errors.Is(err, types.ErrNotFound) {
		t.Fatalf("second delete error = %v, want not found", err)
	}

	output, err := captureOutput(t, func() error { return runThreads() })
	if err != nil {
		t.Fatalf("runThreads() error = %v", err)
	}
	assertContains(t, output, []string{"No threads stored"})
}
