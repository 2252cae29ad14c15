package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/joshuapare/threadkit/thread/printer"
)

// testThreadPath returns the path to a thread file under testdata/threads
func testThreadPath(t *testing.T, name string) string {
	t.Helper()
	// Go up two directories from cmd/threadctl to repo root
	root := filepath.Join("..", "..")
	path := filepath.Join(root, "testdata", "threads", name)
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("test file not found: %s", path)
	}
	return path
}

// writeThreadFile writes a JSON thread into a temp dir and returns its path
func writeThreadFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "thread.json")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("failed to write thread file: %v", err)
	}
	return path
}

// resetFlags restores every command flag to its default and points the
// store at a fresh temp dir
func resetFlags(t *testing.T) {
	t.Helper()

	verbose = false
	quiet = false
	jsonOut = false
	noColor = false
	configPath = ""
	storeDir = t.TempDir()

	renderThread = ""
	renderWhere = ""
	renderDepth = printer.DefaultMaxDepth
	renderDepthSet = false
	renderFormat = ""
	renderStyle = ""
	renderShortPing = false
	renderDates = false
	renderExcerpt = 0
	renderValidate = false

	importTitle = ""

	statsThread = ""
	statsDepth = 0
	statsDepthSet = false

	validateThread = ""
}

// captureOutput captures stdout while running a function
func captureOutput(t *testing.T, fn func() error) (string, error) {
	t.Helper()

	// Save original stdout
	origStdout := os.Stdout

	// Create a pipe to capture output
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}

	// Redirect stdout to pipe
	os.Stdout = w

	// Drain the pipe concurrently so large outputs cannot block fn
	done := make(chan struct{})
	var buf bytes.Buffer
	go func() {
		defer close(done)
		_, _ = buf.ReadFrom(r)
	}()

	// Run function
	fnErr := fn()

	// Close write end and restore stdout
	w.Close()
	os.Stdout = origStdout
	<-done
	r.Close()

	return buf.String(), fnErr
}

// assertJSON checks that output is valid JSON
func assertJSON(t *testing.T, output string) {
	t.Helper()
	var result any
	if err := json.Unmarshal([]byte(output), &result); err != nil {
		t.Errorf("invalid JSON output: %v\nOutput: %s", err, output)
	}
}

// assertContains checks that output contains all expected strings
func assertContains(t *testing.T, output string, expected []string) {
	t.Helper()
	for _, want := range expected {
		if !strings.Contains(output, want) {
			t.Errorf("output missing expected string %q\nGot: %s", want, output)
		}
	}
}

// assertNotContains checks that output doesn't contain unwanted strings
func assertNotContains(t *testing.T, output string, unwanted []string) {
	t.Helper()
	for _, dont := range unwanted {
		if strings.Contains(output, dont) {
			t.Errorf("output contains unwanted string %q\nGot: %s", dont, output)
		}
	}
}
