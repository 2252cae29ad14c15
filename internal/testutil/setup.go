package testutil

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/joshuapare/threadkit/pkg/types"
)

// TestThreadSimple is the path to the small mixed thread from the repository root.
const TestThreadSimple = "testdata/threads/simple.json"

// baseDate is the timestamp of the first generated comment.
var baseDate = time.Date(2024, 1, 5, 12, 0, 0, 0, time.UTC)

// C builds an approved comment with deterministic payload fields.
func C(id, parent types.ID) *types.Comment {
	return &types.Comment{
		ID:       id,
		Parent:   parent,
		Author:   fmt.Sprintf("author-%d", id),
		Content:  fmt.Sprintf("comment %d", id),
		Date:     baseDate.Add(time.Duration(id) * time.Minute),
		Approved: true,
		Type:     types.TypeComment,
	}
}

// Outline builds a thread from an indented outline. Each line is an id
// prefixed with one '-' per nesting level:
//
//	testutil.Outline("1", "-2", "--3", "4")
//
// yields 1 (root), 2 (reply to 1), 3 (reply to 2), 4 (root).
func Outline(lines ...string) []*types.Comment {
	out := make([]*types.Comment, 0, len(lines))
	var stack []types.ID
	for _, line := range lines {
		level := len(line) - len(strings.TrimLeft(line, "-"))
		var id types.ID
		if _, err := fmt.Sscanf(strings.TrimLeft(line, "-"), "%d", &id); err != nil {
			panic(fmt.Sprintf("testutil.Outline: bad line %q", line))
		}
		if level > len(stack) {
			panic(fmt.Sprintf("testutil.Outline: line %q skips a level", line))
		}
		stack = stack[:level]

		parent := types.NoParent
		if level > 0 {
			parent = stack[level-1]
		}
		out = append(out, C(id, parent))
		stack = append(stack, id)
	}
	return out
}

// Chain builds a single reply chain of n comments, ids 1..n.
func Chain(n int) []*types.Comment {
	out := make([]*types.Comment, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, C(types.ID(i), types.ID(i-1)))
	}
	return out
}

// Repo returns the repository root, found by walking up to go.mod.
func Repo(t testing.TB) string {
	t.Helper()
	dir, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatalf("go.mod not found above %s", dir)
		}
		dir = parent
	}
}

// LoadThread reads a JSON comment array relative to the repository root.
// Calls t.Skip if the file is not found.
func LoadThread(t testing.TB, rel string) []*types.Comment {
	t.Helper()
	path := filepath.Join(Repo(t), rel)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		t.Skipf("test thread %s not found", rel)
	}
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	var comments []*types.Comment
	if err := json.Unmarshal(data, &comments); err != nil {
		t.Fatalf("decode %s: %v", path, err)
	}
	return comments
}

// IDs returns the ids of comments in order.
func IDs(comments []*types.Comment) []types.ID {
	out := make([]types.ID, 0, len(comments))
	for _, c := range comments {
		out = append(out, c.ID)
	}
	return out
}
