package tools

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTestFile(t *testing.T, ws *Workspace, name, content string) {
	t.Helper()
	path := filepath.Join(ws.Root(), name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func run(t *testing.T, tool Tool, params string) ToolResult {
	t.Helper()
	res, err := tool.Execute(context.Background(), json.RawMessage(params))
	if err != nil {
		t.Fatalf("%s: %v", tool.Name(), err)
	}
	return res
}

func TestReadFile(t *testing.T) {
	ws := testWorkspace(t)
	writeTestFile(t, ws, "hello.txt", "first\nsecond\nthird")
	tool := &ReadFileTool{ws: ws}

	res := run(t, tool, `{"path":"hello.txt"}`)
	for i, want := range []string{"first", "second", "third"} {
		if !strings.Contains(res.Content, want) {
			t.Errorf("line %d missing from output: %q", i, res.Content)
		}
	}
	// Output carries 1-based line numbers.
	if !strings.Contains(res.Content, "1\tfirst") {
		t.Errorf("line numbers missing: %q", res.Content)
	}
}

func TestReadFileOffsetLimit(t *testing.T) {
	ws := testWorkspace(t)
	writeTestFile(t, ws, "lines.txt", "a\nb\nc\nd\ne")
	tool := &ReadFileTool{ws: ws}

	res := run(t, tool, `{"path":"lines.txt","offset":1,"limit":2}`)
	if !strings.Contains(res.Content, "b") || !strings.Contains(res.Content, "c") {
		t.Errorf("offset/limit window wrong: %q", res.Content)
	}
	if strings.Contains(res.Content, "\td\n") {
		t.Errorf("limit not applied: %q", res.Content)
	}
	if !res.Truncated {
		t.Error("limited read not marked truncated")
	}

	res = run(t, tool, `{"path":"lines.txt","offset":99}`)
	if !strings.Contains(res.Content, "beyond end") {
		t.Errorf("out-of-range offset: %q", res.Content)
	}
}

func TestWriteFileCreatesParents(t *testing.T) {
	ws := testWorkspace(t)
	tool := &WriteFileTool{ws: ws}

	run(t, tool, `{"path":"deep/nested/out.txt","content":"payload"}`)

	data, err := os.ReadFile(filepath.Join(ws.Root(), "deep/nested/out.txt"))
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(data) != "payload" {
		t.Errorf("content = %q", data)
	}
}

func TestEditFile(t *testing.T) {
	ws := testWorkspace(t)
	tool := &EditFileTool{ws: ws}

	writeTestFile(t, ws, "code.go", "func old() {}\n")
	run(t, tool, `{"path":"code.go","old_string":"func old()","new_string":"func renamed()"}`)
	data, _ := os.ReadFile(filepath.Join(ws.Root(), "code.go"))
	if string(data) != "func renamed() {}\n" {
		t.Errorf("after edit: %q", data)
	}

	// No match is an error, not a silent no-op.
	if _, err := tool.Execute(context.Background(), json.RawMessage(`{"path":"code.go","old_string":"missing","new_string":"x"}`)); err == nil {
		t.Error("edit with no match succeeded")
	}

	// Ambiguous match requires replace_all.
	writeTestFile(t, ws, "dup.txt", "x x x")
	if _, err := tool.Execute(context.Background(), json.RawMessage(`{"path":"dup.txt","old_string":"x","new_string":"y"}`)); err == nil {
		t.Error("ambiguous edit succeeded without replace_all")
	}
	run(t, tool, `{"path":"dup.txt","old_string":"x","new_string":"y","replace_all":true}`)
	data, _ = os.ReadFile(filepath.Join(ws.Root(), "dup.txt"))
	if string(data) != "y y y" {
		t.Errorf("after replace_all: %q", data)
	}
}

func TestListDir(t *testing.T) {
	ws := testWorkspace(t)
	writeTestFile(t, ws, "a.txt", "aaa")
	writeTestFile(t, ws, "sub/b.txt", "b")
	tool := &ListDirTool{ws: ws}

	res := run(t, tool, `{}`) // defaults to workspace root
	if !strings.Contains(res.Content, "[FILE] a.txt") || !strings.Contains(res.Content, "[DIR]  sub") {
		t.Errorf("listing = %q", res.Content)
	}

	res = run(t, tool, `{"path":"sub"}`)
	if !strings.Contains(res.Content, "b.txt") {
		t.Errorf("sub listing = %q", res.Content)
	}
}

func TestGlob(t *testing.T) {
	ws := testWorkspace(t)
	writeTestFile(t, ws, "one.go", "")
	writeTestFile(t, ws, "two.go", "")
	writeTestFile(t, ws, "other.txt", "")
	tool := &GlobTool{ws: ws}

	res := run(t, tool, `{"pattern":"*.go"}`)
	if !strings.Contains(res.Content, "one.go") || !strings.Contains(res.Content, "two.go") {
		t.Errorf("glob output = %q", res.Content)
	}
	if strings.Contains(res.Content, "other.txt") {
		t.Errorf("glob matched wrong file: %q", res.Content)
	}

	res = run(t, tool, `{"pattern":"*.rs"}`)
	if res.Content != "no files matched" {
		t.Errorf("empty glob = %q", res.Content)
	}
}

func TestBash(t *testing.T) {
	ws := testWorkspace(t)
	tool := &BashTool{ws: ws}

	res := run(t, tool, `{"command":"echo hello"}`)
	if strings.TrimSpace(res.Content) != "hello" {
		t.Errorf("echo output = %q", res.Content)
	}

	// Runs in the workspace root.
	res = run(t, tool, `{"command":"pwd"}`)
	if got := strings.TrimSpace(res.Content); got != ws.Root() {
		t.Errorf("pwd = %q, want %q", got, ws.Root())
	}

	// Non-zero exit becomes an error result, not a Go error.
	res = run(t, tool, `{"command":"exit 3"}`)
	if !res.IsError {
		t.Error("failing command not marked as error")
	}
}

func TestBashTimeout(t *testing.T) {
	ws := testWorkspace(t)
	tool := &BashTool{ws: ws}

	res := run(t, tool, `{"command":"sleep 5","timeout":1}`)
	if !res.IsError || !strings.Contains(res.Content, "timed out") {
		t.Errorf("timeout result = %+v", res)
	}
}

func TestDefaultRegistry(t *testing.T) {
	ws := testWorkspace(t)
	r := DefaultRegistry(ws)

	want := []string{"bash", "edit_file", "glob", "list_dir", "read_file", "write_file"}
	all := r.All()
	if len(all) != len(want) {
		t.Fatalf("registered %d tools, want %d", len(all), len(want))
	}
	for i, w := range want {
		if all[i].Name() != w {
			t.Errorf("All()[%d] = %s, want %s (sorted)", i, all[i].Name(), w)
		}
		if _, ok := r.Get(w); !ok {
			t.Errorf("Get(%s) missing", w)
		}
	}
}
