package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
)

// GlobTool finds workspace files matching a glob pattern.
type GlobTool struct {
	ws *Workspace
}

func (t *GlobTool) Name() string { return "glob" }

func (t *GlobTool) Description() string {
	return "Find files matching a glob pattern inside the workspace. Returns a list of matching paths."
}

func (t *GlobTool) Parameters() map[string]any {
	return map[string]any{
		"pattern": map[string]any{
			"type":        "string",
			"description": "Glob pattern to match files (e.g. 'internal/*.go', 'src/*.ts')",
		},
		"path": map[string]any{
			"type":        "string",
			"description": "Base directory to search in, inside the workspace (default: workspace root)",
		},
	}
}

func (t *GlobTool) Execute(_ context.Context, params json.RawMessage) (ToolResult, error) {
	var p struct {
		Pattern string `json:"pattern"`
		Path    string `json:"path"`
	}
	if err := json.Unmarshal(params, &p); err != nil {
		return ToolResult{}, fmt.Errorf("invalid params: %w", err)
	}
	if p.Pattern == "" {
		return ToolResult{}, fmt.Errorf("pattern is required")
	}
	if p.Path == "" {
		p.Path = "."
	}

	base, err := t.ws.Resolve(p.Path)
	if err != nil {
		return ToolResult{}, err
	}

	matches, err := filepath.Glob(filepath.Join(base, p.Pattern))
	if err != nil {
		return ToolResult{}, fmt.Errorf("invalid glob pattern: %w", err)
	}

	// A pattern like "../*" can still point outside; keep only contained matches.
	contained := matches[:0]
	for _, m := range matches {
		if _, err := t.ws.Resolve(m); err == nil {
			contained = append(contained, m)
		}
	}

	if len(contained) == 0 {
		return ToolResult{Content: "no files matched"}, nil
	}

	return ToolResult{Content: strings.Join(contained, "\n")}, nil
}
