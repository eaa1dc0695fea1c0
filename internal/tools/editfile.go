package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// EditFileTool performs an exact-match string replacement in a file inside
// the workspace.
type EditFileTool struct {
	ws *Workspace
}

func (t *EditFileTool) Name() string { return "edit_file" }

func (t *EditFileTool) Description() string {
	return "Replace an exact string in a file. old_string must match the file content exactly, " +
		"including whitespace, and must be unique unless replace_all is set."
}

func (t *EditFileTool) Parameters() map[string]any {
	return map[string]any{
		"path": map[string]any{
			"type":        "string",
			"description": "Path of the file to edit, inside the workspace",
		},
		"old_string": map[string]any{
			"type":        "string",
			"description": "Exact text to replace",
		},
		"new_string": map[string]any{
			"type":        "string",
			"description": "Replacement text",
		},
		"replace_all": map[string]any{
			"type":        "boolean",
			"description": "Replace every occurrence instead of requiring a unique match",
		},
	}
}

func (t *EditFileTool) Execute(_ context.Context, params json.RawMessage) (ToolResult, error) {
	var p struct {
		Path       string `json:"path"`
		OldString  string `json:"old_string"`
		NewString  string `json:"new_string"`
		ReplaceAll bool   `json:"replace_all"`
	}
	if err := json.Unmarshal(params, &p); err != nil {
		return ToolResult{}, fmt.Errorf("invalid params: %w", err)
	}
	if p.OldString == "" {
		return ToolResult{}, fmt.Errorf("old_string is required")
	}
	if p.OldString == p.NewString {
		return ToolResult{}, fmt.Errorf("old_string and new_string are identical")
	}

	path, err := t.ws.Resolve(p.Path)
	if err != nil {
		return ToolResult{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return ToolResult{}, fmt.Errorf("failed to read file: %w", err)
	}
	content := string(data)

	count := strings.Count(content, p.OldString)
	switch {
	case count == 0:
		return ToolResult{}, fmt.Errorf("old_string not found in %s; re-read the file to get the exact content", p.Path)
	case count > 1 && !p.ReplaceAll:
		return ToolResult{}, fmt.Errorf("old_string matches %d locations in %s; provide more context or set replace_all", count, p.Path)
	}

	replaced := strings.ReplaceAll(content, p.OldString, p.NewString)
	if err := os.WriteFile(path, []byte(replaced), 0644); err != nil {
		return ToolResult{}, fmt.Errorf("failed to write file: %w", err)
	}

	if count > 1 {
		return ToolResult{Content: fmt.Sprintf("Replaced %d occurrences in %s", count, p.Path)}, nil
	}
	return ToolResult{Content: fmt.Sprintf("Edited %s", p.Path)}, nil
}
