package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// WriteFileTool creates or overwrites a file inside the workspace.
type WriteFileTool struct {
	ws *Workspace
}

func (t *WriteFileTool) Name() string { return "write_file" }

func (t *WriteFileTool) Description() string {
	return "Write content to a file inside the workspace, creating parent directories as needed. " +
		"Overwrites the file if it already exists; prefer edit_file for targeted changes."
}

func (t *WriteFileTool) Parameters() map[string]any {
	return map[string]any{
		"path": map[string]any{
			"type":        "string",
			"description": "Path of the file to write, inside the workspace",
		},
		"content": map[string]any{
			"type":        "string",
			"description": "Full content to write",
		},
	}
}

func (t *WriteFileTool) Execute(_ context.Context, params json.RawMessage) (ToolResult, error) {
	var p struct {
		Path    string `json:"path"`
		Content string `json:"content"`
	}
	if err := json.Unmarshal(params, &p); err != nil {
		return ToolResult{}, fmt.Errorf("invalid params: %w", err)
	}

	path, err := t.ws.Resolve(p.Path)
	if err != nil {
		return ToolResult{}, err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return ToolResult{}, fmt.Errorf("create parent directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(p.Content), 0644); err != nil {
		return ToolResult{}, fmt.Errorf("failed to write file: %w", err)
	}

	return ToolResult{Content: fmt.Sprintf("Wrote %d bytes to %s", len(p.Content), p.Path)}, nil
}
