// Package tools implements the sandboxed operations the assistant can
// invoke. Every filesystem path a tool receives must resolve inside the
// configured workspace root; anything that escapes it is rejected before the
// operation runs.
package tools

import (
	"context"
	"encoding/json"
)

// Tool is the capability every registered tool implements. Execute may
// return an error for validation failures; the Executor normalizes it into a
// ToolResult so errors never cross the dispatch boundary.
type Tool interface {
	Name() string
	Description() string
	Parameters() map[string]any
	Execute(ctx context.Context, params json.RawMessage) (ToolResult, error)
}

// ToolResult is the outcome of one invocation, produced fresh per call.
// Success is the absence of IsError; on failure Content carries the
// human-readable error text.
type ToolResult struct {
	Content   string
	IsError   bool
	Truncated bool
}
