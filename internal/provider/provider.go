// Package provider defines the unified interface and shared types for all
// LLM backends. Each adapter (anthropic.go, openai.go) translates the
// provider-agnostic message list into vendor SDK calls and normalizes the
// response, including the streaming tool-use JSON assembly, into a single
// Event sequence.
package provider

import (
	"context"
	"encoding/json"
	"fmt"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

type ContentType string

const (
	ContentTypeText       ContentType = "text"
	ContentTypeToolUse    ContentType = "tool_use"
	ContentTypeToolResult ContentType = "tool_result"
)

// Content is one block inside a message.
type Content struct {
	Type       ContentType
	Text       string
	ToolUseID  string          // tool_use / tool_result
	ToolName   string          // tool_use
	ToolInput  json.RawMessage // tool_use
	ToolResult string          // tool_result
	IsError    bool            // tool_result
}

// Message is one entry of the conversation sent to a backend.
type Message struct {
	Role    Role
	Content []Content
}

// TextMessage builds a message holding a single text block.
func TextMessage(role Role, text string) Message {
	return Message{
		Role:    role,
		Content: []Content{{Type: ContentTypeText, Text: text}},
	}
}

// ToolSchema describes a tool to the LLM (JSON Schema properties).
type ToolSchema struct {
	Name        string
	Description string
	Parameters  map[string]any
}

// ChatRequest is the unified request handed to an adapter.
type ChatRequest struct {
	Model        string
	Messages     []Message
	Tools        []ToolSchema
	SystemPrompt string
	MaxTokens    int
}

// Usage records the token consumption of one API call.
type Usage struct {
	InputTokens  int
	OutputTokens int
}

// ToolCallRequest is one tool invocation requested by the LLM.
type ToolCallRequest struct {
	ID    string
	Name  string
	Input json.RawMessage
}

// Response is the result of a single blocking Chat call.
type Response struct {
	Content   string
	ToolCalls []*ToolCallRequest
	Usage     *Usage
}

type EventType int

const (
	// EventTextDelta carries a text fragment to be rendered immediately.
	EventTextDelta EventType = iota

	// EventToolCallDone carries one complete tool call (the adapter has
	// finished assembling its argument JSON).
	EventToolCallDone

	// EventDone ends the stream, with usage when the backend reported it.
	EventDone

	// EventError ends the stream with an error.
	EventError
)

// Event is one element of the ordered stream produced by ChatStream.
type Event struct {
	Type      EventType
	TextDelta string
	ToolCall  *ToolCallRequest
	Usage     *Usage
	Error     error
}

// Provider is the contract the REPL depends on. Implementations must emit
// stream events strictly in arrival order; the consumer reassembles the full
// response by concatenating the text deltas.
type Provider interface {
	// Chat performs a single blocking call and returns the complete response.
	Chat(ctx context.Context, req *ChatRequest) (*Response, error)

	// ChatStream starts a streaming call. The returned channel is fed by a
	// single producer goroutine and closed after EventDone or EventError.
	// The caller must drain it.
	ChatStream(ctx context.Context, req *ChatRequest) (<-chan Event, error)

	// Name returns the backend identifier, e.g. "anthropic", "openai".
	Name() string

	// DefaultModel returns the model used when none is configured.
	DefaultModel() string
}

// Error tags a failure with the backend it came from so the REPL can show a
// single diagnostic line without caring which SDK produced it.
type Error struct {
	Provider string
	Err      error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", e.Provider, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func wrapErr(name string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Provider: name, Err: err}
}

// systemText folds system-role messages into an effective system prompt.
// Neither backend accepts "system" as a plain conversation role in the form
// we use, so the adapters prepend these to the request's system prompt.
func systemText(base string, msgs []Message) string {
	out := base
	for _, m := range msgs {
		if m.Role != RoleSystem {
			continue
		}
		for _, c := range m.Content {
			if c.Type == ContentTypeText && c.Text != "" {
				if out != "" {
					out += "\n\n"
				}
				out += c.Text
			}
		}
	}
	return out
}
