// Package repl runs the interactive loop: read a line, dispatch a command
// or send the conversation to the provider, execute any requested tools,
// and store the final assistant text in the session.
package repl

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/quillsh/quill/internal/config"
	"github.com/quillsh/quill/internal/provider"
	"github.com/quillsh/quill/internal/session"
	"github.com/quillsh/quill/internal/tools"
)

const defaultMaxIterations = 25

// REPL owns the single logical thread of control: one line is processed to
// completion before the next is read.
type REPL struct {
	provider     provider.Provider
	executor     *tools.Executor
	session      *session.Session
	cfg          *config.Config
	io           IO
	log          *zap.Logger
	workspace    string
	systemPrompt string
	commands     []command
}

// New wires a REPL over its collaborators. workspace is the resolved root
// shown by /config; tool containment is enforced by the executor's tools.
func New(p provider.Provider, exec *tools.Executor, sess *session.Session,
	cfg *config.Config, ui IO, log *zap.Logger, workspace string) *REPL {

	prompt := defaultSystemPrompt
	if cfg.SystemPrompt != "" {
		prompt = cfg.SystemPrompt
	}
	model := cfg.Model
	if model == "" {
		model = p.DefaultModel()
	}
	prompt += fmt.Sprintf("\n\nYou are running on %s (model %s).", p.Name(), model)

	return &REPL{
		provider:     p,
		executor:     exec,
		session:      sess,
		cfg:          cfg,
		io:           ui,
		log:          log,
		workspace:    workspace,
		systemPrompt: prompt,
		commands:     builtinCommands(),
	}
}

// Run reads lines until an exit command, a cancelled read, or a context
// cancellation. Per-turn provider failures are reported and swallowed so
// the loop stays usable.
func (r *REPL) Run(ctx context.Context) error {
	for {
		line, submitted, err := r.io.ReadInput()
		if err != nil {
			return err
		}
		if !submitted {
			// Ctrl+C, Ctrl+D or shutdown.
			r.io.Notice("Bye.")
			return nil
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "/") {
			if r.dispatchCommand(line) {
				return nil
			}
			continue
		}

		if err := r.turn(ctx, line); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			r.io.Error(err.Error())
		}
	}
}

// RunOnce processes a single prompt and returns, for non-interactive use.
func (r *REPL) RunOnce(ctx context.Context, prompt string) error {
	return r.turn(ctx, prompt)
}

// turn runs one full provider round: append the user message, trim, then
// loop on tool calls until the model answers with plain text. Only the
// concatenated assistant text enters the session; tool exchanges live in a
// per-turn conversation that is discarded afterwards.
func (r *REPL) turn(ctx context.Context, line string) error {
	r.session.Append(provider.RoleUser, line)
	if r.session.TrimToLimit() {
		r.io.Notice(fmt.Sprintf(
			"Trimmed oldest messages to fit the history budget (~%d of %d tokens).",
			r.session.EstimatedTokens(), r.session.MaxTokens()))
	}

	convo := r.session.ForProvider()
	schemas := r.toolSchemas()
	detector := repeatDetector{}
	var turnText strings.Builder

	storeTurn := func() {
		if turnText.Len() > 0 {
			r.session.Append(provider.RoleAssistant, turnText.String())
		}
	}

	maxIter := r.maxIterations()
	for iteration := 0; iteration < maxIter; iteration++ {
		req := &provider.ChatRequest{
			Model:        r.cfg.Model,
			Messages:     convo,
			Tools:        schemas,
			SystemPrompt: r.systemPrompt,
			MaxTokens:    8192,
		}

		text, toolCalls, err := r.callProvider(ctx, req)
		if err != nil {
			// Text already shown to the user stays in the history.
			storeTurn()
			return err
		}
		if text != "" {
			if turnText.Len() > 0 {
				turnText.WriteString("\n")
			}
			turnText.WriteString(text)
		}

		if len(toolCalls) == 0 {
			storeTurn()
			return nil
		}

		convo = append(convo, assistantMessage(text, toolCalls))

		switch detector.observe(toolCalls) {
		case repeatWarn:
			r.io.Notice("The model keeps repeating the same tool calls.")
		case repeatStop:
			r.io.Notice("Stopping: the model repeated the same tool calls too many times.")
			storeTurn()
			return nil
		}

		if iteration == maxIter-1 {
			r.io.Notice(fmt.Sprintf("Reached the tool-call limit (%d), stopping.", maxIter))
			storeTurn()
			return nil
		}

		convo = append(convo, provider.Message{
			Role:    provider.RoleUser,
			Content: r.executeToolCalls(ctx, toolCalls),
		})
	}
	storeTurn()
	return nil
}

// callProvider performs one request, streaming or blocking per the config,
// and returns the text and tool calls of the response.
func (r *REPL) callProvider(ctx context.Context, req *provider.ChatRequest) (string, []*provider.ToolCallRequest, error) {
	if !r.cfg.UI.Stream {
		resp, err := r.provider.Chat(ctx, req)
		if err != nil {
			return "", nil, err
		}
		if resp.Usage != nil {
			r.log.Debug("provider call",
				zap.Int("input_tokens", resp.Usage.InputTokens),
				zap.Int("output_tokens", resp.Usage.OutputTokens))
		}
		r.io.TextDone(resp.Content, false)
		return resp.Content, resp.ToolCalls, nil
	}

	events, err := r.provider.ChatStream(ctx, req)
	if err != nil {
		return "", nil, err
	}

	var text strings.Builder
	var toolCalls []*provider.ToolCallRequest
	var streamErr error
	for event := range events {
		switch event.Type {
		case provider.EventTextDelta:
			// Deltas are displayed strictly in arrival order and
			// concatenated in the same order for storage.
			r.io.TextDelta(event.TextDelta)
			text.WriteString(event.TextDelta)

		case provider.EventToolCallDone:
			toolCalls = append(toolCalls, event.ToolCall)

		case provider.EventDone:
			if event.Usage != nil {
				r.log.Debug("provider call",
					zap.Int("input_tokens", event.Usage.InputTokens),
					zap.Int("output_tokens", event.Usage.OutputTokens))
			}

		case provider.EventError:
			streamErr = event.Error
		}
	}
	if streamErr != nil {
		if text.Len() > 0 {
			r.io.TextDone(text.String(), true)
		}
		return text.String(), nil, streamErr
	}
	r.io.TextDone(text.String(), true)
	return text.String(), toolCalls, nil
}

// executeToolCalls runs each call through the executor and returns the
// tool_result blocks for the next request.
func (r *REPL) executeToolCalls(ctx context.Context, calls []*provider.ToolCallRequest) []provider.Content {
	results := make([]provider.Content, 0, len(calls))
	for _, call := range calls {
		r.io.ToolStart(call.Name, string(call.Input))
		result := r.executor.Execute(ctx, call.Name, call.Input)
		r.io.ToolDone(call.Name, result.Content, result.IsError)
		r.log.Debug("tool executed",
			zap.String("tool", call.Name),
			zap.Bool("is_error", result.IsError),
			zap.Bool("truncated", result.Truncated))

		results = append(results, provider.Content{
			Type:       provider.ContentTypeToolResult,
			ToolUseID:  call.ID,
			ToolResult: result.Content,
			IsError:    result.IsError,
		})
	}
	return results
}

// assistantMessage builds the structured assistant entry for the per-turn
// conversation.
func assistantMessage(text string, toolCalls []*provider.ToolCallRequest) provider.Message {
	var contents []provider.Content
	if text != "" {
		contents = append(contents, provider.Content{
			Type: provider.ContentTypeText,
			Text: text,
		})
	}
	for _, tc := range toolCalls {
		contents = append(contents, provider.Content{
			Type:      provider.ContentTypeToolUse,
			ToolUseID: tc.ID,
			ToolName:  tc.Name,
			ToolInput: tc.Input,
		})
	}
	return provider.Message{Role: provider.RoleAssistant, Content: contents}
}

func (r *REPL) toolSchemas() []provider.ToolSchema {
	all := r.executor.Registry().All()
	schemas := make([]provider.ToolSchema, 0, len(all))
	for _, t := range all {
		schemas = append(schemas, provider.ToolSchema{
			Name:        t.Name(),
			Description: t.Description(),
			Parameters:  t.Parameters(),
		})
	}
	return schemas
}

func (r *REPL) maxIterations() int {
	if r.cfg.MaxIterations > 0 {
		return r.cfg.MaxIterations
	}
	return defaultMaxIterations
}
