package repl

import (
	"fmt"
	"strings"
)

// command is one built-in REPL command. Registration order is also display
// order, in /help and in the autocomplete menu.
type command struct {
	name string
	desc string
	// run executes the command. quit reports that the loop should end.
	run func(r *REPL) (quit bool)
}

func builtinCommands() []command {
	return []command{
		{"help", "Show available commands", (*REPL).cmdHelp},
		{"clear", "Clear the conversation history", (*REPL).cmdClear},
		{"exit", "Exit", (*REPL).cmdExit},
		{"quit", "Exit", (*REPL).cmdExit},
		{"config", "Show the active configuration", (*REPL).cmdConfig},
		{"tools", "List the registered tools", (*REPL).cmdTools},
		{"history", "Show the conversation history", (*REPL).cmdHistory},
	}
}

// Commands returns the built-in command surface as (name, description)
// pairs, in registration order. The input layer uses it to populate the
// autocomplete menu.
func Commands() [][2]string {
	cmds := builtinCommands()
	out := make([][2]string, len(cmds))
	for i, c := range cmds {
		out[i] = [2]string{c.name, c.desc}
	}
	return out
}

// dispatchCommand looks up and runs a command. The leading slash is
// optional here and the lookup is case-insensitive; callers decide when a
// line is a command at all. Unknown names produce a diagnostic and the
// loop continues.
func (r *REPL) dispatchCommand(line string) (quit bool) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}
	name := strings.ToLower(strings.TrimPrefix(fields[0], "/"))
	for _, c := range r.commands {
		if c.name == name {
			return c.run(r)
		}
	}
	r.io.Notice(fmt.Sprintf("Unknown command: /%s (try /help)", name))
	return false
}

func (r *REPL) cmdHelp() bool {
	var sb strings.Builder
	sb.WriteString("Available commands:\n")
	for _, c := range r.commands {
		fmt.Fprintf(&sb, "  /%-10s %s\n", c.name, c.desc)
	}
	r.io.Notice(strings.TrimRight(sb.String(), "\n"))
	return false
}

func (r *REPL) cmdClear() bool {
	r.session.Clear()
	r.io.Notice("Conversation cleared.")
	return false
}

func (r *REPL) cmdExit() bool {
	r.io.Notice("Bye.")
	return true
}

func (r *REPL) cmdConfig() bool {
	model := r.cfg.Model
	if model == "" {
		model = r.provider.DefaultModel()
	}
	streaming := "off"
	if r.cfg.UI.Stream {
		streaming = "on"
	}
	r.io.Notice(fmt.Sprintf(`Configuration:
  Provider:        %s
  Model:           %s
  Streaming:       %s
  Workspace:       %s
  History budget:  %d tokens (estimated use: %d)
  Max iterations:  %d`,
		r.provider.Name(),
		model,
		streaming,
		r.workspace,
		r.session.MaxTokens(),
		r.session.EstimatedTokens(),
		r.maxIterations(),
	))
	return false
}

func (r *REPL) cmdTools() bool {
	all := r.executor.Registry().All()
	if len(all) == 0 {
		r.io.Notice("No tools registered.")
		return false
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "Registered tools (%d):\n", len(all))
	for _, t := range all {
		fmt.Fprintf(&sb, "  %-12s %s\n", t.Name(), t.Description())
	}
	r.io.Notice(strings.TrimRight(sb.String(), "\n"))
	return false
}

func (r *REPL) cmdHistory() bool {
	msgs := r.session.Messages()
	if len(msgs) == 0 {
		r.io.Notice("No history.")
		return false
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "History (%d messages, ~%d tokens):\n",
		len(msgs), r.session.EstimatedTokens())
	for i, m := range msgs {
		fmt.Fprintf(&sb, "  [%d] %s %s: %s\n",
			i, m.Timestamp.Format("15:04:05"), m.Role, truncate(m.Content, 100))
	}
	r.io.Notice(strings.TrimRight(sb.String(), "\n"))
	return false
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
