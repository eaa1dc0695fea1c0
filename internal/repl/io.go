package repl

// IO abstracts the interactive surface so the loop is testable without a
// terminal.
type IO interface {
	// ReadInput returns one line. submitted is false for cancellation
	// (Ctrl+C, Ctrl+D, EOF, Stop), which ends the loop; a deliberate empty
	// line returns ("", true, nil).
	ReadInput() (text string, submitted bool, err error)

	// TextDelta renders one streamed fragment immediately.
	TextDelta(delta string)

	// TextDone finalizes the assistant output for the turn. When streaming
	// was active the full text has already been rendered via TextDelta and
	// implementations only close the line; otherwise they render full.
	TextDone(full string, streamed bool)

	// ToolStart and ToolDone bracket one tool invocation.
	ToolStart(name string, input string)
	ToolDone(name string, output string, isErr bool)

	// Notice renders an informational line (trim reports, command output).
	Notice(text string)

	// Error renders a single diagnostic line.
	Error(text string)
}
