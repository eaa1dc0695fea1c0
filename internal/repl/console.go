package repl

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	noticeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	toolNameStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("135"))
	toolErrStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
)

// LineReader is the input side of the console, satisfied by input.Reader.
type LineReader interface {
	ReadLine() (string, bool, error)
}

// ConsoleIO renders the REPL surface on a terminal.
type ConsoleIO struct {
	reader LineReader
	out    io.Writer
}

// NewConsoleIO builds the terminal surface over a line reader and an
// output writer (normally stdout).
func NewConsoleIO(reader LineReader, out io.Writer) *ConsoleIO {
	return &ConsoleIO{reader: reader, out: out}
}

func (c *ConsoleIO) ReadInput() (string, bool, error) {
	return c.reader.ReadLine()
}

func (c *ConsoleIO) TextDelta(delta string) {
	fmt.Fprint(c.out, delta)
}

func (c *ConsoleIO) TextDone(full string, streamed bool) {
	if streamed {
		if full != "" {
			fmt.Fprintln(c.out)
		}
		return
	}
	if full != "" {
		fmt.Fprintln(c.out, full)
	}
}

func (c *ConsoleIO) ToolStart(name, input string) {
	fmt.Fprintf(c.out, "%s %s\n",
		toolNameStyle.Render("⚙ "+name),
		noticeStyle.Render(truncate(compactJSON(input), 120)))
}

func (c *ConsoleIO) ToolDone(name, output string, isErr bool) {
	if isErr {
		fmt.Fprintf(c.out, "%s\n", toolErrStyle.Render("  ✗ "+firstLine(output)))
		return
	}
	fmt.Fprintf(c.out, "%s\n", noticeStyle.Render("  ✓ "+firstLine(output)))
}

func (c *ConsoleIO) Notice(text string) {
	fmt.Fprintln(c.out, noticeStyle.Render(text))
}

func (c *ConsoleIO) Error(text string) {
	fmt.Fprintln(c.out, errorStyle.Render("Error: "+text))
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i] + " ..."
	}
	return truncate(s, 120)
}

// compactJSON flattens the parameter JSON onto one line for display.
func compactJSON(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
