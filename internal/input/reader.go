// Package input reads one line of terminal input at a time, with
// per-keystroke feedback and an inline autocomplete menu for slash commands.
// When the terminal does not support raw byte-level reads the reader
// silently degrades to buffered line input (no live menu, plain prompt);
// the two modes are deliberately distinct, see the package tests.
package input

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

var (
	promptStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true)
	menuItemStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	menuSelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("220")).Bold(true)
	menuDescStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

// Reader reads lines from a terminal. Raw mode is a global process
// resource: every exit path (submit, cancel, error, Stop) restores the
// previous terminal mode.
type Reader struct {
	in     *os.File
	out    io.Writer
	prompt string
	items  []MenuItem

	scanner *bufio.Scanner // lazily built for the fallback mode

	mu      sync.Mutex
	restore func()
	stopped bool
}

// NewReader creates a reader over the given terminal. items populates the
// slash-command menu, in registration order.
func NewReader(in *os.File, out io.Writer, prompt string, items []MenuItem) *Reader {
	return &Reader{in: in, out: out, prompt: prompt, items: items}
}

// ReadLine reads one line. The boolean reports a real submission; it is
// false for Ctrl+C, Ctrl+D, EOF and Stop, distinct from a deliberate empty
// submit, which returns ("", true, nil).
func (r *Reader) ReadLine() (string, bool, error) {
	if r.isStopped() {
		return "", false, nil
	}

	fd := int(r.in.Fd())
	if !term.IsTerminal(fd) {
		return r.readLineBuffered()
	}
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		// Raw mode unsupported: degrade silently, not an error.
		return r.readLineBuffered()
	}
	r.setRestore(func() { _ = term.Restore(fd, oldState) })
	defer r.restoreTerminal()

	return r.readLineRaw()
}

func (r *Reader) readLineRaw() (string, bool, error) {
	st := newLineState(r.items)
	parser := keyParser{}
	r.render(st)

	buf := make([]byte, 1)
	for {
		if r.isStopped() {
			r.finishLine()
			return "", false, nil
		}

		n, err := r.in.Read(buf)
		if err != nil {
			r.finishLine()
			if err == io.EOF {
				return "", false, nil
			}
			return "", false, err
		}
		if n == 0 {
			continue
		}

		k, ok := parser.feed(buf[0])
		if !ok {
			continue
		}
		switch st.apply(k) {
		case outcomeSubmit:
			r.finishLine()
			return st.submitted(), true, nil
		case outcomeCancel:
			r.finishLine()
			return "", false, nil
		}
		r.render(st)
	}
}

// render redraws the prompt, the buffer, and the menu below it, then puts
// the cursor back at its logical position. It assumes single-width runes;
// rendering is cosmetic only and never affects the submitted value.
func (r *Reader) render(st *lineState) {
	var b strings.Builder
	b.WriteString("\r\x1b[J")
	prompt := promptStyle.Render(r.prompt)
	b.WriteString(prompt)
	b.WriteString(string(st.buf))

	menuLines := 0
	if st.menu.visible {
		for i, it := range st.menu.matches {
			b.WriteString("\r\n")
			line := "/" + it.Name
			if i == st.menu.selected {
				b.WriteString(menuSelStyle.Render("> " + line))
			} else {
				b.WriteString(menuItemStyle.Render("  " + line))
			}
			b.WriteString(menuDescStyle.Render("  " + it.Desc))
			menuLines++
		}
	}
	if menuLines > 0 {
		fmt.Fprintf(&b, "\x1b[%dA", menuLines)
	}

	b.WriteString("\r")
	if col := lipgloss.Width(prompt) + st.cursor; col > 0 {
		fmt.Fprintf(&b, "\x1b[%dC", col)
	}
	fmt.Fprint(r.out, b.String())
}

// finishLine wipes the menu and moves to a fresh line so subsequent output
// starts cleanly.
func (r *Reader) finishLine() {
	fmt.Fprint(r.out, "\r\n\x1b[J")
}

// readLineBuffered is the fallback for non-TTY input: a plain prompt and a
// buffered line read. EOF maps to the cancel sentinel.
func (r *Reader) readLineBuffered() (string, bool, error) {
	fmt.Fprint(r.out, r.prompt)
	if r.scanner == nil {
		r.scanner = bufio.NewScanner(r.in)
		r.scanner.Buffer(make([]byte, 1024*1024), 1024*1024)
	}
	if !r.scanner.Scan() {
		if err := r.scanner.Err(); err != nil {
			return "", false, err
		}
		return "", false, nil
	}
	return r.scanner.Text(), true, nil
}

// Stop force-cancels an in-progress read at shutdown and restores the
// terminal mode. Safe to call when no read is in progress, and more than
// once.
func (r *Reader) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stopped = true
	if r.restore != nil {
		r.restore()
		r.restore = nil
	}
}

func (r *Reader) isStopped() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stopped
}

func (r *Reader) setRestore(f func()) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.restore = f
}

func (r *Reader) restoreTerminal() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.restore != nil {
		r.restore()
		r.restore = nil
	}
}
