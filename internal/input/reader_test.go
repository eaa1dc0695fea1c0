package input

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

// pipeReader builds a Reader over an os.Pipe, which is not a terminal, so
// ReadLine takes the buffered fallback path.
func pipeReader(t *testing.T, input string) (*Reader, *bytes.Buffer) {
	t.Helper()
	pr, pw, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	t.Cleanup(func() { pr.Close() })
	go func() {
		pw.WriteString(input)
		pw.Close()
	}()
	var out bytes.Buffer
	return NewReader(pr, &out, "> ", testItems()), &out
}

func TestReadLineBuffered(t *testing.T) {
	r, out := pipeReader(t, "hello world\nsecond\n")

	text, submitted, err := r.ReadLine()
	if err != nil || !submitted || text != "hello world" {
		t.Errorf("ReadLine = (%q, %v, %v)", text, submitted, err)
	}
	text, submitted, err = r.ReadLine()
	if err != nil || !submitted || text != "second" {
		t.Errorf("second ReadLine = (%q, %v, %v)", text, submitted, err)
	}
	if !strings.Contains(out.String(), "> ") {
		t.Errorf("prompt not written: %q", out.String())
	}
}

func TestReadLineBufferedEOFIsCancel(t *testing.T) {
	r, _ := pipeReader(t, "last\n")

	if _, submitted, _ := r.ReadLine(); !submitted {
		t.Fatal("first line not submitted")
	}
	// EOF is the cancel sentinel, not an error and not an empty submit.
	text, submitted, err := r.ReadLine()
	if err != nil || submitted || text != "" {
		t.Errorf("at EOF: (%q, %v, %v)", text, submitted, err)
	}
}

func TestReadLineBufferedEmptyLine(t *testing.T) {
	r, _ := pipeReader(t, "\n")

	// A blank line is a real submission, distinct from cancel.
	text, submitted, err := r.ReadLine()
	if err != nil || !submitted || text != "" {
		t.Errorf("blank line: (%q, %v, %v)", text, submitted, err)
	}
}

func TestStopEndsReads(t *testing.T) {
	r, _ := pipeReader(t, "unread\n")
	r.Stop()
	r.Stop() // idempotent

	text, submitted, err := r.ReadLine()
	if err != nil || submitted || text != "" {
		t.Errorf("after Stop: (%q, %v, %v)", text, submitted, err)
	}
}
