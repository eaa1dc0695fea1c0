package repl

import (
	"context"
	"strings"
	"testing"
)

func TestExitCommandEndsLoop(t *testing.T) {
	for _, cmd := range []string{"/exit", "/quit", "/EXIT", "/Quit"} {
		t.Run(cmd, func(t *testing.T) {
			p := &fakeProvider{}
			io := &scriptedIO{lines: []string{cmd, "never read"}}
			r, _ := newTestREPL(t, p, io, true)

			if err := r.Run(context.Background()); err != nil {
				t.Fatalf("Run: %v", err)
			}
			if len(io.lines) != 1 {
				t.Errorf("loop did not stop at %s", cmd)
			}
			if len(p.reqs) != 0 {
				t.Error("command reached the provider")
			}
		})
	}
}

func TestUnknownCommandContinues(t *testing.T) {
	p := &fakeProvider{steps: []scriptStep{{deltas: []string{"ok"}}}}
	io := &scriptedIO{lines: []string{"/bogus", "real input"}}
	r, sess := newTestREPL(t, p, io, true)

	if err := r.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	var diag bool
	for _, n := range io.notices {
		if strings.Contains(n, "Unknown command") && strings.Contains(n, "/bogus") {
			diag = true
		}
	}
	if !diag {
		t.Errorf("no diagnostic for unknown command: %v", io.notices)
	}
	if len(io.errs) != 0 {
		t.Errorf("unknown command treated as error: %v", io.errs)
	}
	// Session untouched by the unknown command, next turn worked.
	if sess.Len() != 2 {
		t.Errorf("session = %+v", sess.Messages())
	}
}

func TestClearCommand(t *testing.T) {
	p := &fakeProvider{steps: []scriptStep{{deltas: []string{"ok"}}}}
	io := &scriptedIO{lines: []string{"chat first", "/clear"}}
	r, sess := newTestREPL(t, p, io, true)

	if err := r.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if sess.Len() != 0 {
		t.Errorf("session not cleared: %d messages", sess.Len())
	}
}

func TestHelpListsAllCommands(t *testing.T) {
	p := &fakeProvider{}
	io := &scriptedIO{lines: []string{"/help"}}
	r, _ := newTestREPL(t, p, io, true)

	if err := r.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(io.notices) == 0 {
		t.Fatal("no help output")
	}
	help := io.notices[0]
	for _, name := range []string{"/help", "/clear", "/exit", "/quit", "/config", "/tools", "/history"} {
		if !strings.Contains(help, name) {
			t.Errorf("help missing %s:\n%s", name, help)
		}
	}
}

func TestToolsCommand(t *testing.T) {
	p := &fakeProvider{}
	io := &scriptedIO{lines: []string{"/tools"}}
	r, _ := newTestREPL(t, p, io, true)

	if err := r.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(io.notices) == 0 || !strings.Contains(io.notices[0], "echo") {
		t.Errorf("tools output = %v", io.notices)
	}
}

func TestHistoryCommand(t *testing.T) {
	p := &fakeProvider{steps: []scriptStep{{deltas: []string{"reply"}}}}
	io := &scriptedIO{lines: []string{"hello", "/history"}}
	r, _ := newTestREPL(t, p, io, true)

	if err := r.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	last := io.notices[len(io.notices)-1]
	if !strings.Contains(last, "hello") || !strings.Contains(last, "reply") {
		t.Errorf("history output = %q", last)
	}
}

func TestConfigCommand(t *testing.T) {
	p := &fakeProvider{}
	io := &scriptedIO{lines: []string{"/config"}}
	r, _ := newTestREPL(t, p, io, true)

	if err := r.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(io.notices) == 0 {
		t.Fatal("no config output")
	}
	out := io.notices[0]
	if !strings.Contains(out, "fake") || !strings.Contains(out, "fake-model") {
		t.Errorf("config output = %q", out)
	}
}

func TestCommandsMatchMenuSurface(t *testing.T) {
	want := []string{"help", "clear", "exit", "quit", "config", "tools", "history"}
	got := Commands()
	if len(got) != len(want) {
		t.Fatalf("Commands() has %d entries, want %d", len(got), len(want))
	}
	for i, w := range want {
		if got[i][0] != w {
			t.Errorf("Commands()[%d] = %s, want %s (registration order)", i, got[i][0], w)
		}
		if got[i][1] == "" {
			t.Errorf("%s has no description", w)
		}
	}
}
