package repl

import (
	"encoding/json"
	"testing"

	"github.com/quillsh/quill/internal/provider"
)

func callBatch(names ...string) []*provider.ToolCallRequest {
	out := make([]*provider.ToolCallRequest, len(names))
	for i, n := range names {
		out[i] = &provider.ToolCallRequest{ID: n, Name: n, Input: json.RawMessage(`{}`)}
	}
	return out
}

func TestRepeatDetectorThresholds(t *testing.T) {
	d := repeatDetector{}
	batch := callBatch("read_file")

	for i := 1; i <= 2; i++ {
		if got := d.observe(batch); got != repeatNone {
			t.Errorf("observation %d = %v, want none", i, got)
		}
	}
	for i := 3; i <= 4; i++ {
		if got := d.observe(batch); got != repeatWarn {
			t.Errorf("observation %d = %v, want warn", i, got)
		}
	}
	if got := d.observe(batch); got != repeatStop {
		t.Errorf("observation 5 = %v, want stop", got)
	}
}

func TestRepeatDetectorResetsOnChange(t *testing.T) {
	d := repeatDetector{}
	a := callBatch("read_file")
	b := callBatch("bash")

	d.observe(a)
	d.observe(a)
	if got := d.observe(b); got != repeatNone {
		t.Errorf("changed batch = %v, want none", got)
	}
	d.observe(b)
	if got := d.observe(b); got != repeatWarn {
		t.Errorf("third identical = %v, want warn", got)
	}
}

func TestBatchSignatureOrderIndependent(t *testing.T) {
	x := batchSignature(callBatch("a", "b"))
	y := batchSignature(callBatch("b", "a"))
	if x != y {
		t.Error("signature depends on call order within a batch")
	}

	z := batchSignature(callBatch("a", "c"))
	if x == z {
		t.Error("different batches share a signature")
	}
}

func TestRepeatDetectorInputSensitive(t *testing.T) {
	d := repeatDetector{}
	a := []*provider.ToolCallRequest{{Name: "bash", Input: json.RawMessage(`{"command":"ls"}`)}}
	b := []*provider.ToolCallRequest{{Name: "bash", Input: json.RawMessage(`{"command":"pwd"}`)}}

	d.observe(a)
	d.observe(a)
	if got := d.observe(b); got != repeatNone {
		t.Errorf("different input = %v, want none", got)
	}
}
