package repl

import (
	"crypto/sha256"
	"fmt"
	"sort"
	"strings"

	"github.com/quillsh/quill/internal/provider"
)

// repeatAction is the recommendation of the repeat detector.
type repeatAction int

const (
	repeatNone repeatAction = iota
	repeatWarn
	repeatStop
)

const (
	repeatWarnThreshold = 3
	repeatStopThreshold = 5
)

// repeatDetector notices when the model issues the same batch of tool calls
// over and over within a turn, which usually means it is stuck.
type repeatDetector struct {
	lastSig string
	streak  int
}

// observe folds one batch into the detector and returns the recommended
// action. Any change in the batch resets the streak.
func (d *repeatDetector) observe(calls []*provider.ToolCallRequest) repeatAction {
	sig := batchSignature(calls)
	if sig == d.lastSig {
		d.streak++
	} else {
		d.lastSig = sig
		d.streak = 1
	}

	switch {
	case d.streak >= repeatStopThreshold:
		return repeatStop
	case d.streak >= repeatWarnThreshold:
		return repeatWarn
	}
	return repeatNone
}

// batchSignature hashes the names and inputs of a call batch. Calls are
// sorted first so ordering within a batch does not matter.
func batchSignature(calls []*provider.ToolCallRequest) string {
	parts := make([]string, len(calls))
	for i, c := range calls {
		parts[i] = c.Name + ":" + string(c.Input)
	}
	sort.Strings(parts)
	sum := sha256.Sum256([]byte(strings.Join(parts, "|")))
	return fmt.Sprintf("%x", sum)
}
