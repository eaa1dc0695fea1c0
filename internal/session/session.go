// Package session maintains the in-memory conversation log and enforces the
// token budget. The log is append-only at the back and evicts from the front;
// it lives for the process only and is never persisted.
package session

import (
	"time"

	"github.com/quillsh/quill/internal/provider"
)

// DefaultMaxTokens is the token budget used when the config does not set one.
const DefaultMaxTokens = 100000

// Message is one entry of the conversation log. Immutable once appended.
type Message struct {
	Role      provider.Role
	Content   string
	Timestamp time.Time
}

// Session holds the ordered message log for one run. Single reader/writer
// (the REPL loop), so no locking.
type Session struct {
	messages  []Message
	maxTokens int
	estimator Estimator
}

// New creates an empty session with the given token budget. A budget <= 0
// falls back to DefaultMaxTokens.
func New(maxTokens int) *Session {
	return NewWithEstimator(maxTokens, HeuristicEstimator{})
}

// NewWithEstimator creates a session using a custom token estimator.
func NewWithEstimator(maxTokens int, est Estimator) *Session {
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}
	return &Session{maxTokens: maxTokens, estimator: est}
}

// Append adds a message with a fresh timestamp. Insertion order is
// conversation order; messages are never reordered or edited.
func (s *Session) Append(role provider.Role, content string) {
	s.messages = append(s.messages, Message{
		Role:      role,
		Content:   content,
		Timestamp: time.Now(),
	})
}

// Messages returns a copy of the full log. Callers cannot mutate internal
// state through the returned slice.
func (s *Session) Messages() []Message {
	out := make([]Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// ForProvider projects the log to the payload handed to the provider
// adapter: role and content only, insertion order preserved, no timestamps.
func (s *Session) ForProvider() []provider.Message {
	out := make([]provider.Message, 0, len(s.messages))
	for _, m := range s.messages {
		out = append(out, provider.TextMessage(m.Role, m.Content))
	}
	return out
}

// LastN returns a copy of the last n entries. n <= 0 yields an empty slice;
// n beyond the log length yields the full log.
func (s *Session) LastN(n int) []Message {
	if n <= 0 {
		return []Message{}
	}
	if n > len(s.messages) {
		n = len(s.messages)
	}
	out := make([]Message, n)
	copy(out, s.messages[len(s.messages)-n:])
	return out
}

// EstimatedTokens sums the heuristic cost of every message. It approximates
// provider billing; it is not a tokenizer.
func (s *Session) EstimatedTokens() int {
	total := 0
	for _, m := range s.messages {
		total += s.estimator.EstimateMessage(m)
	}
	return total
}

// TrimToLimit evicts the oldest messages until the estimate fits the budget.
// The newest message is never evicted, so a single over-budget message is
// left in place (there is nothing older to drop). Reports whether anything
// was evicted.
//
// The repeated full recount is O(n²) worst case. Session length is bounded
// by the budget itself, so this stays cheap; large-session callers would
// keep a running total instead.
func (s *Session) TrimToLimit() bool {
	trimmed := false
	for len(s.messages) > 1 && s.EstimatedTokens() > s.maxTokens {
		s.messages = s.messages[1:]
		trimmed = true
	}
	return trimmed
}

// Clear empties the log unconditionally.
func (s *Session) Clear() {
	s.messages = nil
}

// Len returns the number of messages in the log.
func (s *Session) Len() int { return len(s.messages) }

// MaxTokens returns the configured token budget.
func (s *Session) MaxTokens() int { return s.maxTokens }
