package session

import (
	"strings"
	"testing"

	"github.com/quillsh/quill/internal/provider"
)

func TestEstimateEmptySession(t *testing.T) {
	if got := New(0).EstimatedTokens(); got != 0 {
		t.Errorf("EstimatedTokens on empty session = %d, want 0", got)
	}
}

func TestHeuristicWeighting(t *testing.T) {
	est := HeuristicEstimator{}
	tests := []struct {
		name    string
		content string
		want    int
	}{
		{"empty", "", 10},
		{"ascii 4 chars", "abcd", 11},
		{"ascii 8 chars", strings.Repeat("a", 8), 12},
		{"ascii rounds up", "abcde", 12},
		// CJK weighs ~2 chars per token instead of ~4.
		{"cjk 4 chars", "你好世界", 12},
		{"mixed", "hi你好", 12}, // 2 plain -> 1, 2 dense -> 1
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := est.EstimateMessage(Message{Role: provider.RoleUser, Content: tt.content})
			if got != tt.want {
				t.Errorf("EstimateMessage(%q) = %d, want %d", tt.content, got, tt.want)
			}
		})
	}
}

func TestDenseTextCostsMoreThanPlain(t *testing.T) {
	est := HeuristicEstimator{}
	plain := est.EstimateMessage(Message{Content: strings.Repeat("a", 100)})
	dense := est.EstimateMessage(Message{Content: strings.Repeat("语", 100)})
	if dense <= plain {
		t.Errorf("dense %d <= plain %d; non-Latin text must estimate higher", dense, plain)
	}
}

// fixedEstimator makes budget math exact in tests.
type fixedEstimator struct{ cost int }

func (f fixedEstimator) EstimateMessage(Message) int { return f.cost }

func TestPluggableEstimator(t *testing.T) {
	s := NewWithEstimator(10, fixedEstimator{cost: 4})
	for i := 0; i < 4; i++ {
		s.Append(provider.RoleUser, "x")
	}
	if got := s.EstimatedTokens(); got != 16 {
		t.Fatalf("EstimatedTokens = %d, want 16", got)
	}
	if !s.TrimToLimit() {
		t.Fatal("TrimToLimit = false, want true")
	}
	// 16 -> 12 -> 8, within budget at 2 messages.
	if s.Len() != 2 {
		t.Errorf("Len after trim = %d, want 2", s.Len())
	}
}
