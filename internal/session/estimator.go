package session

// Estimator computes the heuristic token cost of one message. It is a
// strategy, not a law: the default weighting is not tied to any real
// tokenizer and must not be assumed to match provider-side billing.
type Estimator interface {
	EstimateMessage(m Message) int
}

// messageOverhead is the fixed per-message cost covering role markers and
// framing the providers add around each turn.
const messageOverhead = 10

// denseRuneStart marks the beginning of the CJK-and-friends range. Runes at
// or above it tokenize much denser than Latin text (roughly 2 chars per
// token versus 4).
const denseRuneStart = 0x2E80

// HeuristicEstimator is the default script-aware estimator: non-Latin-script
// characters cost ~1/2 token each, everything else ~1/4, plus a fixed
// per-message overhead.
type HeuristicEstimator struct{}

func (HeuristicEstimator) EstimateMessage(m Message) int {
	dense, plain := 0, 0
	for _, r := range m.Content {
		if r >= denseRuneStart {
			dense++
		} else {
			plain++
		}
	}
	// Round both shares up so short messages never estimate to zero text.
	return messageOverhead + (dense+1)/2 + (plain+3)/4
}
