package advice

import "github.com/yanqian/mindmend/pkg/metrics"

// Request carries the mood event the coaching text responds to.
type Request struct {
	Mood  string `json:"mood"`
	Notes string `json:"notes"`
}

// Config wires runtime knobs for the advice domain.
type Config struct {
	// Candidates are model identifiers tried in order until one succeeds.
	Candidates    []string
	SystemPrompt  string
	Temperature   float32
	MaxNoteTokens int
}

// AttemptOutcome tags the result of calling one candidate.
type AttemptOutcome string

const (
	OutcomeSuccess           AttemptOutcome = "success"
	OutcomeTransportError    AttemptOutcome = "transport_error"
	OutcomeBadStatus         AttemptOutcome = "bad_status"
	OutcomeMalformedResponse AttemptOutcome = "malformed_response"
	OutcomeEmptyResponse     AttemptOutcome = "empty_response"
)

// SkipReason explains why a sweep made no attempts at all.
type SkipReason string

const (
	SkipNone         SkipReason = ""
	SkipNoCredential SkipReason = "no_credential"
	SkipEmptyMood    SkipReason = "empty_mood"
)

// Attempt records one call to one candidate.
type Attempt struct {
	Model      string             `json:"model"`
	Outcome    AttemptOutcome     `json:"outcome"`
	StatusCode int                `json:"statusCode,omitempty"`
	Reason     string             `json:"reason,omitempty"`
	LatencyMs  int64              `json:"latencyMs"`
	Usage      metrics.TokenUsage `json:"usage"`
}

// Outcome is the full record of a sweep over the candidate list.
type Outcome struct {
	Advice   string     `json:"advice,omitempty"`
	OK       bool       `json:"ok"`
	Skipped  SkipReason `json:"skipped,omitempty"`
	Attempts []Attempt  `json:"attempts"`
}

// Model returns the candidate that produced the advice, if any.
func (o Outcome) Model() string {
	if !o.OK || len(o.Attempts) == 0 {
		return ""
	}
	return o.Attempts[len(o.Attempts)-1].Model
}

// Usage sums token usage across all attempts.
func (o Outcome) Usage() metrics.TokenUsage {
	var total metrics.TokenUsage
	for _, a := range o.Attempts {
		total = total.Add(a.Usage)
	}
	return total
}
