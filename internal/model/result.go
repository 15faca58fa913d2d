package model

import "time"

// Request is the inbound reframe operation payload
type Request struct {
	Prompt         string            `json:"prompt"`
	Model          string            `json:"model"`
	Clarifications map[string]string `json:"clarifications,omitempty"` // Answers keyed by clarification id
}

// Metadata carries per-result bookkeeping
type Metadata struct {
	Timestamp       time.Time `json:"timestamp"`
	OriginalLength  int       `json:"original_length"`
	ReframedLength  int       `json:"reframed_length"`
}

// Reframed pairs the raw restructured text with the target model's
// native request envelope built from it
type Reframed struct {
	Raw      string `json:"raw"`
	APIReady any    `json:"api_ready"`
}

// Result is the complete outcome of one reframe operation.
// Degraded and full results share this shape: when generation is
// unavailable or fails, Raw carries the original prompt unchanged and
// Error explains why.
type Result struct {
	Model          TargetModel `json:"model"`
	OriginalPrompt string      `json:"original_prompt"`
	Reframed       Reframed    `json:"reframed"`
	Metadata       Metadata    `json:"metadata"`
	Error          string      `json:"error,omitempty"`
}

// Degraded reports whether the result carries the original prompt
// because generation was skipped or failed
func (r *Result) Degraded() bool {
	return r.Error != ""
}
