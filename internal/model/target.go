package model

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for the two input-validation failures that are allowed to
// cross the pipeline boundary. Everything downstream is absorbed into a
// degraded result instead.
var (
	ErrMissingPrompt = errors.New("prompt is required")
	ErrInvalidModel  = errors.New("unknown target model")
)

// TargetModel identifies the AI model family a prompt is reframed for
type TargetModel string

const (
	TargetChatGPT    TargetModel = "chatgpt"
	TargetClaude     TargetModel = "claude"
	TargetGemini     TargetModel = "gemini"
	TargetPerplexity TargetModel = "perplexity"
	TargetOthers     TargetModel = "others"
)

// AllTargets returns the closed set of recognized target models
func AllTargets() []TargetModel {
	return []TargetModel{
		TargetChatGPT,
		TargetClaude,
		TargetGemini,
		TargetPerplexity,
		TargetOthers,
	}
}

// ParseTarget validates a raw model identifier against the closed set.
// Anything outside the set is rejected before it reaches the pipeline.
func ParseTarget(raw string) (TargetModel, error) {
	switch t := TargetModel(strings.ToLower(strings.TrimSpace(raw))); t {
	case TargetChatGPT, TargetClaude, TargetGemini, TargetPerplexity, TargetOthers:
		return t, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidModel, raw)
	}
}
