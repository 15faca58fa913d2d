// Package format builds the model-specific API-ready envelope around
// reframed text, mimicking each target's native completion request body.
package format

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/avolkov/reframe/internal/model"
)

// Default payload model names per target. These identify the request shape,
// not the reframing backend.
const (
	chatgptPayloadModel    = "gpt-4o"
	claudePayloadModel     = "claude-3-5-sonnet-20241022"
	perplexityPayloadModel = "sonar"

	claudeMaxTokens = 1024
)

// ChatMessage is one role/content entry in an OpenAI-style messages array
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatGPTPayload mirrors the Chat Completions request body
type ChatGPTPayload struct {
	Model    string        `json:"model"`
	Messages []ChatMessage `json:"messages"`
}

// ClaudePayload mirrors the Messages API request body: system is a
// top-level field, messages carry only the user turn
type ClaudePayload struct {
	Model     string        `json:"model"`
	MaxTokens int           `json:"max_tokens"`
	System    string        `json:"system"`
	Messages  []ChatMessage `json:"messages"`
}

// GeminiPart is one text part of a Gemini content entry
type GeminiPart struct {
	Text string `json:"text"`
}

// GeminiContent is one entry in a Gemini contents array
type GeminiContent struct {
	Role  string       `json:"role"`
	Parts []GeminiPart `json:"parts"`
}

// GeminiPayload mirrors the generateContent request body
type GeminiPayload struct {
	Contents []GeminiContent `json:"contents"`
}

// PerplexityPayload mirrors Perplexity's OpenAI-compatible request body
type PerplexityPayload struct {
	Model    string        `json:"model"`
	Messages []ChatMessage `json:"messages"`
}

// GenericPayload is the fallback shape for unrecognized-but-valid targets
type GenericPayload struct {
	Prompt string `json:"prompt"`
}

// Formatter wraps reframed text into per-target envelopes
type Formatter struct{}

// New creates a formatter
func New() *Formatter {
	return &Formatter{}
}

// Format builds a complete Result: raw text, API-ready payload, and
// metadata. The same path serves full and degraded results; degraded
// callers set Result.Error afterwards.
func (f *Formatter) Format(target model.TargetModel, reframed, original string) *model.Result {
	return &model.Result{
		Model:          target,
		OriginalPrompt: original,
		Reframed: model.Reframed{
			Raw:      reframed,
			APIReady: f.payload(target, reframed),
		},
		Metadata: model.Metadata{
			Timestamp:      time.Now().UTC(),
			OriginalLength: utf8.RuneCountInString(original),
			ReframedLength: utf8.RuneCountInString(reframed),
		},
	}
}

func (f *Formatter) payload(target model.TargetModel, text string) any {
	switch target {
	case model.TargetChatGPT:
		system, user := splitSystemUser(text)
		return ChatGPTPayload{
			Model: chatgptPayloadModel,
			Messages: []ChatMessage{
				{Role: "system", Content: system},
				{Role: "user", Content: user},
			},
		}

	case model.TargetClaude:
		system, user := splitSystemUser(text)
		return ClaudePayload{
			Model:     claudePayloadModel,
			MaxTokens: claudeMaxTokens,
			System:    system,
			Messages: []ChatMessage{
				{Role: "user", Content: user},
			},
		}

	case model.TargetGemini:
		return GeminiPayload{
			Contents: []GeminiContent{
				{
					Role:  "user",
					Parts: []GeminiPart{{Text: text}},
				},
			},
		}

	case model.TargetPerplexity:
		return PerplexityPayload{
			Model: perplexityPayloadModel,
			Messages: []ChatMessage{
				{Role: "user", Content: text},
			},
		}

	default:
		return GenericPayload{Prompt: text}
	}
}

// splitSystemUser divides reframed text into a system portion and a user
// task portion. Lines accumulate into the system portion until a markdown
// heading appears after at least one line has already been accumulated;
// that heading starts the user portion. With no boundary the full text
// serves as both the system content and the user task.
func splitSystemUser(text string) (system, user string) {
	lines := strings.Split(text, "\n")

	boundary := -1
	accumulated := 0
	for i, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "#") && accumulated > 0 {
			boundary = i
			break
		}
		accumulated++
	}

	if boundary == -1 {
		return text, text
	}

	system = strings.TrimSpace(strings.Join(lines[:boundary], "\n"))
	user = strings.TrimSpace(strings.Join(lines[boundary:], "\n"))
	return system, user
}
