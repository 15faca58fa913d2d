package format

import (
	"testing"

	"github.com/avolkov/reframe/internal/model"
)

func TestSplitSystemUser(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		wantSystem string
		wantUser   string
	}{
		{
			name:       "heading after intro",
			text:       "You are a helpful assistant.\n## Task\nWrite a haiku.",
			wantSystem: "You are a helpful assistant.",
			wantUser:   "## Task\nWrite a haiku.",
		},
		{
			name:       "no heading",
			text:       "Write a haiku about autumn.",
			wantSystem: "Write a haiku about autumn.",
			wantUser:   "Write a haiku about autumn.",
		},
		{
			name:       "heading on first line stays in system",
			text:       "## Role\nYou are a poet.",
			wantSystem: "## Role\nYou are a poet.",
			wantUser:   "## Role\nYou are a poet.",
		},
		{
			name:       "second heading splits",
			text:       "## Role\nYou are a poet.\n## Task\nWrite a haiku.",
			wantSystem: "## Role\nYou are a poet.",
			wantUser:   "## Task\nWrite a haiku.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			system, user := splitSystemUser(tt.text)
			if system != tt.wantSystem {
				t.Errorf("system = %q, want %q", system, tt.wantSystem)
			}
			if user != tt.wantUser {
				t.Errorf("user = %q, want %q", user, tt.wantUser)
			}
		})
	}
}

func TestFormat_ChatGPT(t *testing.T) {
	f := New()
	res := f.Format(model.TargetChatGPT, "Intro line.\n## Task\nDo the thing.", "original")

	payload, ok := res.Reframed.APIReady.(ChatGPTPayload)
	if !ok {
		t.Fatalf("payload type: %T", res.Reframed.APIReady)
	}
	if len(payload.Messages) != 2 {
		t.Fatalf("messages: got %d, want 2", len(payload.Messages))
	}
	if payload.Messages[0].Role != "system" || payload.Messages[0].Content != "Intro line." {
		t.Errorf("system message: %+v", payload.Messages[0])
	}
	if payload.Messages[1].Role != "user" || payload.Messages[1].Content != "## Task\nDo the thing." {
		t.Errorf("user message: %+v", payload.Messages[1])
	}
}

func TestFormat_Claude(t *testing.T) {
	f := New()
	res := f.Format(model.TargetClaude, "plain text, no headings", "original")

	payload, ok := res.Reframed.APIReady.(ClaudePayload)
	if !ok {
		t.Fatalf("payload type: %T", res.Reframed.APIReady)
	}
	// No boundary: full text is both system content and the user task
	if payload.System != "plain text, no headings" {
		t.Errorf("system: %q", payload.System)
	}
	if len(payload.Messages) != 1 || payload.Messages[0].Content != "plain text, no headings" {
		t.Errorf("messages: %+v", payload.Messages)
	}
	if payload.MaxTokens == 0 {
		t.Error("max_tokens not set")
	}
}

func TestFormat_Gemini(t *testing.T) {
	f := New()
	res := f.Format(model.TargetGemini, "structured text", "original")

	payload, ok := res.Reframed.APIReady.(GeminiPayload)
	if !ok {
		t.Fatalf("payload type: %T", res.Reframed.APIReady)
	}
	if len(payload.Contents) != 1 {
		t.Fatalf("contents: got %d, want 1", len(payload.Contents))
	}
	if len(payload.Contents[0].Parts) != 1 || payload.Contents[0].Parts[0].Text != "structured text" {
		t.Errorf("parts: %+v", payload.Contents[0].Parts)
	}
}

func TestFormat_Perplexity(t *testing.T) {
	f := New()
	res := f.Format(model.TargetPerplexity, "a research question", "original")

	payload, ok := res.Reframed.APIReady.(PerplexityPayload)
	if !ok {
		t.Fatalf("payload type: %T", res.Reframed.APIReady)
	}
	if len(payload.Messages) != 1 || payload.Messages[0].Role != "user" {
		t.Errorf("messages: %+v", payload.Messages)
	}
}

func TestFormat_Others(t *testing.T) {
	f := New()
	res := f.Format(model.TargetOthers, "any text", "original")

	payload, ok := res.Reframed.APIReady.(GenericPayload)
	if !ok {
		t.Fatalf("payload type: %T", res.Reframed.APIReady)
	}
	if payload.Prompt != "any text" {
		t.Errorf("prompt: %q", payload.Prompt)
	}
}

func TestFormat_Metadata(t *testing.T) {
	f := New()
	res := f.Format(model.TargetOthers, "short", "a longer original prompt")

	if res.Metadata.OriginalLength != len("a longer original prompt") {
		t.Errorf("original_length: %d", res.Metadata.OriginalLength)
	}
	if res.Metadata.ReframedLength != len("short") {
		t.Errorf("reframed_length: %d", res.Metadata.ReframedLength)
	}
	if res.Metadata.Timestamp.IsZero() {
		t.Error("timestamp not set")
	}
	if res.OriginalPrompt != "a longer original prompt" {
		t.Errorf("original_prompt: %q", res.OriginalPrompt)
	}
	if res.Degraded() {
		t.Error("fresh result should not be degraded")
	}
}
