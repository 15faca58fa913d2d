package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/avolkov/reframe/internal/format"
	"github.com/avolkov/reframe/internal/llm"
	"github.com/avolkov/reframe/internal/model"
	"github.com/avolkov/reframe/internal/template"
)

// fakeProvider records the last request and returns canned output
type fakeProvider struct {
	lastReq llm.CompletionRequest
	text    string
	err     error
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) IsAvailable(ctx context.Context) bool { return true }

func (f *fakeProvider) Complete(ctx context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error) {
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return &llm.CompletionResponse{Text: f.text, Model: "fake-model"}, nil
}

func newRegistry(t *testing.T) *template.Registry {
	t.Helper()
	reg, err := template.NewRegistry()
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	return reg
}

func TestReframe_MissingPrompt(t *testing.T) {
	p := New(newRegistry(t), &fakeProvider{}, llm.DefaultConfig(), nil)

	for _, prompt := range []string{"", "   ", "\n\t"} {
		_, err := p.Reframe(context.Background(), model.Request{Prompt: prompt, Model: "claude"})
		if !errors.Is(err, model.ErrMissingPrompt) {
			t.Errorf("prompt %q: expected ErrMissingPrompt, got %v", prompt, err)
		}
	}
}

func TestReframe_InvalidModel(t *testing.T) {
	p := New(newRegistry(t), &fakeProvider{}, llm.DefaultConfig(), nil)

	_, err := p.Reframe(context.Background(), model.Request{Prompt: "Write a poem", Model: "unknown"})
	if !errors.Is(err, model.ErrInvalidModel) {
		t.Errorf("expected ErrInvalidModel, got %v", err)
	}
}

func TestReframe_NoProvider_PassThrough(t *testing.T) {
	p := New(newRegistry(t), nil, llm.DefaultConfig(), nil)

	res, err := p.Reframe(context.Background(), model.Request{Prompt: "Write a poem", Model: "claude"})
	if err != nil {
		t.Fatalf("Reframe: %v", err)
	}
	if res.Reframed.Raw != "Write a poem" {
		t.Errorf("reframed.raw = %q, want original prompt", res.Reframed.Raw)
	}
	if res.Error == "" {
		t.Error("degraded result must carry an error explanation")
	}
	if !res.Degraded() {
		t.Error("expected degraded result")
	}
	// Degraded results still get an API-ready payload
	if res.Reframed.APIReady == nil {
		t.Error("degraded result missing api_ready payload")
	}
}

func TestReframe_GenerationFailure_Degrades(t *testing.T) {
	provider := &fakeProvider{err: fmt.Errorf("connection refused")}
	p := New(newRegistry(t), provider, llm.DefaultConfig(), nil)

	res, err := p.Reframe(context.Background(), model.Request{Prompt: "Write a poem", Model: "gemini"})
	if err != nil {
		t.Fatalf("generation failure must not propagate, got %v", err)
	}
	if res.Reframed.Raw != "Write a poem" {
		t.Errorf("reframed.raw = %q, want original prompt", res.Reframed.Raw)
	}
	if !strings.Contains(res.Error, "generation failed") {
		t.Errorf("error field: %q", res.Error)
	}
}

func TestReframe_Success(t *testing.T) {
	provider := &fakeProvider{text: "## Task\nWrite a structured poem."}
	p := New(newRegistry(t), provider, llm.DefaultConfig(), nil)

	res, err := p.Reframe(context.Background(), model.Request{Prompt: "Write a poem", Model: "chatgpt"})
	if err != nil {
		t.Fatalf("Reframe: %v", err)
	}
	if res.Reframed.Raw != "## Task\nWrite a structured poem." {
		t.Errorf("reframed.raw = %q", res.Reframed.Raw)
	}
	if res.Error != "" {
		t.Errorf("unexpected error field: %q", res.Error)
	}
	if res.Model != model.TargetChatGPT {
		t.Errorf("model = %s", res.Model)
	}
	if res.Metadata.OriginalLength != len("Write a poem") {
		t.Errorf("original_length = %d", res.Metadata.OriginalLength)
	}
	if res.Metadata.ReframedLength != len(res.Reframed.Raw) {
		t.Errorf("reframed_length = %d", res.Metadata.ReframedLength)
	}
}

func TestReframe_ImageIntentOverridesTemplate(t *testing.T) {
	reg := newRegistry(t)
	provider := &fakeProvider{text: "an image prompt"}
	p := New(reg, provider, llm.DefaultConfig(), nil)

	_, err := p.Reframe(context.Background(), model.Request{
		Prompt: "Create a stunning vibrant poster of a dragon",
		Model:  "chatgpt",
	})
	if err != nil {
		t.Fatalf("Reframe: %v", err)
	}

	imageTemplate, err := reg.TemplateFor(model.TargetChatGPT, true)
	if err != nil {
		t.Fatalf("TemplateFor: %v", err)
	}
	if provider.lastReq.System != imageTemplate {
		t.Error("image-intent prompt did not select the image template")
	}
}

func TestReframe_ClarificationsAppended(t *testing.T) {
	provider := &fakeProvider{text: "ok"}
	p := New(newRegistry(t), provider, llm.DefaultConfig(), nil)

	_, err := p.Reframe(context.Background(), model.Request{
		Prompt: "Summarize the report",
		Model:  "others",
		Clarifications: map[string]string{
			"detail_level": "Brief overview",
			"audience":     "executives",
		},
	})
	if err != nil {
		t.Fatalf("Reframe: %v", err)
	}

	want := "Summarize the report\n\nAdditional context from clarifying questions:\naudience: executives\ndetail_level: Brief overview"
	if provider.lastReq.User != want {
		t.Errorf("user message:\n%q\nwant:\n%q", provider.lastReq.User, want)
	}
}

func TestReframe_ChatGPTPayloadSplit(t *testing.T) {
	provider := &fakeProvider{text: "You are a poet.\n## Task\nWrite a haiku."}
	p := New(newRegistry(t), provider, llm.DefaultConfig(), nil)

	res, err := p.Reframe(context.Background(), model.Request{Prompt: "Write a haiku", Model: "chatgpt"})
	if err != nil {
		t.Fatalf("Reframe: %v", err)
	}

	payload, ok := res.Reframed.APIReady.(format.ChatGPTPayload)
	if !ok {
		t.Fatalf("payload type: %T", res.Reframed.APIReady)
	}
	if payload.Messages[0].Content != "You are a poet." {
		t.Errorf("system content: %q", payload.Messages[0].Content)
	}
}
