// Package pipeline composes the reframe flow: validate, classify intent,
// select template, call the generation service, format the result.
package pipeline

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/avolkov/reframe/internal/format"
	"github.com/avolkov/reframe/internal/intent"
	"github.com/avolkov/reframe/internal/llm"
	"github.com/avolkov/reframe/internal/model"
	"github.com/avolkov/reframe/internal/template"
)

// degradedNoProvider is the explanation carried by pass-through results
// when no generation credential is configured at startup.
const degradedNoProvider = "generation service not configured; returning original prompt"

// Pipeline orchestrates a reframe end to end. Each call is stateless with
// respect to other calls: the only shared state is the read-only template
// registry and the provider client.
type Pipeline struct {
	classifier *intent.Classifier
	templates  *template.Registry
	formatter  *format.Formatter
	provider   llm.Provider // nil when generation is disabled
	llmConfig  llm.Config
	log        *zap.SugaredLogger
}

// New creates a pipeline. A nil provider puts the pipeline in degraded
// pass-through mode: inputs are still validated, results carry the
// original prompt unchanged.
func New(templates *template.Registry, provider llm.Provider, llmConfig llm.Config, log *zap.SugaredLogger) *Pipeline {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Pipeline{
		classifier: intent.New(),
		templates:  templates,
		formatter:  format.New(),
		provider:   provider,
		llmConfig:  llmConfig,
		log:        log,
	}
}

// Reframe validates the request, restructures the prompt for the target
// model, and wraps it in the target's API envelope.
//
// Only the two input-validation failures return an error. Every downstream
// failure is absorbed into a success-shaped degraded result whose Error
// field explains what happened: once inputs validate, callers can treat
// this operation as non-throwing.
func (p *Pipeline) Reframe(ctx context.Context, req model.Request) (*model.Result, error) {
	prompt := strings.TrimSpace(req.Prompt)
	if prompt == "" {
		return nil, model.ErrMissingPrompt
	}

	target, err := model.ParseTarget(req.Model)
	if err != nil {
		return nil, err
	}

	if p.provider == nil {
		res := p.formatter.Format(target, prompt, prompt)
		res.Error = degradedNoProvider
		return res, nil
	}

	userMessage := buildUserMessage(prompt, req.Clarifications)

	imageIntent := p.classifier.IsImageRequest(prompt)
	systemInstruction, err := p.templates.TemplateFor(target, imageIntent)
	if err != nil {
		return nil, err
	}

	resp, err := p.provider.Complete(ctx, llm.CompletionRequest{
		System:    systemInstruction,
		User:      userMessage,
		Model:     p.llmConfig.Model,
		MaxTokens: p.llmConfig.MaxTokens,
	})
	if err != nil {
		p.log.Warnw("generation failed, returning original prompt",
			"provider", p.provider.Name(),
			"target", target,
			"error", err,
		)
		res := p.formatter.Format(target, prompt, prompt)
		res.Error = fmt.Sprintf("generation failed: %v", err)
		return res, nil
	}

	return p.formatter.Format(target, resp.Text, prompt), nil
}

// Enabled reports whether a generation backend is configured
func (p *Pipeline) Enabled() bool {
	return p.provider != nil
}

// buildUserMessage appends clarification answers to the prompt as context
// lines. Keys are sorted so the rendered message is deterministic.
func buildUserMessage(prompt string, clarifications map[string]string) string {
	if len(clarifications) == 0 {
		return prompt
	}

	keys := make([]string, 0, len(clarifications))
	for k := range clarifications {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(prompt)
	b.WriteString("\n\nAdditional context from clarifying questions:")
	for _, k := range keys {
		b.WriteString(fmt.Sprintf("\n%s: %s", k, clarifications[k]))
	}
	return b.String()
}
