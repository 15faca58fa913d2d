// Package template holds the per-model instruction templates used as system
// messages for the generation service. Templates are immutable configuration
// data: embedded at build time, parsed once at startup, never mutated.
package template

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/avolkov/reframe/internal/model"
)

//go:embed templates.yaml
var templatesYAML []byte

// Registry maps target models to their instruction templates
type Registry struct {
	byTarget map[model.TargetModel]string
	image    string
}

// NewRegistry parses the embedded template data and verifies every
// recognized target has a template
func NewRegistry() (*Registry, error) {
	var raw struct {
		Targets map[string]string `yaml:"targets"`
		Image   string            `yaml:"image"`
	}
	if err := yaml.Unmarshal(templatesYAML, &raw); err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	byTarget := make(map[model.TargetModel]string, len(raw.Targets))
	for name, text := range raw.Targets {
		target, err := model.ParseTarget(name)
		if err != nil {
			return nil, fmt.Errorf("template for unrecognized target %q", name)
		}
		byTarget[target] = text
	}

	for _, target := range model.AllTargets() {
		if byTarget[target] == "" {
			return nil, fmt.Errorf("missing template for target %q", target)
		}
	}
	if raw.Image == "" {
		return nil, fmt.Errorf("missing image generation template")
	}

	return &Registry{byTarget: byTarget, image: raw.Image}, nil
}

// TemplateFor selects the system instruction for a reframe. Image intent
// takes precedence: the shared image generation template is returned
// regardless of target model.
func (r *Registry) TemplateFor(target model.TargetModel, imageIntent bool) (string, error) {
	if imageIntent {
		return r.image, nil
	}
	tmpl, ok := r.byTarget[target]
	if !ok {
		return "", fmt.Errorf("%w: %q", model.ErrInvalidModel, target)
	}
	return tmpl, nil
}
