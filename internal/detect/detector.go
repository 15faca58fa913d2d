package detect

import (
	"regexp"
	"strings"

	"github.com/avolkov/reframe/internal/model"
)

// maxFindings bounds the number of questions surfaced per prompt
const maxFindings = 3

// Detector flags ambiguous prompts before they are submitted for reframing.
// It is a pure function of the input text: rules are evaluated independently
// and merged in fixed order (vague_quantifier, undefined_scope,
// missing_format).
type Detector struct {
	vague       *regexp.Regexp
	opener      *regexp.Regexp
	formatWords []string
}

// New creates a detector with the standard rule set
func New() *Detector {
	return &Detector{
		// Whole-word match so "awesome" does not trip on "some"
		vague:  regexp.MustCompile(`(?i)\b(some|few|many|several|a bit|lots of)\b`),
		opener: regexp.MustCompile(`(?i)^\s*(explain|describe|tell me about)\s+([^\s]+)`),
		formatWords: []string{
			"list", "table", "summary", "paragraph", "code", "json", "steps",
		},
	}
}

// Detect runs all ambiguity rules against the prompt and returns at most
// maxFindings findings in rule order. Multiple rules can fire on one prompt.
func (d *Detector) Detect(prompt string) model.Detection {
	var findings []model.Finding

	if d.vague.MatchString(prompt) {
		findings = append(findings, model.Finding{
			Type:     model.FindingVagueQuantifier,
			Question: "How many examples or items would you like?",
			Options:  []string{"1-2", "3-5", "5-10", "More than 10"},
		})
	}

	if d.hasUndefinedScope(prompt) {
		findings = append(findings, model.Finding{
			Type:     model.FindingUndefinedScope,
			Question: "What level of detail do you need?",
			Options:  []string{"Brief overview", "Moderate detail", "In-depth explanation"},
		})
	}

	if d.lacksFormat(prompt) {
		findings = append(findings, model.Finding{
			Type:     model.FindingMissingFormat,
			Question: "How should the output be formatted?",
			Options:  []string{"Bullet points", "Paragraph", "Step-by-step", "Table"},
		})
	}

	if len(findings) > maxFindings {
		findings = findings[:maxFindings]
	}

	return model.Detection{
		HasAmbiguity: len(findings) > 0,
		Questions:    findings,
	}
}

// hasUndefinedScope fires on short prompts that open with a broad-topic
// phrase ("explain X", "describe X", "tell me about X") unless the opener is
// immediately narrowed by how/why/when/where.
func (d *Detector) hasUndefinedScope(prompt string) bool {
	if len(prompt) >= 50 {
		return false
	}
	m := d.opener.FindStringSubmatch(prompt)
	if m == nil {
		return false
	}
	next := strings.ToLower(strings.Trim(m[2], ".,!?;:"))
	switch next {
	case "how", "why", "when", "where":
		return false
	}
	return true
}

// lacksFormat fires on prompts long enough to need structure (more than 10
// tokens) that contain no format-indicating word.
func (d *Detector) lacksFormat(prompt string) bool {
	if len(strings.Fields(prompt)) <= 10 {
		return false
	}
	lower := strings.ToLower(prompt)
	for _, w := range d.formatWords {
		if strings.Contains(lower, w) {
			return false
		}
	}
	return true
}
