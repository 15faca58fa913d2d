package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/avolkov/reframe/internal/llm"
	"github.com/avolkov/reframe/internal/model"
	"github.com/avolkov/reframe/internal/pipeline"
	"github.com/avolkov/reframe/internal/template"
)

var (
	runTarget   string
	runClarify  []string
	runOut      string
	runTimeout  time.Duration
	runProvider string
	runModel    string
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run <prompt>",
	Short: "Reframe a single prompt for a target model",
	Long: `Run restructures one prompt and prints the result as JSON, including
the target model's ready-to-send API envelope.

Without a generation provider configured the prompt passes through
unchanged and the result carries an explanation in its error field.

Example:
  reframe run "write a function that sorts a list" --model claude
  reframe run "summarize some recent papers" --model perplexity --clarify "scope=transformer inference"
  reframe run "draw a vibrant sunset poster" --model chatgpt --provider openai`,
	Args: cobra.ExactArgs(1),
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVar(&runTarget, "model", "chatgpt", "target model (chatgpt, claude, gemini, perplexity, others)")
	runCmd.Flags().StringArrayVar(&runClarify, "clarify", nil, "clarification answer as key=value (repeatable)")
	runCmd.Flags().StringVar(&runOut, "json", "", "output JSON path (default: stdout)")
	runCmd.Flags().DurationVar(&runTimeout, "timeout", time.Minute, "overall timeout")
	runCmd.Flags().StringVar(&runProvider, "provider", "", "generation provider (openai, anthropic, ollama)")
	runCmd.Flags().StringVar(&runModel, "llm-model", "", "generation model name")
}

func runRun(cmd *cobra.Command, args []string) error {
	prompt := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if runProvider != "" {
		cfg.LLM.Provider = runProvider
	}
	if runModel != "" {
		cfg.LLM.Model = runModel
	}

	clarifications, err := parseClarifications(runClarify)
	if err != nil {
		return err
	}

	templates, err := template.NewRegistry()
	if err != nil {
		return fmt.Errorf("load templates: %w", err)
	}

	provider, err := buildProvider(cfg.LLM)
	if err != nil {
		return err
	}
	if verbose {
		if provider != nil {
			fmt.Fprintf(os.Stderr, "Generation: %s\n", provider.Name())
		} else {
			fmt.Fprintf(os.Stderr, "Generation: disabled (pass-through)\n")
		}
	}

	p := pipeline.New(templates, provider, llm.ConfigFromModel(cfg.LLM), nil)

	result, err := p.Reframe(ctx, model.Request{
		Prompt:         prompt,
		Model:          runTarget,
		Clarifications: clarifications,
	})
	if err != nil {
		return fmt.Errorf("reframe failed: %w", err)
	}

	return writeJSON(result, runOut)
}

// parseClarifications splits repeated key=value flags into a map
func parseClarifications(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}

	out := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || strings.TrimSpace(key) == "" {
			return nil, fmt.Errorf("invalid clarification %q: expected key=value", pair)
		}
		out[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	return out, nil
}

// writeJSON marshals v indented and writes it to path, or stdout when
// path is empty
func writeJSON(v any, path string) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}

	if path == "" {
		fmt.Println(string(data))
		return nil
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Wrote %s\n", path)
	}
	return nil
}
