package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/avolkov/reframe/internal/llm"
	"github.com/avolkov/reframe/internal/pipeline"
	"github.com/avolkov/reframe/internal/template"
	"github.com/avolkov/reframe/internal/worker"
)

var (
	batchTarget   string
	concurrency   int
	outputDir     string
	batchTimeout  time.Duration
	batchRPS      float64
	batchBurst    int
	batchProvider string
	batchModel    string
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Reframe multiple prompts from a file in parallel",
	Long: `Batch reframes multiple prompts concurrently:
- Read prompts from input file (one per line, # lines are comments)
- Reframe prompts in parallel with configurable worker count
- Pace generation calls with a shared rate limit
- Write one JSON result per prompt

Example:
  reframe batch prompts.txt --model claude
  reframe batch prompts.txt --concurrency 8 --output-dir ./reframed
  reframe batch prompts.txt --rps 1 --burst 1 --timeout 10m`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().StringVar(&batchTarget, "model", "chatgpt", "target model for every prompt")
	batchCmd.Flags().IntVar(&concurrency, "concurrency", 0, "number of concurrent workers (default: from config)")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "./reframe-results", "output directory for results")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")
	batchCmd.Flags().Float64Var(&batchRPS, "rps", 0, "generation calls per second (default: from config)")
	batchCmd.Flags().IntVar(&batchBurst, "burst", 0, "rate limit burst (default: from config)")
	batchCmd.Flags().StringVar(&batchProvider, "provider", "", "generation provider (openai, anthropic, ollama)")
	batchCmd.Flags().StringVar(&batchModel, "llm-model", "", "generation model name")
}

func runBatch(cmd *cobra.Command, args []string) error {
	file := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if batchProvider != "" {
		cfg.LLM.Provider = batchProvider
	}
	if batchModel != "" {
		cfg.LLM.Model = batchModel
	}
	if concurrency <= 0 {
		concurrency = cfg.Batch.Workers
	}
	if batchRPS <= 0 {
		batchRPS = cfg.Batch.RequestsPerSecond
	}
	if batchBurst <= 0 {
		batchBurst = cfg.Batch.Burst
	}

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Reframe Batch Processing\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Input file:   %s\n", file)
	fmt.Fprintf(os.Stderr, "  Target:       %s\n", batchTarget)
	fmt.Fprintf(os.Stderr, "  Workers:      %d\n", concurrency)
	fmt.Fprintf(os.Stderr, "  Rate:         %.1f/s (burst %d)\n", batchRPS, batchBurst)
	fmt.Fprintf(os.Stderr, "  Output dir:   %s\n", outputDir)
	fmt.Fprintf(os.Stderr, "  Timeout:      %v\n", batchTimeout)
	fmt.Fprintf(os.Stderr, "\n")

	templates, err := template.NewRegistry()
	if err != nil {
		return fmt.Errorf("load templates: %w", err)
	}

	provider, err := buildProvider(cfg.LLM)
	if err != nil {
		return err
	}
	if provider == nil {
		fmt.Fprintf(os.Stderr, "  Generation:   disabled (pass-through)\n\n")
	} else {
		fmt.Fprintf(os.Stderr, "  Generation:   %s/%s\n\n", provider.Name(), cfg.LLM.Model)
	}

	// Create output directory
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	p := pipeline.New(templates, provider, llm.ConfigFromModel(cfg.LLM), nil)
	processor := worker.NewBatchProcessor(p, worker.NewLimiter(batchRPS, batchBurst), concurrency)

	fmt.Fprintf(os.Stderr, "⚙️  Reading prompts from file...\n")
	results, err := processor.ProcessFile(ctx, file, batchTarget)
	if err != nil {
		return fmt.Errorf("process file: %w", err)
	}

	fmt.Fprintf(os.Stderr, "✓ Processed %d prompts with %d workers\n", len(results), concurrency)
	fmt.Fprintf(os.Stderr, "\n")

	successCount := 0
	degradedCount := 0
	failureCount := 0

	for i, result := range results {
		if result.Error != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", truncatePrompt(result.Prompt), result.Error)
			continue
		}

		outPath := filepath.Join(outputDir, fmt.Sprintf("reframe-%03d.json", i+1))
		if err := writeJSON(result.Result, outPath); err != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", truncatePrompt(result.Prompt), err)
			continue
		}

		if result.Result.Degraded() {
			degradedCount++
			fmt.Fprintf(os.Stderr, "△ %s (degraded: %s)\n", truncatePrompt(result.Prompt), result.Result.Error)
		} else {
			successCount++
			fmt.Fprintf(os.Stderr, "✓ %s\n", truncatePrompt(result.Prompt))
		}
	}

	// Summary
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Batch Complete\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Total:     %d prompts\n", len(results))
	fmt.Fprintf(os.Stderr, "  Success:   %d\n", successCount)
	fmt.Fprintf(os.Stderr, "  Degraded:  %d\n", degradedCount)
	fmt.Fprintf(os.Stderr, "  Failures:  %d\n", failureCount)
	fmt.Fprintf(os.Stderr, "  Output:    %s\n", outputDir)
	fmt.Fprintf(os.Stderr, "\n")

	return nil
}

// truncatePrompt shortens a prompt for one-line progress output
func truncatePrompt(s string) string {
	const max = 60
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
