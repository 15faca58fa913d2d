package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/avolkov/reframe/internal/model"
)

// Reframer defines the interface for reframing a single prompt
type Reframer interface {
	Reframe(ctx context.Context, req model.Request) (*model.Result, error)
}

// ReframeJob restructures one prompt for one target model
type ReframeJob struct {
	Prompt   string
	Target   string
	Reframer Reframer
	Limiter  *Limiter // Optional pacing against the generation service
}

// Execute executes the reframe job
func (j *ReframeJob) Execute(ctx context.Context) Result {
	if j.Limiter != nil {
		if err := j.Limiter.Wait(ctx); err != nil {
			return &ReframeResult{Prompt: j.Prompt, Error: err}
		}
	}

	result, err := j.Reframer.Reframe(ctx, model.Request{
		Prompt: j.Prompt,
		Model:  j.Target,
	})
	if err != nil {
		return &ReframeResult{Prompt: j.Prompt, Error: err}
	}
	return &ReframeResult{Prompt: j.Prompt, Result: result}
}

// ReframeResult represents the result of a reframe job
type ReframeResult struct {
	Prompt string
	Result *model.Result
	Error  error
}

// GetError returns the error from the reframe result
func (r *ReframeResult) GetError() error {
	return r.Error
}

// BatchProcessor reframes multiple prompts concurrently
type BatchProcessor struct {
	reframer    Reframer
	limiter     *Limiter
	concurrency int
}

// NewBatchProcessor creates a new batch processor
func NewBatchProcessor(reframer Reframer, limiter *Limiter, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		reframer:    reframer,
		limiter:     limiter,
		concurrency: concurrency,
	}
}

// ProcessPrompts reframes the prompts concurrently for one target model
func (b *BatchProcessor) ProcessPrompts(ctx context.Context, prompts []string, target string) []*ReframeResult {
	if len(prompts) == 0 {
		return []*ReframeResult{}
	}

	pool := NewPool(b.concurrency)
	pool.Start()

	for _, prompt := range prompts {
		pool.Submit(&ReframeJob{
			Prompt:   prompt,
			Target:   target,
			Reframer: b.reframer,
			Limiter:  b.limiter,
		})
	}

	results := pool.Wait()

	reframeResults := make([]*ReframeResult, len(results))
	for i, result := range results {
		reframeResults[i] = result.(*ReframeResult)
	}

	return reframeResults
}

// ProcessFile reads prompts from a file (one per line) and reframes them
func (b *BatchProcessor) ProcessFile(ctx context.Context, filePath, target string) ([]*ReframeResult, error) {
	prompts, err := ReadPromptsFromFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read prompts: %w", err)
	}

	return b.ProcessPrompts(ctx, prompts, target), nil
}

// ReadPromptsFromFile reads prompts from a file, one per line, skipping
// blank lines and comment lines
func ReadPromptsFromFile(filePath string) ([]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var prompts []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		prompts = append(prompts, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return prompts, nil
}
