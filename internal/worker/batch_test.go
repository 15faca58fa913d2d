package worker

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/avolkov/reframe/internal/model"
)

// fakeReframer returns a pass-through result for every prompt
type fakeReframer struct {
	calls int32
	fail  bool
}

func (f *fakeReframer) Reframe(ctx context.Context, req model.Request) (*model.Result, error) {
	atomic.AddInt32(&f.calls, 1)
	if f.fail {
		return nil, fmt.Errorf("reframe failed")
	}
	return &model.Result{
		Model:          model.TargetModel(req.Model),
		OriginalPrompt: req.Prompt,
		Reframed:       model.Reframed{Raw: "reframed: " + req.Prompt},
	}, nil
}

func TestBatchProcessor_ProcessPrompts(t *testing.T) {
	reframer := &fakeReframer{}
	b := NewBatchProcessor(reframer, nil, 3)

	prompts := []string{"one", "two", "three", "four"}
	results := b.ProcessPrompts(context.Background(), prompts, "claude")

	if len(results) != len(prompts) {
		t.Fatalf("results: got %d, want %d", len(results), len(prompts))
	}
	for _, r := range results {
		if r.Error != nil {
			t.Errorf("prompt %q: unexpected error %v", r.Prompt, r.Error)
		}
		if r.Result == nil || r.Result.Reframed.Raw != "reframed: "+r.Prompt {
			t.Errorf("prompt %q: unexpected result %+v", r.Prompt, r.Result)
		}
	}
	if got := atomic.LoadInt32(&reframer.calls); got != int32(len(prompts)) {
		t.Errorf("calls: got %d, want %d", got, len(prompts))
	}
}

func TestBatchProcessor_ErrorsSurfacePerPrompt(t *testing.T) {
	b := NewBatchProcessor(&fakeReframer{fail: true}, nil, 2)

	results := b.ProcessPrompts(context.Background(), []string{"one", "two"}, "claude")
	if len(results) != 2 {
		t.Fatalf("results: got %d, want 2", len(results))
	}
	for _, r := range results {
		if r.GetError() == nil {
			t.Errorf("prompt %q: expected error", r.Prompt)
		}
	}
}

func TestBatchProcessor_WithLimiter(t *testing.T) {
	reframer := &fakeReframer{}
	// Generous rate so the test stays fast; the point is the limiter path
	b := NewBatchProcessor(reframer, NewLimiter(1000, 10), 2)

	results := b.ProcessPrompts(context.Background(), []string{"one", "two", "three"}, "gemini")
	if len(results) != 3 {
		t.Fatalf("results: got %d, want 3", len(results))
	}
}

func TestReadPromptsFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prompts.txt")
	content := "first prompt\n\n# a comment\nsecond prompt\n   \nthird prompt\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	prompts, err := ReadPromptsFromFile(path)
	if err != nil {
		t.Fatalf("ReadPromptsFromFile: %v", err)
	}

	want := []string{"first prompt", "second prompt", "third prompt"}
	if len(prompts) != len(want) {
		t.Fatalf("prompts: got %v, want %v", prompts, want)
	}
	for i := range want {
		if prompts[i] != want[i] {
			t.Errorf("prompts[%d]: got %q, want %q", i, prompts[i], want[i])
		}
	}
}

func TestReadPromptsFromFile_Missing(t *testing.T) {
	if _, err := ReadPromptsFromFile("/nonexistent/prompts.txt"); err == nil {
		t.Error("expected error for missing file")
	}
}
