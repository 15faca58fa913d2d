package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/avolkov/reframe/internal/detect"
	"github.com/avolkov/reframe/internal/llm"
	"github.com/avolkov/reframe/internal/pipeline"
	"github.com/avolkov/reframe/internal/server"
	"github.com/avolkov/reframe/internal/store"
	"github.com/avolkov/reframe/internal/template"
)

var (
	serveHost     string
	servePort     int
	serveProvider string
	serveModel    string
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the reframe HTTP API",
	Long: `Serve exposes the reframe pipeline over HTTP:
- POST /api/reframe    restructure a prompt for a target model
- POST /api/detect     surface clarifying questions for an ambiguous prompt
- GET  /api/models     list supported target models
- GET  /api/health     liveness and generation status
- POST /api/auth/login session login (when a JWT secret is configured)
- GET  /api/prompts    per-user reframe history (session required)

A missing generation credential does not prevent startup: the server runs
in pass-through mode and marks results as degraded.

Example:
  reframe serve
  reframe serve --port 9090 --provider openai --llm-model gpt-4o-mini`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveHost, "host", "", "bind address (overrides config)")
	serveCmd.Flags().IntVar(&servePort, "port", 0, "listen port (overrides config)")
	serveCmd.Flags().StringVar(&serveProvider, "provider", "", "generation provider (openai, anthropic, ollama)")
	serveCmd.Flags().StringVar(&serveModel, "llm-model", "", "generation model name")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if serveHost != "" {
		cfg.Server.Host = serveHost
	}
	if servePort != 0 {
		cfg.Server.Port = servePort
	}
	if serveProvider != "" {
		cfg.LLM.Provider = serveProvider
	}
	if serveModel != "" {
		cfg.LLM.Model = serveModel
	}
	if secret := os.Getenv("REFRAME_JWT_SECRET"); secret != "" {
		cfg.Server.JWTSecret = secret
	}

	logger, err := newLogger(cfg.Server.Mode)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()
	log := logger.Sugar()

	templates, err := template.NewRegistry()
	if err != nil {
		return fmt.Errorf("load templates: %w", err)
	}

	provider, err := buildProvider(cfg.LLM)
	if err != nil {
		log.Warnw("generation disabled, serving in pass-through mode", "error", err)
		provider = nil
	}
	if provider != nil {
		log.Infow("generation enabled", "provider", provider.Name(), "model", cfg.LLM.Model)
	}

	p := pipeline.New(templates, provider, llm.ConfigFromModel(cfg.LLM), log)
	mem := store.NewMemoryStore(cfg.Store.PromptTTL, cfg.Store.CleanupInterval)

	srv := server.New(cfg.Server, server.Deps{
		Pipeline: p,
		Detector: detect.New(),
		Prompts:  mem,
		Sessions: mem,
		Log:      log,
	})

	log.Infow("listening", "host", cfg.Server.Host, "port", cfg.Server.Port, "mode", cfg.Server.Mode)
	return srv.Run()
}

func newLogger(mode string) (*zap.Logger, error) {
	if mode == "prod" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
