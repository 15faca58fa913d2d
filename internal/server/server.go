// Package server exposes the reframe pipeline over HTTP. Everything here
// is plumbing around the core: routing, CORS, sessions, request logging.
package server

import (
	"fmt"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/avolkov/reframe/internal/detect"
	"github.com/avolkov/reframe/internal/model"
	"github.com/avolkov/reframe/internal/pipeline"
	"github.com/avolkov/reframe/internal/store"
)

// Server wraps the gin engine and its wiring
type Server struct {
	engine *gin.Engine
	cfg    model.ServerConfig
}

// Deps carries everything the HTTP layer needs from the rest of the app
type Deps struct {
	Pipeline *pipeline.Pipeline
	Detector *detect.Detector
	Prompts  store.PromptStore
	Sessions store.SessionStore
	Log      *zap.SugaredLogger
}

// New builds the router with the full middleware chain
func New(cfg model.ServerConfig, deps Deps) *Server {
	if cfg.Mode == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(RequestLogger(deps.Log))

	engine.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	auth := NewAuth(cfg.JWTSecret, cfg.SessionTTL, deps.Sessions)
	h := &Handler{
		pipeline: deps.Pipeline,
		detector: deps.Detector,
		prompts:  deps.Prompts,
		auth:     auth,
		log:      deps.Log,
	}

	api := engine.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/models", h.Models)
		api.POST("/detect", h.Detect)
		api.POST("/reframe", auth.Optional(), h.Reframe)
		api.POST("/auth/login", h.Login)
	}

	protected := api.Group("")
	protected.Use(auth.Required())
	{
		protected.GET("/prompts", h.ListPrompts)
		protected.POST("/auth/logout", h.Logout)
	}

	return &Server{engine: engine, cfg: cfg}
}

// Run blocks serving HTTP on the configured address
func (s *Server) Run() error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	return s.engine.Run(addr)
}

// Engine exposes the router for tests
func (s *Server) Engine() *gin.Engine {
	return s.engine
}
