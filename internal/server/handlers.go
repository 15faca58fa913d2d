package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/avolkov/reframe/internal/detect"
	"github.com/avolkov/reframe/internal/model"
	"github.com/avolkov/reframe/internal/pipeline"
	"github.com/avolkov/reframe/internal/store"
)

// maxPromptLength bounds inbound prompt size
const maxPromptLength = 10000

// Handler holds the HTTP endpoint implementations
type Handler struct {
	pipeline *pipeline.Pipeline
	detector *detect.Detector
	prompts  store.PromptStore
	auth     *Auth
	log      *zap.SugaredLogger
}

// Health reports liveness and whether generation is configured
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":     "ok",
		"generation": h.pipeline.Enabled(),
	})
}

// Models lists the recognized target model identifiers
func (h *Handler) Models(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"models": model.AllTargets()})
}

// Reframe runs the pipeline. The only 400s are the two input-validation
// failures; degraded results come back 200 with the error inside the body.
func (h *Handler) Reframe(c *gin.Context) {
	var req model.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
		return
	}
	if len(req.Prompt) > maxPromptLength {
		c.JSON(http.StatusBadRequest, gin.H{"error": "prompt too long"})
		return
	}

	result, err := h.pipeline.Reframe(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrMissingPrompt):
			c.JSON(http.StatusBadRequest, gin.H{"error": "prompt is required"})
		case errors.Is(err, model.ErrInvalidModel):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		}
		return
	}

	// Authenticated callers get the result appended to their history
	if sess, ok := SessionFrom(c); ok && h.prompts != nil {
		saved := store.SavedPrompt{
			ID:        uuid.NewString(),
			UserID:    sess.UserID,
			Prompt:    result.OriginalPrompt,
			Model:     result.Model,
			Reframed:  result.Reframed.Raw,
			Degraded:  result.Degraded(),
			CreatedAt: time.Now().UTC(),
		}
		if err := h.prompts.Append(sess.UserID, saved); err != nil {
			h.log.Warnw("failed to save prompt history", "user", sess.UserID, "error", err)
		}
	}

	c.JSON(http.StatusOK, result)
}

// Detect runs the ambiguity pre-check, independent of reframing
func (h *Handler) Detect(c *gin.Context) {
	var req struct {
		Prompt string `json:"prompt"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
		return
	}
	if req.Prompt == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "prompt is required"})
		return
	}

	c.JSON(http.StatusOK, h.detector.Detect(req.Prompt))
}

// Login issues a session token for an email identity
func (h *Handler) Login(c *gin.Context) {
	if !h.auth.Enabled() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "sessions are not configured"})
		return
	}

	var req struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "valid email is required"})
		return
	}

	token, sess, err := h.auth.Issue(req.Email)
	if err != nil {
		h.log.Errorw("failed to issue session", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create session"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":      token,
		"expires_at": sess.ExpiresAt,
	})
}

// Logout revokes the current session
func (h *Handler) Logout(c *gin.Context) {
	if sess, ok := SessionFrom(c); ok {
		h.auth.Revoke(sess.ID)
	}
	c.JSON(http.StatusOK, gin.H{"status": "logged out"})
}

// ListPrompts returns the caller's saved history
func (h *Handler) ListPrompts(c *gin.Context) {
	sess, ok := SessionFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	history, err := h.prompts.List(sess.UserID)
	if err != nil {
		h.log.Errorw("failed to list prompt history", "user", sess.UserID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load history"})
		return
	}
	if history == nil {
		history = []store.SavedPrompt{}
	}

	c.JSON(http.StatusOK, gin.H{"prompts": history})
}
