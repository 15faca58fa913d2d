// Package store holds the injected repositories the HTTP layer uses for
// saved prompt history and sessions. The reframe pipeline never touches
// these: they are collaborators around the core, not part of it.
package store

import (
	"time"

	"github.com/avolkov/reframe/internal/model"
)

// SavedPrompt records one reframe kept in a user's history
type SavedPrompt struct {
	ID        string            `json:"id"`
	UserID    string            `json:"-"`
	Prompt    string            `json:"prompt"`
	Model     model.TargetModel `json:"model"`
	Reframed  string            `json:"reframed"`
	Degraded  bool              `json:"degraded,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
}

// Session is one authenticated browser/API session
type Session struct {
	ID        string
	UserID    string
	Email     string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// PromptStore is a keyed history repository: append to a user's history,
// read it back in insertion order
type PromptStore interface {
	Append(userID string, p SavedPrompt) error
	List(userID string) ([]SavedPrompt, error)
}

// SessionStore tracks live sessions by id
type SessionStore interface {
	Put(s Session) error
	Get(id string) (Session, bool)
	Delete(id string)
}
