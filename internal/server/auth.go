package server

import (
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/avolkov/reframe/internal/store"
)

const sessionContextKey = "session"

// Auth issues and verifies JWT-backed sessions. With no signing secret
// configured, session endpoints reject and the API runs anonymous-only.
type Auth struct {
	secret   []byte
	ttl      time.Duration
	sessions store.SessionStore
}

type sessionClaims struct {
	SessionID string `json:"sid"`
	Email     string `json:"email"`
	jwt.RegisteredClaims
}

// NewAuth creates the session manager
func NewAuth(secret string, ttl time.Duration, sessions store.SessionStore) *Auth {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Auth{secret: []byte(secret), ttl: ttl, sessions: sessions}
}

// Enabled reports whether sessions can be issued
func (a *Auth) Enabled() bool {
	return len(a.secret) > 0
}

// Issue creates a session for the given email and returns a signed token
func (a *Auth) Issue(email string) (string, store.Session, error) {
	if !a.Enabled() {
		return "", store.Session{}, fmt.Errorf("sessions disabled: no signing secret configured")
	}

	now := time.Now().UTC()
	sess := store.Session{
		ID:        uuid.NewString(),
		UserID:    strings.ToLower(strings.TrimSpace(email)),
		Email:     strings.ToLower(strings.TrimSpace(email)),
		CreatedAt: now,
		ExpiresAt: now.Add(a.ttl),
	}
	if err := a.sessions.Put(sess); err != nil {
		return "", store.Session{}, fmt.Errorf("store session: %w", err)
	}

	claims := sessionClaims{
		SessionID: sess.ID,
		Email:     sess.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sess.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(sess.ExpiresAt),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
	if err != nil {
		return "", store.Session{}, fmt.Errorf("sign token: %w", err)
	}
	return token, sess, nil
}

// Verify parses a bearer token and resolves its live session
func (a *Auth) Verify(tokenString string) (store.Session, error) {
	if !a.Enabled() {
		return store.Session{}, fmt.Errorf("sessions disabled")
	}

	claims := &sessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return a.secret, nil
	})
	if err != nil {
		return store.Session{}, fmt.Errorf("parse token: %w", err)
	}
	if !token.Valid {
		return store.Session{}, fmt.Errorf("invalid token")
	}

	sess, found := a.sessions.Get(claims.SessionID)
	if !found {
		return store.Session{}, fmt.Errorf("session expired or revoked")
	}
	return sess, nil
}

// Revoke drops a session
func (a *Auth) Revoke(sessionID string) {
	a.sessions.Delete(sessionID)
}

// Required rejects requests without a valid session
func (a *Auth) Required() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, err := a.sessionFromRequest(c)
		if err != nil {
			c.AbortWithStatusJSON(401, gin.H{"error": "authentication required"})
			return
		}
		c.Set(sessionContextKey, sess)
		c.Next()
	}
}

// Optional attaches a session when present but never rejects
func (a *Auth) Optional() gin.HandlerFunc {
	return func(c *gin.Context) {
		if sess, err := a.sessionFromRequest(c); err == nil {
			c.Set(sessionContextKey, sess)
		}
		c.Next()
	}
}

func (a *Auth) sessionFromRequest(c *gin.Context) (store.Session, error) {
	header := c.GetHeader("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return store.Session{}, fmt.Errorf("missing bearer token")
	}
	return a.Verify(strings.TrimPrefix(header, prefix))
}

// SessionFrom extracts the session a middleware attached, if any
func SessionFrom(c *gin.Context) (store.Session, bool) {
	val, ok := c.Get(sessionContextKey)
	if !ok {
		return store.Session{}, false
	}
	sess, ok := val.(store.Session)
	return sess, ok
}
