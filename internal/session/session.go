// Package session keeps each browser's draft state in memory, keyed by an
// opaque cookie token. Sessions are fully isolated from each other and
// evaporate after an idle TTL; nothing is persisted.
package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"sync"
	"time"

	"github.com/draftspin/draftspin/internal/logger"
	"github.com/draftspin/draftspin/internal/models"
)

// DefaultIdleTTL is how long an untouched session survives.
const DefaultIdleTTL = 2 * time.Hour

// Session is one browser's draft state. Callers must hold the session
// lock across any read-modify-write of the embedded DraftSession.
type Session struct {
	sync.Mutex
	models.DraftSession
}

// Manager owns all live sessions.
type Manager struct {
	log      logger.Logger
	mu       sync.RWMutex
	sessions map[string]*Session
	idleTTL  time.Duration
	now      func() time.Time
}

// NewManager creates a Manager. A non-positive idleTTL falls back to
// DefaultIdleTTL.
func NewManager(log logger.Logger, idleTTL time.Duration) *Manager {
	if idleTTL <= 0 {
		idleTTL = DefaultIdleTTL
	}
	return &Manager{
		log:      log,
		sessions: make(map[string]*Session),
		idleTTL:  idleTTL,
		now:      time.Now,
	}
}

// Create starts a fresh session and returns it with its token.
func (m *Manager) Create() *Session {
	sess := &Session{}
	sess.Token = generateToken()
	sess.LastActive = m.now()

	m.mu.Lock()
	m.sessions[sess.Token] = sess
	m.mu.Unlock()

	m.log.Debug("Session created", "token", sess.Token)
	return sess
}

// Get returns the session for token if it exists and has not idled out.
// A hit refreshes the session's activity time.
func (m *Manager) Get(token string) (*Session, bool) {
	m.mu.RLock()
	sess, ok := m.sessions[token]
	m.mu.RUnlock()
	if !ok {
		return nil, false
	}

	sess.Lock()
	expired := m.now().Sub(sess.LastActive) > m.idleTTL
	if !expired {
		sess.LastActive = m.now()
	}
	sess.Unlock()

	if expired {
		m.mu.Lock()
		delete(m.sessions, token)
		m.mu.Unlock()
		return nil, false
	}
	return sess, true
}

// GetOrCreate returns the session for token, creating a fresh one when
// the token is empty, unknown, or expired.
func (m *Manager) GetOrCreate(token string) (*Session, bool) {
	if token != "" {
		if sess, ok := m.Get(token); ok {
			return sess, false
		}
	}
	return m.Create(), true
}

// Count returns the number of live sessions.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// StartSweeper evicts idle sessions periodically until ctx is canceled.
func (m *Manager) StartSweeper(ctx context.Context) {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.sweep()
		}
	}
}

// sweep removes every session idle past the TTL.
func (m *Manager) sweep() {
	cutoff := m.now().Add(-m.idleTTL)

	m.mu.Lock()
	defer m.mu.Unlock()
	for token, sess := range m.sessions {
		sess.Lock()
		idle := sess.LastActive.Before(cutoff)
		sess.Unlock()
		if idle {
			delete(m.sessions, token)
			m.log.Debug("Session expired", "token", token)
		}
	}
}

// generateToken returns a random 32-character hex token
func generateToken() string {
	b := make([]byte, 16)
	rand.Read(b)
	return hex.EncodeToString(b)
}
