package session

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/draftspin/draftspin/internal/logger"
)

func newTestManager(idleTTL time.Duration) (*Manager, *time.Time) {
	m := NewManager(logger.NewWithWriter(io.Discard, slog.LevelError), idleTTL)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return now }
	return m, &now
}

// TestCreate_UniqueTokens verifies each session gets its own token
func TestCreate_UniqueTokens(t *testing.T) {
	m, _ := newTestManager(0)

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		sess := m.Create()
		if len(sess.Token) != 32 {
			t.Fatalf("expected 32-char token, got %q", sess.Token)
		}
		if seen[sess.Token] {
			t.Fatalf("duplicate token %q", sess.Token)
		}
		seen[sess.Token] = true
	}
	if m.Count() != 100 {
		t.Errorf("expected 100 sessions, got %d", m.Count())
	}
}

// TestGet_RoundTrip verifies created sessions are retrievable by token
func TestGet_RoundTrip(t *testing.T) {
	m, _ := newTestManager(0)
	created := m.Create()

	got, ok := m.Get(created.Token)
	if !ok {
		t.Fatal("session not found")
	}
	if got != created {
		t.Error("Get returned a different session instance")
	}

	if _, ok := m.Get("no-such-token"); ok {
		t.Error("unknown token returned a session")
	}
}

// TestGet_ExpiresIdleSessions verifies a session past the idle TTL is
// dropped on access
func TestGet_ExpiresIdleSessions(t *testing.T) {
	m, now := newTestManager(time.Hour)
	sess := m.Create()

	*now = now.Add(time.Hour + time.Minute)

	if _, ok := m.Get(sess.Token); ok {
		t.Error("expired session was returned")
	}
	if m.Count() != 0 {
		t.Errorf("expired session still tracked, count=%d", m.Count())
	}
}

// TestGet_TouchExtendsLife verifies each access resets the idle clock
func TestGet_TouchExtendsLife(t *testing.T) {
	m, now := newTestManager(time.Hour)
	sess := m.Create()

	// Keep touching just inside the TTL
	for i := 0; i < 3; i++ {
		*now = now.Add(50 * time.Minute)
		if _, ok := m.Get(sess.Token); !ok {
			t.Fatalf("session expired on touch %d despite activity", i)
		}
	}
}

// TestGetOrCreate verifies reuse for live tokens and fresh sessions
// otherwise
func TestGetOrCreate(t *testing.T) {
	m, now := newTestManager(time.Hour)
	original := m.Create()

	sess, created := m.GetOrCreate(original.Token)
	if created || sess != original {
		t.Error("live token should return the existing session")
	}

	sess, created = m.GetOrCreate("")
	if !created || sess == original {
		t.Error("empty token should create a fresh session")
	}

	*now = now.Add(2 * time.Hour)
	sess, created = m.GetOrCreate(original.Token)
	if !created || sess == original {
		t.Error("expired token should create a fresh session")
	}
}

// TestSweep_RemovesOnlyIdleSessions verifies the sweeper leaves active
// sessions alone
func TestSweep_RemovesOnlyIdleSessions(t *testing.T) {
	m, now := newTestManager(time.Hour)

	stale := m.Create()
	*now = now.Add(2 * time.Hour)
	fresh := m.Create()

	m.sweep()

	if _, ok := m.sessions[stale.Token]; ok {
		t.Error("sweep left the idle session")
	}
	if _, ok := m.sessions[fresh.Token]; !ok {
		t.Error("sweep removed the active session")
	}
}
