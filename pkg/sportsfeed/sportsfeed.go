// Package sportsfeed provides clients for the external team/roster feeds
// the draft game reads from. Each league is served by one client behind a
// common interface; leagues without a real feed are served synthetic data
// of the same shape.
package sportsfeed

import (
	"context"
	"errors"
	"fmt"

	"github.com/draftspin/draftspin/internal/models"
)

// ErrUnavailable marks a transient feed failure: network error, non-2xx
// status, malformed payload. Callers should retry (typically with a
// different team) rather than abort.
var ErrUnavailable = errors.New("feed data unavailable")

// unavailable wraps err as an ErrUnavailable with context
func unavailable(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrUnavailable, fmt.Sprintf(format, args...))
}

// Client defines the operations the draft core needs from a feed.
type Client interface {
	// ListTeams returns every team in the league. Idempotent within the
	// feed's cache window.
	ListTeams(ctx context.Context, league string) ([]models.Team, error)
	// GetRoster returns the named team's current roster as
	// (player, native position code) pairs.
	GetRoster(ctx context.Context, league string, teamID string) ([]models.RosterEntry, error)
}

// Router dispatches feed calls to a per-league client, falling back to a
// default client for leagues with no registered feed.
type Router struct {
	clients  map[string]Client
	fallback Client
}

// NewRouter creates a Router with the given fallback client.
func NewRouter(fallback Client) *Router {
	return &Router{
		clients:  make(map[string]Client),
		fallback: fallback,
	}
}

// Register routes all calls for league to client.
func (r *Router) Register(league string, client Client) {
	r.clients[league] = client
}

func (r *Router) clientFor(league string) Client {
	if client, ok := r.clients[league]; ok {
		return client
	}
	return r.fallback
}

// ListTeams implements Client.
func (r *Router) ListTeams(ctx context.Context, league string) ([]models.Team, error) {
	return r.clientFor(league).ListTeams(ctx, league)
}

// GetRoster implements Client.
func (r *Router) GetRoster(ctx context.Context, league string, teamID string) ([]models.RosterEntry, error) {
	return r.clientFor(league).GetRoster(ctx, league, teamID)
}
