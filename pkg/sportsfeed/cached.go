package sportsfeed

import (
	"context"
	"encoding/json"
	"time"

	"github.com/draftspin/draftspin/internal/cache"
	"github.com/draftspin/draftspin/internal/logger"
	"github.com/draftspin/draftspin/internal/models"
)

// DefaultTTL is how long feed responses stay cached. Rosters move on the
// scale of days, so a day of staleness is acceptable.
const DefaultTTL = 24 * time.Hour

// CachedClient wraps a Client with a time-boxed cache so repeated spins
// against the same league do not hammer the upstream feed.
type CachedClient struct {
	inner Client
	store cache.Store
	ttl   time.Duration
	log   logger.Logger
}

// NewCachedClient wraps inner with store. A non-positive ttl falls back
// to DefaultTTL.
func NewCachedClient(inner Client, store cache.Store, ttl time.Duration, log logger.Logger) *CachedClient {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &CachedClient{
		inner: inner,
		store: store,
		ttl:   ttl,
		log:   log,
	}
}

// ListTeams implements Client.
func (c *CachedClient) ListTeams(ctx context.Context, league string) ([]models.Team, error) {
	key := "teams:" + league

	if raw, ok := c.store.Get(key); ok {
		var teams []models.Team
		if err := json.Unmarshal(raw, &teams); err == nil {
			return teams, nil
		}
		// Corrupt entry: fall through and refetch
	}

	teams, err := c.inner.ListTeams(ctx, league)
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(teams); err == nil {
		c.store.Set(key, raw, c.ttl)
	}
	c.log.Debug("Cached team list", "league", league, "teams", len(teams))
	return teams, nil
}

// GetRoster implements Client.
func (c *CachedClient) GetRoster(ctx context.Context, league string, teamID string) ([]models.RosterEntry, error) {
	key := "roster:" + league + ":" + teamID

	if raw, ok := c.store.Get(key); ok {
		var entries []models.RosterEntry
		if err := json.Unmarshal(raw, &entries); err == nil {
			return entries, nil
		}
	}

	entries, err := c.inner.GetRoster(ctx, league, teamID)
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(entries); err == nil {
		c.store.Set(key, raw, c.ttl)
	}
	return entries, nil
}
