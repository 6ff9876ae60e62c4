package services

import (
	"context"
	"math/rand"

	"github.com/draftspin/draftspin/internal/errors"
	"github.com/draftspin/draftspin/internal/league"
	"github.com/draftspin/draftspin/internal/logger"
	"github.com/draftspin/draftspin/internal/models"
	"github.com/draftspin/draftspin/pkg/sportsfeed"
)

// DefaultMaxAttempts bounds how many teams the engine samples per slot
// before giving up. An unbounded retry loop would never terminate against
// a feed where no team has an eligible player for some slot.
const DefaultMaxAttempts = 50

// Engine builds the AI opponent's roster by repeatedly sampling random
// teams and random eligible players until every slot is filled.
type Engine struct {
	log         logger.Logger
	feed        sportsfeed.Client
	rng         *rand.Rand
	maxAttempts int
}

// NewEngine creates an Engine. The rng is owned by the engine and must
// not be shared.
func NewEngine(log logger.Logger, feed sportsfeed.Client, rng *rand.Rand) *Engine {
	return &Engine{
		log:         log,
		feed:        feed,
		rng:         rng,
		maxAttempts: DefaultMaxAttempts,
	}
}

// GenerateRoster fills every slot of the league's roster template. Slots
// are drafted independently: for each slot the engine samples a team
// uniformly from teams, fetches its roster, and picks uniformly from the
// eligible entries. Feed failures and empty eligible pools both trigger a
// resample with a fresh team. The same player may land in two slots when
// eligible for both; picks are independent draws.
func (e *Engine) GenerateRoster(ctx context.Context, leagueKey string, teams []models.Team) (models.DraftRoster, error) {
	cfg, err := league.Get(leagueKey)
	if err != nil {
		return nil, err
	}
	if len(teams) == 0 {
		return nil, errors.Unavailable("no teams available for AI draft", nil)
	}

	roster := models.NewDraftRoster(cfg.Slots)
	for _, slot := range cfg.Slots {
		player, err := e.draftSlot(ctx, slot, cfg, teams)
		if err != nil {
			return nil, err
		}
		roster[slot] = player
	}
	return roster, nil
}

// draftSlot finds one eligible player for slot, resampling teams until it
// succeeds or the attempt budget runs out.
func (e *Engine) draftSlot(ctx context.Context, slot string, cfg league.Config, teams []models.Team) (string, error) {
	for attempt := 1; attempt <= e.maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return "", errors.Unavailable("AI draft canceled", err)
		}

		team := teams[e.rng.Intn(len(teams))]
		entries, err := e.feed.GetRoster(ctx, cfg.Key, team.ID)
		if err != nil {
			// Transient feed failure: try another team
			e.log.Debug("AI draft roster fetch failed, resampling",
				"slot", slot, "team_id", team.ID, "attempt", attempt, "error", err)
			continue
		}

		eligible, err := Eligible(slot, entries, cfg)
		if err != nil {
			return "", err
		}
		if len(eligible) == 0 {
			continue
		}

		pick := eligible[e.rng.Intn(len(eligible))]
		e.log.Debug("AI draft pick", "slot", slot, "player", pick.Player, "team", team.Nickname)
		return pick.Player, nil
	}

	return "", errors.Infeasible("no eligible player found for slot " + slot)
}
