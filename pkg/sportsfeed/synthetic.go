package sportsfeed

import (
	"context"
	"fmt"

	"github.com/draftspin/draftspin/internal/models"
)

// syntheticPositions lists the native position codes used to fabricate
// rosters for leagues without a live feed.
var syntheticPositions = map[string][]string{
	"nfl": {"QB", "RB", "FB", "WR", "TE", "K"},
	"nhl": {"C", "LW", "RW", "D", "G"},
}

// syntheticCities and syntheticNicknames are combined pairwise to
// fabricate a stable team table per league.
var syntheticCities = []string{
	"Springfield", "Riverton", "Fairview", "Brookside",
	"Lakewood", "Milltown", "Granite City", "Harborview",
}

var syntheticNicknames = []string{
	"Comets", "Bison", "Mariners 2.0", "Falcons",
	"Miners", "Stallions", "Yetis", "Currents",
}

// SyntheticClient fabricates deterministic teams and rosters for leagues
// without a live feed. The same league always yields the same data, so
// the rest of the game stays league-agnostic.
type SyntheticClient struct {
	playersPerPosition int
}

// NewSyntheticClient creates a synthetic feed with three players per
// base position on every team.
func NewSyntheticClient() *SyntheticClient {
	return &SyntheticClient{playersPerPosition: 3}
}

// ListTeams returns the fabricated team table for league.
func (c *SyntheticClient) ListTeams(ctx context.Context, league string) ([]models.Team, error) {
	if _, ok := syntheticPositions[league]; !ok {
		return nil, unavailable("no synthetic fixtures for league %q", league)
	}

	teams := make([]models.Team, 0, len(syntheticCities))
	for i, city := range syntheticCities {
		teams = append(teams, models.Team{
			ID:       fmt.Sprintf("%s-%d", league, i+1),
			City:     city,
			Nickname: syntheticNicknames[i],
		})
	}
	return teams, nil
}

// GetRoster fabricates a roster for teamID with deterministic player
// names of the form "Mock <position> <teamID>-<n>".
func (c *SyntheticClient) GetRoster(ctx context.Context, league string, teamID string) ([]models.RosterEntry, error) {
	positions, ok := syntheticPositions[league]
	if !ok {
		return nil, unavailable("no synthetic fixtures for league %q", league)
	}

	entries := make([]models.RosterEntry, 0, len(positions)*c.playersPerPosition)
	for _, pos := range positions {
		for n := 1; n <= c.playersPerPosition; n++ {
			entries = append(entries, models.RosterEntry{
				Player:   fmt.Sprintf("Mock %s %s-%d", pos, teamID, n),
				Position: pos,
			})
		}
	}
	return entries, nil
}
