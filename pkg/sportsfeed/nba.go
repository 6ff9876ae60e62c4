package sportsfeed

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/draftspin/draftspin/internal/logger"
	"github.com/draftspin/draftspin/internal/models"
)

const defaultNBABaseURL = "https://stats.nba.com/stats"

// nbaTeams is the static NBA team table. The stats API has no cheap
// team-list endpoint, so the table is shipped with the client; team ids
// are the stable franchise ids the roster endpoint expects.
var nbaTeams = []models.Team{
	{ID: "1610612737", City: "Atlanta", Nickname: "Hawks"},
	{ID: "1610612738", City: "Boston", Nickname: "Celtics"},
	{ID: "1610612751", City: "Brooklyn", Nickname: "Nets"},
	{ID: "1610612766", City: "Charlotte", Nickname: "Hornets"},
	{ID: "1610612741", City: "Chicago", Nickname: "Bulls"},
	{ID: "1610612739", City: "Cleveland", Nickname: "Cavaliers"},
	{ID: "1610612742", City: "Dallas", Nickname: "Mavericks"},
	{ID: "1610612743", City: "Denver", Nickname: "Nuggets"},
	{ID: "1610612765", City: "Detroit", Nickname: "Pistons"},
	{ID: "1610612744", City: "Golden State", Nickname: "Warriors"},
	{ID: "1610612745", City: "Houston", Nickname: "Rockets"},
	{ID: "1610612754", City: "Indiana", Nickname: "Pacers"},
	{ID: "1610612746", City: "LA", Nickname: "Clippers"},
	{ID: "1610612747", City: "Los Angeles", Nickname: "Lakers"},
	{ID: "1610612763", City: "Memphis", Nickname: "Grizzlies"},
	{ID: "1610612748", City: "Miami", Nickname: "Heat"},
	{ID: "1610612749", City: "Milwaukee", Nickname: "Bucks"},
	{ID: "1610612750", City: "Minnesota", Nickname: "Timberwolves"},
	{ID: "1610612740", City: "New Orleans", Nickname: "Pelicans"},
	{ID: "1610612752", City: "New York", Nickname: "Knicks"},
	{ID: "1610612760", City: "Oklahoma City", Nickname: "Thunder"},
	{ID: "1610612753", City: "Orlando", Nickname: "Magic"},
	{ID: "1610612755", City: "Philadelphia", Nickname: "76ers"},
	{ID: "1610612756", City: "Phoenix", Nickname: "Suns"},
	{ID: "1610612757", City: "Portland", Nickname: "Trail Blazers"},
	{ID: "1610612758", City: "Sacramento", Nickname: "Kings"},
	{ID: "1610612759", City: "San Antonio", Nickname: "Spurs"},
	{ID: "1610612761", City: "Toronto", Nickname: "Raptors"},
	{ID: "1610612762", City: "Utah", Nickname: "Jazz"},
	{ID: "1610612764", City: "Washington", Nickname: "Wizards"},
}

// resultSetEnvelope is the stats API response shape: tabular result sets
// with a header row naming the columns.
type resultSetEnvelope struct {
	ResultSets []struct {
		Name    string              `json:"name"`
		Headers []string            `json:"headers"`
		RowSet  [][]json.RawMessage `json:"rowSet"`
	} `json:"resultSets"`
}

// NBAClient reads rosters from the NBA stats API.
type NBAClient struct {
	baseURL    string
	season     string
	httpClient *http.Client
	log        logger.Logger
}

// NewNBAClient creates an NBA stats client for the given season
// (e.g. "2025-26").
func NewNBAClient(season string, log logger.Logger) *NBAClient {
	return &NBAClient{
		baseURL: defaultNBABaseURL,
		season:  season,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		log: log,
	}
}

// NewNBAClientWithBaseURL creates a client against a custom base URL
// (for testing).
func NewNBAClientWithBaseURL(baseURL, season string, log logger.Logger) *NBAClient {
	c := NewNBAClient(season, log)
	c.baseURL = baseURL
	return c
}

// ListTeams returns the static NBA team table.
func (c *NBAClient) ListTeams(ctx context.Context, league string) ([]models.Team, error) {
	teams := make([]models.Team, len(nbaTeams))
	copy(teams, nbaTeams)
	return teams, nil
}

// GetRoster fetches a team's roster from the commonteamroster endpoint.
func (c *NBAClient) GetRoster(ctx context.Context, league string, teamID string) ([]models.RosterEntry, error) {
	params := url.Values{}
	params.Set("TeamID", teamID)
	params.Set("Season", c.season)

	reqURL := fmt.Sprintf("%s/commonteamroster?%s", c.baseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, unavailable("build request: %v", err)
	}
	// The stats API rejects requests without browser-like headers
	req.Header.Set("User-Agent", "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36")
	req.Header.Set("Referer", "https://stats.nba.com/")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, unavailable("fetch roster for team %s: %v", teamID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, unavailable("roster request for team %s returned status %d", teamID, resp.StatusCode)
	}

	var envelope resultSetEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, unavailable("decode roster response: %v", err)
	}

	entries, err := parseRosterResultSet(envelope)
	if err != nil {
		return nil, err
	}

	c.log.Debug("Fetched NBA roster", "team_id", teamID, "players", len(entries))
	return entries, nil
}

// parseRosterResultSet extracts (player, position) pairs from the
// CommonTeamRoster result set.
func parseRosterResultSet(envelope resultSetEnvelope) ([]models.RosterEntry, error) {
	for _, set := range envelope.ResultSets {
		if set.Name != "CommonTeamRoster" {
			continue
		}

		playerCol, positionCol := -1, -1
		for i, header := range set.Headers {
			switch header {
			case "PLAYER":
				playerCol = i
			case "POSITION":
				positionCol = i
			}
		}
		if playerCol < 0 || positionCol < 0 {
			return nil, unavailable("roster result set missing PLAYER/POSITION columns")
		}

		entries := make([]models.RosterEntry, 0, len(set.RowSet))
		for _, row := range set.RowSet {
			if len(row) <= playerCol || len(row) <= positionCol {
				continue
			}
			var player, position string
			if err := json.Unmarshal(row[playerCol], &player); err != nil {
				continue
			}
			// Position may be null for two-way signings
			json.Unmarshal(row[positionCol], &position)
			if player == "" {
				continue
			}
			entries = append(entries, models.RosterEntry{Player: player, Position: position})
		}
		return entries, nil
	}
	return nil, unavailable("response has no CommonTeamRoster result set")
}
