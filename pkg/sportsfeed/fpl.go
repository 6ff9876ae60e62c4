package sportsfeed

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/draftspin/draftspin/internal/logger"
	"github.com/draftspin/draftspin/internal/models"
)

const defaultFPLBaseURL = "https://fantasy.premierleague.com/api"

// elementTypeCodes maps FPL element_type (1-4) to native position codes.
var elementTypeCodes = map[int]string{
	1: "GK",
	2: "DEF",
	3: "MID",
	4: "FWD",
}

// bootstrapPayload is the subset of the FPL bootstrap-static response the
// game reads: the team list and every player with their squad and role.
type bootstrapPayload struct {
	Teams []struct {
		ID        int    `json:"id"`
		Name      string `json:"name"`
		ShortName string `json:"short_name"`
	} `json:"teams"`
	Elements []struct {
		WebName     string `json:"web_name"`
		Team        int    `json:"team"`
		ElementType int    `json:"element_type"`
	} `json:"elements"`
}

// FPLClient reads teams and squads from the Fantasy Premier League API.
// The API returns the whole league in one bootstrap payload, so both
// operations are served from a single fetch.
type FPLClient struct {
	baseURL    string
	httpClient *http.Client
	log        logger.Logger
}

// NewFPLClient creates a Fantasy Premier League client.
func NewFPLClient(log logger.Logger) *FPLClient {
	return &FPLClient{
		baseURL: defaultFPLBaseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		log: log,
	}
}

// NewFPLClientWithBaseURL creates a client against a custom base URL
// (for testing).
func NewFPLClientWithBaseURL(baseURL string, log logger.Logger) *FPLClient {
	c := NewFPLClient(log)
	c.baseURL = baseURL
	return c
}

// fetchBootstrap retrieves and decodes the full bootstrap payload.
func (c *FPLClient) fetchBootstrap(ctx context.Context) (*bootstrapPayload, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/bootstrap-static/", nil)
	if err != nil {
		return nil, unavailable("build request: %v", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, unavailable("fetch bootstrap: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, unavailable("bootstrap request returned status %d", resp.StatusCode)
	}

	var payload bootstrapPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, unavailable("decode bootstrap response: %v", err)
	}
	if len(payload.Teams) == 0 {
		return nil, unavailable("bootstrap response has no teams")
	}
	return &payload, nil
}

// ListTeams returns every club in the league.
func (c *FPLClient) ListTeams(ctx context.Context, league string) ([]models.Team, error) {
	payload, err := c.fetchBootstrap(ctx)
	if err != nil {
		return nil, err
	}

	teams := make([]models.Team, 0, len(payload.Teams))
	for _, t := range payload.Teams {
		teams = append(teams, models.Team{
			ID:       strconv.Itoa(t.ID),
			City:     t.ShortName,
			Nickname: t.Name,
		})
	}
	return teams, nil
}

// GetRoster returns the squad of one club, filtered from the bootstrap
// payload's element list.
func (c *FPLClient) GetRoster(ctx context.Context, league string, teamID string) ([]models.RosterEntry, error) {
	id, err := strconv.Atoi(teamID)
	if err != nil {
		return nil, unavailable("invalid FPL team id %q", teamID)
	}

	payload, err := c.fetchBootstrap(ctx)
	if err != nil {
		return nil, err
	}

	var entries []models.RosterEntry
	for _, e := range payload.Elements {
		if e.Team != id {
			continue
		}
		code, ok := elementTypeCodes[e.ElementType]
		if !ok {
			continue
		}
		entries = append(entries, models.RosterEntry{Player: e.WebName, Position: code})
	}

	c.log.Debug("Fetched FPL squad", "team_id", teamID, "players", len(entries))
	return entries, nil
}
