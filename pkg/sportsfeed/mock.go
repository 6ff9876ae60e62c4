package sportsfeed

import (
	"context"
	"sync"

	"github.com/draftspin/draftspin/internal/models"
)

// MockClient is a mock feed client for testing
type MockClient struct {
	mu             sync.Mutex
	teams          map[string][]models.Team
	rosters        map[string][]models.RosterEntry
	teamsErr       error
	rosterErr      error
	rosterFailures map[string]int // teamID -> failures left before success
	teamsCalls     int
	rosterCalls    int
}

// MockOption configures the mock client
type MockOption func(*MockClient)

// WithTeams sets the teams to return for a league
func WithTeams(league string, teams []models.Team) MockOption {
	return func(m *MockClient) {
		m.teams[league] = teams
	}
}

// WithRoster sets the roster to return for a team
func WithRoster(teamID string, entries []models.RosterEntry) MockOption {
	return func(m *MockClient) {
		m.rosters[teamID] = entries
	}
}

// WithTeamsError sets an error to return from ListTeams
func WithTeamsError(err error) MockOption {
	return func(m *MockClient) {
		m.teamsErr = err
	}
}

// WithRosterError sets an error to return from every GetRoster call
func WithRosterError(err error) MockOption {
	return func(m *MockClient) {
		m.rosterErr = err
	}
}

// WithFlakyRoster makes GetRoster for teamID fail with ErrUnavailable the
// first n times before succeeding
func WithFlakyRoster(teamID string, n int) MockOption {
	return func(m *MockClient) {
		m.rosterFailures[teamID] = n
	}
}

// NewMockClient creates a mock feed client with the given options
func NewMockClient(opts ...MockOption) *MockClient {
	m := &MockClient{
		teams:          make(map[string][]models.Team),
		rosters:        make(map[string][]models.RosterEntry),
		rosterFailures: make(map[string]int),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// ListTeams implements Client.
func (m *MockClient) ListTeams(ctx context.Context, league string) ([]models.Team, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.teamsCalls++

	if m.teamsErr != nil {
		return nil, m.teamsErr
	}
	return m.teams[league], nil
}

// GetRoster implements Client.
func (m *MockClient) GetRoster(ctx context.Context, league string, teamID string) ([]models.RosterEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rosterCalls++

	if m.rosterErr != nil {
		return nil, m.rosterErr
	}
	if left, ok := m.rosterFailures[teamID]; ok && left > 0 {
		m.rosterFailures[teamID] = left - 1
		return nil, unavailable("mock failure for team %s", teamID)
	}
	return m.rosters[teamID], nil
}

// TeamsCalls returns how many times ListTeams was called
func (m *MockClient) TeamsCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.teamsCalls
}

// RosterCalls returns how many times GetRoster was called
func (m *MockClient) RosterCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rosterCalls
}
